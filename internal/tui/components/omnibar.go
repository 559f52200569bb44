package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	maxSuggestions = 6
	maxSaved       = 4
)

// OmnibarEntry is one selectable row under the input: either a past query
// or a saved title
type OmnibarEntry struct {
	Query string
	Item  *domain.Item
}

// Omnibar is the search prompt. Past queries and matching My List titles
// are offered below the input.
type Omnibar struct {
	input     textinput.Model
	suggest   func(prefix string) []string
	saved     func(query string) []domain.Item
	entries   []OmnibarEntry
	cursor    int // -1 selects the typed text
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewOmnibar creates a new omnibar. suggest and saved may be nil.
func NewOmnibar(suggest func(prefix string) []string, saved func(query string) []domain.Item) Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Search movies, shows and people..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{
		input:   ti,
		suggest: suggest,
		saved:   saved,
		cursor:  -1,
	}
}

// Show makes the omnibar visible, prefilled with the current query
func (o *Omnibar) Show(query string) {
	o.visible = true
	o.input.SetValue(query)
	o.input.CursorEnd()
	o.input.Focus()
	o.refreshSuggestions(true)
}

// Hide hides the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the omnibar is visible
func (o Omnibar) IsVisible() bool {
	return o.visible
}

// SetSize updates the component dimensions
func (o *Omnibar) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = max(min(width*2/3, 80)-10, 10)
}

// Selected returns what enter would submit: the highlighted entry, or the
// typed text as a query
func (o Omnibar) Selected() OmnibarEntry {
	if o.cursor >= 0 && o.cursor < len(o.entries) {
		return o.entries[o.cursor]
	}
	return OmnibarEntry{Query: strings.TrimSpace(o.input.Value())}
}

// Entries returns the rows currently offered
func (o Omnibar) Entries() []OmnibarEntry {
	return o.entries
}

func (o *Omnibar) refreshSuggestions(force bool) {
	current := o.input.Value()
	if current == o.prevQuery && !force {
		return
	}
	o.prevQuery = current
	o.cursor = -1
	o.entries = nil

	typed := strings.TrimSpace(current)
	if o.suggest != nil {
		n := 0
		for _, s := range o.suggest(current) {
			if s == typed {
				continue
			}
			o.entries = append(o.entries, OmnibarEntry{Query: s})
			if n++; n == maxSuggestions {
				break
			}
		}
	}
	if o.saved != nil && typed != "" {
		items := o.saved(typed)
		for i := range items[:min(len(items), maxSaved)] {
			o.entries = append(o.entries, OmnibarEntry{Item: &items[i]})
		}
	}
}

// Init initializes the component
func (o Omnibar) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. The bool result is true when the user pressed enter;
// what was chosen is Selected().
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			o.Hide()
			return o, nil, false
		case "enter":
			o.visible = false
			o.input.Blur()
			return o, nil, true
		case "down", "ctrl+n", "tab":
			if o.cursor < len(o.entries)-1 {
				o.cursor++
			}
			return o, nil, false
		case "up", "ctrl+p", "shift+tab":
			if o.cursor >= 0 {
				o.cursor--
			}
			return o, nil, false
		}
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	o.refreshSuggestions(false)
	return o, cmd, false
}

// View renders the component
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := max(min(o.width*2/3, 80), 40)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(o.input.View())

	section := ""
	for i, e := range o.entries {
		heading, text := "Recent", e.Query
		if e.Item != nil {
			heading = "My List"
			text = e.Item.DisplayTitle()
			if y := e.Item.Year(); y != "" {
				text += " (" + y + ")"
			}
		}
		if heading != section {
			section = heading
			b.WriteString("\n\n")
			b.WriteString(styles.DimStyle.Render(heading))
		}
		b.WriteString("\n")
		text = styles.Truncate(text, modalWidth-10)
		if i == o.cursor {
			b.WriteString(styles.SelectedItemStyle.Render(text))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(text))
		}
	}

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, modal)
}
