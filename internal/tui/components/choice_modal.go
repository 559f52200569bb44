package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Choice is one option in a ChoiceModal
type Choice struct {
	Value string
	Label string
}

// ChoiceModal is a small popup for picking one value, used for sort order,
// media type and language
type ChoiceModal struct {
	visible bool
	title   string
	options []Choice
	cursor  int
	offset  int
	active  string
}

// maxChoiceRows bounds the modal height for long option lists
const maxChoiceRows = 12

// NewChoiceModal creates a new choice modal
func NewChoiceModal() ChoiceModal {
	return ChoiceModal{}
}

// Show displays the modal with the cursor on the active value
func (m *ChoiceModal) Show(title string, options []Choice, active string) {
	m.visible = true
	m.title = title
	m.options = options
	m.active = active
	m.cursor = 0
	m.offset = 0
	for i, opt := range options {
		if opt.Value == active {
			m.cursor = i
			break
		}
	}
	m.ensureVisible()
}

// Hide dismisses the modal
func (m *ChoiceModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ChoiceModal) IsVisible() bool {
	return m.visible
}

func (m *ChoiceModal) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxChoiceRows {
		m.offset = m.cursor - maxChoiceRows + 1
	}
}

// HandleKey processes a key press, returns (handled, selection).
// A non-nil selection means the user confirmed a choice.
func (m *ChoiceModal) HandleKey(key string) (handled bool, selection *Choice) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.options)-1, 0)
	case "enter":
		m.visible = false
		if len(m.options) == 0 {
			return true, nil
		}
		chosen := m.options[m.cursor]
		return true, &chosen
	case "esc", "q":
		m.visible = false
	}

	m.ensureVisible()
	// consume all keys when visible
	return true, nil
}

// View renders the modal
func (m ChoiceModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	width := 20
	for _, opt := range m.options {
		width = max(width, lipgloss.Width(opt.Label)+4)
	}
	width = min(width, 40)

	end := min(m.offset+maxChoiceRows, len(m.options))
	var lines []string
	for i := m.offset; i < end; i++ {
		opt := m.options[i]
		prefix := "  "
		if opt.Value == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, width)

		switch {
		case i == m.cursor:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text))
		case opt.Value == m.active:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.MarqueeRed).
				Render(text))
		default:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(text))
		}
	}
	if m.offset > 0 {
		lines = append([]string{styles.DimStyle.Render("↑")}, lines...)
	}
	if end < len(m.options) {
		lines = append(lines, styles.DimStyle.Render("↓"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.MarqueeRed).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render(m.title) + "\n" + strings.Join(lines, "\n"))
}
