package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Padding(0,1) inside the border
	HorizontalPadding = 2

	// "↑ more" header and status footer
	ScrollIndicatorLines = 2

	// Breadcrumb line at top of content area
	BreadcrumbLines = 1

	ItemWidthMargin = 2

	// Rows from the bottom at which the next page is requested
	LoadAheadRows = 3
)

// ListingStatus is what the grid footer reports about the listing
type ListingStatus struct {
	Loading      bool
	HasMore      bool
	TotalResults int
	Err          error
	Empty        string // Shown instead of "No titles" when nothing is listed
}

// Grid renders one listing and owns the cursor and local filter
type Grid struct {
	items []domain.Item
	saved func(key string) bool

	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	breadcrumb string
	status     ListingStatus
	frame      int

	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		filterInput: ti,
		maxVisible:  1,
	}
}

// SetItems replaces the listing. The cursor is reset unless keepCursor is
// set, which is how appended pages are shown without losing the position.
func (g *Grid) SetItems(items []domain.Item, keepCursor bool) {
	g.items = items
	if !keepCursor {
		g.cursor = 0
		g.offset = 0
		g.clearFilter()
		return
	}
	if g.filterActive {
		g.reapplyFilter()
	}
	g.SetCursor(g.cursor)
}

// Items returns the unfiltered listing
func (g Grid) Items() []domain.Item {
	return g.items
}

// SetSavedLookup installs the check used to mark My List entries
func (g *Grid) SetSavedLookup(fn func(key string) bool) {
	g.saved = fn
}

// SetStatus updates the footer state
func (g *Grid) SetStatus(status ListingStatus) {
	g.status = status
}

// SetSpinnerFrame advances the loading animation
func (g *Grid) SetSpinnerFrame(frame int) {
	g.frame = frame
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxVisible()
}

// SetBreadcrumb sets the line shown above the listing
func (g *Grid) SetBreadcrumb(crumb string) {
	g.breadcrumb = crumb
}

func (g *Grid) recalcMaxVisible() {
	interiorHeight := g.height - BorderHeight
	g.maxVisible = interiorHeight - ScrollIndicatorLines - BreadcrumbLines
	if g.filterActive {
		g.maxVisible--
	}
	if g.maxVisible < 1 {
		g.maxVisible = 1
	}
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor moves the cursor, clamped to the visible items
func (g *Grid) SetCursor(pos int) {
	last := g.itemCount() - 1
	if last < 0 {
		g.cursor = 0
		g.offset = 0
		return
	}
	g.cursor = min(max(pos, 0), last)
	g.ensureVisible()
}

// SelectedItem returns the item under the cursor
func (g Grid) SelectedItem() (domain.Item, bool) {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return domain.Item{}, false
	}
	return g.items[g.mapIndex(g.cursor)], true
}

// NearEnd reports whether the cursor is close enough to the last row that
// the next page should be requested. Filtered views never trigger loads.
func (g Grid) NearEnd() bool {
	if g.filterActive && g.filterQuery != "" {
		return false
	}
	count := g.itemCount()
	return count > 0 && g.cursor >= count-LoadAheadRows
}

func (g *Grid) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true while the filter input has focus
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcMaxVisible()
}

// applyFilter filters items on the current query and resets the cursor
func (g *Grid) applyFilter() {
	g.reapplyFilter()
	g.cursor = 0
	g.offset = 0
}

func (g *Grid) reapplyFilter() {
	query := search.Fold(g.filterInput.Value())
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	titles := make([]string, len(g.items))
	for i, item := range g.items {
		titles[i] = search.Fold(item.DisplayTitle())
	}

	matches := fuzzy.Find(query, titles)
	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}
}

func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.items)
}

func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles navigation and filter keys
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	if g.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	if g.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "/":
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			g.SetCursor(g.cursor + 1)
		case "k", "up":
			g.SetCursor(g.cursor - 1)
		case "g", "home":
			g.cursor = 0
			g.offset = 0
		case "G", "end":
			g.SetCursor(count - 1)
		case "ctrl+d", "pgdown":
			g.SetCursor(g.cursor + max(g.maxVisible/2, 1))
		case "ctrl+u", "pgup":
			g.SetCursor(g.cursor - max(g.maxVisible/2, 1))
		}
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(g.width-frameW, 0)).
		Height(max(g.height-frameH, 0)).
		Render(g.renderList())
}

func (g Grid) renderList() string {
	itemWidth := g.width - BorderWidth - HorizontalPadding - ItemWidthMargin

	breadcrumbLine := " "
	if g.breadcrumb != "" {
		breadcrumbLine = styles.AccentStyle.Render(styles.Truncate(g.breadcrumb, itemWidth))
	}

	count := g.itemCount()
	if count == 0 {
		content := breadcrumbLine + "\n \n" + g.renderEmpty() + "\n" + g.renderFooter(0, 0)
		if g.filterActive {
			content += "\n" + g.renderFilterBar(itemWidth)
		}
		return content
	}

	end := min(g.offset+g.maxVisible, count)
	lines := make([]string, 0, end-g.offset)
	for i := g.offset; i < end; i++ {
		lines = append(lines, g.renderItem(g.items[g.mapIndex(i)], i == g.cursor, itemWidth))
	}

	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	content := breadcrumbLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + g.renderFooter(end, count)
	if g.filterActive {
		content += "\n" + g.renderFilterBar(itemWidth)
	}
	return content
}

func (g Grid) renderEmpty() string {
	switch {
	case g.status.Loading:
		return styles.SpinnerStyle.Render(styles.SpinnerFrames[g.frame%len(styles.SpinnerFrames)] + " Loading...")
	case g.status.Err != nil:
		return styles.ErrorStyle.Render("Failed to load") + styles.DimStyle.Render("  r to retry")
	case g.filterActive && g.filterQuery != "":
		return styles.DimStyle.Render("No matches")
	case g.status.Empty != "":
		return styles.DimStyle.Render(g.status.Empty)
	default:
		return styles.DimStyle.Render("No titles")
	}
}

// renderFooter reports paging state below the last visible row
func (g Grid) renderFooter(end, count int) string {
	switch {
	case count == 0:
		return " "
	case g.status.Loading:
		return styles.SpinnerStyle.Render(styles.SpinnerFrames[g.frame%len(styles.SpinnerFrames)] + " loading more")
	case g.status.Err != nil:
		return styles.ErrorStyle.Render("✗ page failed") + styles.DimStyle.Render("  r to retry")
	case end < count:
		return styles.DimStyle.Render("↓ more")
	case g.status.HasMore:
		return styles.DimStyle.Render("m load more")
	default:
		return styles.DimStyle.Render(fmt.Sprintf("%d titles", count))
	}
}

func (g Grid) renderItem(item domain.Item, selected bool, width int) string {
	marker, markerFg := styles.MediaMarker(string(item.MediaType))

	title := item.DisplayTitle()
	if y := item.Year(); y != "" {
		title = fmt.Sprintf("%s (%s)", title, y)
	}

	rating := ""
	if item.HasRating() {
		rating = " ★ " + item.FormattedRating()
	}

	savedMark := " "
	if g.saved != nil && g.saved(item.Key()) {
		savedMark = styles.SavedChar
	}

	title = styles.Truncate(title, width-4-lipgloss.Width(rating))
	gold := styles.Gold
	green := styles.Green

	parts := []styles.RowPart{
		{Text: marker, Foreground: &markerFg},
		{Text: savedMark, Foreground: &green},
		{Text: " " + title},
		{Text: rating, Foreground: &gold},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (g Grid) renderFilterBar(width int) string {
	bar := g.filterInput.View()
	if g.filterQuery != "" {
		bar += styles.DimStyle.Render(fmt.Sprintf("  %d/%d", len(g.filteredIdx), len(g.items)))
	}
	return styles.Truncate(bar, width+ItemWidthMargin)
}
