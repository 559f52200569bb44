package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector shows the selected item, expanded with details once loaded
type Inspector struct {
	item       *domain.Item
	details    *domain.Details
	loading    bool
	err        error
	saved      bool
	imageBase  string
	imageSize  string
	width      int
	height     int
	offset     int
	maxVisible int
}

// NewInspector creates a new inspector component
func NewInspector(imageBase, imageSize string) Inspector {
	return Inspector{imageBase: imageBase, imageSize: imageSize}
}

// SetItem shows a list item. Details for a different item are dropped.
func (i *Inspector) SetItem(item *domain.Item) {
	if item == nil || i.item == nil || item.Key() != i.item.Key() {
		i.details = nil
		i.loading = false
		i.err = nil
		i.offset = 0
	}
	i.item = item
}

// SetLoading marks details as in flight for the current item
func (i *Inspector) SetLoading() {
	i.loading = true
	i.err = nil
}

// SetDetails attaches loaded details if they belong to the shown item.
// Returns false when the result is stale.
func (i *Inspector) SetDetails(key string, details *domain.Details, err error) bool {
	if i.item == nil || i.item.Key() != key {
		return false
	}
	i.loading = false
	i.details = details
	i.err = err
	return true
}

// Details returns the loaded details, if any
func (i Inspector) Details() *domain.Details {
	return i.details
}

// SetSaved marks whether the shown item is on My List
func (i *Inspector) SetSaved(saved bool) {
	i.saved = saved
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// title line and blank line below it
	i.maxVisible = max(height-InspectorBorderHeight-InspectorScrollIndicators-2, 1)
}

// HasItem returns true if there is an item to display
func (i Inspector) HasItem() bool {
	return i.item != nil
}

// ScrollBy moves the body window, stopping at the last line
func (i *Inspector) ScrollBy(lines int) {
	body := splitLines(i.renderInspector(max(i.width-3, 10)).body)
	i.offset = min(max(i.offset+lines, 0), max(len(body)-1, 0))
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	contentWidth := max(i.width-3, 10)
	content := i.renderInspector(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Info", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(i.maxVisible-len(headerLines)-len(footerLines), 1)

	offset := min(i.offset, max(len(bodyLines)-availableForBody, 0))
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) renderInspector(width int) inspectorContent {
	if i.item == nil {
		return inspectorContent{body: styles.DimStyle.Render("No item selected")}
	}
	item := *i.item
	if i.details != nil {
		item = i.details.Item
	}
	return inspectorContent{
		header: i.renderHeader(item, width),
		body:   i.renderBody(item, width),
		footer: i.renderFooter(item, width),
	}
}

func (i Inspector) renderHeader(item domain.Item, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(item.DisplayTitle(), width)))
	b.WriteString("\n")

	if d := i.details; d != nil && d.Tagline != "" {
		b.WriteString(styles.SubtitleStyle.Italic(true).Render(styles.Truncate(d.Tagline, width)))
		b.WriteString("\n")
	}

	meta := []string{item.MediaType.Label()}
	if y := item.Year(); y != "" {
		meta = append(meta, y)
	}
	if d := i.details; d != nil {
		if rt := d.FormattedRuntime(); rt != "" {
			meta = append(meta, rt)
		}
		if d.Seasons > 0 {
			meta = append(meta, fmt.Sprintf("%d seasons · %d episodes", d.Seasons, d.Episodes))
		}
	}
	if item.OriginalLanguage != "" {
		meta = append(meta, strings.ToUpper(item.OriginalLanguage))
	}
	b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
	b.WriteString("\n")

	var status []string
	if item.HasRating() {
		status = append(status, ratingStyle(item.Rating).Render("★ "+item.FormattedRating()))
	}
	if i.saved {
		status = append(status, styles.SuccessStyle.Render("✓ My List"))
	}
	if len(status) > 0 {
		b.WriteString(strings.Join(status, "   "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func ratingStyle(rating float64) lipgloss.Style {
	switch {
	case rating >= 7:
		return lipgloss.NewStyle().Foreground(styles.Green)
	case rating >= 5:
		return lipgloss.NewStyle().Foreground(styles.Gold)
	default:
		return lipgloss.NewStyle().Foreground(styles.Red)
	}
}

func (i Inspector) renderBody(item domain.Item, width int) string {
	bodyWidth := min(width-2, 80)
	var sections []string

	if item.MediaType == domain.MediaTypePerson {
		if len(item.KnownFor) > 0 {
			sections = append(sections,
				styles.AccentStyle.Render("Known for"),
				styles.SubtitleStyle.Render(ansi.Wordwrap(strings.Join(item.KnownFor, ", "), bodyWidth, "")))
		}
		return strings.Join(sections, "\n")
	}

	if item.Overview != "" {
		sections = append(sections, styles.SubtitleStyle.Render(ansi.Wordwrap(item.Overview, bodyWidth, "")))
	} else {
		sections = append(sections, styles.DimStyle.Render("No overview available"))
	}

	switch {
	case i.loading:
		sections = append(sections, "", styles.SpinnerStyle.Render("Loading details..."))
	case i.err != nil:
		sections = append(sections, "", styles.ErrorStyle.Render("Details unavailable"))
	case i.details != nil:
		d := i.details
		if len(d.Genres) > 0 {
			sections = append(sections, "",
				styles.AccentStyle.Render("Genres"),
				styles.SubtitleStyle.Render(ansi.Wordwrap(strings.Join(d.Genres, ", "), bodyWidth, "")))
		}
		if len(d.Cast) > 0 {
			sections = append(sections, "", styles.AccentStyle.Render("Cast"))
			for _, c := range d.Cast {
				line := c.Name
				if c.Character != "" {
					line += styles.DimStyle.Render(" as " + c.Character)
				}
				sections = append(sections, styles.Truncate(line, bodyWidth))
			}
		}
	}

	return strings.Join(sections, "\n")
}

func (i Inspector) renderFooter(item domain.Item, width int) string {
	var lines []string
	if img := tmdb.ImageURL(i.imageBase, i.imageSize, item.ImagePath); img != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(img, width)))
	}
	if d := i.details; d != nil && d.Status != "" {
		lines = append(lines, styles.DimStyle.Render("Status: "+d.Status))
	}
	if len(lines) == 0 {
		return ""
	}
	sep := styles.DimStyle.Render(strings.Repeat("─", width))
	return sep + "\n" + strings.Join(lines, "\n")
}

// splitLines splits a string into lines, returning nil for an empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
