package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// RenderSpinner renders the spinner at the given frame
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateSearching:
		return m.Omnibar.View()
	case StateChoosing:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Choice.View())
	}

	// Status is read from the controller at render time so the footer
	// reflects fetches started outside Update
	grid := m.Grid
	grid.SetStatus(m.listingStatus())

	panes := []string{m.Sidebar.View(), grid.View()}
	if m.ShowInspector {
		panes = append(panes, m.Inspector.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHero(),
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		m.renderFooter(),
	)
}

// renderHero renders the featured title banner
func (m Model) renderHero() string {
	brand := styles.HighlightStyle.Render("MARQUEE")
	if m.heroItem == nil {
		return styles.Truncate(brand, m.Width)
	}

	item := m.heroItem
	parts := []string{brand, styles.TitleStyle.Render(item.DisplayTitle())}
	if y := item.Year(); y != "" {
		parts = append(parts, styles.DimStyle.Render(y))
	}
	if item.HasRating() {
		parts = append(parts, styles.RatingStyle.Render("★ "+item.FormattedRating()))
	}
	if item.Overview != "" {
		parts = append(parts, styles.SubtitleStyle.Render(strings.Join(strings.Fields(item.Overview), " ")))
	}
	return styles.Truncate(strings.Join(parts, " "), m.Width)
}

// renderFooter renders status on the left, page hints centered and help on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	case m.anyLoading():
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	}

	var hints []string
	hint := func(k, desc string) {
		hints = append(hints, styles.AccentStyle.Render(k)+styles.DimStyle.Render(" "+desc))
	}
	switch m.Active {
	case catalog.Search:
		hint("f", "search")
		hint("s", "sort")
		hint("t", "type")
	case catalog.Languages:
		hint("L", "language")
	}
	if m.Active != MyListPage {
		hint("m", "more")
	}
	hint("a", "my list")
	center := strings.Join(hints, "  ")

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return styles.Truncate(left+strings.Repeat(" ", gap)+right, m.Width)
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func (m Model) renderHelp() string {
	help := `
NAVIGATION                      LISTING
  j/k        Up/down               m      Load more
  g/Home     First item            r      Retry / refresh
  G/End      Last item             /      Filter loaded titles
  Ctrl+u/d   Scroll half page      f      Search TMDB
  Tab        Switch pane           s      Sort search results
  Enter      Open page / details   t      Search type
  Esc        Back / cancel         L      Language

TITLE                           OTHER
  a          Add/remove My List    i      Toggle inspector
  o          Open in browser       J/K    Scroll inspector
                                   ?      This help
                                   q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
