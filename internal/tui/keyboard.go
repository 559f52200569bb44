package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// handleKeyMsg routes a key press to the modal in front, then to the
// global bindings, then to the focused pane
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	case StateSearching:
		return m.updateOmnibar(msg)
	case StateChoosing:
		return m.handleChoiceKey(msg)
	}

	// Typing into the grid filter consumes every key
	if m.focus == FocusGrid && m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		m.syncInspector()
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil
	case key.Matches(msg, Keys.SwitchPane):
		if m.focus == FocusGrid {
			m.focus = FocusSidebar
		} else {
			m.focus = FocusGrid
		}
		m.applyFocus()
		return m, nil
	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil
	case key.Matches(msg, Keys.InfoUp), key.Matches(msg, Keys.InfoDown):
		if !m.ShowInspector || !m.Inspector.HasItem() {
			return m, nil
		}
		if key.Matches(msg, Keys.InfoUp) {
			m.Inspector.ScrollBy(-1)
		} else {
			m.Inspector.ScrollBy(1)
		}
		return m, nil
	case key.Matches(msg, Keys.Search):
		m.Omnibar.Show(m.query)
		m.State = StateSearching
		return m, m.Omnibar.Init()
	case key.Matches(msg, Keys.Language):
		if len(m.languages) == 0 {
			return m, m.setStatus("No languages configured", true)
		}
		m.showChoice(choiceLanguage)
		return m, nil
	case key.Matches(msg, Keys.Sort):
		if m.Active != catalog.Search {
			return m, m.setStatus("Sort applies to search results", false)
		}
		m.showChoice(choiceOrder)
		return m, nil
	case key.Matches(msg, Keys.Type):
		if m.Active != catalog.Search {
			return m, m.setStatus("Type filter applies to search results", false)
		}
		m.showChoice(choiceType)
		return m, nil
	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, Keys.LoadMore):
		return m, m.loadMore()
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "l", "right":
		page, ok := m.Sidebar.Selected()
		if !ok {
			return m, nil
		}
		cmd := m.openPage(page.Name)
		m.focus = FocusGrid
		m.applyFocus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.Sidebar, cmd = m.Sidebar.Update(msg)
	return m, cmd
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter) && !m.Grid.IsFiltering():
		m.Grid.ToggleFilter()
		return m, nil
	case key.Matches(msg, Keys.Enter):
		return m, m.showDetails()
	case key.Matches(msg, Keys.MyList):
		item, ok := m.Grid.SelectedItem()
		if !ok || m.svc.MyList == nil {
			return m, nil
		}
		return m, ToggleMyListCmd(m.svc.MyList, item)
	case key.Matches(msg, Keys.Open):
		item, ok := m.Grid.SelectedItem()
		if !ok || m.svc.Opener == nil {
			return m, nil
		}
		return m, OpenItemCmd(m.svc.Opener, item)
	case key.Matches(msg, Keys.Escape) && !m.Grid.IsFiltering():
		m.focus = FocusSidebar
		m.applyFocus()
		return m, nil
	case msg.String() == "h" || msg.String() == "left":
		m.focus = FocusSidebar
		m.applyFocus()
		return m, nil
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	m.syncInspector()
	return m, tea.Batch(cmd, m.autoLoad())
}

// showDetails opens the inspector on the selected item and fetches its
// details
func (m *Model) showDetails() tea.Cmd {
	item, ok := m.Grid.SelectedItem()
	if !ok || m.svc.Details == nil {
		return nil
	}
	if !m.ShowInspector {
		m.ShowInspector = true
		m.updateLayout()
	}
	m.Inspector.SetItem(&item)
	m.Inspector.SetLoading()
	return LoadDetailsCmd(m.svc.Details, item)
}

func (m Model) updateOmnibar(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd       tea.Cmd
		submitted bool
	)
	m.Omnibar, cmd, submitted = m.Omnibar.Update(msg)
	if !m.Omnibar.IsVisible() {
		m.State = StateBrowsing
	}
	if !submitted {
		return m, cmd
	}

	entry := m.Omnibar.Selected()
	m.focus = FocusGrid
	m.applyFocus()

	if entry.Item != nil {
		// jump to the saved title on My List
		target := entry.Item.Key()
		openCmd := m.openPage(MyListPage)
		for i, it := range m.myList {
			if it.Key() == target {
				m.Grid.SetCursor(i)
				break
			}
		}
		m.syncInspector()
		return m, openCmd
	}

	m.query = entry.Query
	m.selectPage(catalog.Search)
	cmds := []tea.Cmd{m.initialize(catalog.Search)}
	if m.query != "" && m.svc.History != nil {
		cmds = append(cmds, RecordQueryCmd(m.svc.History, m.query))
	}
	return m, tea.Batch(cmds...)
}

var typeChoices = []components.Choice{
	{Value: "", Label: "All"},
	{Value: string(domain.MediaTypeMovie), Label: "Movies"},
	{Value: string(domain.MediaTypeTV), Label: "TV Shows"},
	{Value: string(domain.MediaTypePerson), Label: "People"},
}

func (m *Model) showChoice(kind choiceKind) {
	switch kind {
	case choiceOrder:
		options := make([]components.Choice, len(catalog.Orders))
		for i, o := range catalog.Orders {
			options[i] = components.Choice{Value: string(o), Label: o.Label()}
		}
		m.Choice.Show("Sort by", options, string(m.order))
	case choiceType:
		m.Choice.Show("Show", typeChoices, string(m.mediaType))
	case choiceLanguage:
		options := make([]components.Choice, len(m.languages))
		for i, code := range m.languages {
			options[i] = components.Choice{Value: code, Label: config.LanguageName(code)}
		}
		m.Choice.Show("Language", options, m.language)
	default:
		return
	}
	m.choice = kind
	m.State = StateChoosing
}

func (m Model) handleChoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, selection := m.Choice.HandleKey(msg.String())
	if !m.Choice.IsVisible() {
		m.State = StateBrowsing
	}
	if selection == nil {
		return m, nil
	}

	kind := m.choice
	m.choice = choiceNone
	switch kind {
	case choiceOrder:
		order := catalog.ParseOrder(selection.Value)
		if order == m.order {
			return m, nil
		}
		m.order = order
		return m, m.initialize(catalog.Search)

	case choiceType:
		// view-side only, nothing is refetched
		m.mediaType = domain.MediaType(selection.Value)
		m.Grid.SetBreadcrumb(m.breadcrumb())
		m.syncGrid(false)
		return m, nil

	case choiceLanguage:
		m.language = selection.Value
		m.selectPage(catalog.Languages)
		m.focus = FocusGrid
		m.applyFocus()
		return m, m.initialize(catalog.Languages)
	}
	return m, nil
}

func (m *Model) applyFocus() {
	m.Sidebar.SetFocused(m.focus == FocusSidebar)
	m.Grid.SetFocused(m.focus == FocusGrid)
}
