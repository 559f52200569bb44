package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// PageStatus represents the load status of a sidebar page
type PageStatus int

const (
	StatusIdle PageStatus = iota
	StatusLoading
	StatusLoaded
	StatusError
)

// PageState tracks what the sidebar shows next to a page
type PageState struct {
	Status PageStatus
	Loaded int // Items listed so far
	Total  int // Total results reported by the server
}

// Page is one sidebar entry
type Page struct {
	Name  string
	Title string
}

// PageItem implements list.Item for sidebar pages
type PageItem struct {
	Page  Page
	State PageState
	Frame int
}

func (i PageItem) FilterValue() string { return i.Page.Title }

func (i PageItem) Title() string {
	switch i.State.Status {
	case StatusLoading:
		return styles.SpinnerFrames[i.Frame%len(styles.SpinnerFrames)] + " " + i.Page.Title
	case StatusLoaded:
		if i.State.Total > 0 {
			return fmt.Sprintf("✓ %s (%d/%d)", i.Page.Title, i.State.Loaded, i.State.Total)
		}
		return fmt.Sprintf("✓ %s (%d)", i.Page.Title, i.State.Loaded)
	case StatusError:
		return "✗ " + i.Page.Title
	default:
		return "  " + i.Page.Title
	}
}

func (i PageItem) Description() string { return i.Page.Name }

// BorderSize is the frame overhead of the sidebar panel
const BorderSize = 2

// Sidebar is the page selection component
type Sidebar struct {
	list         list.Model
	focused      bool
	width        int
	height       int
	pages        []Page
	states       map[string]PageState
	spinnerFrame int
}

// NewSidebar creates a new sidebar component
func NewSidebar(pages []Page) Sidebar {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.White).
		Background(styles.SlateLight).
		Padding(0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Padding(0, 1)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Marquee"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.White).
		Background(styles.MarqueeRed).
		Bold(true).
		Padding(0, 1)

	s := Sidebar{
		list:   l,
		pages:  pages,
		states: make(map[string]PageState),
	}
	s.refreshItems()
	return s
}

// SetPageState updates the status shown next to one page
func (s *Sidebar) SetPageState(name string, state PageState) {
	s.states[name] = state
	s.refreshItems()
}

// SetSpinnerFrame updates the spinner animation frame
func (s *Sidebar) SetSpinnerFrame(frame int) {
	s.spinnerFrame = frame
	s.refreshItems()
}

func (s *Sidebar) refreshItems() {
	items := make([]list.Item, len(s.pages))
	for i, p := range s.pages {
		items[i] = PageItem{Page: p, State: s.states[p.Name], Frame: s.spinnerFrame}
	}
	s.list.SetItems(items)
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(max(width-BorderSize, 0), max(height-BorderSize, 0))
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// Selected returns the highlighted page
func (s Sidebar) Selected() (Page, bool) {
	idx := s.list.Index()
	if idx < 0 || idx >= len(s.pages) {
		return Page{}, false
	}
	return s.pages[idx], true
}

// Select moves the highlight to the named page
func (s *Sidebar) Select(name string) {
	for i, p := range s.pages {
		if p.Name == name {
			s.list.Select(i)
			return
		}
	}
}

// Update handles messages
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(s.width-frameW, 0)).
		Height(max(s.height-frameH, 0)).
		Render(s.list.View())
}
