package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateChoosing
	StateHelp
)

// Focus is the pane receiving navigation keys
type Focus int

const (
	FocusSidebar Focus = iota
	FocusGrid
)

// MyListPage names the local page of saved titles
const MyListPage = "my-list"

type choiceKind int

const (
	choiceNone choiceKind = iota
	choiceOrder
	choiceType
	choiceLanguage
)

var (
	tickInterval  = 100 * time.Millisecond
	statusTimeout = 5 * time.Second
)

// Services are the collaborators the UI drives
type Services struct {
	Listing domain.ListingClient
	Details *service.DetailsService
	MyList  *service.MyListService
	History *service.HistoryService
	Opener  URLOpener
	Logger  *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool

	svc    Services
	logger *slog.Logger

	// One controller per remote page, plus the hero banner
	listings map[string]*catalog.Controller
	hero     *catalog.Controller
	heroItem *domain.Item
	myList   []domain.Item

	// Active page and the inputs of the filtered listings
	Active    string
	query     string
	order     catalog.Order
	mediaType domain.MediaType
	language  string
	languages []string

	// UI Components
	Sidebar   components.Sidebar
	Grid      components.Grid
	Inspector components.Inspector
	Omnibar   components.Omnibar
	Choice    components.ChoiceModal
	choice    choiceKind

	Width  int
	Height int

	focus         Focus
	ShowInspector bool
	StatusMsg     string
	StatusIsErr   bool
	SpinnerFrame  int

	startup []tea.Cmd
}

// NewModel creates a new application model and starts the default page
func NewModel(svc Services, cfg *config.Config) Model {
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	resources := catalog.Pages()
	pages := make([]components.Page, 0, len(resources)+1)
	listings := make(map[string]*catalog.Controller, len(resources))
	for _, r := range resources {
		pages = append(pages, components.Page{Name: r.Name, Title: r.Title})
		listings[r.Name] = catalog.NewController(svc.Listing, logger.With("listing", r.Name))
	}
	pages = append(pages, components.Page{Name: MyListPage, Title: "My List"})

	m := Model{
		State:         StateBrowsing,
		svc:           svc,
		logger:        logger,
		listings:      listings,
		hero:          catalog.NewController(svc.Listing, logger.With("listing", catalog.Hero)),
		order:         catalog.ParseOrder(cfg.Browse.SearchOrder),
		mediaType:     searchType(cfg.Browse.SearchType),
		language:      cfg.Browse.DefaultLanguage,
		languages:     cfg.Browse.Languages,
		Sidebar:       components.NewSidebar(pages),
		Grid:          components.NewGrid(),
		Inspector:     components.NewInspector(cfg.TMDB.ImageBaseURL, cfg.TMDB.ImageSize),
		Choice:        components.NewChoiceModal(),
		focus:         FocusGrid,
		ShowInspector: cfg.UI.ShowInspector,
	}
	if m.order == catalog.OrderNone {
		m.order = catalog.OrderRelevance
	}

	var suggest func(string) []string
	if svc.History != nil {
		suggest = svc.History.Suggest
	}
	var saved func(string) []domain.Item
	if svc.MyList != nil {
		saved = m.findSaved
		m.Grid.SetSavedLookup(svc.MyList.Contains)
	}
	m.Omnibar = components.NewOmnibar(suggest, saved)

	active := cfg.UI.DefaultPage
	if _, ok := listings[active]; !ok && active != MyListPage {
		active = catalog.NowPlaying
	}

	heroRes, _ := catalog.Lookup(catalog.Hero)
	m.startup = append(m.startup,
		RunFetchCmd(catalog.Hero, m.hero.Initialize(catalog.Request{Resource: heroRes})),
		m.openPage(active),
	)
	if svc.MyList != nil && active != MyListPage {
		m.startup = append(m.startup, LoadMyListCmd(svc.MyList))
	}
	m.applyFocus()
	return m
}

// searchType maps the configured type to a media type filter, "" for all
func searchType(s string) domain.MediaType {
	if s == "" || s == "all" {
		return ""
	}
	return domain.ParseMediaType(s, "")
}

func (m Model) findSaved(query string) []domain.Item {
	items, err := m.svc.MyList.Find(query)
	if err != nil {
		m.logger.Warn("my list lookup failed", "error", err)
		return nil
	}
	return items
}

// Init starts the first fetches and the spinner
func (m Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{}, m.startup...)
	cmds = append(cmds, TickCmd(tickInterval))
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.Grid.SetSpinnerFrame(m.SpinnerFrame)
		if m.anyLoading() {
			m.Sidebar.SetSpinnerFrame(m.SpinnerFrame)
		}
		return m, TickCmd(tickInterval)

	case ListingSettledMsg:
		return m.handleSettled(msg)

	case DetailsLoadedMsg:
		if !m.Inspector.SetDetails(msg.Key, msg.Details, msg.Err) {
			m.logger.Debug("dropping stale details", "key", msg.Key)
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("details failed", "key", msg.Key, "error", msg.Err)
			return m, m.setStatus("Details unavailable: "+describeError(msg.Err), true)
		}
		return m, nil

	case MyListLoadedMsg:
		if msg.Err != nil {
			m.logger.Error("loading my list", "error", msg.Err)
			return m, m.setStatus("Could not read My List", true)
		}
		m.myList = msg.Items
		m.Sidebar.SetPageState(MyListPage, components.PageState{
			Status: components.StatusLoaded,
			Loaded: len(msg.Items),
		})
		if m.Active == MyListPage {
			m.syncGrid(true)
		}
		return m, nil

	case MyListChangedMsg:
		if msg.Err != nil {
			m.logger.Error("updating my list", "key", msg.Item.Key(), "error", msg.Err)
			return m, m.setStatus("Could not update My List", true)
		}
		m.syncInspector()
		text := "Added " + msg.Item.DisplayTitle() + " to My List"
		if !msg.Saved {
			text = "Removed " + msg.Item.DisplayTitle() + " from My List"
		}
		return m, tea.Batch(m.setStatus(text, false), LoadMyListCmd(m.svc.MyList))

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.logger.Error(msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)
	}

	if m.State == StateSearching {
		var cmd tea.Cmd
		m.Omnibar, cmd, _ = m.Omnibar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSettled applies a finished fetch to its listing. Results the
// controller no longer expects are dropped there.
func (m Model) handleSettled(msg ListingSettledMsg) (tea.Model, tea.Cmd) {
	if msg.Page == catalog.Hero {
		if !m.hero.Settle(msg.Result) {
			return m, nil
		}
		if msg.Result.Err != nil {
			m.logger.Warn("hero banner failed", "error", msg.Result.Err)
			return m, nil
		}
		if items := m.hero.State().Items; len(items) > 0 {
			item := items[0]
			m.heroItem = &item
		}
		return m, nil
	}

	ctrl, ok := m.listings[msg.Page]
	if !ok || !ctrl.Settle(msg.Result) {
		return m, nil
	}
	m.updatePageState(msg.Page)
	if msg.Page == m.Active {
		m.syncGrid(msg.Result.Append)
	}

	if err := msg.Result.Err; err != nil {
		m.logger.Warn("page failed", "listing", msg.Page, "page", msg.Result.Page, "error", err)
		return m, m.setStatus(fmt.Sprintf("%s: %s (r to retry)", m.pageTitle(msg.Page), describeError(err)), true)
	}
	return m, nil
}

// selectPage makes a page active without loading anything
func (m *Model) selectPage(name string) {
	m.Active = name
	m.Sidebar.Select(name)
	m.Grid.SetBreadcrumb(m.breadcrumb())
}

// openPage switches to a page, initializing its listing on first visit
func (m *Model) openPage(name string) tea.Cmd {
	m.selectPage(name)
	if name == MyListPage {
		m.Grid.SetItems(m.myList, false)
		m.syncInspector()
		if m.svc.MyList == nil {
			return nil
		}
		return LoadMyListCmd(m.svc.MyList)
	}

	ctrl, ok := m.listings[name]
	if !ok {
		return nil
	}
	if ctrl.Initialized() {
		m.syncGrid(false)
		return nil
	}
	return m.initialize(name)
}

// initialize (re)starts a listing from page 1 with the current inputs
func (m *Model) initialize(name string) tea.Cmd {
	ctrl, ok := m.listings[name]
	if !ok {
		return nil
	}
	res, _ := catalog.Lookup(name)
	req := catalog.Request{Resource: res}
	switch name {
	case catalog.Languages:
		req.Filters = catalog.LanguageFilters(m.language)
	case catalog.Search:
		req.Filters = catalog.SearchFilters(m.query)
		req.Order = m.order
	}

	fetch := ctrl.Initialize(req)
	m.updatePageState(name)
	if name == m.Active {
		m.Grid.SetBreadcrumb(m.breadcrumb())
		m.syncGrid(false)
	}
	return RunFetchCmd(name, fetch)
}

// loadMore requests the next page of the active listing
func (m *Model) loadMore() tea.Cmd {
	ctrl, ok := m.listings[m.Active]
	if !ok {
		return nil
	}
	fetch := ctrl.LoadMore()
	if fetch == nil {
		return nil
	}
	m.updatePageState(m.Active)
	return RunFetchCmd(m.Active, fetch)
}

// autoLoad fetches the next page when the cursor nears the end. A failed
// listing waits for an explicit retry.
func (m *Model) autoLoad() tea.Cmd {
	ctrl, ok := m.listings[m.Active]
	if !ok || !m.Grid.NearEnd() || ctrl.State().Err != nil {
		return nil
	}
	return m.loadMore()
}

// refresh retries a failed page, otherwise reloads the active listing
func (m *Model) refresh() tea.Cmd {
	if m.Active == MyListPage {
		if m.svc.MyList == nil {
			return nil
		}
		return LoadMyListCmd(m.svc.MyList)
	}
	ctrl, ok := m.listings[m.Active]
	if !ok {
		return nil
	}
	if fetch := ctrl.Retry(); fetch != nil {
		m.updatePageState(m.Active)
		return tea.Batch(RunFetchCmd(m.Active, fetch), m.setStatus("Retrying...", false))
	}
	if !ctrl.Initialized() {
		return m.initialize(m.Active)
	}
	fetch := ctrl.Refresh()
	m.updatePageState(m.Active)
	m.syncGrid(false)
	return RunFetchCmd(m.Active, fetch)
}

// visibleItems returns what the grid lists for the active page
func (m Model) visibleItems() []domain.Item {
	if m.Active == MyListPage {
		return m.myList
	}
	ctrl, ok := m.listings[m.Active]
	if !ok {
		return nil
	}
	items := ctrl.State().Items
	if m.Active == catalog.Search {
		items = catalog.FilterByType(items, m.mediaType)
	}
	return items
}

func (m *Model) syncGrid(keepCursor bool) {
	m.Grid.SetItems(m.visibleItems(), keepCursor)
	m.syncInspector()
}

func (m *Model) syncInspector() {
	item, ok := m.Grid.SelectedItem()
	if !ok {
		m.Inspector.SetItem(nil)
		return
	}
	m.Inspector.SetItem(&item)
	if m.svc.MyList != nil {
		m.Inspector.SetSaved(m.svc.MyList.Contains(item.Key()))
	}
}

// listingStatus reports the active listing's state for the grid footer
func (m Model) listingStatus() components.ListingStatus {
	if m.Active == MyListPage {
		return components.ListingStatus{Empty: "Nothing saved yet. Press a on a title to add it."}
	}
	ctrl, ok := m.listings[m.Active]
	if !ok {
		return components.ListingStatus{}
	}
	st := ctrl.State()
	status := components.ListingStatus{
		Loading:      st.Loading,
		HasMore:      st.HasMore,
		TotalResults: st.TotalResults,
		Err:          st.Err,
	}
	switch {
	case m.Active == catalog.Search && m.query == "":
		status.Empty = "Press f to search"
	case m.Active == catalog.Search:
		status.Empty = fmt.Sprintf("No results for %q", m.query)
	case m.Active == catalog.Languages && m.language == "":
		status.Empty = "Press L to pick a language"
	}
	return status
}

func (m *Model) updatePageState(name string) {
	ctrl, ok := m.listings[name]
	if !ok {
		return
	}
	st := ctrl.State()
	state := components.PageState{Loaded: len(st.Items), Total: st.TotalResults}
	switch {
	case st.Loading:
		state.Status = components.StatusLoading
	case st.Err != nil:
		state.Status = components.StatusError
	case len(st.Items) > 0 || st.TotalResults > 0:
		state.Status = components.StatusLoaded
	default:
		state.Status = components.StatusIdle
	}
	m.Sidebar.SetPageState(name, state)
}

func (m Model) anyLoading() bool {
	for _, ctrl := range m.listings {
		if ctrl.State().Loading {
			return true
		}
	}
	return false
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

func (m Model) pageTitle(name string) string {
	if name == MyListPage {
		return "My List"
	}
	if res, ok := catalog.Lookup(name); ok {
		return res.Title
	}
	return name
}

// breadcrumb describes the active page and its inputs
func (m Model) breadcrumb() string {
	title := m.pageTitle(m.Active)
	switch m.Active {
	case catalog.Search:
		if m.query == "" {
			return title
		}
		typ := "All"
		if m.mediaType != "" {
			typ = m.mediaType.Label()
		}
		return fmt.Sprintf("%s › %q · %s · %s", title, m.query, m.order.Label(), typ)
	case catalog.Languages:
		if m.language == "" {
			return title
		}
		return title + " › " + config.LanguageName(m.language)
	}
	return title
}

// describeError turns listing errors into short footer text
func describeError(err error) string {
	var statusErr *domain.StatusError
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return "TMDB rejected the API token"
	case errors.Is(err, domain.ErrServerOffline):
		return "TMDB is unreachable"
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "unexpected response from TMDB"
	case errors.As(err, &statusErr):
		return statusErr.Error()
	default:
		return err.Error()
	}
}
