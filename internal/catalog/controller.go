package catalog

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Request identifies what a controller lists
type Request struct {
	Resource Resource
	Filters  map[string]string // Merged over Resource.Params
	Order    Order
}

// Filter returns a filter value, or "" if unset
func (r Request) Filter(key string) string {
	return r.Filters[key]
}

// ready reports whether every required filter is present
func (r Request) ready() bool {
	for _, key := range r.Resource.Required {
		if r.Filters[key] == "" {
			return false
		}
	}
	return true
}

func (r Request) params() map[string]string {
	params := make(map[string]string, len(r.Resource.Params)+len(r.Filters))
	maps.Copy(params, r.Resource.Params)
	maps.Copy(params, r.Filters)
	return params
}

func (r Request) clone() Request {
	r.Filters = maps.Clone(r.Filters)
	return r
}

// State is a snapshot of one listing
type State struct {
	Items        []domain.Item
	CurrentPage  int
	HasMore      bool
	TotalResults int
	Loading      bool
	Err          error
}

// Controller manages the paginated state of one listing. Fetches are
// handed out as *Fetch values and their results applied with Settle;
// results from a superseded lineage are discarded.
type Controller struct {
	client domain.ListingClient
	logger *slog.Logger

	mu          sync.Mutex
	req         Request
	initialized bool
	gen         uint64
	nextID      uint64
	pending     uint64 // id of the fetch in flight, 0 if none
	firstLoaded bool   // page 1 has been applied in this lineage
	state       State
}

// NewController creates a controller that fetches through client
func NewController(client domain.ListingClient, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{client: client, logger: logger}
}

// Initialize replaces the state for a new request and returns the page-1
// fetch to run. Any fetch issued earlier is discarded when it settles.
// Returns nil when a required filter is missing; the listing stays empty.
func (c *Controller) Initialize(req Request) *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.req = req.clone()
	c.initialized = true
	c.gen++
	c.pending = 0
	c.firstLoaded = false
	c.state = State{CurrentPage: 1, HasMore: true}

	if !c.req.ready() {
		c.state.HasMore = false
		c.logger.Debug("listing idle", "resource", req.Resource.Name)
		return nil
	}

	c.logger.Debug("listing initialize", "resource", req.Resource.Name, "filters", req.Filters, "order", req.Order)
	return c.startLocked(1, false)
}

// LoadMore returns an appending fetch for the next page, or nil when the
// listing is exhausted or already loading. Nothing is appended before the
// first page has loaded.
func (c *Controller) LoadMore() *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.firstLoaded || !c.state.HasMore || c.state.Loading {
		return nil
	}
	return c.startLocked(c.state.CurrentPage+1, true)
}

// Retry re-issues the fetch that last failed. Returns nil unless the
// listing holds an error and nothing is in flight.
func (c *Controller) Retry() *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.state.Err == nil || c.state.Loading {
		return nil
	}
	if !c.firstLoaded {
		return c.startLocked(1, false)
	}
	return c.startLocked(c.state.CurrentPage+1, true)
}

// Refresh re-initializes the current request
func (c *Controller) Refresh() *Fetch {
	c.mu.Lock()
	req := c.req
	initialized := c.initialized
	c.mu.Unlock()

	if !initialized {
		return nil
	}
	return c.Initialize(req)
}

func (c *Controller) startLocked(page int, appending bool) *Fetch {
	c.nextID++
	c.pending = c.nextID
	c.state.Loading = true
	c.state.Err = nil

	return &Fetch{
		gen:    c.gen,
		id:     c.pending,
		Page:   page,
		Append: appending,
		req:    c.req.clone(),
		client: c.client,
		logger: c.logger,
	}
}

// Settle applies a fetch result. It returns false, leaving state untouched,
// when the result is stale or was already applied.
func (c *Controller) Settle(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.gen != c.gen || res.id != c.pending || res.id == 0 {
		c.logger.Debug("discarding stale listing result", "resource", c.req.Resource.Name, "page", res.Page)
		return false
	}
	c.pending = 0
	c.state.Loading = false

	if res.Err != nil {
		c.state.Err = res.Err
		return true
	}

	if res.Append {
		items := make([]domain.Item, 0, len(c.state.Items)+len(res.Data.Items))
		items = append(items, c.state.Items...)
		c.state.Items = append(items, res.Data.Items...)
	} else {
		c.state.Items = append([]domain.Item{}, res.Data.Items...)
		c.firstLoaded = true
	}
	c.state.CurrentPage = res.Page
	c.state.HasMore = res.Data.HasMore(res.Page)
	c.state.TotalResults = res.Data.TotalResults
	c.state.Err = nil

	c.logger.Debug("listing settled", "resource", c.req.Resource.Name, "page", res.Page,
		"items", len(c.state.Items), "hasMore", c.state.HasMore)
	return true
}

// State returns a snapshot of the listing. The items slice is a copy.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if c.state.Items != nil {
		s.Items = make([]domain.Item, len(c.state.Items))
		copy(s.Items, c.state.Items)
	}
	return s
}

// Request returns the request the controller was last initialized with
func (c *Controller) Request() Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req.clone()
}

// Initialized reports whether Initialize has been called
func (c *Controller) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}
