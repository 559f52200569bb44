package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

type fakeCall struct {
	path   string
	page   int
	params map[string]string
}

type pageFunc func(page int) (domain.Page, error)

// fakeClient serves canned pages per endpoint path. A gate blocks an
// endpoint until closed, to control settle order.
type fakeClient struct {
	mu    sync.Mutex
	calls []fakeCall
	pages map[string]pageFunc
	gates map[string]chan struct{}
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		pages: make(map[string]pageFunc),
		gates: make(map[string]chan struct{}),
	}
}

func (f *fakeClient) serve(path string, fn pageFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[path] = fn
}

func (f *fakeClient) gate(path string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[path] = ch
	return ch
}

func (f *fakeClient) FetchPage(ctx context.Context, ep domain.Endpoint, page int, params map[string]string) (domain.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{path: ep.Path, page: page, params: maps.Clone(params)})
	fn := f.pages[ep.Path]
	gate := f.gates[ep.Path]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.Page{}, ctx.Err()
		}
	}
	if fn == nil {
		return domain.Page{}, fmt.Errorf("%s: %w", ep.Path, domain.ErrNotFound)
	}
	return fn(page)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeClient) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// pagedMovies serves totalPages pages of perPage movies with ids "p<page>-<n>"
func pagedMovies(totalPages, perPage int) pageFunc {
	return func(page int) (domain.Page, error) {
		items := make([]domain.Item, 0, perPage)
		for n := 0; n < perPage; n++ {
			items = append(items, domain.Item{
				ID:        fmt.Sprintf("p%d-%d", page, n),
				MediaType: domain.MediaTypeMovie,
				Title:     fmt.Sprintf("Movie %d.%d", page, n),
			})
		}
		return domain.Page{
			Items:        items,
			Page:         page,
			TotalPages:   totalPages,
			TotalResults: totalPages * perPage,
			Paginated:    true,
		}, nil
	}
}

func failing(err error) pageFunc {
	return func(int) (domain.Page, error) { return domain.Page{}, err }
}

var errOffline = fmt.Errorf("%w: connection refused", domain.ErrServerOffline)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func movieResource(path string) Resource {
	return Resource{Name: path, Endpoints: []domain.Endpoint{{Path: path, MediaType: domain.MediaTypeMovie}}}
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

var _ domain.ListingClient = (*fakeClient)(nil)
