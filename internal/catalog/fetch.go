package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

// Fetch is one pending page request issued by a Controller. Run performs
// the remote calls without touching controller state, so it can run in a
// goroutine or a tea.Cmd.
type Fetch struct {
	gen    uint64 // lineage, bumped by Initialize
	id     uint64 // unique per fetch
	Page   int
	Append bool
	req    Request
	client domain.ListingClient
	logger *slog.Logger
}

// Result is the settled outcome of a Fetch, applied with Controller.Settle
type Result struct {
	gen    uint64
	id     uint64
	Page   int
	Append bool
	Data   domain.Page
	Err    error
}

// Resource returns the name of the resource the fetch was issued for
func (f *Fetch) Resource() string {
	return f.req.Resource.Name
}

// Run performs the request. Composite resources fan out one request per
// endpoint and are jointly awaited; any failure fails the whole page.
func (f *Fetch) Run(ctx context.Context) Result {
	res := Result{gen: f.gen, id: f.id, Page: f.Page, Append: f.Append}

	params := f.req.params()
	endpoints := f.req.Resource.Endpoints

	var (
		data domain.Page
		err  error
	)
	switch len(endpoints) {
	case 0:
		err = fmt.Errorf("resource %q has no endpoints", f.req.Resource.Name)
	case 1:
		data, err = f.client.FetchPage(ctx, endpoints[0], f.Page, params)
	default:
		data, err = f.runComposite(ctx, endpoints, params)
	}

	if err != nil {
		f.logger.Error("listing fetch failed", "resource", f.req.Resource.Name, "page", f.Page, "error", err)
		res.Err = fmt.Errorf("loading %s page %d: %w", f.req.Resource.Name, f.Page, err)
		return res
	}

	if data.Items == nil {
		data.Items = []domain.Item{}
	}
	SortItems(data.Items, f.req.Order)
	res.Data = data
	return res
}

func (f *Fetch) runComposite(ctx context.Context, endpoints []domain.Endpoint, params map[string]string) (domain.Page, error) {
	pages := make([]domain.Page, len(endpoints))

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, ep := range endpoints {
		p.Go(func(ctx context.Context) error {
			page, err := f.client.FetchPage(ctx, ep, f.Page, maps.Clone(params))
			if err != nil {
				return fmt.Errorf("%s: %w", ep.Path, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return domain.Page{}, err
	}

	return mergePages(pages), nil
}

// mergePages concatenates items in endpoint order. Totals are the maximum
// across endpoints, and the merged page is paginated if any endpoint is.
func mergePages(pages []domain.Page) domain.Page {
	var merged domain.Page
	total := 0
	for _, p := range pages {
		total += len(p.Items)
	}
	merged.Items = make([]domain.Item, 0, total)

	for _, p := range pages {
		merged.Items = append(merged.Items, p.Items...)
		merged.Page = max(merged.Page, p.Page)
		merged.TotalResults = max(merged.TotalResults, p.TotalResults)
		if p.Paginated {
			merged.Paginated = true
			merged.TotalPages = max(merged.TotalPages, p.TotalPages)
		}
	}
	return merged
}
