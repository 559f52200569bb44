package domain

import "context"

// ListingClient fetches pages of remote catalog listings
type ListingClient interface {
	// FetchPage requests one page of an endpoint. params are merged into the
	// query string alongside page and language.
	FetchPage(ctx context.Context, ep Endpoint, page int, params map[string]string) (Page, error)
}

// DetailsClient fetches the expanded view of a single title
type DetailsClient interface {
	// GetDetails returns details for a movie or TV show without cast
	GetDetails(ctx context.Context, mediaType MediaType, id string) (*Details, error)

	// GetCredits returns the billed cast for a movie or TV show
	GetCredits(ctx context.Context, mediaType MediaType, id string) ([]CastMember, error)
}

// MyListStore persists the user's saved titles
type MyListStore interface {
	// SaveItem stores or replaces an item
	SaveItem(item Item) error

	// DeleteItem removes an item by key. Missing keys are not an error.
	DeleteItem(key string) error

	// HasItem reports whether the key is saved
	HasItem(key string) bool

	// ListItems returns saved items, most recently added first
	ListItems() ([]Item, error)
}

// HistoryStore persists recent search queries
type HistoryStore interface {
	// AddQuery records a query, moving it to the front if already present
	AddQuery(query string) error

	// RecentQueries returns queries, most recent first
	RecentQueries() ([]string, error)
}
