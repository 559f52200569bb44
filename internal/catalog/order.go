package catalog

import (
	"sort"

	"github.com/mmcdole/marquee/internal/domain"
)

// Order is a client-side total ordering applied to a fetched page
type Order string

const (
	OrderNone      Order = ""
	OrderRelevance Order = "relevance" // popularity, descending
	OrderRating    Order = "rating"    // vote average, descending
	OrderDate      Order = "date"      // release or first air date, newest first
)

// Orders lists the selectable orderings
var Orders = []Order{OrderRelevance, OrderRating, OrderDate}

// ParseOrder maps a config or UI value to an Order. Unknown values give OrderNone.
func ParseOrder(s string) Order {
	for _, o := range Orders {
		if string(o) == s {
			return o
		}
	}
	return OrderNone
}

// Label returns the display name of the ordering
func (o Order) Label() string {
	switch o {
	case OrderRelevance:
		return "Relevance"
	case OrderRating:
		return "Rating"
	case OrderDate:
		return "Release Date"
	default:
		return "Default"
	}
}

// SortItems stable-sorts items in place. Equal keys keep their
// concatenation order. Undated items sort after dated ones.
func SortItems(items []domain.Item, order Order) {
	var less func(a, b domain.Item) bool
	switch order {
	case OrderRelevance:
		less = func(a, b domain.Item) bool { return a.Popularity > b.Popularity }
	case OrderRating:
		less = func(a, b domain.Item) bool { return a.Rating > b.Rating }
	case OrderDate:
		less = func(a, b domain.Item) bool {
			if a.ReleaseDate == "" || b.ReleaseDate == "" {
				return a.ReleaseDate != "" && b.ReleaseDate == ""
			}
			return a.ReleaseDate > b.ReleaseDate
		}
	default:
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
