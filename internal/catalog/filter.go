package catalog

import "github.com/mmcdole/marquee/internal/domain"

// FilterByType narrows items to one media type without refetching.
// An empty media type returns all items.
func FilterByType(items []domain.Item, mediaType domain.MediaType) []domain.Item {
	if mediaType == "" {
		return items
	}
	filtered := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.MediaType == mediaType {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
