package domain

// Page is one served page of a remote listing
type Page struct {
	Items        []Item
	Page         int // Page number echoed by the server, 0 if absent
	TotalPages   int
	TotalResults int

	// Paginated is false when the response carried no total_pages, in which
	// case nothing further can be requested.
	Paginated bool
}

// HasMore reports whether a page after the served one exists. requested is
// used when the server did not echo a page number.
func (p Page) HasMore(requested int) bool {
	if !p.Paginated {
		return false
	}
	return p.ServedPage(requested) < p.TotalPages
}

// ServedPage returns the page the server says it served. A missing echo, or
// one behind the requested page, yields the requested page so pagination
// can never move backwards.
func (p Page) ServedPage(requested int) int {
	if p.Page > requested {
		return p.Page
	}
	return requested
}

// Endpoint names one remote list resource and how to tag its items
type Endpoint struct {
	Path string // e.g. "movie/popular", "search/tv"

	// MediaType tags items from endpoints that do not carry media_type.
	// Empty means the endpoint is mixed and each result names its own type.
	MediaType MediaType
}

// Mixed reports whether results carry their own media_type
func (e Endpoint) Mixed() bool {
	return e.MediaType == ""
}
