package catalog

import "github.com/mmcdole/marquee/internal/domain"

// Resource names
const (
	NowPlaying = "now-playing"
	Upcoming   = "upcoming"
	Movies     = "movies"
	TVShows    = "tv"
	NewPopular = "new-popular"
	TopRated   = "top-rated"
	Languages  = "languages"
	Search     = "search"
	Hero       = "hero"
)

// Filter keys understood by the resources below
const (
	FilterQuery    = "query"
	FilterLanguage = "with_original_language"
)

// Resource describes one remote collection. A resource with several
// endpoints is fetched as a composite page.
type Resource struct {
	Name      string
	Title     string
	Endpoints []domain.Endpoint
	Params    map[string]string // Fixed query parameters

	// Required lists filter keys that must be non-empty before anything is
	// fetched, e.g. the search query.
	Required []string
}

// Composite reports whether pages are assembled from several endpoints
func (r Resource) Composite() bool {
	return len(r.Endpoints) > 1
}

func single(path string, mediaType domain.MediaType) []domain.Endpoint {
	return []domain.Endpoint{{Path: path, MediaType: mediaType}}
}

var resources = []Resource{
	{Name: NowPlaying, Title: "Now Playing", Endpoints: single("movie/now_playing", domain.MediaTypeMovie)},
	{Name: Upcoming, Title: "Upcoming", Endpoints: single("movie/upcoming", domain.MediaTypeMovie)},
	{Name: Movies, Title: "Movies", Endpoints: single("movie/popular", domain.MediaTypeMovie)},
	{Name: TVShows, Title: "TV Shows", Endpoints: single("tv/popular", domain.MediaTypeTV)},
	{Name: NewPopular, Title: "New & Popular", Endpoints: single("trending/all/day", "")},
	{Name: TopRated, Title: "Top Rated", Endpoints: single("movie/top_rated", domain.MediaTypeMovie)},
	{
		Name:      Languages,
		Title:     "Browse by Language",
		Endpoints: single("discover/movie", domain.MediaTypeMovie),
		Params:    map[string]string{"sort_by": "popularity.desc"},
		Required:  []string{FilterLanguage},
	},
	{
		Name:  Search,
		Title: "Search",
		Endpoints: []domain.Endpoint{
			{Path: "search/movie", MediaType: domain.MediaTypeMovie},
			{Path: "search/tv", MediaType: domain.MediaTypeTV},
			{Path: "search/person", MediaType: domain.MediaTypePerson},
		},
		Required: []string{FilterQuery},
	},
}

// hero is not a browsable page; it feeds the header banner
var hero = Resource{Name: Hero, Title: "Featured", Endpoints: single("movie/popular", domain.MediaTypeMovie)}

// Pages returns the browsable resources in sidebar order
func Pages() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

// Lookup returns a resource by name
func Lookup(name string) (Resource, bool) {
	if name == Hero {
		return hero, true
	}
	for _, r := range resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// LanguageFilters narrows discover results to an original language
func LanguageFilters(code string) map[string]string {
	return map[string]string{FilterLanguage: code}
}

// SearchFilters carries a search query
func SearchFilters(query string) map[string]string {
	return map[string]string{FilterQuery: query}
}
