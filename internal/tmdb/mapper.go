package tmdb

import (
	"sort"
	"strconv"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapPage converts a list envelope into a domain page. Items from endpoints
// that do not carry media_type are tagged with the endpoint's type.
func MapPage(resp listResponse, ep domain.Endpoint) domain.Page {
	page := domain.Page{
		Items: MapResults(resp.Results, ep),
	}
	if resp.Page != nil {
		page.Page = *resp.Page
	}
	if resp.TotalPages != nil {
		page.TotalPages = *resp.TotalPages
		// without a results field there is nothing to page through
		page.Paginated = resp.Results != nil
	}
	if resp.TotalResults != nil {
		page.TotalResults = *resp.TotalResults
	}
	return page
}

// MapResults converts list records to domain items, preserving order
func MapResults(results []resultDTO, ep domain.Endpoint) []domain.Item {
	fallback := ep.MediaType
	if fallback == "" {
		fallback = domain.MediaTypeMovie
	}

	items := make([]domain.Item, 0, len(results))
	for _, r := range results {
		mediaType := fallback
		if ep.Mixed() {
			mediaType = domain.ParseMediaType(r.MediaType, fallback)
		}
		items = append(items, mapResult(r, mediaType))
	}
	return items
}

func mapResult(r resultDTO, mediaType domain.MediaType) domain.Item {
	item := domain.Item{
		ID:               strconv.FormatInt(r.ID, 10),
		MediaType:        mediaType,
		Title:            pickTitle(r, mediaType),
		ImagePath:        pickImage(r, mediaType),
		Rating:           clampRating(r.VoteAverage),
		ReleaseDate:      firstNonEmpty(r.ReleaseDate, r.FirstAirDate),
		Overview:         r.Overview,
		Popularity:       r.Popularity,
		OriginalLanguage: r.OriginalLanguage,
	}

	if mediaType == domain.MediaTypePerson {
		for _, k := range r.KnownFor {
			if t := firstNonEmpty(k.Title, k.Name, k.OriginalTitle); t != "" {
				item.KnownFor = append(item.KnownFor, t)
			}
		}
	}
	return item
}

// pickTitle applies original_title, then name, then title. People only
// have a name.
func pickTitle(r resultDTO, mediaType domain.MediaType) string {
	if mediaType == domain.MediaTypePerson {
		return r.Name
	}
	return firstNonEmpty(r.OriginalTitle, r.Name, r.Title)
}

// pickImage prefers the backdrop over the poster. People use their profile.
func pickImage(r resultDTO, mediaType domain.MediaType) string {
	if mediaType == domain.MediaTypePerson {
		return r.ProfilePath
	}
	return firstNonEmpty(r.BackdropPath, r.PosterPath)
}

func clampRating(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// MapDetails converts a movie or TV details response
func MapDetails(resp detailsResponse, mediaType domain.MediaType) *domain.Details {
	d := &domain.Details{
		Item:     mapResult(resp.resultDTO, mediaType),
		Tagline:  resp.Tagline,
		Runtime:  resp.Runtime,
		Seasons:  resp.NumberOfSeasons,
		Episodes: resp.NumberOfEpisodes,
		Status:   resp.Status,
		Homepage: resp.Homepage,
	}
	for _, g := range resp.Genres {
		d.Genres = append(d.Genres, g.Name)
	}
	return d
}

// MapCast converts credits to cast members in billing order
func MapCast(resp creditsResponse) []domain.CastMember {
	cast := make([]castDTO, len(resp.Cast))
	copy(cast, resp.Cast)
	sort.SliceStable(cast, func(i, j int) bool {
		return cast[i].Order < cast[j].Order
	})

	members := make([]domain.CastMember, 0, len(cast))
	for _, c := range cast {
		members = append(members, domain.CastMember{
			ID:        strconv.FormatInt(c.ID, 10),
			Name:      c.Name,
			Character: c.Character,
		})
	}
	return members
}
