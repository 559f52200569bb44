package domain

import (
	"fmt"
	"strings"
)

// MediaType distinguishes TMDB content types
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeTV     MediaType = "tv"
	MediaTypePerson MediaType = "person"
)

// ParseMediaType maps a TMDB media_type value to a MediaType.
// Unknown or empty values fall back to the given default.
func ParseMediaType(s string, fallback MediaType) MediaType {
	switch MediaType(strings.ToLower(s)) {
	case MediaTypeMovie:
		return MediaTypeMovie
	case MediaTypeTV:
		return MediaTypeTV
	case MediaTypePerson:
		return MediaTypePerson
	default:
		return fallback
	}
}

// Label returns a short human-readable name for the media type
func (t MediaType) Label() string {
	switch t {
	case MediaTypeTV:
		return "TV"
	case MediaTypePerson:
		return "Person"
	default:
		return "Movie"
	}
}

// Item is one catalog entry as rendered in a listing
type Item struct {
	ID               string    `json:"id"`
	MediaType        MediaType `json:"media_type"`
	Title            string    `json:"title"`
	ImagePath        string    `json:"image_path,omitempty"` // Empty means no artwork
	Rating           float64   `json:"rating"`               // 0-10, zero means unrated
	ReleaseDate      string    `json:"release_date,omitempty"`
	Overview         string    `json:"overview,omitempty"`
	Popularity       float64   `json:"popularity"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	KnownFor         []string  `json:"known_for,omitempty"` // Person only
}

// Key identifies the item across media types. TMDB ids are only unique
// within a single media type.
func (i Item) Key() string {
	return string(i.MediaType) + ":" + i.ID
}

// DisplayTitle returns the title, or "Untitled" when absent
func (i Item) DisplayTitle() string {
	if strings.TrimSpace(i.Title) == "" {
		return "Untitled"
	}
	return i.Title
}

// Year returns the four-digit year of the release date, or "" if unknown
func (i Item) Year() string {
	if len(i.ReleaseDate) >= 4 {
		return i.ReleaseDate[:4]
	}
	return ""
}

// HasRating reports whether the item carries a community rating
func (i Item) HasRating() bool {
	return i.Rating > 0
}

// FormattedRating returns the rating with one decimal, or "-" when unrated
func (i Item) FormattedRating() string {
	if !i.HasRating() {
		return "-"
	}
	return fmt.Sprintf("%.1f", i.Rating)
}

// Description returns secondary info for list rows
func (i Item) Description() string {
	if i.MediaType == MediaTypePerson {
		if len(i.KnownFor) > 0 {
			return "Known for " + i.KnownFor[0]
		}
		return i.MediaType.Label()
	}
	parts := []string{i.MediaType.Label()}
	if y := i.Year(); y != "" {
		parts = append(parts, y)
	}
	if i.HasRating() {
		parts = append(parts, "★ "+i.FormattedRating())
	}
	return strings.Join(parts, " · ")
}
