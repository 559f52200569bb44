package domain

import "fmt"

// CastMember is one billed performer
type CastMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// Details is the expanded view of a movie or TV show
type Details struct {
	Item
	Tagline  string
	Genres   []string
	Runtime  int // Minutes, movies only
	Seasons  int // TV only
	Episodes int // TV only
	Status   string
	Homepage string
	Cast     []CastMember
}

// FormattedRuntime returns the runtime as "1h 52m", or "" when unknown
func (d Details) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	m := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
