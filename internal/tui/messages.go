package tui

import (
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListingSettledMsg carries a finished page fetch for one listing
type ListingSettledMsg struct {
	Page   string // listing the fetch was issued by
	Result catalog.Result
}

// DetailsLoadedMsg signals that details for an item have been fetched
type DetailsLoadedMsg struct {
	Key     string
	Details *domain.Details
	Err     error
}

// MyListLoadedMsg carries the saved items
type MyListLoadedMsg struct {
	Items []domain.Item
	Err   error
}

// MyListChangedMsg signals that an item was added to or removed from My List
type MyListChangedMsg struct {
	Item  domain.Item
	Saved bool
	Err   error
}

// StatusMsg shows a transient message in the footer
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}

// TickMsg drives the spinner animation
type TickMsg struct{}
