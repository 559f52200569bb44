package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// Command factories for async operations

const (
	fetchTimeout   = 30 * time.Second
	detailsTimeout = 20 * time.Second
)

// URLOpener opens a URL outside the terminal
type URLOpener interface {
	Open(url string) error
}

// RunFetchCmd runs a listing fetch off the update loop. A nil fetch, which
// controllers return when there is nothing to load, yields a nil command.
func RunFetchCmd(page string, fetch *catalog.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return ListingSettledMsg{Page: page, Result: fetch.Run(ctx)}
	}
}

// LoadDetailsCmd fetches details and cast for an item
func LoadDetailsCmd(svc *service.DetailsService, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailsTimeout)
		defer cancel()

		details, err := svc.Get(ctx, item)
		return DetailsLoadedMsg{Key: item.Key(), Details: details, Err: err}
	}
}

// LoadMyListCmd reads the saved items
func LoadMyListCmd(svc *service.MyListService) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.List()
		return MyListLoadedMsg{Items: items, Err: err}
	}
}

// ToggleMyListCmd adds the item to My List, or removes it if already saved
func ToggleMyListCmd(svc *service.MyListService, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		saved, err := svc.Toggle(item)
		return MyListChangedMsg{Item: item, Saved: saved, Err: err}
	}
}

// RecordQueryCmd stores a search query in history
func RecordQueryCmd(svc *service.HistoryService, query string) tea.Cmd {
	return func() tea.Msg {
		svc.Record(query)
		return nil
	}
}

// OpenItemCmd opens the item's page on themoviedb.org
func OpenItemCmd(opener URLOpener, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		url := tmdb.WebURL(string(item.MediaType), item.ID)
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return StatusMsg{Message: "Opened " + item.DisplayTitle()}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
