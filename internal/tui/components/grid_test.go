package components

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func movies(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{
			ID:        fmt.Sprint(i + 1),
			MediaType: domain.MediaTypeMovie,
			Title:     fmt.Sprintf("Movie %d", i+1),
		}
	}
	return items
}

func focusedGrid(items []domain.Item) Grid {
	g := NewGrid()
	g.SetSize(60, 20)
	g.SetFocused(true)
	g.SetItems(items, false)
	return g
}

func selectedID(t *testing.T, g Grid) string {
	t.Helper()
	item, ok := g.SelectedItem()
	require.True(t, ok)
	return item.ID
}

func TestGridNavigation(t *testing.T) {
	g := focusedGrid(movies(30))

	g, _ = g.Update(runes("j"))
	g, _ = g.Update(runes("j"))
	assert.Equal(t, "3", selectedID(t, g))

	g, _ = g.Update(runes("k"))
	assert.Equal(t, "2", selectedID(t, g))

	g, _ = g.Update(runes("G"))
	assert.Equal(t, "30", selectedID(t, g))

	g, _ = g.Update(runes("j"))
	assert.Equal(t, "30", selectedID(t, g), "cursor stays on the last row")

	g, _ = g.Update(runes("g"))
	assert.Equal(t, "1", selectedID(t, g))

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Greater(t, g.Cursor(), 0)
}

func TestGridIgnoresKeysWhenUnfocused(t *testing.T) {
	g := focusedGrid(movies(5))
	g.SetFocused(false)

	g, _ = g.Update(runes("j"))
	assert.Equal(t, 0, g.Cursor())
}

func TestGridEmptySelection(t *testing.T) {
	g := focusedGrid(nil)

	_, ok := g.SelectedItem()
	assert.False(t, ok)
	assert.False(t, g.NearEnd())
	assert.Contains(t, g.View(), "No titles")
}

func TestGridKeepsCursorWhenAppending(t *testing.T) {
	items := movies(40)
	g := focusedGrid(items[:20])
	g.SetCursor(18)

	g.SetItems(items, true)
	assert.Equal(t, 18, g.Cursor())

	g.SetItems(items[:10], false)
	assert.Equal(t, 0, g.Cursor(), "replacing resets the cursor")
}

func TestGridNearEnd(t *testing.T) {
	g := focusedGrid(movies(20))
	assert.False(t, g.NearEnd())

	g.SetCursor(20 - LoadAheadRows)
	assert.True(t, g.NearEnd())
}

func TestGridFilterMatchesFoldedTitles(t *testing.T) {
	items := []domain.Item{
		{ID: "1", MediaType: domain.MediaTypeMovie, Title: "Parasite"},
		{ID: "2", MediaType: domain.MediaTypeMovie, Title: "Amélie"},
		{ID: "3", MediaType: domain.MediaTypeMovie, Title: "Alien"},
	}
	g := focusedGrid(items)

	g.ToggleFilter()
	require.True(t, g.IsFilterTyping())
	for _, r := range "amelie" {
		g, _ = g.Update(runes(string(r)))
	}

	assert.Equal(t, "2", selectedID(t, g))
	assert.False(t, g.NearEnd(), "filtered views never request pages")

	// enter keeps the results and returns to navigation
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, g.IsFiltering())
	assert.False(t, g.IsFilterTyping())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, g.IsFiltering())
	assert.Len(t, g.Items(), 3)
}

func TestGridFooterStatus(t *testing.T) {
	g := focusedGrid(movies(3))

	g.SetStatus(ListingStatus{HasMore: true})
	assert.Contains(t, g.View(), "m load more")

	g.SetStatus(ListingStatus{Err: errors.New("boom")})
	assert.Contains(t, g.View(), "r to retry")

	g.SetStatus(ListingStatus{})
	assert.Contains(t, g.View(), "3 titles")
}

func TestGridMarksSavedItems(t *testing.T) {
	g := focusedGrid(movies(2))
	g.SetSavedLookup(func(key string) bool { return key == "movie:2" })

	view := g.View()
	assert.Contains(t, view, "Movie 2")
	assert.Contains(t, view, "+")
}
