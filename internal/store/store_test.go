package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

// stepClock returns a clock advancing one second per call
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func openStores(t *testing.T) map[string]*Store {
	t.Helper()
	disk, err := Open(filepath.Join(t.TempDir(), "marquee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	mem, err := Open("")
	require.NoError(t, err)

	disk.now = stepClock()
	mem.now = stepClock()
	return map[string]*Store{"bolt": disk, "memory": mem}
}

func TestMyList(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			movie := domain.Item{ID: "10", MediaType: domain.MediaTypeMovie, Title: "Heat"}
			show := domain.Item{ID: "10", MediaType: domain.MediaTypeTV, Title: "Dark"}

			require.NoError(t, s.SaveItem(movie))
			require.NoError(t, s.SaveItem(show))
			assert.True(t, s.HasItem("movie:10"))
			assert.True(t, s.HasItem("tv:10"))
			assert.False(t, s.HasItem("person:10"))

			items, err := s.ListItems()
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, "tv:10", items[0].Key(), "most recent first")

			// Re-saving keeps the original position
			movie.Title = "Heat (1995)"
			require.NoError(t, s.SaveItem(movie))
			items, _ = s.ListItems()
			assert.Equal(t, "tv:10", items[0].Key())
			assert.Equal(t, "Heat (1995)", items[1].Title)

			require.NoError(t, s.DeleteItem("tv:10"))
			require.NoError(t, s.DeleteItem("tv:10"))
			items, _ = s.ListItems()
			assert.Len(t, items, 1)
		})
	}
}

func TestMyListPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveItem(domain.Item{ID: "1", MediaType: domain.MediaTypeMovie, Title: "Alien"}))
	require.NoError(t, s.AddQuery("ridley scott"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.HasItem("movie:1"))
	queries, _ := reopened.RecentQueries()
	assert.Equal(t, []string{"ridley scott"}, queries)
}

func TestSearchHistory(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddQuery("alien"))
			require.NoError(t, s.AddQuery("  "))
			require.NoError(t, s.AddQuery("heat"))
			require.NoError(t, s.AddQuery("Alien"))

			queries, err := s.RecentQueries()
			require.NoError(t, err)
			assert.Equal(t, []string{"Alien", "heat"}, queries)

			for i := 0; i < MaxHistory+5; i++ {
				require.NoError(t, s.AddQuery(fmt.Sprintf("q%d", i)))
			}
			queries, _ = s.RecentQueries()
			assert.Len(t, queries, MaxHistory)
			assert.Equal(t, fmt.Sprintf("q%d", MaxHistory+4), queries[0])

			require.NoError(t, s.ClearHistory())
			queries, _ = s.RecentQueries()
			assert.Empty(t, queries)
		})
	}
}

var (
	_ domain.MyListStore  = (*Store)(nil)
	_ domain.HistoryStore = (*Store)(nil)
)
