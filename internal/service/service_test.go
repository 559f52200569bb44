package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDetailsClient struct {
	detailsErr error
	creditsErr error
	holdCredit bool // credits wait for cancellation
	calls      atomic.Int32
}

func (f *fakeDetailsClient) GetDetails(ctx context.Context, mediaType domain.MediaType, id string) (*domain.Details, error) {
	f.calls.Add(1)
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	return &domain.Details{
		Item:    domain.Item{ID: id, MediaType: mediaType, Title: "Parasite"},
		Runtime: 132,
	}, nil
}

func (f *fakeDetailsClient) GetCredits(ctx context.Context, mediaType domain.MediaType, id string) ([]domain.CastMember, error) {
	f.calls.Add(1)
	if f.holdCredit {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.creditsErr != nil {
		return nil, f.creditsErr
	}
	cast := make([]domain.CastMember, 12)
	for i := range cast {
		cast[i] = domain.CastMember{ID: fmt.Sprint(i), Name: fmt.Sprintf("Actor %d", i)}
	}
	return cast, nil
}

func TestDetailsServiceGet(t *testing.T) {
	client := &fakeDetailsClient{}
	svc := NewDetailsService(client, testLogger())

	item := domain.Item{ID: "496243", MediaType: domain.MediaTypeMovie, Title: "Parasite", ImagePath: "/b.jpg"}
	details, err := svc.Get(context.Background(), item)
	require.NoError(t, err)

	assert.Equal(t, "Parasite", details.Title)
	assert.Equal(t, "/b.jpg", details.ImagePath)
	require.Len(t, details.Cast, MaxCast)
	assert.Equal(t, "Actor 0", details.Cast[0].Name)
	assert.Equal(t, int32(2), client.calls.Load())
}

func TestDetailsServiceFailsWhole(t *testing.T) {
	tests := map[string]*fakeDetailsClient{
		"details": {detailsErr: domain.ErrNotFound},
		"credits": {creditsErr: domain.ErrNotFound},
	}
	for name, client := range tests {
		t.Run(name, func(t *testing.T) {
			svc := NewDetailsService(client, testLogger())
			details, err := svc.Get(context.Background(), domain.Item{ID: "1", MediaType: domain.MediaTypeTV})
			assert.Nil(t, details)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestDetailsServiceReportsRootCause(t *testing.T) {
	client := &fakeDetailsClient{detailsErr: domain.ErrNotFound, holdCredit: true}
	svc := NewDetailsService(client, testLogger())

	details, err := svc.Get(context.Background(), domain.Item{ID: "1", MediaType: domain.MediaTypeMovie})
	assert.Nil(t, details)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), "credits")
}

func TestDetailsServicePersonSkipsFetch(t *testing.T) {
	client := &fakeDetailsClient{detailsErr: errors.New("should not be called")}
	svc := NewDetailsService(client, testLogger())

	person := domain.Item{ID: "7", MediaType: domain.MediaTypePerson, Title: "Bong Joon-ho", KnownFor: []string{"Mother"}}
	details, err := svc.Get(context.Background(), person)
	require.NoError(t, err)
	assert.Equal(t, person, details.Item)
	assert.Equal(t, int32(0), client.calls.Load())
}

func newMyList(t *testing.T) *MyListService {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	return NewMyListService(s, testLogger())
}

func TestMyListToggle(t *testing.T) {
	svc := newMyList(t)
	item := domain.Item{ID: "1", MediaType: domain.MediaTypeMovie, Title: "Alien"}

	saved, err := svc.Toggle(item)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, svc.Contains("movie:1"))

	saved, err = svc.Toggle(item)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, svc.Contains("movie:1"))

	items, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMyListFind(t *testing.T) {
	svc := newMyList(t)
	for i, title := range []string{"Amélie", "Mr. Robot", "Robots", ""} {
		require.NoError(t, svc.Add(domain.Item{ID: fmt.Sprint(i), MediaType: domain.MediaTypeMovie, Title: title}))
	}

	found, err := svc.Find("robot")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Mr. Robot", found[0].Title, "exact word beats prefix")

	found, err = svc.Find("amelie")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Amélie", found[0].Title)

	all, err := svc.Find("")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	require.NoError(t, svc.Remove("movie:2"))
	found, _ = svc.Find("robot")
	assert.Len(t, found, 1)
}

func TestHistorySuggest(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	svc := NewHistoryService(s, testLogger())

	svc.Record("alien")
	svc.Record("")
	svc.Record("Amélie")
	svc.Record("heat")

	assert.Equal(t, []string{"heat", "Amélie", "alien"}, svc.Suggest(""))
	assert.Equal(t, []string{"Amélie", "alien"}, svc.Suggest("a"))
	assert.Equal(t, []string{"Amélie"}, svc.Suggest("ame"))
	assert.Empty(t, svc.Suggest("zzz"))
}
