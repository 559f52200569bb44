package tmdb

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	client := NewClient(Options{
		BaseURL:  server.URL,
		Token:    "test-token",
		Language: "en-US",
		Logger:   newTestLogger(&buf),
	})
	return client, &buf
}

func TestFetchPageSendsAuthAndQuery(t *testing.T) {
	var got *http.Request
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":2,"results":[],"total_pages":5,"total_results":90}`))
	})

	ep := domain.Endpoint{Path: "discover/movie", MediaType: domain.MediaTypeMovie}
	page, err := client.FetchPage(context.Background(), ep, 2, map[string]string{
		"sort_by":                "popularity.desc",
		"with_original_language": "ko",
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/discover/movie", got.URL.Path)
	assert.Equal(t, "Bearer test-token", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))

	q := got.URL.Query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "en-US", q.Get("language"))
	assert.Equal(t, "false", q.Get("include_adult"))
	assert.Equal(t, "popularity.desc", q.Get("sort_by"))
	assert.Equal(t, "ko", q.Get("with_original_language"))

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 90, page.TotalResults)
	assert.True(t, page.Paginated)
	assert.Empty(t, page.Items)
}

func TestFetchPageOmitsIncludeAdultOutsideSearch(t *testing.T) {
	var got *http.Request
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"page":1,"results":[],"total_pages":1}`))
	})

	_, err := client.FetchPage(context.Background(), domain.Endpoint{Path: "movie/popular"}, 1, nil)
	require.NoError(t, err)
	assert.False(t, got.URL.Query().Has("include_adult"))
}

func TestFetchPageMapsResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"page": 1,
			"total_pages": 3,
			"total_results": 41,
			"results": [
				{"id": 10, "media_type": "tv", "name": "Squid Game", "poster_path": "/p.jpg", "vote_average": 7.8, "first_air_date": "2021-09-17"},
				{"id": 10, "media_type": "movie", "original_title": "기생충", "title": "Parasite", "backdrop_path": "/b.jpg", "poster_path": "/p2.jpg", "release_date": "2019-05-30"},
				{"id": 7, "media_type": "person", "name": "Bong Joon-ho", "profile_path": "/face.jpg", "known_for": [{"title": "Mother"}]}
			]
		}`))
	})

	page, err := client.FetchPage(context.Background(), domain.Endpoint{Path: "trending/all/day"}, 1, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	tv := page.Items[0]
	assert.Equal(t, domain.MediaTypeTV, tv.MediaType)
	assert.Equal(t, "Squid Game", tv.Title)
	assert.Equal(t, "/p.jpg", tv.ImagePath)
	assert.Equal(t, "2021-09-17", tv.ReleaseDate)

	movie := page.Items[1]
	assert.Equal(t, domain.MediaTypeMovie, movie.MediaType)
	assert.Equal(t, "기생충", movie.Title)
	assert.Equal(t, "/b.jpg", movie.ImagePath)
	assert.NotEqual(t, tv.Key(), movie.Key())

	person := page.Items[2]
	assert.Equal(t, domain.MediaTypePerson, person.MediaType)
	assert.Equal(t, "/face.jpg", person.ImagePath)
	assert.Equal(t, []string{"Mother"}, person.KnownFor)
}

func TestFetchPageMissingFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	page, err := client.FetchPage(context.Background(), domain.Endpoint{Path: "movie/popular"}, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.Paginated)
	assert.False(t, page.HasMore(1))
}

func TestFetchPageResultsFieldAbsent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"total_pages":3,"total_results":60}`))
	})

	page, err := client.FetchPage(context.Background(), domain.Endpoint{Path: "movie/popular"}, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 60, page.TotalResults)
	assert.False(t, page.HasMore(1))
}

func TestFetchPageErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"status_code":7,"status_message":"Invalid API key"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrAuthFailed)
				assert.True(t, IsAuthError(err))
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"status_code":34}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:   "server error",
			status: http.StatusServiceUnavailable,
			body:   `{"status_code":9,"status_message":"Service offline."}`,
			check: func(t *testing.T, err error) {
				var statusErr *domain.StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
				assert.Equal(t, "Service offline.", statusErr.Message)
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>gateway</html>`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrMalformedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.FetchPage(context.Background(), domain.Endpoint{Path: "movie/popular"}, 1, nil)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestFetchPageServerOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	var buf bytes.Buffer
	client := NewClient(Options{BaseURL: baseURL, Token: "t", Logger: newTestLogger(&buf)})

	_, err := client.FetchPage(context.Background(), domain.Endpoint{Path: "movie/popular"}, 1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.Contains(t, buf.String(), "tmdb request failed")
}

func TestFetchPageRequiresToken(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:0"})
	_, err := client.FetchPage(context.Background(), domain.Endpoint{Path: "movie/popular"}, 1, nil)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestGetDetailsAndCredits(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/496243":
			w.Write([]byte(`{"id":496243,"original_title":"기생충","title":"Parasite","runtime":132,
				"genres":[{"id":35,"name":"Comedy"},{"id":18,"name":"Drama"}],"vote_average":8.5,"release_date":"2019-05-30"}`))
		case "/movie/496243/credits":
			w.Write([]byte(`{"id":496243,"cast":[
				{"id":2,"name":"Lee Sun-kyun","character":"Park Dong-ik","order":1},
				{"id":1,"name":"Song Kang-ho","character":"Kim Ki-taek","order":0}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	details, err := client.GetDetails(context.Background(), domain.MediaTypeMovie, "496243")
	require.NoError(t, err)
	assert.Equal(t, "기생충", details.Title)
	assert.Equal(t, []string{"Comedy", "Drama"}, details.Genres)
	assert.Equal(t, "2h 12m", details.FormattedRuntime())

	cast, err := client.GetCredits(context.Background(), domain.MediaTypeMovie, "496243")
	require.NoError(t, err)
	require.Len(t, cast, 2)
	assert.Equal(t, "Song Kang-ho", cast[0].Name)

	_, err = client.GetDetails(context.Background(), domain.MediaTypePerson, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidateToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authentication" || r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"success":true,"status_code":1,"status_message":"Success."}`))
	})
	assert.NoError(t, client.ValidateToken(context.Background()))

	bad := NewClient(Options{BaseURL: client.baseURL, Token: "wrong"})
	assert.ErrorIs(t, bad.ValidateToken(context.Background()), domain.ErrAuthFailed)
}
