package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultLanguage     = "en-US"

	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// Options configures a Client
type Options struct {
	BaseURL      string
	Token        string // v4 read access token, sent as a bearer credential
	Language     string
	IncludeAdult bool
	Timeout      time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// Client implements domain.ListingClient and domain.DetailsClient for the
// TMDB v3 REST API
type Client struct {
	baseURL      string
	token        string
	language     string
	includeAdult bool
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		token:        opts.Token,
		language:     opts.Language,
		includeAdult: opts.IncludeAdult,
		httpClient:   httpClient,
		logger:       opts.Logger,
	}
}

// Language returns the locale tag sent with every request
func (c *Client) Language() string {
	return c.language
}

// doRequest performs an authenticated GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.token == "" {
		return nil, domain.ErrNotConfigured
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "query", query.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "body", string(body))
		statusErr := &domain.StatusError{StatusCode: resp.StatusCode}
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil {
			statusErr.Message = apiErr.StatusMessage
		}
		return nil, statusErr
	}

	return body, nil
}

// decode unmarshals a response body. Bodies that are not JSON of the
// expected shape are reported as domain.ErrMalformedResponse.
func (c *Client) decode(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) baseQuery() url.Values {
	query := url.Values{}
	query.Set("language", c.language)
	return query
}

// FetchPage requests one page of a list endpoint
func (c *Client) FetchPage(ctx context.Context, ep domain.Endpoint, page int, params map[string]string) (domain.Page, error) {
	if page < 1 {
		page = 1
	}

	query := c.baseQuery()
	query.Set("page", strconv.Itoa(page))
	if strings.HasPrefix(ep.Path, "search/") || strings.HasPrefix(ep.Path, "discover/") {
		query.Set("include_adult", strconv.FormatBool(c.includeAdult))
	}
	for k, v := range params {
		query.Set(k, v)
	}

	body, err := c.doRequest(ctx, ep.Path, query)
	if err != nil {
		return domain.Page{}, err
	}

	var resp listResponse
	if err := c.decode(body, &resp); err != nil {
		return domain.Page{}, err
	}

	result := MapPage(resp, ep)
	c.logger.Debug("tmdb page", "path", ep.Path, "page", page, "items", len(result.Items),
		"totalPages", result.TotalPages, "paginated", result.Paginated)
	return result, nil
}

// GetDetails returns details for a movie or TV show
func (c *Client) GetDetails(ctx context.Context, mediaType domain.MediaType, id string) (*domain.Details, error) {
	if err := checkTitleType(mediaType); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("%s/%s", mediaType, id), c.baseQuery())
	if err != nil {
		return nil, err
	}

	var resp detailsResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}
	return MapDetails(resp, mediaType), nil
}

// GetCredits returns the billed cast for a movie or TV show
func (c *Client) GetCredits(ctx context.Context, mediaType domain.MediaType, id string) ([]domain.CastMember, error) {
	if err := checkTitleType(mediaType); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("%s/%s/credits", mediaType, id), c.baseQuery())
	if err != nil {
		return nil, err
	}

	var resp creditsResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}
	return MapCast(resp), nil
}

func checkTitleType(mediaType domain.MediaType) error {
	if mediaType != domain.MediaTypeMovie && mediaType != domain.MediaTypeTV {
		return fmt.Errorf("details unavailable for media type %q: %w", mediaType, domain.ErrNotFound)
	}
	return nil
}

// IsAuthError reports whether err means the token must be replaced
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrAuthFailed) || errors.Is(err, domain.ErrNotConfigured)
}
