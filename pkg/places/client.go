// Package places provides a minimal client for the Google Places (New) API:
// text search with an optional circular location bias and place details.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-resolver/internal/resilience"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

const (
	searchFieldMask  = "places.id,places.displayName"
	detailsFieldMask = "id,displayName,nationalPhoneNumber,internationalPhoneNumber," +
		"formattedAddress,addressComponents,types,rating,userRatingCount," +
		"businessStatus,pureServiceAreaBusiness,websiteUri"
)

// ErrUnauthorized is returned when the API rejects the key (401/403).
var ErrUnauthorized = eris.New("places: unauthorized")

// ErrMissingAPIKey is returned by NewClient when no key is configured.
var ErrMissingAPIKey = eris.New("places: missing api key")

// Client performs Google Places API operations.
type Client interface {
	SearchText(ctx context.Context, req SearchTextRequest) (*SearchTextResponse, error)
	// GetPlace returns nil, nil when the place does not exist.
	GetPlace(ctx context.Context, placeID string) (*Place, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Google Places API client. An empty key is a
// configuration error.
func NewClient(apiKey string, opts ...Option) (Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *httpClient) SearchText(ctx context.Context, sr SearchTextRequest) (*SearchTextResponse, error) {
	body, err := json.Marshal(sr)
	if err != nil {
		return nil, eris.Wrap(err, "places: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	var result SearchTextResponse
	found, err := c.do(req, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return &SearchTextResponse{}, nil
	}
	return &result, nil
}

func (c *httpClient) GetPlace(ctx context.Context, placeID string) (*Place, error) {
	if placeID == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/"+url.PathEscape(placeID), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}
	req.Header.Set("X-Goog-FieldMask", detailsFieldMask)

	var place Place
	found, err := c.do(req, &place)
	if err != nil {
		return nil, err
	}
	if !found || place.ID == "" {
		return nil, nil
	}
	return &place, nil
}

// do sends req and decodes a 200 body into out. A 404 reports found=false.
func (c *httpClient) do(req *http.Request, out any) (bool, error) {
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, eris.Wrap(err, "places: read response")
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, eris.Wrapf(ErrUnauthorized, "status %d: %s", resp.StatusCode, string(respBody))
	case resilience.IsTransientHTTPStatus(resp.StatusCode):
		return false, resilience.NewTransientError(
			eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody)),
			resp.StatusCode,
		)
	default:
		return false, eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return false, eris.Wrap(err, fmt.Sprintf("places: unmarshal %s response", req.Method))
	}
	return true, nil
}
