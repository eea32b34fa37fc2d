package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-resolver/internal/resilience"
)

func newTestClient(t *testing.T, url string) Client {
	t.Helper()
	c, err := NewClient("test-key", WithBaseURL(url))
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingKey(t *testing.T) {
	c, err := NewClient("")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSearchText_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchText", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.id")

		var body SearchTextRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ABC Roofing Austin, TX", body.TextQuery)
		require.NotNil(t, body.LocationBias)
		assert.InDelta(t, 30.2672, body.LocationBias.Circle.Center.Latitude, 0.0001)
		assert.InDelta(t, 50000, body.LocationBias.Circle.Radius, 0.1)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchTextResponse{
			Places: []Place{{ID: "ChIJ-abc", DisplayName: DisplayName{Text: "ABC Roofing LLC"}}},
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL).SearchText(context.Background(), SearchTextRequest{
		TextQuery: "ABC Roofing Austin, TX",
		LocationBias: &LocationBias{Circle: Circle{
			Center: LatLng{Latitude: 30.2672, Longitude: -97.7431},
			Radius: 50000,
		}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Places, 1)
	assert.Equal(t, "ChIJ-abc", resp.Places[0].ID)
}

func TestSearchText_NoBiasOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, hasBias := raw["locationBias"]
		assert.False(t, hasBias)
		_ = json.NewEncoder(w).Encode(SearchTextResponse{})
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL).SearchText(context.Background(), SearchTextRequest{TextQuery: "abcroofing.com"})
	require.NoError(t, err)
	assert.Empty(t, resp.Places)
}

func TestSearchText_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "backend unavailable"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL).SearchText(context.Background(), SearchTextRequest{TextQuery: "x"})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
	assert.Contains(t, err.Error(), "503")
}

func TestSearchText_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "invalid API key"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL).SearchText(context.Background(), SearchTextRequest{TextQuery: "x"})
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, resilience.IsTransient(err))
}

func TestSearchText_BadRequestNotTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).SearchText(context.Background(), SearchTextRequest{TextQuery: "x"})
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestGetPlace_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/places/ChIJ-abc", r.URL.Path)
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "pureServiceAreaBusiness")
		_, _ = w.Write([]byte(`{
			"id": "ChIJ-abc",
			"displayName": {"text": "ABC Roofing LLC"},
			"nationalPhoneNumber": "(555) 123-4567",
			"formattedAddress": "100 Congress Ave, Austin, TX 78701, USA",
			"addressComponents": [
				{"longText": "100", "shortText": "100", "types": ["street_number"]},
				{"longText": "Congress Avenue", "shortText": "Congress Ave", "types": ["route"]},
				{"longText": "Austin", "shortText": "Austin", "types": ["locality", "political"]},
				{"longText": "Texas", "shortText": "TX", "types": ["administrative_area_level_1", "political"]},
				{"longText": "78701", "shortText": "78701", "types": ["postal_code"]}
			],
			"types": ["roofing_contractor", "point_of_interest"],
			"rating": 4.8,
			"userRatingCount": 31,
			"businessStatus": "OPERATIONAL",
			"websiteUri": "https://abcroofing.com/"
		}`)) //nolint:errcheck
	}))
	defer srv.Close()

	place, err := newTestClient(t, srv.URL).GetPlace(context.Background(), "ChIJ-abc")
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, "ABC Roofing LLC", place.DisplayName.Text)
	assert.Equal(t, "(555) 123-4567", place.Phone())
	assert.Equal(t, "TX", place.Component("administrative_area_level_1", true))
	assert.Equal(t, "Texas", place.Component("administrative_area_level_1", false))
	assert.Equal(t, "Congress Ave", place.Component("route", true))
	assert.Equal(t, 31, place.UserRatingCount)
	assert.Equal(t, "OPERATIONAL", place.BusinessStatus)
}

func TestGetPlace_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	place, err := newTestClient(t, srv.URL).GetPlace(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, place)
}

func TestGetPlace_EmptyID(t *testing.T) {
	place, err := newTestClient(t, "http://127.0.0.1:0").GetPlace(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, place)
}

func TestSearchText_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := newTestClient(t, srv.URL).SearchText(ctx, SearchTextRequest{TextQuery: "x"})
	assert.Error(t, err)
	assert.Nil(t, resp)
}
