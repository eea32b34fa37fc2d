package resolve

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/internal/resilience"
	"github.com/sells-group/lead-resolver/pkg/places"
	"github.com/sells-group/lead-resolver/pkg/website"
)

// ErrConfiguration marks fatal setup problems: missing credentials or a
// directory that rejects them. These are never retried.
var ErrConfiguration = eris.New("resolve: configuration error")

// DefaultBiasRadius is the geo-bias radius in meters.
const DefaultBiasRadius = 50_000.0

// Searcher issues directory calls. Every outbound call, retries included,
// first passes through the shared interval gate.
type Searcher struct {
	client places.Client
	gate   *resilience.IntervalGate
	retry  resilience.RetryConfig
	radius float64
	region string

	searches atomic.Int64
	lookups  atomic.Int64
}

// Usage counts outbound directory calls, retries included.
type Usage struct {
	Searches int
	Lookups  int
}

// Usage returns the calls s has sent so far.
func (s *Searcher) Usage() Usage {
	return Usage{Searches: int(s.searches.Load()), Lookups: int(s.lookups.Load())}
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithBiasRadius sets the geo-bias radius in meters.
func WithBiasRadius(meters float64) SearcherOption {
	return func(s *Searcher) {
		if meters > 0 {
			s.radius = meters
		}
	}
}

// WithRegion sets the CLDR region code sent with searches.
func WithRegion(region string) SearcherOption {
	return func(s *Searcher) { s.region = region }
}

// NewSearcher wraps client. gate must be shared by every Searcher that
// draws on the same quota.
func NewSearcher(client places.Client, gate *resilience.IntervalGate, retry resilience.RetryConfig, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		client: client,
		gate:   gate,
		retry:  retry,
		radius: DefaultBiasRadius,
		region: "US",
	}
	for _, o := range opts {
		o(s)
	}
	if s.retry.ShouldRetry == nil {
		s.retry.ShouldRetry = isRetryable
	}
	return s
}

// Search returns the id of the top candidate for q, or "" when the
// directory has no results.
func (s *Searcher) Search(ctx context.Context, q Query) (string, error) {
	req := places.SearchTextRequest{
		TextQuery:      q.Text,
		MaxResultCount: 1,
		RegionCode:     s.region,
	}
	if q.Center != nil {
		req.LocationBias = &places.LocationBias{Circle: places.Circle{Center: *q.Center, Radius: s.radius}}
	}

	resp, err := gatedCall(ctx, s, "search_text", &s.searches, func(ctx context.Context) (*places.SearchTextResponse, error) {
		return s.client.SearchText(ctx, req)
	})
	if err != nil {
		return "", wrapCallErr(err, "search")
	}
	if resp == nil {
		return "", nil
	}
	for _, p := range resp.Places {
		if p.ID != "" {
			return p.ID, nil
		}
	}
	return "", nil
}

// Details fetches the full profile for id, or nil when the directory no
// longer has it.
func (s *Searcher) Details(ctx context.Context, id string) (*model.CandidateProfile, error) {
	if id == "" {
		return nil, nil
	}

	place, err := gatedCall(ctx, s, "get_place", &s.lookups, func(ctx context.Context) (*places.Place, error) {
		return s.client.GetPlace(ctx, id)
	})
	if err != nil {
		return nil, wrapCallErr(err, "details")
	}
	return ProfileFromPlace(place), nil
}

// gatedCall runs fn with retries. Each attempt waits for its gate slot
// before the per-call timeout starts, so queueing behind other workers never
// counts against the call itself. calls is bumped for every attempt that
// leaves the gate.
func gatedCall[T any](ctx context.Context, s *Searcher, op string, calls *atomic.Int64, fn func(context.Context) (T, error)) (T, error) {
	cfg := s.retry
	timeout := cfg.AttemptTimeout
	cfg.AttemptTimeout = 0
	cfg.OnRetry = resilience.RetryLogger("places", op)

	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (T, error) {
		if err := s.gate.Wait(ctx); err != nil {
			var zero T
			return zero, err
		}
		calls.Add(1)
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return fn(ctx)
	})
}

func isRetryable(err error) bool {
	if errors.Is(err, places.ErrUnauthorized) || errors.Is(err, places.ErrMissingAPIKey) {
		return false
	}
	return resilience.IsTransient(err)
}

func wrapCallErr(err error, op string) error {
	if errors.Is(err, places.ErrUnauthorized) || errors.Is(err, places.ErrMissingAPIKey) {
		return eris.Wrapf(ErrConfiguration, "%s: %v", op, err)
	}
	return eris.Wrapf(err, "resolve: %s", op)
}

// ProfileFromPlace converts a details response into a CandidateProfile.
// Social and directory websites are dropped.
func ProfileFromPlace(p *places.Place) *model.CandidateProfile {
	if p == nil || p.ID == "" {
		return nil
	}

	street := strings.TrimSpace(p.Component("street_number", false) + " " + p.Component("route", false))
	city := p.Component("locality", false)
	if city == "" {
		city = p.Component("postal_town", false)
	}
	if city == "" {
		city = p.Component("sublocality", false)
	}

	c := &model.CandidateProfile{
		PlaceID:          p.ID,
		Name:             strings.TrimSpace(p.DisplayName.Text),
		Phone:            p.Phone(),
		FormattedAddress: strings.TrimSpace(p.FormattedAddress),
		Street:           street,
		City:             city,
		State:            p.Component("administrative_area_level_1", true),
		Zip:              p.Component("postal_code", false),
		Categories:       append([]string(nil), p.Types...),
		Rating:           p.Rating,
		ReviewCount:      p.UserRatingCount,
		ServiceArea:      p.PureServiceAreaBusiness,
		Website:          website.Filter(p.WebsiteURI),
	}
	switch p.BusinessStatus {
	case "OPERATIONAL":
		c.Operational = true
	case "":
		c.Operational = c.HasAddress()
	}
	return c
}
