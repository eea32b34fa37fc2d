package resolve

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-resolver/internal/classify"
	"github.com/sells-group/lead-resolver/internal/fitscore"
	"github.com/sells-group/lead-resolver/internal/fusion"
	"github.com/sells-group/lead-resolver/internal/match"
	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/pkg/website"
)

// Directory is the search surface the resolver needs. *Searcher implements it.
type Directory interface {
	Search(ctx context.Context, q Query) (string, error)
	Details(ctx context.Context, id string) (*model.CandidateProfile, error)
}

// Request is one lead plus whatever enrichment the caller already holds.
type Request struct {
	Lead         model.LeadRecord
	Demographics *model.Demographics
	Legacy       *model.LegacyFirmographics
	Domain       *model.DomainSignals
	Web          *model.WebSignals
}

// Result is the outcome of resolving one lead.
type Result struct {
	ID   string
	Lead model.LeadRecord

	// Strategy and Query identify the search that produced Candidate.
	Strategy string
	Query    string
	Attempts int
	// Lookups counts details calls; Attempts counts searches.
	Lookups int

	Candidate *model.CandidateProfile
	Match     *model.MatchResult
	Location  model.LocationClass
	Fusion    fusion.Result
	Bundle    model.EnrichmentBundle
	Score     fitscore.Breakdown
}

// Matched reports whether an accepted candidate was found.
func (r *Result) Matched() bool {
	return r != nil && r.Candidate != nil && r.Match.Accepted()
}

// Resolver runs the single-lead pipeline. It holds no per-lead state and is
// safe for concurrent use when its Directory is.
type Resolver struct {
	dir    Directory
	calc   *fitscore.Calculator
	region string
	newID  func() string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCalculator replaces the default score table.
func WithCalculator(c *fitscore.Calculator) Option {
	return func(r *Resolver) { r.calc = c }
}

// WithPhoneRegion sets the region used to format phone query variants.
func WithPhoneRegion(region string) Option {
	return func(r *Resolver) { r.region = region }
}

// WithIDFunc overrides resolution id generation.
func WithIDFunc(fn func() string) Option {
	return func(r *Resolver) { r.newID = fn }
}

// New creates a Resolver over dir.
func New(dir Directory, opts ...Option) *Resolver {
	r := &Resolver{
		dir:    dir,
		calc:   fitscore.NewCalculator(fitscore.DefaultTable()),
		region: "US",
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve searches for req.Lead, validates the first candidate found and
// scores the result. A lead with no acceptable match is not an error; only
// invalid input, cancellation and configuration errors are returned.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	lead := req.Lead.Trimmed()
	if err := lead.Validate(); err != nil {
		return nil, err
	}

	res := &Result{ID: r.newID(), Lead: lead}
	log := zap.L().With(
		zap.String("resolution_id", res.ID),
		zap.String("lead", lead.Name),
	)

	for _, q := range GenerateQueries(lead, r.region) {
		res.Attempts++
		cand, err := r.try(ctx, q, res)
		if err != nil {
			if errors.Is(err, ErrConfiguration) {
				return nil, err
			}
			if ctx.Err() != nil {
				return nil, eris.Wrap(ctx.Err(), "resolve: lead cancelled")
			}
			log.Warn("resolve: strategy failed",
				zap.String("strategy", q.Strategy),
				zap.Error(err),
			)
			continue
		}
		if cand == nil {
			continue
		}

		m := match.Score(lead, cand)
		res.Strategy, res.Query = q.Strategy, q.Text
		res.Candidate, res.Match = cand, &m
		break
	}

	switch {
	case res.Candidate == nil:
		log.Info("resolve: no candidate", zap.Int("attempts", res.Attempts))
	case res.Match.Vetoed:
		log.Info("resolve: candidate vetoed",
			zap.String("place_id", res.Candidate.PlaceID),
			zap.String("veto_reason", string(res.Match.VetoReason)),
		)
	case !res.Match.Accepted():
		log.Info("resolve: candidate discarded",
			zap.String("place_id", res.Candidate.PlaceID),
			zap.Int("confidence", res.Match.Score),
		)
	default:
		res.Location = classify.Classify(res.Candidate)
		res.Fusion = fusion.Fuse(res.Candidate, res.Match, lead)
		if note := res.Fusion.Audit(); note != "" {
			log.Info("resolve: address overwritten", zap.String("audit", note))
		}
	}

	res.Bundle = r.bundle(res, req)
	res.Score = r.calc.Compute(&res.Bundle)

	log.Info("resolve: lead scored",
		zap.Bool("matched", res.Matched()),
		zap.String("strategy", res.Strategy),
		zap.Int("fit_score", res.Score.Total),
		zap.String("quality_tier", res.Score.Quality),
	)
	return res, nil
}

// try runs one query: search, then details for the top hit.
func (r *Resolver) try(ctx context.Context, q Query, res *Result) (*model.CandidateProfile, error) {
	id, err := r.dir.Search(ctx, q)
	if err != nil || id == "" {
		return nil, err
	}
	res.Lookups++
	return r.dir.Details(ctx, id)
}

func (r *Resolver) bundle(res *Result, req Request) model.EnrichmentBundle {
	b := model.EnrichmentBundle{
		Website:      website.Filter(res.Fusion.Fields.Apply(res.Lead).Website),
		Demographics: req.Demographics,
		Legacy:       req.Legacy,
		Domain:       req.Domain,
		Web:          req.Web,
	}
	if res.Matched() {
		b.Candidate = res.Candidate
		b.Match = res.Match
		b.Location = res.Location
	}
	return b
}
