package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-resolver/internal/config"
	"github.com/sells-group/lead-resolver/internal/fitscore"
	"github.com/sells-group/lead-resolver/internal/leadio"
	"github.com/sells-group/lead-resolver/internal/resilience"
	"github.com/sells-group/lead-resolver/internal/resolve"
	"github.com/sells-group/lead-resolver/pkg/places"
)

// initResolver builds the directory client, the shared call gate and the
// score table, and returns a Resolver wired to them. mode is passed to
// config validation.
func initResolver(c *config.Config, mode string) (*resolve.Resolver, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	client, err := places.NewClient(c.Places.Key, places.WithBaseURL(c.Places.BaseURL))
	if err != nil {
		return nil, eris.Wrap(err, "init places client")
	}

	calc, err := initCalculator(c.Score.TiersFile)
	if err != nil {
		return nil, err
	}

	rc := c.Resolver
	gate := resilience.NewIntervalGate(rc.MinInterval(), resilience.RealClock())
	retry := resilience.FromRetryConfig(rc.MaxAttempts, rc.InitialBackoffMs, rc.MaxBackoffMs, rc.TimeoutSecs)
	retry.OnRetry = resilience.RetryLogger("places", "directory")

	searcher := resolve.NewSearcher(client, gate, retry,
		resolve.WithBiasRadius(rc.GeoBiasRadiusM),
		resolve.WithRegion(rc.Region),
	)

	zap.L().Debug("resolver initialized",
		zap.Duration("min_interval", rc.MinInterval()),
		zap.Int("max_attempts", retry.MaxAttempts),
		zap.String("region", rc.Region),
	)

	return resolve.New(searcher,
		resolve.WithCalculator(calc),
		resolve.WithPhoneRegion(rc.Region),
	), nil
}

func initCalculator(tiersFile string) (*fitscore.Calculator, error) {
	table, err := fitscore.LoadTable(tiersFile)
	if err != nil {
		return nil, eris.Wrap(err, "load score table")
	}
	return fitscore.NewCalculator(table), nil
}

func sourceOptions(c *config.Config) leadio.SourceOptions {
	return leadio.SourceOptions{
		Timeout:   time.Duration(c.Source.TimeoutSecs) * time.Second,
		UserAgent: c.Source.UserAgent,
	}
}
