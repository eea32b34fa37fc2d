package resolve

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Concurrency bounds for Batch.
const (
	MinConcurrency = 1
	MaxConcurrency = 20
)

// BatchItem is the outcome for one request of a batch.
type BatchItem struct {
	Index   int
	Request Request
	Result  *Result
	Err     error
}

// BatchStats counts batch outcomes.
type BatchStats struct {
	Total     int
	Matched   int
	Unmatched int
	Failed    int

	// Directory calls made by the batch. When the directory reports Usage
	// these include retries; otherwise they count one call per strategy
	// tried and per details lookup, for leads that completed.
	Searches int
	Lookups  int
}

type usageReporter interface {
	Usage() Usage
}

// Batch resolves reqs with up to concurrency workers, all sharing the
// resolver's directory and therefore its rate limit. sink receives every
// item as it completes; calls to sink are serialized. A failed lead is
// reported and counted, but only a configuration error aborts the batch.
func (r *Resolver) Batch(ctx context.Context, reqs []Request, concurrency int, sink func(BatchItem)) (BatchStats, error) {
	concurrency = min(max(concurrency, MinConcurrency), MaxConcurrency)
	stats := BatchStats{Total: len(reqs)}
	if len(reqs) == 0 {
		return stats, nil
	}

	zap.L().Info("resolve: processing batch",
		zap.Int("leads", len(reqs)),
		zap.Int("concurrency", concurrency),
	)

	meter, metered := r.dir.(usageReporter)
	var before Usage
	if metered {
		before = meter.Usage()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var matched, unmatched, failed, searches, lookups atomic.Int64
	var sinkMu sync.Mutex
	emit := func(item BatchItem) {
		if sink == nil {
			return
		}
		sinkMu.Lock()
		defer sinkMu.Unlock()
		sink(item)
	}

	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := r.Resolve(gctx, req)
			item := BatchItem{Index: i, Request: req, Result: res, Err: err}
			switch {
			case errors.Is(err, ErrConfiguration):
				failed.Add(1)
				return err
			case err != nil:
				failed.Add(1)
				zap.L().Error("resolve: lead failed", zap.String("lead", req.Lead.Name), zap.Error(err))
			case res.Matched():
				matched.Add(1)
			default:
				unmatched.Add(1)
			}
			if res != nil {
				searches.Add(int64(res.Attempts))
				lookups.Add(int64(res.Lookups))
			}
			emit(item)
			return nil
		})
	}

	err := g.Wait()
	stats.Matched = int(matched.Load())
	stats.Unmatched = int(unmatched.Load())
	stats.Failed = int(failed.Load())
	stats.Searches = int(searches.Load())
	stats.Lookups = int(lookups.Load())
	if metered {
		after := meter.Usage()
		stats.Searches = after.Searches - before.Searches
		stats.Lookups = after.Lookups - before.Lookups
	}

	if err != nil {
		return stats, eris.Wrap(err, "resolve: batch aborted")
	}

	zap.L().Info("resolve: batch complete",
		zap.Int("matched", stats.Matched),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}
