package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-resolver/internal/cost"
	"github.com/sells-group/lead-resolver/internal/leadio"
	"github.com/sells-group/lead-resolver/internal/resolve"
)

var (
	batchInput       string
	batchOutput      string
	batchFormat      string
	batchConcurrency int
	batchLimit       int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve and score a file of leads",
	Long: `Reads leads from a CSV or XLSX file (local path, http(s) or ftp URL),
resolves them concurrently and writes one output record per lead.

Examples:
  batch --input leads.csv
  batch --input https://example.com/leads.xlsx --format csv --output scored.csv
  batch --input ftp://ftp.example.com/exports/leads.csv --concurrency 10 --limit 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchConcurrency > 0 {
			cfg.Batch.Concurrency = batchConcurrency
		}

		r, err := initResolver(cfg, "batch")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return eris.Wrapf(err, "create output %s", batchOutput)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		_, err = runBatchFile(ctx, r, batchJob{
			Input:       batchInput,
			Format:      batchFormat,
			Concurrency: cfg.Batch.Concurrency,
			Limit:       batchLimit,
			Source:      sourceOptions(cfg),
			Pricing:     cfg.Pricing,
		}, out)
		return err
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchInput, "input", "", "lead file: local path, http(s) or ftp URL (required)")
	f.StringVar(&batchOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&batchFormat, "format", "jsonl", "output format: jsonl or csv")
	f.IntVar(&batchConcurrency, "concurrency", 0, "concurrent leads, 1-20 (0=use config)")
	f.IntVar(&batchLimit, "limit", 0, "max number of leads to process (0=all)")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

// batchJob describes one batch run.
type batchJob struct {
	Input       string
	Format      string
	Concurrency int
	Limit       int
	Source      leadio.SourceOptions
	Pricing     cost.Rates
}

// runBatchFile loads the job's leads, resolves them with r and writes one
// record per lead to w in completion order.
func runBatchFile(ctx context.Context, r *resolve.Resolver, job batchJob, w io.Writer) (resolve.BatchStats, error) {
	writer, err := leadio.NewWriter(w, job.Format)
	if err != nil {
		return resolve.BatchStats{}, err
	}

	reqs, _, err := leadio.LoadLeads(ctx, job.Input, job.Source)
	if err != nil {
		return resolve.BatchStats{}, err
	}
	if job.Limit > 0 && len(reqs) > job.Limit {
		reqs = reqs[:job.Limit]
	}

	var writeErr error
	stats, err := r.Batch(ctx, reqs, job.Concurrency, func(item resolve.BatchItem) {
		if writeErr != nil {
			return
		}
		if item.Err != nil {
			writeErr = writer.Write(leadio.FailedOutput(item.Request.Lead, item.Err))
			return
		}
		writeErr = writer.Write(leadio.FromResult(item.Result))
	})
	if flushErr := writer.Flush(); writeErr == nil {
		writeErr = flushErr
	}
	if err != nil {
		return stats, err
	}
	if writeErr != nil {
		return stats, eris.Wrap(writeErr, "write batch output")
	}

	zap.L().Info("batch complete",
		zap.Int("total", stats.Total),
		zap.Int("matched", stats.Matched),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("failed", stats.Failed),
		zap.Int("searches", stats.Searches),
		zap.Int("lookups", stats.Lookups),
		zap.Float64("est_cost_usd", cost.NewCalculator(job.Pricing).Directory(stats.Searches, stats.Lookups)),
	)
	return stats, nil
}
