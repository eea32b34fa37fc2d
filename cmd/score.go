package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-resolver/internal/leadio"
)

var scoreBundlePath string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an enrichment bundle without calling the directory",
	Long: `Computes the fit score for a JSON enrichment bundle and prints the
breakdown. Tier overrides are read from score.tiers_file when set.

Examples:
  score --bundle bundle.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("score"); err != nil {
			return err
		}
		return scoreBundle(cmd.OutOrStdout(), scoreBundlePath, cfg.Score.TiersFile)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreBundlePath, "bundle", "", "path to a JSON enrichment bundle (required)")
	_ = scoreCmd.MarkFlagRequired("bundle")

	rootCmd.AddCommand(scoreCmd)
}

func scoreBundle(w io.Writer, bundlePath, tiersFile string) error {
	calc, err := initCalculator(tiersFile)
	if err != nil {
		return err
	}
	b, err := leadio.LoadBundle(bundlePath)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(calc.Compute(b)); err != nil {
		return eris.Wrap(err, "write breakdown")
	}
	return nil
}
