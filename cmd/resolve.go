package main

import (
	"encoding/json"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-resolver/internal/leadio"
	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/internal/resolve"
)

var (
	resolveLead model.LeadRecord
	resolveCRM  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve and score a single lead",
	Long: `Searches the directory for one lead, validates the best candidate and
prints the resolution as JSON.

Examples:
  resolve --name "ABC Roofing" --phone "(214) 555-0100" --city Dallas --state TX
  resolve --name "ABC Roofing" --website abcroofing.com --crm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r, err := initResolver(cfg, "resolve")
		if err != nil {
			return err
		}

		res, err := r.Resolve(ctx, resolve.Request{Lead: resolveLead})
		if err != nil {
			return eris.Wrap(err, "resolve lead")
		}
		return writeResolution(cmd.OutOrStdout(), res, resolveCRM)
	},
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&resolveLead.Name, "name", "", "business name (required)")
	f.StringVar(&resolveLead.Phone, "phone", "", "phone number")
	f.StringVar(&resolveLead.Street, "street", "", "street address")
	f.StringVar(&resolveLead.City, "city", "", "city")
	f.StringVar(&resolveLead.State, "state", "", "state")
	f.StringVar(&resolveLead.Zip, "zip", "", "postal code")
	f.StringVar(&resolveLead.Website, "website", "", "website URL or domain")
	f.BoolVar(&resolveCRM, "crm", false, "print CRM field updates instead of the full resolution")
	_ = resolveCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(resolveCmd)
}

// writeResolution prints res as indented JSON, either the full Output or
// only the CRM field map.
func writeResolution(w io.Writer, res *resolve.Result, crm bool) error {
	out := leadio.FromResult(res)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	var err error
	if crm {
		err = enc.Encode(out.CRMFields())
	} else {
		err = enc.Encode(out)
	}
	if err != nil {
		return eris.Wrap(err, "write resolution")
	}
	return nil
}
