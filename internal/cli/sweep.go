package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/internal/sweep"
	"github.com/mesh-intelligence/biasmetrics/pkg/stereotypical"
)

var errFamilyUnknown = errors.New("unknown family (want representational or stereotypical)")

func newSweepCmd(a *app) *cobra.Command {
	var (
		family    string
		component string
		axes      associationFlags
		metrics   []string
		view      string
	)
	cmd := &cobra.Command{
		Use:   "sweep <file>...",
		Short: "Score the same components across several datasets",
		Long: "Load every dataset, then compute one metric family for each of them\n" +
			"concurrently. The result has one row per dataset and one column per\n" +
			"metric; a metric that cannot be computed for a dataset is left blank.",
		Example: "  biasmetrics sweep a.csv b.csv c.parquet --family representational -c gender\n" +
			"  biasmetrics sweep *.csv --family stereotypical -x gender -y label --normalize cols",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			datasets := make([]sweep.Dataset, 0, len(args))
			for _, path := range args {
				t, err := a.loadTable(ctx, path)
				if err != nil {
					return err
				}
				datasets = append(datasets, sweep.Dataset{Name: path, Table: t})
			}
			opts := sweep.Options{Workers: a.cfg.Workers, Logger: a.log}

			var (
				report *sweep.Report
				err    error
			)
			switch family {
			case sweep.FamilyRepresentational:
				c, perr := parseComponentFlag("component", component)
				if perr != nil {
					return perr
				}
				reg, rerr := representationalRegistry(view, metrics)
				if rerr != nil {
					return rerr
				}
				report, err = sweep.Representational(ctx, datasets, c, reg, opts)
			case sweep.FamilyStereotypical:
				x, y, perr := axes.parse()
				if perr != nil {
					return perr
				}
				reg := stereotypical.Metrics()
				if len(metrics) > 0 {
					if reg, perr = reg.Select(metrics...); perr != nil {
						return perr
					}
				}
				report, err = sweep.Stereotypical(ctx, datasets, x, y, reg, opts)
			default:
				return fmt.Errorf("%w: %q", errFamilyUnknown, family)
			}
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, report)
			}
			if err := printf(cmd, "run %s: %s over %d datasets in %s\n\n",
				report.RunID, report.Family, len(datasets), report.Elapsed.Round(time.Millisecond)); err != nil {
				return err
			}
			return a.writeScores(cmd.OutOrStdout(), report.Results, "dataset")
		},
	}
	cmd.Flags().StringVarP(&family, "family", "f", sweep.FamilyRepresentational, "metric family: representational or stereotypical")
	cmd.Flags().StringVarP(&component, "component", "c", "", "component for the representational family")
	cmd.Flags().StringVarP(&axes.x, "x", "x", "", "first component for the stereotypical family")
	cmd.Flags().StringVarP(&axes.y, "y", "y", "", "second component for the stereotypical family")
	cmd.Flags().StringSliceVarP(&metrics, "metric", "m", nil, "metrics to compute (default: the whole family)")
	cmd.Flags().StringVar(&view, "view", viewAll, "representational registry view: all, diversity or bias")
	return cmd
}
