package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/pkg/representational"
	"github.com/mesh-intelligence/biasmetrics/pkg/tabulate"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Views of the representational registry.
const (
	viewAll       = "all"
	viewDiversity = "diversity"
	viewBias      = "bias"
)

var errViewUnknown = errors.New("unknown view (want all, diversity or bias)")

// representationalRegistry returns the registry for view, narrowed to names
// when any are given.
func representationalRegistry(view string, names []string) (representational.Registry, error) {
	var reg representational.Registry
	switch view {
	case viewAll, "":
		reg = representational.Metrics()
	case viewDiversity:
		reg = representational.AsDiversity()
	case viewBias:
		reg = representational.AsBias()
	default:
		return reg, fmt.Errorf("%w: %q", errViewUnknown, view)
	}
	if len(names) == 0 {
		return reg, nil
	}
	return reg.Select(names...)
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type representationalOutput struct {
	Source     string               `json:"source"`
	Component  string               `json:"component"`
	Rows       int                  `json:"rows"`
	Categories []categoryCount      `json:"categories"`
	Scores     *types.LabeledMatrix `json:"scores"`
}

func newRepresentationalCmd(a *app) *cobra.Command {
	var (
		component string
		metrics   []string
		view      string
	)
	cmd := &cobra.Command{
		Use:   "representational <file>",
		Short: "Score how evenly a component's categories are represented",
		Long: "Tabulate one component (one or more columns) of a dataset and score its\n" +
			"category distribution with every representational metric.",
		Example: "  biasmetrics representational faces.csv -c gender\n" +
			"  biasmetrics representational faces.parquet -c age,gender --view bias",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseComponentFlag("component", component)
			if err != nil {
				return err
			}
			reg, err := representationalRegistry(view, metrics)
			if err != nil {
				return err
			}
			t, err := a.loadTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			d, err := tabulate.Distribution(t, c)
			if err != nil {
				return err
			}

			scores, err := scoreColumn(a, reg, c.String(), func(m representational.Metric) (float64, error) { return m(d) })
			if err != nil {
				return err
			}

			out := representationalOutput{
				Source:    args[0],
				Component: c.String(),
				Rows:      t.NumRows(),
				Scores:    scores,
			}
			for k := range d.Len() {
				out.Categories = append(out.Categories, categoryCount{Category: d.Category(k).String(), Count: d.Count(k)})
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, out)
			}
			if err := printf(cmd, "%s: %s rows, %d categories of %s\n\n",
				filepath.Base(args[0]), humanize.Comma(int64(out.Rows)), d.Populated(), out.Component); err != nil {
				return err
			}
			return a.writeScores(cmd.OutOrStdout(), scores, "metric")
		},
	}
	cmd.Flags().StringVarP(&component, "component", "c", "", "comma-separated columns forming the component")
	cmd.Flags().StringSliceVarP(&metrics, "metric", "m", nil, "metrics to compute (default: all in the view)")
	cmd.Flags().StringVar(&view, "view", viewAll, "registry view: all, diversity or bias")
	_ = cmd.MarkFlagRequired("component")
	return cmd
}
