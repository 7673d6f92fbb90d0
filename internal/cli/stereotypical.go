package cli

import (
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/pkg/stereotypical"
	"github.com/mesh-intelligence/biasmetrics/pkg/tabulate"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

type stereotypicalOutput struct {
	Source string               `json:"source"`
	X      string               `json:"x"`
	Y      string               `json:"y"`
	Rows   int                  `json:"rows"`
	Counts *countsOutput        `json:"counts"`
	Scores *types.LabeledMatrix `json:"scores"`
}

type countsOutput struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Counts [][]int  `json:"counts"`
}

func newCountsOutput(ct *types.ContingencyTable) *countsOutput {
	return &countsOutput{
		Rows:   types.Labels(ct.Rows()),
		Cols:   types.Labels(ct.Cols()),
		Counts: ct.Grid(),
	}
}

// associationFlags are the -x/-y component flags shared by the association
// commands.
type associationFlags struct {
	x, y string
}

func (f *associationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.x, "x", "x", "", "comma-separated columns forming the first component")
	cmd.Flags().StringVarP(&f.y, "y", "y", "", "comma-separated columns forming the second component")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
}

func (f *associationFlags) parse() (x, y types.Component, err error) {
	if x, err = parseComponentFlag("x", f.x); err != nil {
		return nil, nil, err
	}
	if y, err = parseComponentFlag("y", f.y); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func newStereotypicalCmd(a *app) *cobra.Command {
	var (
		axes    associationFlags
		metrics []string
	)
	cmd := &cobra.Command{
		Use:   "stereotypical <file>",
		Short: "Score the overall association between two components",
		Long: "Cross-tabulate two components of a dataset and score how strongly they\n" +
			"are associated with every global stereotypical metric.",
		Example: "  biasmetrics stereotypical faces.csv -x gender -y label\n" +
			"  biasmetrics stereotypical faces.csv -x age,gender -y label -m NMI",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := axes.parse()
			if err != nil {
				return err
			}
			reg := stereotypical.Metrics()
			if len(metrics) > 0 {
				if reg, err = reg.Select(metrics...); err != nil {
					return err
				}
			}
			t, err := a.loadTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ct, err := tabulate.Contingency(t, x, y)
			if err != nil {
				return err
			}

			label := x.String() + " × " + y.String()
			scores, err := scoreColumn(a, reg, label, func(m stereotypical.Metric) (float64, error) { return m(ct) })
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, stereotypicalOutput{
					Source: args[0],
					X:      x.String(),
					Y:      y.String(),
					Rows:   t.NumRows(),
					Counts: newCountsOutput(ct),
					Scores: scores,
				})
			}
			r, c := ct.PopulatedShape()
			if err := printf(cmd, "%s: %s rows, %d×%d populated categories\n\n",
				filepath.Base(args[0]), humanize.Comma(int64(t.NumRows())), r, c); err != nil {
				return err
			}
			return a.writeScores(cmd.OutOrStdout(), scores, "metric")
		},
	}
	axes.register(cmd)
	cmd.Flags().StringSliceVarP(&metrics, "metric", "m", nil, "metrics to compute (default: all)")
	return cmd
}
