package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/pkg/local"
	"github.com/mesh-intelligence/biasmetrics/pkg/tabulate"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

type localOutput struct {
	Source string               `json:"source"`
	X      string               `json:"x"`
	Y      string               `json:"y"`
	Metric string               `json:"metric"`
	Scores *types.LabeledMatrix `json:"scores"`
}

func newLocalCmd(a *app) *cobra.Command {
	var (
		axes   associationFlags
		metric string
		sorted bool
	)
	cmd := &cobra.Command{
		Use:   "local <file>",
		Short: "Score the association of every pair of categories",
		Long: "Cross-tabulate two components of a dataset and score each pair of\n" +
			"categories with one local stereotypical metric. Positive scores mark\n" +
			"pairs that co-occur more often than independence predicts.",
		Example: "  biasmetrics local faces.csv -x gender -y label\n" +
			"  biasmetrics local faces.csv -x gender -y label -m \"Ducher's Z\" --sorted",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := axes.parse()
			if err != nil {
				return err
			}
			m, err := local.Metrics().Lookup(metric)
			if err != nil {
				return err
			}
			t, err := a.loadTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ct, err := tabulate.Contingency(t, x, y)
			if err != nil {
				return err
			}
			if sorted {
				ct = ct.Sorted()
			}
			scores, err := m(ct)
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, localOutput{
					Source: args[0],
					X:      x.String(),
					Y:      y.String(),
					Metric: metric,
					Scores: scores,
				})
			}
			return a.writeScores(cmd.OutOrStdout(), scores, x.String()+` \ `+y.String())
		},
	}
	axes.register(cmd)
	cmd.Flags().StringVarP(&metric, "metric", "m", "NPMI", "local metric to compute")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "order categories by label instead of first appearance")
	return cmd
}
