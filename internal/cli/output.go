package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/internal/render"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// writeScores renders m as a text table after applying the configured
// normalisation and sort. Bars are drawn for the normalised values when
// stdout is a terminal and a normalisation axis is set.
func (a *app) writeScores(w io.Writer, m *types.LabeledMatrix, corner string) error {
	cfg := arrangeConfig(a.cfg, m)
	raw, norm, err := render.Arrange(m, cfg)
	if err != nil {
		return err
	}
	opts := render.TableOptions{Precision: cfg.Precision, Corner: corner}
	if terminal(w) && cfg.Normalize != "" && cfg.Normalize != types.NormalizeNone {
		opts.Bars = norm
	}
	return sysErr(render.WriteTable(w, raw, opts))
}

// arrangeConfig adapts cfg to the shape of m. Normalising a single-column
// matrix by rows would scale every cell to 1, so the metrics are compared
// down the column instead.
func arrangeConfig(cfg types.Config, m *types.LabeledMatrix) types.Config {
	if m.Cols() == 1 && cfg.Normalize == types.NormalizeRows {
		cfg.Normalize = types.NormalizeCols
	}
	return cfg
}

// scoreColumn evaluates every metric of reg into a one-column matrix
// labelled label. A failing metric scores NaN.
func scoreColumn[F any](a *app, reg types.Registry[F], label string, eval func(F) (float64, error)) (*types.LabeledMatrix, error) {
	scores := types.NewLabeledMatrix(reg.Names(), []string{label})
	i := 0
	for name, m := range reg.All() {
		if err := scores.Set(i, 0, a.score(name, func() (float64, error) { return eval(m) })); err != nil {
			return nil, err
		}
		i++
	}
	return scores, nil
}

// writeJSON writes v to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return sysErr(render.WriteJSON(cmd.OutOrStdout(), v))
}

// score evaluates one metric, logging and blanking it on failure.
func (a *app) score(name string, fn func() (float64, error)) float64 {
	v, err := fn()
	if err != nil {
		a.log.Warn("metric not computed", "metric", name, "error", err)
		return math.NaN()
	}
	return v
}

// printf writes formatted text to the command's stdout.
func printf(cmd *cobra.Command, format string, args ...any) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	return sysErr(err)
}
