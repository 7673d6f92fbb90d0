// Package sweep runs every metric of a registry over many datasets and
// collects the scores into one dataset × metric matrix. Datasets are
// processed concurrently on a bounded pool; each is tabulated once and
// shared by all metrics.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/mesh-intelligence/biasmetrics/pkg/representational"
	"github.com/mesh-intelligence/biasmetrics/pkg/stereotypical"
	"github.com/mesh-intelligence/biasmetrics/pkg/tabulate"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Metric families reported in Report.Family.
const (
	FamilyRepresentational = "representational"
	FamilyStereotypical    = "stereotypical"
)

// Dataset is one named input of a sweep.
type Dataset struct {
	Name  string
	Table types.Table
}

// Options tunes a sweep. The zero value uses one worker per CPU and
// discards logs.
type Options struct {
	Workers int
	Logger  *slog.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Failure records a metric that could not be computed for one dataset. Its
// cell in Report.Results is NaN.
type Failure struct {
	Dataset string `json:"dataset"`
	Metric  string `json:"metric"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Report is the outcome of a sweep.
type Report struct {
	RunID     string               `json:"run_id"`
	Family    string               `json:"family"`
	Inputs    []string             `json:"inputs"`
	Results   *types.LabeledMatrix `json:"results"`
	Failures  []Failure            `json:"failures,omitempty"`
	StartedAt time.Time            `json:"started_at"`
	Elapsed   time.Duration        `json:"elapsed_ns"`
}

// Representational scores component c of every dataset with every metric
// in reg.
func Representational(ctx context.Context, datasets []Dataset, c types.Component, reg representational.Registry, opts Options) (*Report, error) {
	tab := func(t types.Table) (*types.Distribution, error) {
		return tabulate.Distribution(t, c)
	}
	return run(ctx, FamilyRepresentational, []string{c.String()}, datasets, tab, reg, opts)
}

// Stereotypical scores the association between components x and y of
// every dataset with every metric in reg.
func Stereotypical(ctx context.Context, datasets []Dataset, x, y types.Component, reg stereotypical.Registry, opts Options) (*Report, error) {
	tab := func(t types.Table) (*types.ContingencyTable, error) {
		return tabulate.Contingency(t, x, y)
	}
	return run(ctx, FamilyStereotypical, []string{x.String(), y.String()}, datasets, tab, reg, opts)
}

// run is the shared sweep loop. A tabulation error aborts the sweep and
// cancels the remaining datasets; a metric error only blanks its cell.
func run[T any, F ~func(T) (float64, error)](
	ctx context.Context,
	family string,
	inputs []string,
	datasets []Dataset,
	tab func(types.Table) (T, error),
	reg types.Registry[F],
	opts Options,
) (*Report, error) {
	log := opts.logger()
	rowLabels := make([]string, len(datasets))
	for i, d := range datasets {
		rowLabels[i] = d.Name
	}
	report := &Report{
		RunID:     uuid.Must(uuid.NewV7()).String(),
		Family:    family,
		Inputs:    inputs,
		Results:   types.NewLabeledMatrix(rowLabels, reg.Names()),
		StartedAt: time.Now().UTC(),
	}
	log = log.With("run_id", report.RunID, "family", family)
	log.Debug("sweep started", "datasets", len(datasets), "metrics", reg.Len(), "workers", opts.workers())

	// each worker owns row i of the results and failures[i]
	failures := make([][]Failure, len(datasets))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(opts.workers())
	for i, d := range datasets {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := tab(d.Table)
			if err != nil {
				return fmt.Errorf("dataset %q: %w", d.Name, err)
			}
			j := 0
			for name, metric := range reg.All() {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := metric(in)
				if err != nil {
					log.Warn("metric failed", "dataset", d.Name, "metric", name, "error", err)
					v = math.NaN()
					failures[i] = append(failures[i], Failure{Dataset: d.Name, Metric: name, Message: err.Error(), Err: err})
				}
				if err := report.Results.Set(i, j, v); err != nil {
					return fmt.Errorf("dataset %q: %w", d.Name, err)
				}
				j++
			}
			log.Debug("dataset scored", "dataset", d.Name, "rows", d.Table.NumRows())
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	report.Failures = slices.Concat(failures...)
	report.Elapsed = time.Since(report.StartedAt)
	log.Debug("sweep finished", "failures", len(report.Failures), "elapsed", report.Elapsed)
	return report, nil
}
