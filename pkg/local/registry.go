package local

import "github.com/mesh-intelligence/biasmetrics/pkg/types"

// Registry is an ordered table of local stereotypical metrics.
type Registry = types.Registry[Metric]

var all = types.NewRegistry(
	types.Entry[Metric]{Name: "NPMI", Fn: NPMI},
	types.Entry[Metric]{Name: "Ducher's Z", Fn: DuchersZ},
	types.Entry[Metric]{Name: "Lewontin's D", Fn: LewontinsD},
	types.Entry[Metric]{Name: "PMI", Fn: PMI},
)

// Metrics returns every local metric under its common symbol.
func Metrics() Registry { return all }
