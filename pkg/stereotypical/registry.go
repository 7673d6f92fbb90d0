package stereotypical

import "github.com/mesh-intelligence/biasmetrics/pkg/types"

// Registry is an ordered table of global stereotypical metrics.
type Registry = types.Registry[Metric]

var all = types.NewRegistry(
	types.Entry[Metric]{Name: "ϕ_C", Fn: CramersV},
	types.Entry[Metric]{Name: "T", Fn: TschuprowsT},
	types.Entry[Metric]{Name: "C", Fn: PearsonsC},
	types.Entry[Metric]{Name: "U→", Fn: TheilsU},
	types.Entry[Metric]{Name: "U←", Fn: TheilsUReverse},
	types.Entry[Metric]{Name: "NMI", Fn: NMI},
	types.Entry[Metric]{Name: "χ²", Fn: ChiSquare},
	types.Entry[Metric]{Name: "MI", Fn: MutualInformation},
)

// Metrics returns every global metric under its common symbol.
func Metrics() Registry { return all }
