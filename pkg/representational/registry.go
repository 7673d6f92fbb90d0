package representational

import "github.com/mesh-intelligence/biasmetrics/pkg/types"

// Registry is an ordered table of representational metrics.
type Registry = types.Registry[Metric]

func entry(name string, fn Metric) types.Entry[Metric] {
	return types.Entry[Metric]{Name: name, Fn: fn}
}

var (
	all = types.NewRegistry(
		entry("R", Richness),
		entry("ENS", ENS),
		entry("D", Simpson),
		entry("1/D", SimpsonReciprocal),
		entry("1-D", GiniSimpson),
		entry("H", Entropy),
		entry("SEI", Evenness),
		entry("NSD", NSD),
		entry("IR", ImbalanceRatio),
		entry("BP", BergerParker),
	)

	asDiversity = types.NewRegistry(
		entry("R", Richness),
		entry("ENS", ENS),
		entry("1/D", SimpsonReciprocal),
		entry("1-D", GiniSimpson),
		entry("H", Entropy),
		entry("SEI", Evenness),
		entry("1-NSD", Complementary(NSD, Constant(1))),
		entry("1/IR", Reciprocal(ImbalanceRatio)),
		entry("1-BP", Complementary(BergerParker, Constant(1))),
	)

	asBias = types.NewRegistry(
		entry("R-ENS", Complementary(ENS, Richness)),
		entry("D", Simpson),
		entry("R-1/D", Complementary(SimpsonReciprocal, Richness)),
		entry("1-SEI", Complementary(Evenness, Constant(1))),
		entry("NSD", NSD),
		entry("IR", ImbalanceRatio),
		entry("BP", BergerParker),
	)
)

// Metrics returns every representational metric under its common symbol.
func Metrics() Registry { return all }

// AsDiversity returns the metrics in their diversity form: higher means a
// more even population.
func AsDiversity() Registry { return asDiversity }

// AsBias returns the metrics in their bias form: higher means a more
// concentrated population.
func AsBias() Registry { return asBias }
