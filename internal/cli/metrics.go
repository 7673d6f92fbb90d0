package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/pkg/local"
	"github.com/mesh-intelligence/biasmetrics/pkg/representational"
	"github.com/mesh-intelligence/biasmetrics/pkg/stereotypical"
)

type registryListing struct {
	Family  string   `json:"family"`
	View    string   `json:"view,omitempty"`
	Metrics []string `json:"metrics"`
}

func registryListings() []registryListing {
	return []registryListing{
		{Family: "representational", View: viewAll, Metrics: representational.Metrics().Names()},
		{Family: "representational", View: viewDiversity, Metrics: representational.AsDiversity().Names()},
		{Family: "representational", View: viewBias, Metrics: representational.AsBias().Names()},
		{Family: "stereotypical", Metrics: stereotypical.Metrics().Names()},
		{Family: "local", Metrics: local.Metrics().Names()},
	}
}

func newMetricsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List the available metrics by family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listings := registryListings()
			if a.flags.jsonMode {
				return writeJSON(cmd, listings)
			}
			for _, l := range listings {
				name := l.Family
				if l.View != "" {
					name += " (" + l.View + ")"
				}
				if err := printf(cmd, "%s: %s\n", name, strings.Join(l.Metrics, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
