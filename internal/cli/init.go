package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/biasmetrics/internal/paths"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: "Create the configuration directory with a default config.yaml, unless one\n" +
			"already exists, and the data directory that \"import\" writes to.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return sysErr(fmt.Errorf("resolve config dir: %w", err))
			}
			dataDir, err := a.dataDir()
			if err != nil {
				return sysErr(fmt.Errorf("resolve data dir: %w", err))
			}

			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysErr(fmt.Errorf("create config directory: %w", err))
			}
			configPath := filepath.Join(configDir, configFileExt)
			cfg := a.cfg
			if a.flags.dataDir != "" {
				cfg.DataDir = a.flags.dataDir
			}
			written, err := writeConfigIfMissing(configPath, cfg)
			if err != nil {
				return sysErr(fmt.Errorf("write config: %w", err))
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return sysErr(fmt.Errorf("create data directory: %w", err))
			}

			state := "kept"
			if written {
				state = "written"
			}
			return printf(cmd, "config: %s (%s)\ndata:   %s\n", configPath, state, dataDir)
		},
	}
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg types.Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, b, 0o644)
}
