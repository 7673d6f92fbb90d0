// Package cli implements the biasmetrics command-line interface: loading a
// dataset, running one metric family over it, and rendering the scores.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/internal/paths"
	"github.com/mesh-intelligence/biasmetrics/pkg/biasmetrics"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// systemError marks a failure of the environment rather than of the input:
// unreadable config, a database that will not open, a write that fails.
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return systemError{err}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
	table     string
	query     string
}

// app is the state shared by every command of one invocation.
type app struct {
	flags rootFlags
	cfg   types.Config
	log   *slog.Logger
}

// sqliteFile is the database "import" writes to inside the data directory.
const sqliteFile = "biasmetrics.db"

// NewRootCmd creates the top-level "biasmetrics" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: types.DefaultConfig(), log: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:     "biasmetrics",
		Short:   "Measure demographic bias in labelled datasets",
		Long:    "biasmetrics computes representational and stereotypical bias metrics over\nthe categorical columns of CSV, Parquet and SQLite datasets.",
		Version: biasmetrics.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory for imported databases (default: platform data dir)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log progress to stderr")
	pf.StringVar(&a.flags.table, "table", "", "table to read from a SQLite source")
	pf.StringVar(&a.flags.query, "query", "", "SELECT statement to read from a SQLite source")
	pf.Int(cfgKeyPrecision, 0, "decimal places in text output (overrides config)")
	pf.Int(cfgKeyWorkers, 0, "concurrent datasets in a sweep, 0 for one per CPU (overrides config)")
	pf.String(cfgKeyNormalize, "", "normalise results across none, rows or cols (overrides config)")
	pf.String(cfgKeySort, "", "sort the other axis by normalised mean: none, ascending or descending (overrides config)")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newMetricsCmd(a),
		newRepresentationalCmd(a),
		newStereotypicalCmd(a),
		newLocalCmd(a),
		newSweepCmd(a),
		newImportCmd(a),
	)
	return root
}

// setup resolves the config directory, loads the configuration and builds
// the logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log.Debug("configuration loaded", "config_dir", configDir, "precision", cfg.Precision, "workers", cfg.Workers)
	return nil
}

// dataDir resolves the directory imported databases are written to.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
}

// terminal reports whether w is an interactive terminal.
func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "biasmetrics:", err)
		os.Exit(exitCode(err))
	}
}
