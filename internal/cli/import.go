package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biasmetrics/internal/sqlite"
)

var errTableRequired = errors.New("import needs --table")

func newImportCmd(a *app) *cobra.Command {
	var (
		dbPath string
		list   bool
	)
	cmd := &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Load a JSONL file into a SQLite table",
		Long: "Create a table from a JSON Lines file, one text column per key, in the\n" +
			"biasmetrics database of the data directory (or --db). The table can then\n" +
			"be read by any metric command with the database as input and --table.\n" +
			"With --list, print the imports recorded in the database instead.",
		Example: "  biasmetrics import annotations.jsonl --table faces\n" +
			"  biasmetrics representational ~/.local/share/biasmetrics/biasmetrics.db --table faces -c gender\n" +
			"  biasmetrics import --list",
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !list && a.flags.table == "" {
				return errTableRequired
			}
			if dbPath == "" {
				dir, err := a.dataDir()
				if err != nil {
					return sysErr(fmt.Errorf("resolve data dir: %w", err))
				}
				dbPath = filepath.Join(dir, sqliteFile)
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return sysErr(fmt.Errorf("create data directory: %w", err))
			}
			src, err := sqlite.Open(ctx, dbPath)
			if err != nil {
				return sysErr(err)
			}
			defer src.Close()

			if list {
				imports, err := src.Imports(ctx)
				if err != nil {
					return sysErr(err)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd, imports)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTABLE\tROWS\tSKIPPED\tSOURCE\tIMPORTED")
				for _, im := range imports {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", im.ID, im.Table,
						humanize.Comma(int64(im.Rows)), im.Skipped, im.Source, humanize.Time(im.CreatedAt))
				}
				return sysErr(tw.Flush())
			}

			im, err := src.ImportJSONL(ctx, a.flags.table, args[0])
			if err != nil {
				return err
			}
			a.log.Info("import finished", "import_id", im.ID, "table", im.Table, "rows", im.Rows, "skipped", im.Skipped)
			if a.flags.jsonMode {
				return writeJSON(cmd, im)
			}
			return printf(cmd, "imported %s rows into %s (%d skipped) at %s\ndatabase: %s\n",
				humanize.Comma(int64(im.Rows)), im.Table, im.Skipped, im.CreatedAt.Format(time.RFC3339), dbPath)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to write (default: <data-dir>/"+sqliteFile+")")
	cmd.Flags().BoolVar(&list, "list", false, "list recorded imports")
	return cmd
}
