package cli

import (
	"fmt"
	"time"

	"github.com/grantstack-labs/grantsql/internal/warehouse"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newLoadCommand creates the load command.
func newLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load source CSV files into the store",
		Long: `Load the expected CSV extracts from the data directory into the store.

Each present file becomes a table named after its logical name, replacing
any prior table of the same name in full. Missing files are skipped with a
warning and loading continues.`,
		Example: `  # Load from the default data directory
  grantsql load

  # Load from a specific directory into a specific store file
  grantsql load --data-dir ./extracts --db-path ./outputs/grants.db`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd)
		},
	}

	return cmd
}

func runLoad(cmd *cobra.Command) error {
	wh, err := newWarehouse()
	if err != nil {
		return err
	}
	defer func() { _ = wh.Close() }()

	report, err := wh.LoadSources(cmd.Context(), cfg.DataDir, warehouse.DefaultSources())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(report.Tables) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Table", "File", "Rows", "Columns"})
		for _, tr := range report.Tables {
			t.AppendRow(table.Row{tr.Table, tr.File, tr.Rows, tr.Columns})
		}
		t.Render()
	}

	for _, missing := range report.Missing {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s not found in %s/\n", missing, cfg.DataDir)
	}

	fmt.Fprintf(out, "Loaded %d tables into %s in %s\n",
		len(report.Tables), cfg.DBPath, report.Elapsed.Round(time.Millisecond))
	return nil
}
