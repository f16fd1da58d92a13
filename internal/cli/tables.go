package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newTablesCommand creates the tables command.
func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables in the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			wh, err := newWarehouse()
			if err != nil {
				return err
			}
			defer func() { _ = wh.Close() }()

			names, err := wh.ListTables(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "(no tables - run 'grantsql load' first)")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

// newDescribeCommand creates the describe command.
func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show row count, columns, and a sample for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wh, err := newWarehouse()
			if err != nil {
				return err
			}
			defer func() { _ = wh.Close() }()

			info, err := wh.DescribeTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Table: %s (%d rows, %d columns)\n\n", info.Name, info.RowCount, len(info.Columns))

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Column", "Type", "Nullable"})
			for _, col := range info.Columns {
				nullable := "YES"
				if !col.Nullable {
					nullable = "NO"
				}
				t.AppendRow(table.Row{col.Name, col.Type, nullable})
			}
			t.Render()

			if len(info.Sample) > 0 {
				cols := make([]string, len(info.Columns))
				for i, col := range info.Columns {
					cols[i] = col.Name
				}
				fmt.Fprintln(out, "\nSample:")
				if err := renderRows(out, cols, info.Sample, cfg.Format); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
