package cli

import (
	"fmt"

	"github.com/grantstack-labs/grantsql/internal/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newAnalyzeCommand creates the analyze command.
func newAnalyzeCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "analyze [name]",
		Short: "Run one of the built-in analytical queries",
		Long: `Run a named query from the analysis catalog against the store.

Without a name, lists the available analyses. The --limit flag caps the
result size for the analyses that accept one (top_grants_by_funding,
top_performers); the rest carry fixed caps.`,
		Example: `  # List available analyses
  grantsql analyze

  # Per-state nonprofit profile
  grantsql analyze nonprofits_by_state

  # Top 50 grants by award ceiling, as JSON
  grantsql analyze top_grants_by_funding --limit 50 --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			names := make([]string, 0, len(catalog.All()))
			for _, q := range catalog.All() {
				names = append(names, q.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listAnalyses(cmd)
			}

			q, ok := catalog.ByName(args[0], limit)
			if !ok {
				return fmt.Errorf("unknown analysis %q (run 'grantsql analyze' for the list)", args[0])
			}

			wh, err := newWarehouse()
			if err != nil {
				return err
			}
			defer func() { _ = wh.Close() }()

			res, err := wh.Execute(cmd.Context(), q.SQL, q.Args...)
			if err != nil {
				return err
			}

			return renderRows(cmd.OutOrStdout(), res.Columns, res.Rows, cfg.Format)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Row cap for analyses that accept one (0 uses the default)")

	return cmd
}

func listAnalyses(cmd *cobra.Command) error {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Description"})
	for _, q := range catalog.All() {
		t.AppendRow(table.Row{q.Name, q.Description})
	}
	t.Render()
	return nil
}
