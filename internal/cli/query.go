package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newQueryCommand creates the query command.
func newQueryCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run arbitrary SQL against the store",
		Long: `Run caller-supplied SQL against the store and print the result rows.

SQL is taken from the arguments, from a file via --input, or from stdin.`,
		Example: `  # Execute SQL directly
  grantsql query "SELECT COUNT(*) FROM grants"

  # Read SQL from a file, output as JSON
  grantsql query --input analysis.sql --format json

  # Pipe SQL on stdin
  echo "SELECT * FROM nonprofit_quality LIMIT 3" | grantsql query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sqlText string
			switch {
			case len(args) > 0:
				sqlText = strings.Join(args, " ")
			case input != "":
				content, err := os.ReadFile(input)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				sqlText = string(content)
			default:
				content, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				sqlText = string(content)
			}

			if strings.TrimSpace(sqlText) == "" {
				return fmt.Errorf("no SQL given")
			}

			wh, err := newWarehouse()
			if err != nil {
				return err
			}
			defer func() { _ = wh.Close() }()

			res, err := wh.Execute(cmd.Context(), sqlText)
			if err != nil {
				return err
			}

			return renderRows(cmd.OutOrStdout(), res.Columns, res.Rows, cfg.Format)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Read SQL from file")

	return cmd
}
