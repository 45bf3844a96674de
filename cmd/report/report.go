// Package report handles building and rendering the expense report
package report

import (
	"context"
	"fmt"
	"os"

	"expensereport/cmd/root"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Build the expense report from the stored records",
	Long: `Report loads the session's expense records, lays them out into the
Promotion and Other sections with per-column and grand totals, and writes
the result in the requested format.

The table is built fresh on every run; nothing is persisted.

Example:
  expense-report report -o report.csv --format csv`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: csv, json or xml (default from config)")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(context.Background())
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	records, err := c.Records().Load()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no expense records stored; run 'expense-report process' first")
	}

	table := c.Layout().Build(records)

	outFormat := format
	if outFormat == "" {
		outFormat = c.Config().Report.Format
	}

	out, err := c.Renderer().Render(table, outFormat)
	if err != nil {
		return err
	}

	output := root.SharedFlags.Output
	if output == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(output, out, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("wrote %s report to %s (grand total %s)\n",
		outFormat, output, table.GrandTotal.StringFixed(2))
	return nil
}
