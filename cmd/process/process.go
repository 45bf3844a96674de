// Package process handles batch ingestion of receipt PDFs
package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"expensereport/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process a directory of receipt PDFs into expense records",
	Long: `Process extracts text from every PDF in the input directory, sends it to
the extraction model, validates the result, and appends the successful
records to the session record store.

Receipts are processed concurrently with a bounded worker pool. One bad
receipt never aborts the batch; failures are listed at the end.

Example:
  expense-report process -i receipts/`,
	RunE: processFunc,
}

func processFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	if inputDir == "" {
		return fmt.Errorf("input directory is required (use -i)")
	}

	ctx := context.Background()
	c, err := root.NewContainer(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	files, err := listPDFs(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", inputDir)
	}

	processor, err := c.NewProcessor()
	if err != nil {
		return err
	}

	summary := processor.ProcessFiles(ctx, files)

	records, err := c.Records().Load()
	if err != nil {
		return err
	}
	records = append(records, summary.Records()...)
	if err := c.Records().Save(records); err != nil {
		return err
	}

	fmt.Println(summary.String())
	if failed := summary.Failed(); len(failed) > 0 {
		fmt.Println("the following failed:")
		for _, f := range failed {
			fmt.Printf("  %s: %v\n", filepath.Base(f.File), f.Err)
		}
	}

	return nil
}

// listPDFs returns the PDF files in dir, sorted by name for a stable
// processing order.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
