// Package split handles editing the split allocations of a stored record
package split

import (
	"context"
	"fmt"
	"strings"

	"expensereport/cmd/root"
	splitalloc "expensereport/internal/split"
	"expensereport/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	recordID string
	specs    []string
)

// Cmd represents the split command
var Cmd = &cobra.Command{
	Use:   "split",
	Short: "Replace the split allocations of an expense record",
	Long: `Split replaces a record's split allocations wholesale. Each --alloc flag
is CODE:AMOUNT for an absolute amount or CODE:PCT% for a percentage of the
record total. The unallocated remainder stays on the record's own code.

Example:
  expense-report split --id 4f7c... --alloc 6010-000:50 --alloc 6012-000:25%`,
	RunE: splitFunc,
}

func init() {
	Cmd.Flags().StringVar(&recordID, "id", "", "Record id to edit")
	Cmd.Flags().StringArrayVar(&specs, "alloc", nil, "Allocation as CODE:AMOUNT or CODE:PCT%")
	_ = Cmd.MarkFlagRequired("id")
}

func splitFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(context.Background())
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	inputs, err := parseSpecs(specs)
	if err != nil {
		return err
	}

	records, err := c.Records().Load()
	if err != nil {
		return err
	}

	record, ok := store.FindByID(records, recordID)
	if !ok {
		return fmt.Errorf("no record with id %s", recordID)
	}

	updated, err := c.Allocator().Apply(record, inputs)
	if err != nil {
		return err
	}

	// Replace the record in place; the allocator returned a copy.
	for i := range records {
		if records[i].ID == recordID {
			records[i] = updated
		}
	}
	if err := c.Records().Save(records); err != nil {
		return err
	}

	fmt.Printf("record %s: %d splits, primary allocation %s on %s\n",
		updated.ID, len(updated.Splits),
		updated.PrimaryAllocation().StringFixed(2), updated.AccountingCode)
	return nil
}

// parseSpecs parses CODE:AMOUNT / CODE:PCT% flags into allocator inputs,
// preserving flag order.
func parseSpecs(specs []string) ([]splitalloc.Input, error) {
	inputs := make([]splitalloc.Input, 0, len(specs))
	for _, spec := range specs {
		idx := strings.LastIndex(spec, ":")
		if idx <= 0 || idx == len(spec)-1 {
			return nil, fmt.Errorf("invalid allocation %q (expected CODE:AMOUNT or CODE:PCT%%)", spec)
		}
		code := spec[:idx]
		value := spec[idx+1:]

		if strings.HasSuffix(value, "%") {
			pct, err := decimal.NewFromString(strings.TrimSuffix(value, "%"))
			if err != nil {
				return nil, fmt.Errorf("invalid percentage in %q: %w", spec, err)
			}
			inputs = append(inputs, splitalloc.Input{Code: code, Percentage: &pct})
			continue
		}

		amount, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", spec, err)
		}
		inputs = append(inputs, splitalloc.Input{Code: code, Amount: &amount})
	}
	return inputs, nil
}
