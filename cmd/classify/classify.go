// Package classify handles standalone expense classification
package classify

import (
	"context"
	"fmt"

	"expensereport/cmd/root"
	"expensereport/internal/catalog"

	"github.com/spf13/cobra"
)

var (
	merchant    string
	description string
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Infer the accounting code for a merchant and description",
	Long: `Classify runs the keyword heuristic on a merchant name and free-text
description and prints the accounting code it would assign. The heuristic
is deterministic and always yields a code; Office & General is the
universal default.`,
	RunE: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Merchant or title text")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Free-text description")
	_ = Cmd.MarkFlagRequired("merchant")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(context.Background())
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	code := c.Classifier().Classify(merchant, description)
	entry, _ := catalog.Lookup(code)
	fmt.Printf("%s (%s)\n", code, entry.CategoryName)
	return nil
}
