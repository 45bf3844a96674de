// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"expensereport/internal/config"
	"expensereport/internal/container"
	"expensereport/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-report",
		Short: "A CLI tool to turn scanned receipt PDFs into a categorized expense report.",
		Long: `expense-report ingests scanned receipt PDFs, extracts structured expense
records with Gemini, lets you categorize and split them by accounting code,
and renders a sectioned expense report with running totals.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to expense-report!")
			Log.Info("Use --help to see available commands")
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// GetLogrusAdapter wraps the shared logrus logger in the logging.Logger interface
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// NewContainer loads the configuration and wires the dependency container.
// Commands call this at the top of their Run functions.
func NewContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return container.NewContainer(ctx, cfg)
}
