package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/switchyard/internal/cli"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "switchyard [tree-file]",
	Short: "Switchyard is an interactive command dispatcher",
	Long: `Switchyard walks a tree of commands with you, remembers the path so it can
be retried, and runs the command. Commands marked with dry_run_first are
rehearsed without the broadcast flag and only run for real after
confirmation and passcode.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !domain.IsEarlyExit(err) {
		var exitErr *domain.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Project directory (tree files, switchyard.yaml, sessions)")
	rootCmd.PersistentFlags().String("session", "", "Session file (default .switchyard/sessions/<tree>.json)")
}
