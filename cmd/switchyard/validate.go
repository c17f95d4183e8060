package main

import (
	"fmt"

	"github.com/aretw0/switchyard/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [tree-file]",
	Short: "Check the command tree for consistency",
	Long:  `Loads the tree and reports empty menus, empty commands, duplicate labels and malformed leaves.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		var treeFile string
		if len(args) > 0 {
			treeFile = args[0]
		}
		if err := cli.Validate(cmd.OutOrStdout(), dir, treeFile); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
