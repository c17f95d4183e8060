package main

import (
	"github.com/aretw0/switchyard/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear the remembered path",
	Long:  `Each tree remembers the last chosen path in .switchyard/sessions/<tree>.json.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [tree-file]",
	Short: "Print the stored path and whether it still resolves",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		return cli.ShowSession(cmd.Context(), cmd.OutOrStdout(), dir, treeArg(args), cmd.Flags())
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm [tree-file]",
	Short: "Forget the stored path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		return cli.ClearSession(cmd.Context(), cmd.OutOrStdout(), dir, treeArg(args), cmd.Flags())
	},
}

func treeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
