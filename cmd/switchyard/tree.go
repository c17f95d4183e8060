package main

import (
	"github.com/aretw0/switchyard/internal/cli"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [tree-file]",
	Short: "Show the command tree",
	Long: `Prints the tree as markdown (rendered for the terminal) or as a Mermaid
flowchart. The stored session path is highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		format, _ := cmd.Flags().GetString("format")
		raw, _ := cmd.Flags().GetBool("raw")

		opts := cli.TreeOptions{
			Dir:    dir,
			Format: format,
			Raw:    raw,
			Flags:  cmd.Flags(),
		}
		if len(args) > 0 {
			opts.TreeFile = args[0]
		}
		return cli.RenderTree(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format (markdown, mermaid)")
	treeCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
}
