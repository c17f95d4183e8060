package main

import (
	"github.com/aretw0/switchyard/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [tree-file]",
	Short: "Choose a command from the tree and run it",
	Long: `Offers to retry the last path or start a new selection, walks the tree
and runs the chosen command. Without a tree file, commands.yaml (or .yml,
.json, .jsonc) in --dir is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		path, _ := cmd.Flags().GetString("path")
		debug, _ := cmd.Flags().GetBool("debug")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		opts := cli.RunOptions{
			Dir:      dir,
			Path:     path,
			Debug:    debug,
			NoBanner: noBanner,
			Flags:    cmd.Flags(),
		}
		if len(args) > 0 {
			opts.TreeFile = args[0]
		}
		return cli.Execute(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	for _, c := range []*cobra.Command{runCmd, rootCmd} {
		c.Flags().String("path", "", "Replay an explicit path, e.g. build/clean")
		c.Flags().Bool("plain", false, "Use numbered line prompts instead of the interactive UI")
		c.Flags().Bool("debug", false, "Log to stderr at debug level")
		c.Flags().Bool("no-banner", false, "Do not print the banner")
		c.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile on exit")
		c.Flags().String("env", "", "Secret-injection environment (overrides injection.env)")
	}

	// 'run' is the default command.
	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
}
