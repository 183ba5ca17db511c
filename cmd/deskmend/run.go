package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmorcate/deskmend/internal/cli"
)

// runCmd performs the actual repair. It is also the root command's default
// action so `deskmend --dry-run` works without naming the subcommand.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the thirteen repair phases",
	Long: `Executes the ordered repair sequence. Without root privileges the command
re-invokes itself under sudo, forwarding the parsed flags through the
environment so the elevated run behaves identically.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(cli.Run(cli.RunOptions{
			Cfg:  cfg,
			Argv: os.Args[1:],
		}))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Make 'run' the default when no subcommand is given.
	rootCmd.Args = runCmd.Args
	rootCmd.Run = runCmd.Run
}
