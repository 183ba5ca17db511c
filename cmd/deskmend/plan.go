package main

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmorcate/deskmend"
	"github.com/jmorcate/deskmend/internal/presentation/tui"
)

//go:embed plan.md
var planDoc string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the repair phase plan without touching anything",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintHeader(deskmend.Version)
		render := tui.NewRenderer()
		out, err := render(planDoc)
		if err != nil {
			out = planDoc
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
