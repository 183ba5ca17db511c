package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmorcate/deskmend"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of deskmend",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("deskmend version %s\n", strings.TrimSpace(deskmend.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
