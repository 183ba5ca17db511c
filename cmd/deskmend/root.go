package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmorcate/deskmend/internal/config"
)

// cfg starts from the documented defaults overlaid with any DESKMEND_*
// variables (set by the privilege guard on re-invocation); flags win last.
var cfg = func() config.Config {
	c := config.Default()
	c.ApplyEnv()
	return c
}()

var rootCmd = &cobra.Command{
	Use:   "deskmend",
	Short: "deskmend repairs a broken Ubuntu GNOME terminal stack",
	Long: `deskmend restores a desktop whose terminal emulator stopped launching after
a Python upgrade conflict. It re-pins the python3 alternative, reinstalls the
terminal stack, optionally forces the Xorg session backend, resets user
settings, clears caches and verifies the terminal actually starts.

Run without a subcommand it performs the repair; use --dry-run to preview
every step without changing anything.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI and exits the process with the mapped status code.
func Execute() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Unknown option: %s\n", flagToken(err))
		fmt.Fprint(os.Stderr, cmd.UsageString())
		os.Exit(1)
		return nil
	})

	if err := rootCmd.Execute(); err != nil {
		if tok, ok := strings.CutPrefix(err.Error(), "unknown command "); ok {
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", strings.Trim(strings.SplitN(tok, " ", 2)[0], `"`))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		os.Exit(1)
	}
}

// flagToken recovers the offending token from a pflag parse error.
func flagToken(err error) string {
	msg := err.Error()
	if tok, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return tok
	}
	if tok, ok := strings.CutPrefix(msg, "unknown shorthand flag: "); ok {
		if i := strings.Index(tok, " in "); i >= 0 {
			return strings.TrimSpace(tok[i+4:])
		}
		return tok
	}
	return msg
}

func init() {
	config.AddFlags(rootCmd.PersistentFlags(), &cfg)
}
