package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintHeader outputs the styled tool header shown above the phase plan.
func PrintHeader(version string) {
	p := termenv.ColorProfile()
	name := termenv.String("deskmend").Foreground(p.Color("#34d399")).Bold()
	tag := termenv.String("desktop terminal-stack repair").Foreground(p.Color("#6ee7b7"))

	fmt.Println()
	fmt.Printf("  %s %s · %s\n", name, version, tag)
	fmt.Println()
}
