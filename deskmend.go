/*
Package deskmend repairs a broken Ubuntu GNOME terminal/desktop stack after a
Python interpreter upgrade conflict.

It executes thirteen ordered repair phases: re-pinning the python3
alternative, reinstalling the terminal stack, optionally forcing the Xorg
session backend, resetting user settings, clearing caches, and verifying that
the terminal emulator actually launches. Fallback terminals, NVIDIA driver
remediation and HWE kernel installation are opt-in extras.

The package root only carries identity; the engine lives in internal/repair
and the CLI in cmd/deskmend.
*/
package deskmend

// Version is the current release of deskmend.
// Overridden at build time via -ldflags "-X github.com/jmorcate/deskmend.Version=...".
var Version = "0.3.1"
