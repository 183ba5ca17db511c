// Package repair contains the desktop-repair domain: the command model, the
// Runner port, the ordered phase list and the engine that drives it.
//
// The repair target is an Ubuntu GNOME session whose terminal stack broke
// after a Python interpreter upgrade: the python3 alternative points at an
// interpreter that python3-apt was not built for, gnome-terminal refuses to
// start, and user-level settings may be wedged.
package repair

import (
	"github.com/jmorcate/deskmend/internal/config"
	"github.com/jmorcate/deskmend/internal/logging"
	"github.com/jmorcate/deskmend/internal/sysinfo"
)

// Built-in repair targets. The YAML overrides file can replace the package
// lists and the GDM config path for derivative distributions.
var (
	// terminalPackages is the terminal stack reinstalled by phase 4:
	// emulator, its data files, the VTE backend, GTK, the settings
	// schemas, the dconf tools and the D-Bus/X11 helper.
	terminalPackages = []string{
		"gnome-terminal",
		"gnome-terminal-data",
		"libvte-2.91-0",
		"libgtk-3-0",
		"gsettings-desktop-schemas",
		"dconf-cli",
		"dconf-gsettings-backend",
		"dbus-x11",
	}

	// fallbackPackages are installed only when the primary terminal never
	// comes up.
	fallbackPackages = []string{"xterm", "tilix"}
)

// Interpreter paths are vars so tests can point them at fixtures.
var (
	pythonOld = "/usr/bin/python3.12"
	pythonNew = "/usr/bin/python3.13"
)

const (
	gdmConfigPath = "/etc/gdm3/custom.conf"

	pythonLink     = "/usr/bin/python3"
	pythonAltName  = "python3"
	pythonPriority = "2"

	aptBinding = "python3-apt"

	terminalServerPattern = "gnome-terminal-server"

	expectedDistro = "Ubuntu"
	defaultRelease = "24.04"
)

// Run carries everything a phase needs, plus the one piece of state produced
// mid-run: whether the terminal emulator was confirmed running.
type Run struct {
	Cfg  config.Config
	Sys  *sysinfo.Context
	Log  *logging.Logger
	Exec Runner

	TerminalPackages []string
	FallbackPackages []string
	GDMConfigPath    string

	// TerminalConfirmed is written by the launch-test phase and read by
	// the fallback phase and the final diagnostics.
	TerminalConfirmed bool
}

// NewRun builds the run state from the parsed configuration, applying any
// loaded overrides on top of the built-in defaults.
func NewRun(cfg config.Config, sys *sysinfo.Context, log *logging.Logger, exec Runner, o *config.Overrides) *Run {
	r := &Run{
		Cfg:              cfg,
		Sys:              sys,
		Log:              log,
		Exec:             exec,
		TerminalPackages: terminalPackages,
		FallbackPackages: fallbackPackages,
		GDMConfigPath:    gdmConfigPath,
	}
	if o != nil {
		if len(o.TerminalPackages) > 0 {
			r.TerminalPackages = o.TerminalPackages
		}
		if len(o.FallbackPackages) > 0 {
			r.FallbackPackages = o.FallbackPackages
		}
		if o.GDMConfigPath != "" {
			r.GDMConfigPath = o.GDMConfigPath
		}
		if o.Wait > 0 {
			r.Cfg.Wait = o.Wait
		}
	}
	return r
}

// apt builds a package-manager command. Every apt call runs non-interactive
// so a broken desktop never blocks on a debconf prompt.
func apt(tolerate bool, args ...string) Command {
	return Command{
		Program:  "apt-get",
		Args:     args,
		Tolerate: tolerate,
		Env:      map[string]string{"DEBIAN_FRONTEND": "noninteractive"},
	}
}

// userCmd builds a command executed as the invoking user. When the process
// has no session bus address the call is wrapped in dbus-launch so gsettings
// and dconf can reach a bus.
func (r *Run) userCmd(tolerate bool, program string, args ...string) Command {
	c := Command{
		Program:  program,
		Args:     args,
		Tolerate: tolerate,
		AsUser:   r.Sys.User,
	}
	if !r.hasSessionBus() {
		c.Args = append([]string{program}, args...)
		c.Program = "dbus-launch"
	}
	return c
}

// hasSessionBus reports whether a D-Bus session address survived into our
// environment.
func (r *Run) hasSessionBus() bool {
	return envSessionBus() != ""
}
