// Package cli wires the parsed configuration to the repair engine: privilege
// elevation, run context resolution, logger and executor construction, and
// exit-code mapping.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"golang.org/x/term"

	"github.com/jmorcate/deskmend"
	"github.com/jmorcate/deskmend/internal/adapters/process"
	"github.com/jmorcate/deskmend/internal/config"
	"github.com/jmorcate/deskmend/internal/logging"
	"github.com/jmorcate/deskmend/internal/repair"
	"github.com/jmorcate/deskmend/internal/sysinfo"
)

// RunOptions carries the parsed configuration plus the original argv, which
// the privilege guard replays under sudo.
type RunOptions struct {
	Cfg  config.Config
	Argv []string
}

// Run executes a full repair and returns the process exit code.
func Run(opts RunOptions) int {
	if os.Geteuid() != 0 {
		return elevate(opts.Cfg, opts.Argv)
	}

	sys, err := sysinfo.Resolve(time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	color := !opts.Cfg.NoColor && term.IsTerminal(int(os.Stdout.Fd()))
	log := logging.New(logging.Options{
		Path:  sys.LogPath,
		Color: color,
	})
	defer log.Close()

	var overrides *config.Overrides
	if opts.Cfg.ConfigPath != "" {
		overrides, err = config.LoadOverrides(opts.Cfg.ConfigPath)
		if err != nil {
			log.Errf("cannot load overrides: %v", err)
			return 1
		}
	}

	executor := process.NewExecutor(log, opts.Cfg.DryRun)
	run := repair.NewRun(opts.Cfg, sys, log, executor, overrides)

	sig := NewSignalContext(context.Background())
	defer sig.Cancel()

	log.Infof("deskmend %s starting as %s (invoking user: %s)", deskmend.Version, rootName(), sys.User)
	if opts.Cfg.DryRun {
		log.Infof("dry-run mode: commands are logged, nothing is executed")
	}

	if err := repair.NewEngine().Execute(sig, run); err != nil {
		if s := sig.Signal(); s != nil {
			log.Errf("aborted by signal %s; partial log at %s", s, sys.LogPath)
			return exitStatus(s)
		}
		log.Errf("repair aborted: %v; see log at %s", err, sys.LogPath)
		return commandExitCode(err)
	}

	log.Okf("repair complete; log written to %s", sys.LogPath)
	return 0
}

// elevate re-invokes the current binary under sudo, forwarding the parsed
// configuration as DESKMEND_* environment assignments so the elevated run
// behaves identically. sudo's own exit code propagates.
func elevate(cfg config.Config, argv []string) int {
	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot locate own executable: %v\n", err)
		return 1
	}

	// sudo VAR=value ... /path/to/deskmend <original args>
	args := append(cfg.EncodeEnv(), exe)
	args = append(args, argv...)

	cmd := exec.Command("sudo", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error: privilege elevation failed: %v\n", err)
		return 1
	}
	return 0
}

// commandExitCode maps an engine error to the process exit code,
// propagating the failing command's status where one exists.
func commandExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

func rootName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "root"
}
