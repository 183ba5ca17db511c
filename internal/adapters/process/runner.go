// Package process executes external commands on behalf of the repair
// phases. All side effects flow through one Executor so dry-run
// short-circuiting and logging stay uniform.
package process

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/jmorcate/deskmend/internal/logging"
	"github.com/jmorcate/deskmend/internal/repair"
)

// Executor runs repair.Commands against the real system. It satisfies the
// repair.Runner port.
type Executor struct {
	Log    *logging.Logger
	DryRun bool
}

// NewExecutor creates an Executor bound to the run logger.
func NewExecutor(log *logging.Logger, dryRun bool) *Executor {
	return &Executor{Log: log, DryRun: dryRun}
}

// Run executes the command. In dry-run mode it only logs the would-be
// invocation. A non-zero exit is an error unless the command tolerates
// failure, in which case it is logged as a warning and swallowed.
func (e *Executor) Run(ctx context.Context, c repair.Command) error {
	if e.DryRun {
		e.Log.Infof("DRY: %s", c)
		return nil
	}
	e.Log.Infof("RUN: %s", c)

	cmd := e.build(ctx, c)

	if c.Detach {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		if err := cmd.Start(); err != nil {
			return e.fail(c, err)
		}
		// Reap in the background so the child never zombies.
		go func() { _ = cmd.Wait() }()
		return nil
	}

	var stderr bytes.Buffer
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, firstLine(msg))
		}
		return e.fail(c, err)
	}
	return nil
}

// Output executes the command and captures trimmed stdout. Dry-run returns
// an empty string so callers treat query results as absent.
func (e *Executor) Output(ctx context.Context, c repair.Command) (string, error) {
	if e.DryRun {
		e.Log.Infof("DRY: %s", c)
		return "", nil
	}
	e.Log.Infof("RUN: %s", c)

	cmd := e.build(ctx, c)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if err2 := e.fail(c, err); err2 != nil {
			return "", err2
		}
		return "", nil
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Exists reports whether the program resolves on PATH.
func (e *Executor) Exists(program string) bool {
	_, err := exec.LookPath(program)
	return err == nil
}

// build assembles the exec.Cmd, wrapping with sudo/env when the command
// targets the invoking user or adjusts the environment.
func (e *Executor) build(ctx context.Context, c repair.Command) *exec.Cmd {
	if c.AsUser != "" {
		// sudo -u <user> env [-u VAR]... [KEY=VALUE]... program args...
		argv := []string{"-u", c.AsUser, "env"}
		for _, k := range c.Unset {
			argv = append(argv, "-u", k)
		}
		argv = append(argv, c.EnvPairs()...)
		argv = append(argv, c.Program)
		argv = append(argv, c.Args...)
		return exec.CommandContext(ctx, "sudo", argv...)
	}

	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	if len(c.Env) > 0 || len(c.Unset) > 0 {
		env := os.Environ()
		if len(c.Unset) > 0 {
			kept := env[:0]
			for _, kv := range env {
				if !unsetMatch(kv, c.Unset) {
					kept = append(kept, kv)
				}
			}
			env = kept
		}
		env = append(env, c.EnvPairs()...)
		cmd.Env = env
	}
	return cmd
}

// fail applies the tolerate policy to a command error.
func (e *Executor) fail(c repair.Command, err error) error {
	if c.Tolerate {
		e.Log.Warnf("ignored failure: %s (%v)", c, err)
		return nil
	}
	e.Log.Errf("command failed: %s (%v)", c, err)
	return fmt.Errorf("%s: %w", c.Program, err)
}

func unsetMatch(kv string, unset []string) bool {
	name, _, ok := strings.Cut(kv, "=")
	if !ok {
		return false
	}
	for _, u := range unset {
		if name == u {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
