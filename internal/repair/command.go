package repair

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command is one external invocation, modeled as a value rather than an
// interpolated shell line.
type Command struct {
	// Program is the executable name or path.
	Program string

	// Args are passed verbatim; nothing is shell-expanded.
	Args []string

	// Tolerate downgrades a non-zero exit to a warning. The caller sees nil.
	Tolerate bool

	// AsUser runs the command as this (non-elevated) user via sudo -u.
	AsUser string

	// Env adds KEY=VALUE pairs to the child environment.
	Env map[string]string

	// Unset removes these variables from the child environment.
	Unset []string

	// Detach starts the command in its own session and does not wait for
	// it. Detached commands report success as soon as the process starts.
	Detach bool
}

// EnvPairs returns the Env map as sorted KEY=VALUE strings, so command
// rendering and execution stay deterministic.
func (c Command) EnvPairs() []string {
	pairs := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// String renders the invocation the way it is logged, including the user and
// environment wrapping.
func (c Command) String() string {
	var b strings.Builder
	if c.AsUser != "" {
		fmt.Fprintf(&b, "sudo -u %s ", c.AsUser)
	}
	if len(c.Unset) > 0 || len(c.Env) > 0 {
		b.WriteString("env")
		for _, k := range c.Unset {
			fmt.Fprintf(&b, " -u %s", k)
		}
		for _, kv := range c.EnvPairs() {
			b.WriteByte(' ')
			b.WriteString(kv)
		}
		b.WriteByte(' ')
	}
	b.WriteString(c.Program)
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	return b.String()
}

// Runner is the port through which phases reach the outside world. The
// production implementation is process.Executor; tests substitute a scripted
// fake.
type Runner interface {
	// Run executes the command, honoring dry-run and tolerate policies.
	Run(ctx context.Context, c Command) error

	// Output executes the command and returns its trimmed stdout. In
	// dry-run mode, and on tolerated failure, it returns "".
	Output(ctx context.Context, c Command) (string, error)

	// Exists reports whether the program resolves on PATH.
	Exists(program string) bool
}
