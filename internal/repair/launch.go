package repair

import (
	"context"
	"time"
)

// launchTest starts the terminal emulator detached as the invoking user and,
// after a fixed wait, checks whether its server process is alive. The result
// is the one piece of state later phases read. Dry-run records "not
// confirmed" without launching anything.
func launchTest(ctx context.Context, r *Run) error {
	if r.Cfg.DryRun {
		r.Log.Infof("dry-run: launch test skipped; terminal start not confirmed")
		r.TerminalConfirmed = false
		return nil
	}

	// Stale GNOME_TERMINAL_* variables from a dead server make the client
	// exit immediately; a fixed locale avoids profile-dependent failures.
	launch := Command{
		Program:  "gnome-terminal",
		AsUser:   r.Sys.User,
		Unset:    []string{"GNOME_TERMINAL_SCREEN", "GNOME_TERMINAL_SERVICE"},
		Env:      map[string]string{"LANG": "C.UTF-8"},
		Detach:   true,
		Tolerate: true,
	}
	_ = r.Exec.Run(ctx, launch)

	select {
	case <-time.After(r.Cfg.Wait):
	case <-ctx.Done():
		return ctx.Err()
	}

	r.TerminalConfirmed = r.terminalRunning(ctx)
	if r.TerminalConfirmed {
		r.Log.Okf("%s is running for %s", terminalServerPattern, r.Sys.User)
	} else {
		r.Log.Warnf("%s did not come up within %s", terminalServerPattern, r.Cfg.Wait)
	}
	return nil
}

// terminalRunning samples the process table once for the terminal server
// owned by the invoking user.
func (r *Run) terminalRunning(ctx context.Context) bool {
	out, _ := r.Exec.Output(ctx, Command{
		Program:  "pgrep",
		Args:     []string{"-u", r.Sys.User, "-f", terminalServerPattern},
		Tolerate: true,
	})
	return out != ""
}

// fallbackTerminals installs alternate emulators when the primary one never
// came up, then launches them best-effort so the user is not left without a
// shell.
func fallbackTerminals(ctx context.Context, r *Run) error {
	args := append([]string{"install", "-y"}, r.FallbackPackages...)
	if err := r.Exec.Run(ctx, apt(false, args...)); err != nil {
		return err
	}
	r.Log.Okf("fallback terminals installed: %v", r.FallbackPackages)

	if r.Cfg.DryRun {
		return nil
	}
	for _, term := range r.FallbackPackages {
		_ = r.Exec.Run(ctx, Command{
			Program:  term,
			AsUser:   r.Sys.User,
			Detach:   true,
			Tolerate: true,
		})
	}
	return nil
}
