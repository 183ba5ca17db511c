package repair

import "context"

// troubleshootHint is printed verbatim when the terminal server is still not
// running at the end of the run.
const troubleshootHint = "sudo apt-get install --reinstall -y gnome-terminal && dbus-launch gnome-terminal"

// diagnostics reports the final state: the alternative resolution, whether
// the apt binding imports, and whether the terminal server is up. Nothing
// here is fatal.
func diagnostics(ctx context.Context, r *Run) error {
	_ = r.Exec.Run(ctx, Command{
		Program:  "update-alternatives",
		Args:     []string{"--display", pythonAltName},
		Tolerate: true,
	})

	out, _ := r.Exec.Output(ctx, Command{
		Program:  pythonAltName,
		Args:     []string{"-c", `import apt; print("python3-apt import OK")`},
		Tolerate: true,
	})
	if out != "" {
		r.Log.Okf("%s", out)
	} else if !r.Cfg.DryRun {
		r.Log.Warnf("python3-apt failed to import; apt tooling may still be broken")
	}

	if r.Cfg.DryRun {
		return nil
	}
	if r.terminalRunning(ctx) {
		r.Log.Okf("%s is running", terminalServerPattern)
	} else {
		r.Log.Warnf("%s is not running; try: %s", terminalServerPattern, troubleshootHint)
	}
	return nil
}

// summary emits one line per active flag and closes with a reboot
// recommendation when system-level changes were applied.
func summary(ctx context.Context, r *Run) error {
	if r.Cfg.DryRun {
		r.Log.Infof("dry-run: no changes were made; the lines above show what a real run would do")
	}
	if r.Cfg.ForceXorg {
		r.Log.Infof("Xorg session backend enforced via %s", r.GDMConfigPath)
	}
	if r.Cfg.Nvidia {
		r.Log.Infof("NVIDIA driver remediation was enabled")
	}
	if r.Cfg.KernelLatest {
		r.Log.Infof("kernel meta-package installation was enabled")
	}
	if r.Cfg.SkipFallback {
		r.Log.Infof("fallback terminal installation was disabled")
	}
	if r.TerminalConfirmed {
		r.Log.Okf("terminal emulator confirmed running")
	} else {
		r.Log.Infof("terminal emulator start was not confirmed")
	}

	if r.Cfg.Nvidia || r.Cfg.KernelLatest || r.Cfg.ForceXorg {
		r.Log.Infof("reboot recommended: driver, kernel or display-server changes only apply after a restart")
	}
	return nil
}
