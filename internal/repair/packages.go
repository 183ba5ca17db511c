package repair

import "context"

// aptBindingReinstall refreshes the package index (best-effort) and force
// reinstalls python3-apt. The reinstall is fatal: the final diagnostics and
// any later apt tooling depend on a working binding.
func aptBindingReinstall(ctx context.Context, r *Run) error {
	_ = r.Exec.Run(ctx, apt(true, "update"))

	if err := r.Exec.Run(ctx, apt(false, "install", "--reinstall", "-y", aptBinding)); err != nil {
		return err
	}
	r.Log.Okf("%s reinstalled", aptBinding)
	return nil
}

// terminalStackReinstall force-reinstalls the terminal emulator and its
// library/schema dependencies.
func terminalStackReinstall(ctx context.Context, r *Run) error {
	args := append([]string{"install", "--reinstall", "-y"}, r.TerminalPackages...)
	if err := r.Exec.Run(ctx, apt(false, args...)); err != nil {
		return err
	}
	r.Log.Okf("terminal stack reinstalled (%d packages)", len(r.TerminalPackages))
	return nil
}
