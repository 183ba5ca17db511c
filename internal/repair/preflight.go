package repair

import (
	"context"
	"fmt"
	"os"
)

func envSessionBus() string {
	return os.Getenv("DBUS_SESSION_BUS_ADDRESS")
}

// preflight verifies the environment before anything is touched: a display
// session is expected (warn only), apt-get must exist (fatal), and the
// distribution should identify as Ubuntu (warn only).
func preflight(ctx context.Context, r *Run) error {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		r.Log.Warnf("no graphical display detected (DISPLAY and WAYLAND_DISPLAY unset); repairs proceed, launch tests may be meaningless")
	}

	if !r.Exec.Exists("apt-get") {
		r.Log.Errf("apt-get not found; this tool only supports apt-based systems")
		return fmt.Errorf("apt-get not found on PATH")
	}

	if !r.Exec.Exists("lsb_release") {
		r.Log.Warnf("lsb_release not found; skipping distribution check")
		return nil
	}

	id, _ := r.Exec.Output(ctx, Command{Program: "lsb_release", Args: []string{"-si"}, Tolerate: true})
	release, _ := r.Exec.Output(ctx, Command{Program: "lsb_release", Args: []string{"-sr"}, Tolerate: true})
	switch {
	case id == "":
		r.Log.Warnf("could not determine distribution id")
	case id != expectedDistro:
		r.Log.Warnf("distribution is %s, not %s; package names may not match", id, expectedDistro)
	default:
		r.Log.Okf("running on %s %s", id, release)
	}
	return nil
}
