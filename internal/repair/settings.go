package repair

import "context"

// interfaceSettings are the org.gnome.desktop.interface keys restored to the
// stock Yaru look.
var interfaceSettings = [][2]string{
	{"gtk-theme", "Yaru"},
	{"icon-theme", "Yaru"},
	{"cursor-theme", "Yaru"},
	{"color-scheme", "default"},
}

// settingsReset restores terminal preferences and the basic desktop look as
// the invoking user. Every call is best-effort; a user with no session bus
// gets one bootstrapped via dbus-launch. Without gsettings the whole phase
// is skipped.
func settingsReset(ctx context.Context, r *Run) error {
	if !r.Exec.Exists("gsettings") {
		r.Log.Warnf("gsettings not found; skipping settings reset")
		return nil
	}

	_ = r.Exec.Run(ctx, r.userCmd(true, "dconf", "reset", "-f", "/org/gnome/terminal/"))

	for _, kv := range interfaceSettings {
		_ = r.Exec.Run(ctx, r.userCmd(true, "gsettings", "set", "org.gnome.desktop.interface", kv[0], kv[1]))
	}

	_ = r.Exec.Run(ctx, r.userCmd(true, "gsettings", "set",
		"org.gnome.settings-daemon.plugins.media-keys", "terminal", "['<Primary><Alt>t']"))

	r.Log.Okf("user settings reset issued for %s", r.Sys.User)
	return nil
}
