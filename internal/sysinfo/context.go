// Package sysinfo derives the immutable run context: who invoked the tool,
// where their home directory is, and where backups and logs belong.
package sysinfo

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"
)

// Context captures the environment-derived facts of a single run.
// It is computed once at startup and never mutated afterwards.
type Context struct {
	// User is the invoking (non-elevated) user. Under sudo this is
	// SUDO_USER, not root.
	User string

	// Home is the invoking user's home directory.
	Home string

	// BackupDir receives timestamped copies of files before in-place edits.
	BackupDir string

	// LogPath is the resolved log file location for this run.
	LogPath string

	// Started is the run start time; it also stamps the log and backup names.
	Started time.Time
}

const stateDirName = ".deskmend"

// systemLogDir is a var so tests can redirect it.
var systemLogDir = "/var/log/deskmend"

// Resolve builds the run Context. The log path prefers the system log
// directory and falls back to a directory under the invoking user's home
// when the system directory cannot be created or written.
func Resolve(now time.Time) (*Context, error) {
	name, home, err := invokingUser()
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		User:      name,
		Home:      home,
		BackupDir: filepath.Join(home, stateDirName, "backups"),
		Started:   now,
	}

	dir, err := resolveLogDir(home)
	if err != nil {
		return nil, err
	}
	logName := fmt.Sprintf("deskmend-%s.log", now.Format("20060102-150405"))
	ctx.LogPath = filepath.Join(dir, logName)
	return ctx, nil
}

// invokingUser identifies the real user behind the process. SUDO_USER wins
// over USER so that per-user phases (gsettings, cache cleanup, launch tests)
// target the desktop session owner rather than root.
func invokingUser() (name, home string, err error) {
	name = os.Getenv("SUDO_USER")
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		u, uerr := user.Current()
		if uerr != nil {
			return "", "", fmt.Errorf("cannot determine invoking user: %w", uerr)
		}
		name = u.Username
	}

	if u, uerr := user.Lookup(name); uerr == nil {
		return name, u.HomeDir, nil
	}

	// Lookup can fail in minimal environments (no NSS); fall back to $HOME.
	if home = os.Getenv("HOME"); home != "" {
		return name, home, nil
	}
	return "", "", fmt.Errorf("cannot determine home directory for user %q", name)
}

// resolveLogDir returns the first writable log directory, preferring the
// system location. An error means neither the system directory nor the
// per-user fallback accepts writes, which is fatal for the run.
func resolveLogDir(home string) (string, error) {
	if dirWritable(systemLogDir) {
		return systemLogDir, nil
	}
	fallback := filepath.Join(home, stateDirName, "logs")
	if dirWritable(fallback) {
		return fallback, nil
	}
	return "", fmt.Errorf("no writable log directory (tried %s and %s)", systemLogDir, fallback)
}

// dirWritable reports whether dir exists (or can be created) and accepts a
// new file.
func dirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	probe, err := os.CreateTemp(dir, ".deskmend-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}
