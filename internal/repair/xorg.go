package repair

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	waylandDisabled = regexp.MustCompile(`^\s*WaylandEnable\s*=\s*false\s*$`)
	waylandKey      = regexp.MustCompile(`^\s*#?\s*WaylandEnable\s*=`)
)

// forceXorg disables the Wayland backend in the GDM configuration so the
// next login uses Xorg. The file is backed up first; the edit itself is a
// single-line rewrite or append and is idempotent.
func forceXorg(ctx context.Context, r *Run) error {
	path := r.GDMConfigPath
	if !fileExists(path) {
		r.Log.Warnf("%s not found; skipping Xorg toggle (not a GDM system?)", path)
		return nil
	}

	r.backupFile(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	edited, changed, already := toggleWayland(string(data))
	if already {
		r.Log.Infof("Wayland already disabled in %s; nothing to do", path)
		return nil
	}
	if !changed {
		// toggleWayland always changes when not already disabled.
		return nil
	}

	if r.Cfg.DryRun {
		r.Log.Infof("DRY: set WaylandEnable=false in %s", path)
	} else {
		if err := atomicWrite(path, []byte(edited), fileMode(path)); err != nil {
			return fmt.Errorf("update %s: %w", path, err)
		}
		r.Log.Okf("WaylandEnable=false written to %s", path)
	}
	r.Log.Infof("a display manager restart (or reboot) is required for the Xorg switch to take effect")
	return nil
}

// toggleWayland returns the edited file content. already means the disabling
// value was present and no edit is needed. When the key exists (commented or
// with another value) the line is rewritten in place; otherwise the setting
// is appended.
func toggleWayland(content string) (edited string, changed, already bool) {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if waylandDisabled.MatchString(line) {
			return content, false, true
		}
	}
	for i, line := range lines {
		if waylandKey.MatchString(line) {
			lines[i] = "WaylandEnable=false"
			return strings.Join(lines, "\n"), true, false
		}
	}
	if !strings.HasSuffix(content, "\n") && content != "" {
		content += "\n"
	}
	return content + "WaylandEnable=false\n", true, false
}

// backupFile copies path into the backup directory with a timestamp suffix.
// Failure to back up is tolerated: the edit still proceeds.
func (r *Run) backupFile(path string) {
	stamp := r.Sys.Started.Format("20060102-150405")
	dest := filepath.Join(r.Sys.BackupDir, fmt.Sprintf("%s.%s", filepath.Base(path), stamp))

	if r.Cfg.DryRun {
		r.Log.Infof("DRY: back up %s to %s", path, dest)
		return
	}

	if err := copyFile(path, dest); err != nil {
		r.Log.Warnf("could not back up %s: %v", path, err)
		return
	}
	r.Log.Infof("backed up %s to %s", path, dest)
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// atomicWrite writes data to a temp file in the target directory and renames
// it over path, so a crash never leaves a half-written config.
func atomicWrite(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".deskmend-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
