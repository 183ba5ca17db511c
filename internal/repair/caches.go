package repair

import (
	"context"
	"os"
	"path/filepath"
)

// cacheDirs are the per-user cache subdirectories removed by the cleanup
// phase, relative to the invoking user's home.
var cacheDirs = []string{
	".cache/dconf",
	".cache/fontconfig",
	".cache/mesa_shader_cache",
}

// cacheCleanup removes stale user caches and rebuilds the font cache as the
// invoking user. Everything here is best-effort.
func cacheCleanup(ctx context.Context, r *Run) error {
	for _, rel := range cacheDirs {
		dir := filepath.Join(r.Sys.Home, rel)
		if r.Cfg.DryRun {
			r.Log.Infof("DRY: remove %s", dir)
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			r.Log.Warnf("could not remove %s: %v", dir, err)
			continue
		}
		r.Log.Infof("removed %s", dir)
	}

	_ = r.Exec.Run(ctx, r.userCmd(true, "fc-cache", "-f"))
	return nil
}
