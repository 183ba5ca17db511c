package repair

import (
	"context"
	"fmt"
)

// kernelInstall installs the release-specific hardware-enablement kernel
// meta-package when the index carries it, falling back to the generic
// meta-package otherwise.
func kernelInstall(ctx context.Context, r *Run) error {
	release := defaultRelease
	if r.Exec.Exists("lsb_release") {
		if out, _ := r.Exec.Output(ctx, Command{Program: "lsb_release", Args: []string{"-sr"}, Tolerate: true}); out != "" {
			release = out
		}
	} else {
		r.Log.Warnf("lsb_release not found; assuming release %s", defaultRelease)
	}

	pkg := "linux-generic"
	hwe := fmt.Sprintf("linux-generic-hwe-%s", release)
	if r.packageAvailable(ctx, hwe) {
		pkg = hwe
	} else {
		r.Log.Infof("%s not in the package index; installing %s instead", hwe, pkg)
	}

	if err := r.Exec.Run(ctx, apt(false, "install", "-y", pkg)); err != nil {
		return err
	}
	r.Log.Okf("kernel meta-package %s installed", pkg)
	return nil
}

// packageAvailable reports whether the package index knows pkg.
func (r *Run) packageAvailable(ctx context.Context, pkg string) bool {
	out, _ := r.Exec.Output(ctx, Command{
		Program:  "apt-cache",
		Args:     []string{"show", pkg},
		Tolerate: true,
	})
	return out != ""
}
