package repair

import (
	"context"
	"strings"
)

// nvidiaRemediation reinstalls the proprietary driver package the detection
// tool recommends for this machine. The tool itself is installed first when
// missing; an empty recommendation is tolerated with a warning.
func nvidiaRemediation(ctx context.Context, r *Run) error {
	if !r.Exec.Exists("ubuntu-drivers") {
		if err := r.Exec.Run(ctx, apt(false, "install", "-y", "ubuntu-drivers-common")); err != nil {
			return err
		}
	}

	out, _ := r.Exec.Output(ctx, Command{
		Program:  "ubuntu-drivers",
		Args:     []string{"devices"},
		Tolerate: true,
	})
	driver := parseRecommendedDriver(out)
	if driver == "" {
		r.Log.Warnf("no recommended NVIDIA driver reported; skipping driver reinstall")
		return nil
	}

	if err := r.Exec.Run(ctx, apt(false, "install", "--reinstall", "-y", driver)); err != nil {
		return err
	}
	r.Log.Okf("NVIDIA driver %s reinstalled", driver)
	return nil
}

// parseRecommendedDriver extracts the recommended driver package from
// `ubuntu-drivers devices` output, e.g.
//
//	driver   : nvidia-driver-550 - distro non-free recommended
func parseRecommendedDriver(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "recommended") {
			continue
		}
		for _, field := range strings.Fields(line) {
			if strings.HasPrefix(field, "nvidia-") {
				return field
			}
		}
	}
	return ""
}
