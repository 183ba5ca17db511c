package repair

import (
	"context"
	"os"
	"strings"
)

// pythonAlternative re-points the python3 alternative at the older
// interpreter and unregisters a newer one if the alternative currently
// resolves to it. The newer binary itself is never removed, only its symlink
// registration.
func pythonAlternative(ctx context.Context, r *Run) error {
	if fileExists(pythonOld) {
		err := r.Exec.Run(ctx, Command{
			Program: "update-alternatives",
			Args:    []string{"--install", pythonLink, pythonAltName, pythonOld, pythonPriority},
		})
		if err != nil {
			return err
		}
		r.Log.Okf("%s pinned as the %s alternative (priority %s)", pythonOld, pythonAltName, pythonPriority)
	} else {
		r.Log.Warnf("%s not present; leaving the %s alternative untouched", pythonOld, pythonAltName)
	}

	if fileExists(pythonNew) && r.alternativeValue(ctx) == pythonNew {
		_ = r.Exec.Run(ctx, Command{
			Program:  "update-alternatives",
			Args:     []string{"--remove", pythonAltName, pythonNew},
			Tolerate: true,
		})
		r.Log.Infof("unregistered %s from the %s alternative (binary kept)", pythonNew, pythonAltName)
	}

	// Best-effort: show what python3 now resolves to.
	if out, _ := r.Exec.Output(ctx, Command{Program: pythonAltName, Args: []string{"--version"}, Tolerate: true}); out != "" {
		r.Log.Infof("interpreter version: %s", out)
	}
	return nil
}

// alternativeValue returns the path the python3 alternative currently points
// at, or "" when it cannot be determined.
func (r *Run) alternativeValue(ctx context.Context) string {
	out, _ := r.Exec.Output(ctx, Command{
		Program:  "update-alternatives",
		Args:     []string{"--query", pythonAltName},
		Tolerate: true,
	})
	return parseAlternativeValue(out)
}

// parseAlternativeValue extracts the "Value:" line from
// update-alternatives --query output.
func parseAlternativeValue(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, "Value:"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
