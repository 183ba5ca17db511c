package repair

import (
	"context"
	"fmt"
)

// Phase is one ordered step of the repair sequence. Phases are never retried
// and never rolled back; the first fatal error aborts the run.
type Phase struct {
	// Name appears in the phase banner and in failure messages.
	Name string

	// When gates the phase. nil means the phase always runs. A gated-out
	// phase is logged as skipped, not silently dropped.
	When func(*Run) bool

	// Exec performs the phase. Returning an error aborts the whole run.
	Exec func(context.Context, *Run) error
}

// Engine executes the ordered phase sequence.
type Engine struct {
	phases []Phase
}

// NewEngine returns an engine over the standard thirteen phases.
func NewEngine() *Engine {
	return &Engine{phases: Phases()}
}

// Execute runs every phase in order. Context cancellation (interrupt) stops
// the sequence between phases; a failing phase stops it immediately.
func (e *Engine) Execute(ctx context.Context, r *Run) error {
	total := len(e.phases)
	for i, p := range e.phases {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.When != nil && !p.When(r) {
			r.Log.Infof("phase %d/%d skipped: %s", i+1, total, p.Name)
			continue
		}
		r.Log.Infof("=== phase %d/%d: %s ===", i+1, total, p.Name)
		if err := p.Exec(ctx, r); err != nil {
			return fmt.Errorf("phase %q: %w", p.Name, err)
		}
	}
	return nil
}

// Phases returns the standard phase list in execution order.
func Phases() []Phase {
	return []Phase{
		{Name: "pre-flight checks", Exec: preflight},
		{Name: "python alternative repair", Exec: pythonAlternative},
		{Name: "package index refresh and apt binding reinstall", Exec: aptBindingReinstall},
		{Name: "terminal stack reinstall", Exec: terminalStackReinstall},
		{Name: "force Xorg session backend", When: func(r *Run) bool { return r.Cfg.ForceXorg }, Exec: forceXorg},
		{Name: "user settings reset", Exec: settingsReset},
		{Name: "cache cleanup", Exec: cacheCleanup},
		{Name: "terminal launch test", Exec: launchTest},
		{Name: "fallback terminals", When: func(r *Run) bool { return !r.TerminalConfirmed && !r.Cfg.SkipFallback }, Exec: fallbackTerminals},
		{Name: "NVIDIA driver remediation", When: func(r *Run) bool { return r.Cfg.Nvidia }, Exec: nvidiaRemediation},
		{Name: "kernel meta-package install", When: func(r *Run) bool { return r.Cfg.KernelLatest }, Exec: kernelInstall},
		{Name: "final diagnostics", Exec: diagnostics},
		{Name: "summary", Exec: summary},
	}
}
