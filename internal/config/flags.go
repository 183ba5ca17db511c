package config

import (
	"strconv"

	"github.com/spf13/pflag"
)

// enableValue binds one half of an enable/disable flag pair to a shared
// Config field. pflag applies flags strictly left to right, so when both
// halves appear the last one wins without any extra bookkeeping.
type enableValue struct {
	target *bool
	// enables is what the target becomes when this flag is given bare
	// (or with "=true").
	enables bool
}

func (v *enableValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b {
		*v.target = v.enables
	} else {
		*v.target = !v.enables
	}
	return nil
}

func (v *enableValue) String() string {
	if v.target == nil {
		return "false"
	}
	return strconv.FormatBool(*v.target == v.enables)
}

func (v *enableValue) Type() string { return "bool" }

// addPair registers both halves of an enable/disable pair against one field.
func addPair(fs *pflag.FlagSet, target *bool, enable, disable, what string) {
	fs.Var(&enableValue{target: target, enables: true}, enable, "enable "+what)
	fs.Var(&enableValue{target: target, enables: false}, disable, "disable "+what)
	fs.Lookup(enable).NoOptDefVal = "true"
	fs.Lookup(disable).NoOptDefVal = "true"
}

// AddFlags registers every run flag onto fs, writing into cfg. cfg should
// already carry the defaults (and any environment overlay).
func AddFlags(fs *pflag.FlagSet, cfg *Config) {
	addPair(fs, &cfg.Nvidia, "with-nvidia", "no-nvidia", "NVIDIA driver remediation")
	addPair(fs, &cfg.ForceXorg, "force-xorg", "no-force-xorg", "forcing the Xorg session backend")
	fs.BoolVar(&cfg.KernelLatest, "kernel-latest", cfg.KernelLatest, "install the release HWE kernel meta-package")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "log every step without executing anything")
	fs.BoolVar(&cfg.SkipFallback, "skip-fallback", cfg.SkipFallback, "never install fallback terminals")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.DurationVar(&cfg.Wait, "wait", cfg.Wait, "how long the launch test waits before checking the terminal process")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "path to a YAML overrides file")
}
