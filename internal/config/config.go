// Package config holds the immutable run configuration: parsed flags, the
// environment round-trip used across privilege re-execution, and optional
// YAML overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the parsed flag set for one run. It is constructed once and
// passed explicitly to every phase; nothing mutates it after parsing.
type Config struct {
	// Nvidia enables the NVIDIA driver remediation phase. Default on.
	Nvidia bool

	// ForceXorg enables the Wayland-disable edit of the GDM config. Default on.
	ForceXorg bool

	// KernelLatest installs the HWE (or generic) kernel meta-package.
	KernelLatest bool

	// DryRun logs every command without executing anything.
	DryRun bool

	// SkipFallback suppresses the fallback-terminal phase even when the
	// launch test fails.
	SkipFallback bool

	// NoColor disables ANSI styling regardless of terminal capability.
	NoColor bool

	// Wait is how long the launch test waits before sampling the process
	// table.
	Wait time.Duration

	// ConfigPath points at an optional YAML overrides file.
	ConfigPath string
}

// Default returns the documented flag defaults.
func Default() Config {
	return Config{
		Nvidia:    true,
		ForceXorg: true,
		Wait:      5 * time.Second,
	}
}

// Environment variable names used to forward the parsed configuration to the
// elevated re-invocation.
const (
	envNvidia       = "DESKMEND_WITH_NVIDIA"
	envForceXorg    = "DESKMEND_FORCE_XORG"
	envKernelLatest = "DESKMEND_KERNEL_LATEST"
	envDryRun       = "DESKMEND_DRY_RUN"
	envSkipFallback = "DESKMEND_SKIP_FALLBACK"
	envNoColor      = "DESKMEND_NO_COLOR"
	envWait         = "DESKMEND_WAIT"
	envConfigPath   = "DESKMEND_CONFIG"
)

// EncodeEnv renders the configuration as KEY=VALUE pairs for the elevated
// re-invocation.
func (c Config) EncodeEnv() []string {
	return []string{
		fmt.Sprintf("%s=%t", envNvidia, c.Nvidia),
		fmt.Sprintf("%s=%t", envForceXorg, c.ForceXorg),
		fmt.Sprintf("%s=%t", envKernelLatest, c.KernelLatest),
		fmt.Sprintf("%s=%t", envDryRun, c.DryRun),
		fmt.Sprintf("%s=%t", envSkipFallback, c.SkipFallback),
		fmt.Sprintf("%s=%t", envNoColor, c.NoColor),
		fmt.Sprintf("%s=%s", envWait, c.Wait),
		fmt.Sprintf("%s=%s", envConfigPath, c.ConfigPath),
	}
}

// ApplyEnv overlays any DESKMEND_* variables present in the process
// environment onto c. It is called before flag parsing so that the elevated
// re-invocation starts from the already-parsed state; flags repeated on the
// command line still win.
func (c *Config) ApplyEnv() {
	applyBool(envNvidia, &c.Nvidia)
	applyBool(envForceXorg, &c.ForceXorg)
	applyBool(envKernelLatest, &c.KernelLatest)
	applyBool(envDryRun, &c.DryRun)
	applyBool(envSkipFallback, &c.SkipFallback)
	applyBool(envNoColor, &c.NoColor)
	if v := os.Getenv(envWait); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Wait = d
		}
	}
	if v := os.Getenv(envConfigPath); v != "" {
		c.ConfigPath = v
	}
}

func applyBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}
