package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Overrides are optional site-specific adjustments loaded from a YAML file.
// Zero values mean "keep the built-in default"; only non-empty fields are
// applied by the repair engine.
type Overrides struct {
	// TerminalPackages replaces the terminal stack reinstall list.
	TerminalPackages []string `mapstructure:"terminal_packages"`

	// FallbackPackages replaces the fallback terminal install list.
	FallbackPackages []string `mapstructure:"fallback_packages"`

	// GDMConfigPath replaces the display manager configuration file path.
	GDMConfigPath string `mapstructure:"gdm_config_path"`

	// Wait replaces the launch-test wait interval.
	Wait time.Duration `mapstructure:"wait"`
}

// LoadOverrides reads and decodes a YAML overrides file. The YAML is parsed
// into a generic map first and then decoded through mapstructure so duration
// strings ("8s") work and unknown keys are reported.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides file: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse overrides YAML: %w", err)
	}

	var out Overrides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &out,
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	return &out, nil
}
