package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	cfg := Default()
	fs := pflag.NewFlagSet("deskmend", pflag.ContinueOnError)
	AddFlags(fs, &cfg)
	err := fs.Parse(args)
	return cfg, err
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.True(t, cfg.Nvidia, "NVIDIA remediation defaults on")
	assert.True(t, cfg.ForceXorg, "Xorg toggle defaults on")
	assert.False(t, cfg.KernelLatest)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.SkipFallback)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, 5*time.Second, cfg.Wait)
}

func TestPairedFlagsLastWins(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want bool
	}{
		{"disable then enable", []string{"--no-nvidia", "--with-nvidia"}, true},
		{"enable then disable", []string{"--with-nvidia", "--no-nvidia"}, false},
		{"disable only", []string{"--no-nvidia"}, false},
		{"repeated disable", []string{"--no-nvidia", "--no-nvidia"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := parse(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Nvidia)
		})
	}
}

func TestForceXorgPair(t *testing.T) {
	cfg, err := parse(t, "--no-force-xorg", "--force-xorg", "--no-force-xorg")
	require.NoError(t, err)
	assert.False(t, cfg.ForceXorg)
}

func TestUnknownFlagRejected(t *testing.T) {
	_, err := parse(t, "--bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestStandaloneFlags(t *testing.T) {
	cfg, err := parse(t, "--dry-run", "--skip-fallback", "--kernel-latest", "--no-color", "--wait", "8s")
	require.NoError(t, err)

	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.SkipFallback)
	assert.True(t, cfg.KernelLatest)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, 8*time.Second, cfg.Wait)
}

func TestEnvRoundTrip(t *testing.T) {
	orig := Default()
	orig.Nvidia = false
	orig.KernelLatest = true
	orig.DryRun = true
	orig.Wait = 9 * time.Second
	orig.ConfigPath = "/tmp/overrides.yaml"

	for _, kv := range orig.EncodeEnv() {
		k, v, ok := cutEnv(kv)
		require.True(t, ok, kv)
		t.Setenv(k, v)
	}

	got := Default()
	got.ApplyEnv()
	assert.Equal(t, orig, got)
}

func cutEnv(kv string) (string, string, bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:], true
		}
	}
	return "", "", false
}
