package repair

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorcate/deskmend/internal/config"
)

func TestKernelInstallPrefersHWE(t *testing.T) {
	exec := newFakeRunner()
	exec.outputs["lsb_release -sr"] = "24.04"
	exec.outputs["apt-cache show linux-generic-hwe-24.04"] = "Package: linux-generic-hwe-24.04"
	r := newTestRun(t, config.Default(), exec)

	require.NoError(t, kernelInstall(context.Background(), r))
	assert.True(t, exec.called("install -y linux-generic-hwe-24.04"))
}

func TestKernelInstallFallsBackToGeneric(t *testing.T) {
	exec := newFakeRunner()
	exec.outputs["lsb_release -sr"] = "25.10"
	// apt-cache show yields nothing for the HWE name.
	r := newTestRun(t, config.Default(), exec)

	require.NoError(t, kernelInstall(context.Background(), r))
	assert.True(t, exec.called("install -y linux-generic"))
	assert.False(t, exec.called("install -y linux-generic-hwe"))
}

func TestKernelInstallDefaultReleaseWithoutLsbRelease(t *testing.T) {
	exec := newFakeRunner()
	exec.absent["lsb_release"] = true
	exec.outputs["apt-cache show linux-generic-hwe-24.04"] = "Package: linux-generic-hwe-24.04"
	r := newTestRun(t, config.Default(), exec)

	require.NoError(t, kernelInstall(context.Background(), r))
	assert.True(t, exec.called("install -y linux-generic-hwe-24.04"), "falls back to the default release")
}

func TestKernelInstallPropagatesFailure(t *testing.T) {
	exec := newFakeRunner()
	exec.fail["install -y linux-generic"] = errors.New("exit status 100")
	r := newTestRun(t, config.Default(), exec)

	assert.Error(t, kernelInstall(context.Background(), r))
}
