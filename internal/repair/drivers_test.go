package repair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorcate/deskmend/internal/config"
)

const ubuntuDriversOutput = `== /sys/devices/pci0000:00/0000:00:01.0/0000:01:00.0 ==
modalias : pci:v000010DEd00002684sv00001043sd000088E2bc03sc00i00
vendor   : NVIDIA Corporation
model    : AD102 [GeForce RTX 4090]
driver   : nvidia-driver-535 - distro non-free
driver   : nvidia-driver-550 - distro non-free recommended
driver   : nvidia-driver-545-open - distro non-free
driver   : xserver-xorg-video-nouveau - distro free builtin
`

func TestParseRecommendedDriver(t *testing.T) {
	assert.Equal(t, "nvidia-driver-550", parseRecommendedDriver(ubuntuDriversOutput))
}

func TestParseRecommendedDriverNone(t *testing.T) {
	assert.Equal(t, "", parseRecommendedDriver(""))
	assert.Equal(t, "", parseRecommendedDriver("driver : nouveau - distro free builtin\n"))
}

func TestNvidiaRemediationInstallsRecommended(t *testing.T) {
	exec := newFakeRunner()
	exec.outputs["ubuntu-drivers devices"] = ubuntuDriversOutput
	r := newTestRun(t, config.Default(), exec)

	require.NoError(t, nvidiaRemediation(context.Background(), r))

	assert.False(t, exec.called("ubuntu-drivers-common"), "tool already present")
	assert.True(t, exec.called("install --reinstall -y nvidia-driver-550"))
}

func TestNvidiaRemediationInstallsToolWhenMissing(t *testing.T) {
	exec := newFakeRunner()
	exec.absent["ubuntu-drivers"] = true
	r := newTestRun(t, config.Default(), exec)

	require.NoError(t, nvidiaRemediation(context.Background(), r))

	assert.True(t, exec.called("install -y ubuntu-drivers-common"))
}

func TestNvidiaRemediationToleratesNoRecommendation(t *testing.T) {
	exec := newFakeRunner()
	r := newTestRun(t, config.Default(), exec)

	require.NoError(t, nvidiaRemediation(context.Background(), r))
	assert.False(t, exec.called("--reinstall -y nvidia"), "no driver to reinstall")
}
