package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorcate/deskmend/internal/logging"
	"github.com/jmorcate/deskmend/internal/repair"
)

func newTestExecutor(dryRun bool) (*Executor, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logging.New(logging.Options{Console: buf})
	return NewExecutor(log, dryRun), buf
}

func TestDryRunExecutesNothing(t *testing.T) {
	exec, buf := newTestExecutor(true)

	marker := filepath.Join(t.TempDir(), "marker")
	err := exec.Run(context.Background(), repair.Command{
		Program: "touch",
		Args:    []string{marker},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "dry-run must not create the file")
	assert.Contains(t, buf.String(), "DRY: touch "+marker)
}

func TestRunLogsAndExecutes(t *testing.T) {
	exec, buf := newTestExecutor(false)

	marker := filepath.Join(t.TempDir(), "marker")
	err := exec.Run(context.Background(), repair.Command{
		Program: "touch",
		Args:    []string{marker},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(marker)
	assert.NoError(t, statErr)
	assert.Contains(t, buf.String(), "RUN: touch "+marker)
}

func TestRunFailurePropagates(t *testing.T) {
	exec, buf := newTestExecutor(false)

	err := exec.Run(context.Background(), repair.Command{Program: "false"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "command failed: false")
}

func TestRunToleratedFailureIsSwallowed(t *testing.T) {
	exec, buf := newTestExecutor(false)

	err := exec.Run(context.Background(), repair.Command{Program: "false", Tolerate: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ignored failure: false")
}

func TestOutputCapturesTrimmedStdout(t *testing.T) {
	exec, _ := newTestExecutor(false)

	out, err := exec.Output(context.Background(), repair.Command{
		Program: "echo",
		Args:    []string{"hello world"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestOutputDryRunIsEmpty(t *testing.T) {
	exec, _ := newTestExecutor(true)

	out, err := exec.Output(context.Background(), repair.Command{
		Program: "echo",
		Args:    []string{"hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestOutputToleratedFailureIsEmpty(t *testing.T) {
	exec, _ := newTestExecutor(false)

	out, err := exec.Output(context.Background(), repair.Command{Program: "false", Tolerate: true})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestEnvPlumbing(t *testing.T) {
	exec, _ := newTestExecutor(false)

	out, err := exec.Output(context.Background(), repair.Command{
		Program: "sh",
		Args:    []string{"-c", "echo $DESKMEND_PROBE"},
		Env:     map[string]string{"DESKMEND_PROBE": "42"},
	})
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestUnsetPlumbing(t *testing.T) {
	t.Setenv("DESKMEND_PROBE", "leaky")
	exec, _ := newTestExecutor(false)

	out, err := exec.Output(context.Background(), repair.Command{
		Program: "sh",
		Args:    []string{"-c", "echo probe=$DESKMEND_PROBE"},
		Unset:   []string{"DESKMEND_PROBE"},
	})
	require.NoError(t, err)
	assert.Equal(t, "probe=", out)
}

func TestExists(t *testing.T) {
	exec, _ := newTestExecutor(false)

	assert.True(t, exec.Exists("sh"))
	assert.False(t, exec.Exists("definitely-not-a-real-binary-xyz"))
}

func TestStderrIncludedInError(t *testing.T) {
	exec, _ := newTestExecutor(false)

	err := exec.Run(context.Background(), repair.Command{
		Program: "sh",
		Args:    []string{"-c", "echo boom >&2; exit 3"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
