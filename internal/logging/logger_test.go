package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelTags(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Console: &buf})
	defer l.Close()

	l.Infof("info %d", 1)
	l.Warnf("warn")
	l.Okf("ok")
	l.Errf("err")

	out := buf.String()
	assert.Contains(t, out, "[INFO] info 1")
	assert.Contains(t, out, "[WARN] warn")
	assert.Contains(t, out, "[OK] ok")
	assert.Contains(t, out, "[ERR] err")
}

func TestNoColorByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Console: &buf})
	defer l.Close()

	l.Errf("plain")
	assert.NotContains(t, buf.String(), "\x1b[", "no ANSI sequences without color")
}

func TestFileSinkFlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var buf bytes.Buffer
	l := New(Options{Console: &buf, Path: path})

	for i := 0; i < 50; i++ {
		l.Infof("line %d", i)
	}
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[INFO] line 0")
	assert.Contains(t, content, "[INFO] line 49")
	assert.Equal(t, 50, strings.Count(content, "\n"))
}

func TestUnopenableFileIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	// Parent directory does not exist; logging must degrade, not fail.
	l := New(Options{Console: &buf, Path: filepath.Join(t.TempDir(), "missing", "run.log")})
	defer l.Close()

	l.Warnf("still works")
	assert.Contains(t, buf.String(), "[WARN] still works")
}

func TestLogAfterCloseIsSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var buf bytes.Buffer
	l := New(Options{Console: &buf, Path: path})

	l.Infof("before")
	l.Close()
	l.Close() // double close is allowed
	l.Infof("after")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before")
	assert.NotContains(t, string(data), "after")
	assert.Contains(t, buf.String(), "after", "console keeps working after close")
}

func TestPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l := New(Options{Console: &bytes.Buffer{}, Path: path})
	defer l.Close()

	assert.Equal(t, path, l.Path())
}
