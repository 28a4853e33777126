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

func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Console
	Console = &buf
	t.Cleanup(func() { Console = prev })
	return &buf
}

func TestDebugLevelGating(t *testing.T) {
	buf := captureConsole(t)
	prev := Level
	t.Cleanup(func() { Level = prev })

	Level = 2
	assert.NotEmpty(t, D(1, "shown %d", 1))
	assert.Empty(t, D(2, "hidden"))
	assert.Contains(t, buf.String(), "shown 1")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestErrorIncludesCaller(t *testing.T) {
	captureConsole(t)

	msg := E("boom: %v", "disk")
	assert.Contains(t, msg, "boom: disk")
	assert.Contains(t, msg, "logging_test.go")
}

func TestSetupLoggingStripsAnsi(t *testing.T) {
	captureConsole(t)
	logPath := filepath.Join(t.TempDir(), "tubetag.log")

	require.NoError(t, SetupLogging(logPath))
	I("hello %s", "file")
	W("careful")
	require.NoError(t, Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "hello file")
	assert.Contains(t, out, `"level":"warn"`)
	assert.False(t, strings.Contains(out, "\x1b["), "log file should not carry ANSI codes")
}
