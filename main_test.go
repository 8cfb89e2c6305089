package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rook-computer/pixelfix/internal/app"
	"github.com/rook-computer/pixelfix/internal/pixelfix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionsDefaults(t *testing.T) {
	t.Setenv("PIXELFIX_STDIO_LOG", "")
	opts, err := parseOptions(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, pixelfix.ModeCycle, opts.mode)
	assert.Equal(t, app.BackendFB, opts.backend)
	assert.Equal(t, "/dev/fb0", opts.fbPath)
	assert.Zero(t, opts.hint, "the first color must not wait for a hint screen")
	assert.False(t, opts.debug)
	assert.Empty(t, opts.stdioLog)
}

func TestParseOptionsFlagsAndEnv(t *testing.T) {
	t.Setenv("PIXELFIX_STDIO_LOG", "/tmp/pixelfix.out")
	opts, err := parseOptions([]string{"-mode", "patch", "-hint", "2s", "-fb", "/dev/fb1"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, pixelfix.ModePatch, opts.mode)
	assert.Equal(t, 2*time.Second, opts.hint)
	assert.Equal(t, "/dev/fb1", opts.fbPath)
	assert.Equal(t, "/tmp/pixelfix.out", opts.stdioLog)
}

func TestRunInvalidFlagsExitTwo(t *testing.T) {
	for _, args := range [][]string{
		{"-mode", "rainbow"},
		{"-backend", "vnc"},
		{"-nope"},
	} {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run(args, &stdout, &stderr), "%v", args)
		assert.NotEmpty(t, stderr.String())
	}
}

func TestRunDisplayFailureExitsOneAndFlushesDebugLog(t *testing.T) {
	t.Setenv("PIXELFIX_STDIO_LOG", "")
	dir := t.TempDir()
	logPath := filepath.Join(dir, "debug.log")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-fb", filepath.Join(dir, "fb9"), "-debug", "-debug-log", logPath}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "using default 640x480")
	assert.Contains(t, stderr.String(), "error: create display")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug logging enabled")
	assert.Contains(t, string(data), "main: exit 1")
}
