//go:build !ios && !android && (amd64 || arm64)

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSinkReceivesLines(t *testing.T) {
	var lines []string
	SetSink(func(line string) { lines = append(lines, line) })
	defer SetSink(nil)

	Logger().Info("flight loop destroyed", "refcon", 7)

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "flight loop destroyed")
	assert.Contains(t, lines[0], "refcon=7")
	assert.Contains(t, lines[0], "lib=xpgo")
}

func TestSinkEscapesNul(t *testing.T) {
	var got string
	SetSink(func(line string) { got = line })
	defer SetSink(nil)

	Logger().Warn("name", "value", "a\x00b")
	assert.NotContains(t, got, "\x00")
}

func TestSetLevelFilters(t *testing.T) {
	old := Level()
	defer SetLevel(old)

	var n int
	SetSink(func(string) { n++ })
	defer SetSink(nil)

	SetLevel(slog.LevelError)
	Logger().Warn("dropped")
	assert.Equal(t, 0, n)

	SetLevel(slog.LevelDebug)
	Logger().Debug("kept")
	assert.Equal(t, 1, n)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, slog.LevelDebug))
	defer SetLogger(nil)

	Logger().Debug("custom")
	assert.Contains(t, buf.String(), "custom")
}
