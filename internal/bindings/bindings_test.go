//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"path/filepath"
	"testing"

	"github.com/obinnaokechukwu/xpgo/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrarySearchPaths(t *testing.T) {
	paths := LibrarySearchPaths()
	if len(paths) == 0 {
		t.Error("LibrarySearchPaths should return at least one path")
	}
}

func TestLibrarySearchPathsPluginDirFirst(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPluginDir, dir)

	paths := LibrarySearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, dir, paths[0])
}

func TestLibraryCandidatesExplicitPath(t *testing.T) {
	t.Setenv(EnvLibraryPath, "/opt/xplane/Resources/plugins/XPLM_64.so")
	assert.Equal(t, []string{"/opt/xplane/Resources/plugins/XPLM_64.so"}, LibraryCandidates())
}

func TestLibraryCandidatesDefault(t *testing.T) {
	t.Setenv(EnvLibraryPath, "")
	dir := t.TempDir()
	t.Setenv(EnvPluginDir, dir)

	name := platform.FormatLibraryName("XPLM")
	got := LibraryCandidates()
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, name, got[0])
	assert.Equal(t, filepath.Join(dir, name), got[1])
}

func TestLoadMissingLibrary(t *testing.T) {
	t.Setenv(EnvLibraryPath, filepath.Join(t.TempDir(), "missing", "XPLM_64.so"))

	_, err := openLibrary()
	assert.ErrorIs(t, err, ErrLibraryNotFound)
}

func TestCurrentBeforeLoad(t *testing.T) {
	restore := Use(nil)
	defer restore()

	_, err := Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.False(t, IsLoaded())
}

func TestSDKVersion(t *testing.T) {
	tests := []struct {
		xplm int32
		want string
	}{
		{210, "2.1.0"},
		{301, "3.0.1"},
		{400, "4.0.0"},
		{411, "4.1.1"},
		{-5, "0.0.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SDKVersion(tt.xplm).String())
	}
}
