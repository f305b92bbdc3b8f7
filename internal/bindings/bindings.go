//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the host XPLM library and exposes it as an API
// using purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/xpgo/internal/platform"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Environment variables read at load time.
const (
	EnvLibraryPath = "XPGO_XPLM_PATH"
	EnvPluginDir   = "XPGO_PLUGIN_DIR"
)

// ErrNotLoaded is returned when host functions are called before Load().
var ErrNotLoaded = errors.New("xpgo: XPLM library not loaded; call xpgo.Init() first")

// ErrLibraryNotFound is returned when the XPLM library cannot be found.
var ErrLibraryNotFound = errors.New("xpgo: XPLM library not found")

var (
	mu      sync.RWMutex
	current API

	loadOnce sync.Once
	loadErr  error
)

// IsLoaded returns true if a host API is installed.
func IsLoaded() bool {
	mu.RLock()
	defer mu.RUnlock()
	return current != nil
}

// Load loads the XPLM library and registers all function bindings.
// It is safe to call multiple times; subsequent calls are no-ops.
func Load() error {
	loadOnce.Do(func() {
		var lib *library
		lib, loadErr = openLibrary()
		if loadErr == nil {
			mu.Lock()
			if current == nil {
				current = lib
			}
			mu.Unlock()
		}
	})
	return loadErr
}

// Current returns the installed host API.
func Current() (API, error) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return nil, ErrNotLoaded
	}
	return current, nil
}

// Use installs api as the host API and returns a function restoring the
// previous one. Tests use it to install a mock host.
func Use(api API) (restore func()) {
	mu.Lock()
	prev := current
	current = api
	mu.Unlock()
	return func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}
}

func openLibrary() (*library, error) {
	if !platform.Is64Bit {
		return nil, errors.New("xpgo: the host SDK is only available to 64-bit plugins")
	}
	var lastErr error
	for _, path := range LibraryCandidates() {
		handle, err := tryOpen(path)
		if err != nil {
			lastErr = err
			continue
		}
		lib, err := newLibrary(handle)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", path, err)
		}
		return lib, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrLibraryNotFound, lastErr)
	}
	return nil, ErrLibraryNotFound
}

// tryOpen attempts to open a library with RTLD_NOW | RTLD_GLOBAL.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// LibraryCandidates returns the paths Load tries, in order.
//
// The host has already loaded XPLM by the time a plugin starts, so the bare
// library name usually resolves to the copy in the process.
func LibraryCandidates() []string {
	if p := os.Getenv(EnvLibraryPath); p != "" {
		return []string{p}
	}
	name := platform.FormatLibraryName("XPLM")
	paths := []string{name}
	for _, dir := range LibrarySearchPaths() {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

// LibrarySearchPaths returns the directories searched for the XPLM library.
func LibrarySearchPaths() []string {
	var paths []string
	if dir := os.Getenv(EnvPluginDir); dir != "" {
		paths = append(paths, dir)
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "Resources", "plugins"))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, "Resources", "plugins"))
	}
	return paths
}

// SDKVersion converts the host XPLM version number (e.g. 411) to a
// semantic version (4.1.1).
func SDKVersion(xplm int32) *semver.Version {
	if xplm < 0 {
		xplm = 0
	}
	v := uint64(xplm)
	return semver.New(v/100, (v/10)%10, v%10, "", "")
}

// RequireSDK returns an Unsupported error for op unless the installed host
// satisfies constraint (e.g. ">= 4.0.0").
func RequireSDK(op, constraint string) error {
	api, err := Current()
	if err != nil {
		return err
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("xpgo: bad SDK constraint %q: %w", constraint, err)
	}
	have := SDKVersion(api.GetVersions().XPLM)
	if !c.Check(have) {
		return xputil.NewError(xputil.KindUnsupported, op, "",
			fmt.Errorf("host SDK %s does not satisfy %s", have, constraint))
	}
	return nil
}
