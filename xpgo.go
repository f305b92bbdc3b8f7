//go:build !ios && !android && (amd64 || arm64)

// Package xpgo provides pure-Go bindings to the X-Plane plugin SDK (XPLM)
// using purego.
//
// A plugin registers a start function with the plugin package and links
// plugin/export into a c-shared library:
//
//	import (
//		"github.com/obinnaokechukwu/xpgo/plugin"
//		_ "github.com/obinnaokechukwu/xpgo/plugin/export"
//	)
//
//	func init() {
//		plugin.Register(func() (plugin.Plugin, error) {
//			return &myPlugin{}, nil
//		})
//	}
//
//	func main() {}
//
// The host then drives everything through callbacks. Subsystems live in
// their own packages: flightloop, command, dataref, menu, draw, avionics,
// camera and window.
//
// Every xpgo handle must be used only on the host's main thread.
package xpgo

import (
	"github.com/Masterminds/semver/v3"
	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/logging"
)

// Init loads the XPLM library and routes xpgo logging to the host log.
// plugin.Start calls it before the user's start function. It is safe to
// call multiple times.
func Init() error {
	if !bindings.IsLoaded() {
		if err := bindings.Load(); err != nil {
			return err
		}
	}
	api, err := bindings.Current()
	if err != nil {
		return err
	}
	logging.SetSink(api.DebugString)
	return nil
}

// IsLoaded returns true if the XPLM library has been loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// Versions are the running host's version numbers.
type Versions struct {
	XPlane int32           // e.g. 12100
	XPLM   int32           // e.g. 411
	SDK    *semver.Version // XPLM as a semantic version, e.g. 4.1.1
}

// Version returns the host versions.
func Version() (Versions, error) {
	api, err := bindings.Current()
	if err != nil {
		return Versions{}, err
	}
	v := api.GetVersions()
	return Versions{XPlane: v.XPlane, XPLM: v.XPLM, SDK: bindings.SDKVersion(v.XPLM)}, nil
}

// SDKVersion returns the host SDK version.
func SDKVersion() (*semver.Version, error) {
	v, err := Version()
	if err != nil {
		return nil, err
	}
	return v.SDK, nil
}

// RequireSDK returns an Unsupported error naming op unless the host SDK
// satisfies constraint, e.g. ">= 4.0.0".
func RequireSDK(op, constraint string) error {
	return bindings.RequireSDK(op, constraint)
}
