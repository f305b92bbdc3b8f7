//go:build !ios && !android && (amd64 || arm64)

// Package scenery probes terrain, loads scenery objects and places object
// instances in the world.
//
// Every type here owns a host resource. Close releases it exactly once;
// later calls are no-ops.
package scenery

import (
	"errors"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// MinSDK is the SDK constraint for instances and magnetic variation.
const MinSDK = ">= 3.0.0"

// ErrClosed is returned when using a closed probe, object or instance.
var ErrClosed = errors.New("xpgo: scenery resource closed")

// Vec3 is a vector in local OpenGL coordinates.
type Vec3 struct {
	X, Y, Z float32
}

// Lookup returns the files a library path resolves to for the scenery
// around lat and lon, in host order.
func Lookup(path string, lat, lon float32) ([]string, error) {
	if err := xputil.ValidateName("scenery.Lookup", path); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	return handles.Names(api.Callback, func(cb, refcon uintptr) {
		api.LookupObjects(path, lat, lon, cb, refcon)
	})
}

// Reload asks the host to reload the current scenery.
func Reload() error {
	api, err := bindings.Current()
	if err != nil {
		return err
	}
	api.ReloadScenery()
	return nil
}

// MagneticVariation returns the magnetic variation in degrees at lat and
// lon. East is positive.
func MagneticVariation(lat, lon float64) (float32, error) {
	api, err := magnetic("scenery.MagneticVariation")
	if err != nil {
		return 0, err
	}
	return api.GetMagneticVariation(lat, lon), nil
}

// TrueToMagnetic converts a true heading to magnetic at the user's
// aircraft.
func TrueToMagnetic(deg float32) (float32, error) {
	api, err := magnetic("scenery.TrueToMagnetic")
	if err != nil {
		return 0, err
	}
	return api.DegTrueToDegMagnetic(deg), nil
}

// MagneticToTrue converts a magnetic heading to true at the user's
// aircraft.
func MagneticToTrue(deg float32) (float32, error) {
	api, err := magnetic("scenery.MagneticToTrue")
	if err != nil {
		return 0, err
	}
	return api.DegMagneticToDegTrue(deg), nil
}

func magnetic(op string) (bindings.API, error) {
	if err := bindings.RequireSDK(op, MinSDK); err != nil {
		return nil, err
	}
	return bindings.Current()
}
