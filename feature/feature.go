//go:build !ios && !android && (amd64 || arm64)

// Package feature queries and toggles optional host behaviors.
package feature

import (
	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Names of features the host is known to offer.
const (
	NativePaths               = "XPLM_USE_NATIVE_PATHS"
	NativeWidgetWindows       = "XPLM_USE_NATIVE_WIDGET_WINDOWS"
	WantsReflections          = "XPLM_WANTS_REFLECTIONS"
	WantsDataRefNotifications = "XPLM_WANTS_DATAREF_NOTIFICATIONS"
)

// Feature is a host feature that exists on the running host.
type Feature struct {
	name string
}

// Find returns the feature called name.
func Find(name string) (Feature, error) {
	if err := xputil.ValidateName("feature.Find", name); err != nil {
		return Feature{}, err
	}
	api, err := bindings.Current()
	if err != nil {
		return Feature{}, err
	}
	if !api.HasFeature(name) {
		return Feature{}, xputil.NewError(xputil.KindNotFound, "feature.Find", name, nil)
	}
	return Feature{name: name}, nil
}

// All returns every feature the host offers, in host order.
func All() ([]Feature, error) {
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	names, err := handles.Names(api.Callback, api.EnumerateFeatures)
	if err != nil {
		return nil, err
	}
	out := make([]Feature, len(names))
	for i, name := range names {
		out[i] = Feature{name: name}
	}
	return out, nil
}

// Name returns the host name of the feature.
func (f Feature) Name() string { return f.name }

// String returns the string representation of the feature.
func (f Feature) String() string { return f.name }

// Enabled reports whether the feature is on for this plugin.
func (f Feature) Enabled() (bool, error) {
	api, err := f.host("feature.Enabled")
	if err != nil {
		return false, err
	}
	return api.IsFeatureEnabled(f.name), nil
}

// SetEnabled turns the feature on or off for this plugin.
func (f Feature) SetEnabled(enable bool) error {
	api, err := f.host("feature.SetEnabled")
	if err != nil {
		return err
	}
	api.EnableFeature(f.name, enable)
	return nil
}

func (f Feature) host(op string) (bindings.API, error) {
	if f.name == "" {
		return nil, xputil.NewError(xputil.KindNotFound, op, "", nil)
	}
	return bindings.Current()
}
