//go:build !ios && !android && (amd64 || arm64)

// Package draw runs Go code during host drawing phases.
package draw

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Phase is a host drawing phase.
type Phase int32

const (
	Modern3D        Phase = 31  // 3D objects, Vulkan/Metal era
	FirstCockpit    Phase = 35  // Before the 2-d panel is drawn
	Panel           Phase = 40  // The 2-d panel background
	Gauges          Phase = 45  // Panel gauges
	Window          Phase = 50  // Plugin windows
	LastCockpit     Phase = 55  // After all cockpit drawing
	LocalMap3D      Phase = 100 // 3-d map view
	LocalMap2D      Phase = 101 // 2-d map view
	LocalMapProfile Phase = 102 // Profile map view
)

// PhaseFromCode converts a host drawing phase.
func PhaseFromCode(code int32) (Phase, error) {
	switch p := Phase(code); p {
	case Modern3D, FirstCockpit, Panel, Gauges, Window, LastCockpit,
		LocalMap3D, LocalMap2D, LocalMapProfile:
		return p, nil
	}
	return 0, xputil.Unmatched("draw phase", code)
}

// Code returns the host phase code.
func (p Phase) Code() int32 {
	return int32(p)
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case Modern3D:
		return "modern-3d"
	case FirstCockpit:
		return "first-cockpit"
	case Panel:
		return "panel"
	case Gauges:
		return "gauges"
	case Window:
		return "window"
	case LastCockpit:
		return "last-cockpit"
	case LocalMap3D:
		return "local-map-3d"
	case LocalMap2D:
		return "local-map-2d"
	case LocalMapProfile:
		return "local-map-profile"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

// Handler draws during a phase.
type Handler interface {
	Draw(phase Phase, before bool)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(phase Phase, before bool)

// Draw implements Handler.
func (f HandlerFunc) Draw(phase Phase, before bool) { f(phase, before) }

// Callback is a registered draw callback.
//
// A Callback must be used only on the host's main thread.
type Callback struct {
	_      handles.NoCopy
	phase  Phase
	before bool
	handle *handles.Handle[Handler, struct{}]
}

// Register calls handler during phase, before or after the host draws it.
// A phase the host does not support yields a HostRejected error.
func Register(phase Phase, before bool, handler Handler) (*Callback, error) {
	if handler == nil {
		return nil, errors.New("xpgo: draw handler is nil")
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	cb := api.Callback(drawCallback)
	h, err := handles.New(handler, struct{}{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			if !api.RegisterDrawCallback(cb, phase.Code(), before, refcon) {
				return 0, xputil.NewError(xputil.KindHostRejected, "draw.Register", phase.String(), nil)
			}
			return 0, nil
		},
		Unregister: func(_, refcon uintptr) {
			api.UnregisterDrawCallback(cb, phase.Code(), before, refcon)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Callback{phase: phase, before: before, handle: h}, nil
}

// Phase returns the phase the callback draws in.
func (c *Callback) Phase() Phase { return c.phase }

// Before reports whether the callback runs before the host draws the phase.
func (c *Callback) Before() bool { return c.before }

// Close unregisters the callback.
func (c *Callback) Close() error {
	c.handle.Close()
	return nil
}

// drawCallback always returns 1; drawing callbacks never suppress the host.
func drawCallback(phase, before int32, refcon uintptr) int32 {
	return handles.Invoke("draw", refcon, int32(1), func(b *handles.Block[Handler, struct{}]) int32 {
		b.Handler.Draw(Phase(phase), before != 0)
		return 1
	})
}
