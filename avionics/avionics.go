//go:build !ios && !android && (amd64 || arm64)

// Package avionics customizes how the host draws avionics devices.
// It requires XPLM 4.0 or newer.
package avionics

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// MinSDK is the SDK constraint Customize checks.
const MinSDK = ">= 4.0.0"

// Device is an avionics device the host can draw.
type Device int32

const (
	GNS430Pilot      Device = 0
	GNS430Copilot    Device = 1
	GNS530Pilot      Device = 2
	GNS530Copilot    Device = 3
	CDU739Pilot      Device = 4
	CDU739Copilot    Device = 5
	G1000PFDPilot    Device = 6
	G1000PFDCopilot  Device = 7
	G1000MFD         Device = 8
	CDU815Pilot      Device = 9
	CDU815Copilot    Device = 10
	PrimusPFDPilot   Device = 11
	PrimusPFDCopilot Device = 12
	PrimusMFDPilot   Device = 13
	PrimusMFDCopilot Device = 14
	PrimusMFDCenter  Device = 15
	PrimusRMUPilot   Device = 16
	PrimusRMUCopilot Device = 17
)

const lastDevice = PrimusRMUCopilot

var deviceNames = [...]string{
	GNS430Pilot:      "GNS430 pilot",
	GNS430Copilot:    "GNS430 copilot",
	GNS530Pilot:      "GNS530 pilot",
	GNS530Copilot:    "GNS530 copilot",
	CDU739Pilot:      "CDU739 pilot",
	CDU739Copilot:    "CDU739 copilot",
	G1000PFDPilot:    "G1000 PFD pilot",
	G1000PFDCopilot:  "G1000 PFD copilot",
	G1000MFD:         "G1000 MFD",
	CDU815Pilot:      "CDU815 pilot",
	CDU815Copilot:    "CDU815 copilot",
	PrimusPFDPilot:   "Primus PFD pilot",
	PrimusPFDCopilot: "Primus PFD copilot",
	PrimusMFDPilot:   "Primus MFD pilot",
	PrimusMFDCopilot: "Primus MFD copilot",
	PrimusMFDCenter:  "Primus MFD center",
	PrimusRMUPilot:   "Primus RMU pilot",
	PrimusRMUCopilot: "Primus RMU copilot",
}

// Devices returns every known device.
func Devices() []Device {
	out := make([]Device, 0, lastDevice+1)
	for d := Device(0); d <= lastDevice; d++ {
		out = append(out, d)
	}
	return out
}

// DeviceFromCode converts a host device id.
func DeviceFromCode(code int32) (Device, error) {
	if code < 0 || Device(code) > lastDevice {
		return 0, xputil.Unmatched("avionics device", code)
	}
	return Device(code), nil
}

// Code returns the host device id.
func (d Device) Code() int32 {
	return int32(d)
}

// String returns the string representation of the device.
func (d Device) String() string {
	if d >= 0 && d <= lastDevice {
		return deviceNames[d]
	}
	return fmt.Sprintf("Device(%d)", int32(d))
}

// Result tells the host whether to draw the device itself.
type Result int

const (
	// AllowDraw lets the host draw the device.
	AllowDraw Result = iota
	// SuppressDraw stops the host drawing the device. Only meaningful
	// from a before-draw handler.
	SuppressDraw
	// Irrelevant is returned from after-draw handlers.
	Irrelevant
)

// Encode returns the host return value.
func (r Result) Encode() int32 {
	if r == SuppressDraw {
		return 1
	}
	return 0
}

// Context is passed to a Handler on every draw.
type Context[S any] struct {
	device int32
	before bool
	state  *S
}

// Device returns the device being drawn. Ids this package does not know
// yield an *xputil.UnmatchedCodeError.
func (c *Context[S]) Device() (Device, error) { return DeviceFromCode(c.device) }

// Before reports whether the host has yet to draw the device.
func (c *Context[S]) Before() bool { return c.before }

// State returns the customization state, shared by both handlers.
func (c *Context[S]) State() *S { return c.state }

// Handler draws before or after the host draws a device.
type Handler[S any] interface {
	DrawAvionics(ctx *Context[S]) Result
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc[S any] func(ctx *Context[S]) Result

// DrawAvionics implements Handler.
func (f HandlerFunc[S]) DrawAvionics(ctx *Context[S]) Result { return f(ctx) }

type runner interface {
	run(device int32, before bool) Result
}

type adapter[S any] struct {
	before Handler[S]
	after  Handler[S]
	state  *S
}

func (a *adapter[S]) run(device int32, before bool) Result {
	h := a.after
	if before {
		h = a.before
	}
	if h == nil {
		return AllowDraw
	}
	return h.DrawAvionics(&Context[S]{device: device, before: before, state: a.state})
}

// Customization is a registered pair of avionics handlers.
//
// A Customization must be used only on the host's main thread.
type Customization[S any] struct {
	_      handles.NoCopy
	device Device
	handle *handles.Handle[runner, struct{}]
	state  *S
}

// Customize registers handlers that run before and after the host draws
// device. Either handler may be nil, but not both.
func Customize[S any](device Device, before, after Handler[S], state S) (*Customization[S], error) {
	if before == nil && after == nil {
		return nil, errors.New("xpgo: avionics customization needs a handler")
	}
	if err := bindings.RequireSDK("avionics.Customize", MinSDK); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}

	a := &adapter[S]{before: before, after: after, state: &state}
	var beforeCB, afterCB uintptr
	if before != nil {
		beforeCB = api.Callback(avionicsCallback)
	}
	if after != nil {
		afterCB = api.Callback(avionicsCallback)
	}
	h, err := handles.New[runner](a, struct{}{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			id := api.RegisterAvionicsCallbacks(device.Code(), beforeCB, afterCB, refcon)
			if id == 0 {
				return 0, xputil.NewError(xputil.KindHostRejected, "avionics.Customize", device.String(), nil)
			}
			return id, nil
		},
		Unregister: func(id, _ uintptr) {
			api.UnregisterAvionicsCallbacks(id)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Customization[S]{device: device, handle: h, state: a.state}, nil
}

// Device returns the customized device.
func (c *Customization[S]) Device() Device { return c.device }

// State returns the customization state.
func (c *Customization[S]) State() *S { return c.state }

// Close unregisters both handlers.
func (c *Customization[S]) Close() error {
	c.handle.Close()
	return nil
}

func avionicsCallback(device, before int32, refcon uintptr) int32 {
	return handles.Invoke("avionics", refcon, AllowDraw.Encode(), func(b *handles.Block[runner, struct{}]) int32 {
		return b.Handler.run(device, before != 0).Encode()
	})
}
