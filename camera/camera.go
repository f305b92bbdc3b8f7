//go:build !ios && !android && (amd64 || arm64)

// Package camera takes control of the host camera.
//
// To move the pilot's head inside the cockpit, write the view data refs
// instead; a controller replaces the host camera entirely.
package camera

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Duration says how long a controller keeps the camera.
type Duration int32

const (
	// UntilViewChanges releases control when the user changes the view.
	UntilViewChanges Duration = 1
	// Forever keeps control until the controller surrenders or is closed.
	Forever Duration = 2
)

// DurationFromCode converts a host camera control duration.
func DurationFromCode(code int32) (Duration, error) {
	switch d := Duration(code); d {
	case UntilViewChanges, Forever:
		return d, nil
	}
	return 0, xputil.Unmatched("camera control duration", code)
}

// Code returns the host duration code.
func (d Duration) Code() int32 {
	return int32(d)
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	switch d {
	case UntilViewChanges:
		return "until-view-changes"
	case Forever:
		return "forever"
	default:
		return fmt.Sprintf("Duration(%d)", int32(d))
	}
}

// Position is a camera position in local OpenGL coordinates. One unit is
// one meter; angles are degrees from flat north.
type Position struct {
	X, Y, Z float32
	Pitch   float32 // Positive is nose up
	Heading float32 // Positive is yaw right
	Roll    float32 // Positive is roll right
	Zoom    float32 // 1 is normal, 2 magnifies by two
}

func fromHost(p bindings.CameraPosition) Position {
	return Position{X: p.X, Y: p.Y, Z: p.Z, Pitch: p.Pitch, Heading: p.Heading, Roll: p.Roll, Zoom: p.Zoom}
}

func (p Position) host() bindings.CameraPosition {
	return bindings.CameraPosition{X: p.X, Y: p.Y, Z: p.Z, Pitch: p.Pitch, Heading: p.Heading, Roll: p.Roll, Zoom: p.Zoom}
}

// Result is a controller's answer for one frame.
type Result struct {
	reposition bool
	pos        Position
}

// Surrender hands the camera back to the host. The controller is not
// called again.
var Surrender = Result{}

// Reposition keeps control and moves the camera to p.
func Reposition(p Position) Result {
	return Result{reposition: true, pos: p}
}

// Position returns the requested position, if r repositions the camera.
func (r Result) Position() (Position, bool) {
	return r.pos, r.reposition
}

// Encode returns the host return value.
func (r Result) Encode() int32 {
	if r.reposition {
		return 1
	}
	return 0
}

// Controller is called every frame while it controls the camera.
//
// losingControl is true on the final call, made when the user changes the
// view or another plugin takes the camera. Its Result is ignored.
type Controller interface {
	ControlCamera(losingControl bool) Result
}

// ControllerFunc adapts a function to a Controller.
type ControllerFunc func(losingControl bool) Result

// ControlCamera implements Controller.
func (f ControllerFunc) ControlCamera(losingControl bool) Result { return f(losingControl) }

// Registration is a registered camera controller.
//
// A Registration must be used only on the host's main thread.
type Registration struct {
	_        handles.NoCopy
	duration Duration
	handle   *handles.Handle[Controller, struct{}]
}

// Control gives the camera to controller until it surrenders, the host
// takes it back, or the registration is closed.
func Control(duration Duration, controller Controller) (*Registration, error) {
	if controller == nil {
		return nil, errors.New("xpgo: camera controller is nil")
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	cb := api.Callback(cameraCallback)
	h, err := handles.New(controller, struct{}{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			api.ControlCamera(duration.Code(), cb, refcon)
			return 0, nil
		},
		Unregister: func(_, _ uintptr) {
			api.DontControlCamera()
		},
	})
	if err != nil {
		return nil, err
	}
	return &Registration{duration: duration, handle: h}, nil
}

// Duration returns the duration the camera was requested for.
func (r *Registration) Duration() Duration { return r.duration }

// Active reports whether the controller still has the camera.
func (r *Registration) Active() bool {
	b := r.handle.Block()
	return b != nil && b.Active
}

// Close releases the camera if the controller still has it.
func (r *Registration) Close() error {
	r.handle.Close()
	return nil
}

// IsControlled reports whether any plugin controls the camera, and for how
// long.
func IsControlled() (Duration, bool, error) {
	api, err := bindings.Current()
	if err != nil {
		return 0, false, err
	}
	controlled, code := api.IsCameraBeingControlled()
	if !controlled {
		return 0, false, nil
	}
	d, err := DurationFromCode(code)
	return d, true, err
}

// ReadPosition returns the current camera position.
func ReadPosition() (Position, error) {
	api, err := bindings.Current()
	if err != nil {
		return Position{}, err
	}
	return fromHost(api.ReadCameraPosition()), nil
}

func cameraCallback(pos *bindings.CameraPosition, losingControl int32, refcon uintptr) int32 {
	return handles.Invoke("camera", refcon, int32(0), func(b *handles.Block[Controller, struct{}]) int32 {
		// Inactive unless the controller repositions; a panic surrenders.
		b.Deactivate()
		if losingControl != 0 {
			b.Handler.ControlCamera(true)
			return 0
		}
		r := b.Handler.ControlCamera(false)
		if !r.reposition || pos == nil {
			return 0
		}
		*pos = r.pos.host()
		b.Active = true
		return 1
	})
}
