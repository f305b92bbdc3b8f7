//go:build !ios && !android && (amd64 || arm64)

package scenery

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Position places an instance in local OpenGL coordinates. Angles are in
// degrees.
type Position struct {
	X, Y, Z              float32
	Pitch, Heading, Roll float32
}

// Instance draws a copy of an object every frame at the last position set.
// The object must stay loaded while the instance exists.
//
// An Instance must be used only on the host's main thread.
type Instance struct {
	_        handles.NoCopy
	datarefs []string
	handle   *handles.Handle[[]string, struct{}]
}

// NewInstance creates an instance of obj. datarefs names the animation
// data refs whose values SetPosition supplies, in order.
func NewInstance(obj *Object, datarefs ...string) (*Instance, error) {
	if obj == nil {
		return nil, errors.New("xpgo: instance object is nil")
	}
	if err := bindings.RequireSDK("scenery.NewInstance", MinSDK); err != nil {
		return nil, err
	}
	for _, name := range datarefs {
		if err := xputil.ValidateName("scenery.NewInstance", name); err != nil {
			return nil, err
		}
	}
	ref, err := obj.ref()
	if err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	names := append([]string(nil), datarefs...)
	h, err := handles.New[[]string](names, struct{}{}, handles.Hooks{
		Register: func(uintptr) (uintptr, error) {
			id := api.CreateInstance(ref, names)
			if id == 0 {
				return 0, xputil.NewError(xputil.KindHostRejected, "scenery.NewInstance", obj.Path(), nil)
			}
			return id, nil
		},
		Unregister: func(id, _ uintptr) {
			api.DestroyInstance(id)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Instance{datarefs: names, handle: h}, nil
}

// DataRefs returns the animation data ref names, in SetPosition order.
func (in *Instance) DataRefs() []string {
	return append([]string(nil), in.datarefs...)
}

// SetPosition moves the instance and sets one value per animation data
// ref.
func (in *Instance) SetPosition(pos Position, values ...float32) error {
	b := in.handle.Block()
	if b == nil {
		return ErrClosed
	}
	if len(values) != len(in.datarefs) {
		return fmt.Errorf("xpgo: instance animates %d data refs, got %d values", len(in.datarefs), len(values))
	}
	api, err := bindings.Current()
	if err != nil {
		return err
	}
	api.InstanceSetPosition(b.HostID, bindings.DrawInfo{
		X:       pos.X,
		Y:       pos.Y,
		Z:       pos.Z,
		Pitch:   pos.Pitch,
		Heading: pos.Heading,
		Roll:    pos.Roll,
	}, values)
	return nil
}

// Close destroys the instance.
func (in *Instance) Close() error {
	in.handle.Close()
	return nil
}
