//go:build !ios && !android && (amd64 || arm64)

package scenery

import (
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Object is a loaded scenery object. Close unloads it.
//
// An Object must be used only on the host's main thread.
type Object struct {
	_      handles.NoCopy
	path   string
	handle *handles.Handle[string, struct{}]
}

// LoadObject loads the object file at path, relative to the X-System
// folder or a library path.
func LoadObject(path string) (*Object, error) {
	if err := xputil.ValidateName("scenery.LoadObject", path); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	return adoptObject(api, "scenery.LoadObject", path, func() uintptr {
		return api.LoadObject(path)
	})
}

func adoptObject(api bindings.API, op, path string, load func() uintptr) (*Object, error) {
	h, err := handles.New[string](path, struct{}{}, handles.Hooks{
		Register: func(uintptr) (uintptr, error) {
			ref := load()
			if ref == 0 {
				return 0, xputil.NewError(xputil.KindNotFound, op, path, nil)
			}
			return ref, nil
		},
		Unregister: func(ref, _ uintptr) {
			api.UnloadObject(ref)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Object{path: path, handle: h}, nil
}

// Path returns the path the object was loaded from.
func (o *Object) Path() string { return o.path }

func (o *Object) ref() (uintptr, error) {
	b := o.handle.Block()
	if b == nil {
		return 0, ErrClosed
	}
	return b.HostID, nil
}

// Close unloads the object.
func (o *Object) Close() error {
	o.handle.Close()
	return nil
}

// LoadHandler receives the outcome of an asynchronous load. On success it
// owns obj and must close it.
type LoadHandler interface {
	ObjectLoaded(obj *Object, err error)
}

// LoadFunc adapts a function to a LoadHandler.
type LoadFunc func(obj *Object, err error)

// ObjectLoaded implements LoadHandler.
func (f LoadFunc) ObjectLoaded(obj *Object, err error) { f(obj, err) }

type loadState struct {
	path      string
	cancelled bool
	self      *handles.Handle[LoadHandler, loadState]
}

// Loading is an asynchronous load the host has not finished.
//
// A Loading must be used only on the host's main thread.
type Loading struct {
	_      handles.NoCopy
	handle *handles.Handle[LoadHandler, loadState]
}

// LoadObjectAsync starts loading the object file at path in the
// background. The host reports back once, on the main thread, and handler
// runs then unless the load was cancelled.
func LoadObjectAsync(path string, handler LoadHandler) (*Loading, error) {
	if handler == nil {
		return nil, fmt.Errorf("xpgo: load handler for %q is nil", path)
	}
	if err := xputil.ValidateName("scenery.LoadObjectAsync", path); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	cb := api.Callback(objectLoadedCallback)
	h, err := handles.New[LoadHandler](handler, loadState{path: path}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			api.LoadObjectAsync(path, cb, refcon)
			return 0, nil
		},
	})
	if err != nil {
		return nil, err
	}
	h.Block().State.self = h
	return &Loading{handle: h}, nil
}

// Pending reports whether the host has yet to report back.
func (l *Loading) Pending() bool {
	return !l.handle.Closed()
}

// Cancel keeps the handler from running. The host cannot abandon a load,
// so an object that still arrives is unloaded straight away.
func (l *Loading) Cancel() {
	if b := l.handle.Block(); b != nil {
		b.State.cancelled = true
	}
}

func objectLoadedCallback(obj, refcon uintptr) {
	handles.Invoke("object loaded", refcon, struct{}{}, func(b *handles.Block[LoadHandler, loadState]) struct{} {
		s := b.State
		b.Deactivate()
		defer s.self.Close()

		api, err := bindings.Current()
		if err != nil {
			return struct{}{}
		}
		if s.cancelled {
			if obj != 0 {
				api.UnloadObject(obj)
			}
			return struct{}{}
		}
		o, err := adoptObject(api, "scenery.LoadObjectAsync", s.path, func() uintptr { return obj })
		b.Handler.ObjectLoaded(o, err)
		return struct{}{}
	})
}
