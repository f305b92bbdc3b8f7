//go:build !ios && !android && (amd64 || arm64)

package dataref

import (
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/internal/logging"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// ChangeHandler is called whenever a shared data ref changes.
type ChangeHandler[T Scalar] interface {
	DataChanged(ref *DataRef[T])
}

// ChangeFunc adapts a function to a ChangeHandler.
type ChangeFunc[T Scalar] func(ref *DataRef[T])

// DataChanged implements ChangeHandler.
func (f ChangeFunc[T]) DataChanged(ref *DataRef[T]) { f(ref) }

// ArrayChangeHandler is called whenever a shared array data ref changes.
type ArrayChangeHandler[E Element] interface {
	DataChanged(ref *Array[E])
}

// ArrayChangeFunc adapts a function to an ArrayChangeHandler.
type ArrayChangeFunc[E Element] func(ref *Array[E])

// DataChanged implements ArrayChangeHandler.
func (f ArrayChangeFunc[E]) DataChanged(ref *Array[E]) { f(ref) }

// notifier delivers a change to the typed handler. The data ref is looked up
// on the first change; the host creates it when the first plugin shares it.
type notifier interface {
	changed()
}

type scalarNotifier[T Scalar] struct {
	api     bindings.API
	name    string
	handler ChangeHandler[T]
	ref     *DataRef[T]
}

func (n *scalarNotifier[T]) changed() {
	if n.ref == nil {
		ref := n.api.FindDataRef(n.name)
		if ref == 0 {
			logging.Logger().Warn("shared data ref vanished", "name", n.name)
			return
		}
		n.ref = &DataRef[T]{api: n.api, ref: ref, name: n.name, writable: true}
	}
	n.handler.DataChanged(n.ref)
}

type arrayNotifier[E Element] struct {
	api     bindings.API
	name    string
	handler ArrayChangeHandler[E]
	ref     *Array[E]
}

func (n *arrayNotifier[E]) changed() {
	if n.ref == nil {
		ref := n.api.FindDataRef(n.name)
		if ref == 0 {
			logging.Logger().Warn("shared data ref vanished", "name", n.name)
			return
		}
		n.ref = &Array[E]{api: n.api, ref: ref, name: n.name, writable: true}
	}
	n.handler.DataChanged(n.ref)
}

// Shared is a subscription to shared data.
//
// A Shared must be used only on the host's main thread.
type Shared struct {
	_      handles.NoCopy
	name   string
	handle *handles.Handle[notifier, struct{}]
}

// Share subscribes to the shared data ref name, creating it if no plugin
// has shared it yet. It fails with a TypeMismatch error if the data already
// exists with another type.
func Share[T Scalar](name string, handler ChangeHandler[T]) (*Shared, error) {
	if handler == nil {
		return nil, fmt.Errorf("xpgo: change handler for %q is nil", name)
	}
	return share(name, scalarType[T](), func(api bindings.API) notifier {
		return &scalarNotifier[T]{api: api, name: name, handler: handler}
	})
}

// ShareArray is Share for array data.
func ShareArray[E Element](name string, handler ArrayChangeHandler[E]) (*Shared, error) {
	if handler == nil {
		return nil, fmt.Errorf("xpgo: change handler for %q is nil", name)
	}
	return share(name, arrayType[E](), func(api bindings.API) notifier {
		return &arrayNotifier[E]{api: api, name: name, handler: handler}
	})
}

func share(name string, typ int32, newNotifier func(bindings.API) notifier) (*Shared, error) {
	if err := xputil.ValidateName("dataref.Share", name); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	cb := api.Callback(dataChanged)
	h, err := handles.New(newNotifier(api), struct{}{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			if !api.ShareData(name, typ, cb, refcon) {
				return 0, xputil.NewError(xputil.KindTypeMismatch, "dataref.Share", name, nil)
			}
			return 0, nil
		},
		Unregister: func(_, refcon uintptr) {
			api.UnshareData(name, typ, cb, refcon)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Shared{name: name, handle: h}, nil
}

// Name returns the shared data ref name.
func (s *Shared) Name() string { return s.name }

// Close unsubscribes.
func (s *Shared) Close() error {
	s.handle.Close()
	return nil
}

func dataChanged(refcon uintptr) {
	handles.Invoke("shared data", refcon, struct{}{}, func(b *handles.Block[notifier, struct{}]) struct{} {
		b.Handler.changed()
		return struct{}{}
	})
}
