//go:build !ios && !android && (amd64 || arm64)

// Package handles provides the callback handle registry that ties Go objects
// to host callback registrations.
//
// The host stores a pointer-sized "refcon" with every callback it accepts and
// hands it back on each invocation. Go pointers cannot live in host memory, so
// the refcon is a table id that resolves to a Block. A Block keeps the user
// handler, the user state and the host-assigned id together for exactly as
// long as the host registration exists.
package handles

import (
	"fmt"
	"sync"

	"github.com/obinnaokechukwu/xpgo/internal/logging"
)

var (
	mu      sync.RWMutex
	handles = make(map[uintptr]any)
	nextID  = uintptr(1)
)

// Register stores a Go object and returns a non-zero id.
// The id can be stored in host memory as a refcon. The object remains
// reachable until Unregister is called.
//
// Thread-safe.
func Register(v any) uintptr {
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	handles[id] = v
	return id
}

// Lookup retrieves a Go object by its id.
// Returns nil if the id is not registered.
//
// Thread-safe.
func Lookup(id uintptr) any {
	mu.RLock()
	defer mu.RUnlock()
	return handles[id]
}

// Unregister removes an id and lets the Go object be garbage collected.
//
// Thread-safe.
func Unregister(id uintptr) {
	mu.Lock()
	defer mu.Unlock()
	delete(handles, id)
}

// Count returns the number of currently registered ids.
// Useful for leak tests.
//
// Thread-safe.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(handles)
}

// NoCopy is embedded in public handle types. They are confined to the host
// thread and must not be copied; go vet's copylocks check reports copies.
type NoCopy struct{}

func (*NoCopy) Lock()   {}
func (*NoCopy) Unlock() {}

// Block is the context block the refcon of a host registration resolves to.
type Block[H any, S any] struct {
	Handler H       // User callback object
	State   *S      // User state, owned by the block
	HostID  uintptr // Host-assigned id, zero until registration succeeds
	Refcon  uintptr // Table id handed to the host
	Active  bool    // Host registration still live

	hooks Hooks
}

// Deactivate records that the host ended the registration on its own.
// Close then skips the host unregister call.
func (b *Block[H, S]) Deactivate() {
	b.Active = false
}

// Hooks are the host calls bracketing a registration.
type Hooks struct {
	// Register makes the single host registration call. It receives the
	// refcon to hand to the host and returns the host id.
	Register func(refcon uintptr) (uintptr, error)

	// Unregister tears the host registration down. It runs before the
	// block leaves the table, and only while the block is active.
	Unregister func(hostID, refcon uintptr)

	// Release runs after the block left the table. Optional.
	Release func()
}

// Handle owns one Block. Closing the handle ends the registration.
//
// A Handle must be used only on the host's main thread.
type Handle[H any, S any] struct {
	block  *Block[H, S]
	closed bool
}

// New allocates one block, registers it with the host and returns the
// handle that owns it. If the host registration fails, the block is freed
// before New returns and the host never sees the refcon again.
func New[H any, S any](handler H, state S, hooks Hooks) (*Handle[H, S], error) {
	b := &Block[H, S]{Handler: handler, State: &state, hooks: hooks}
	b.Refcon = Register(b)

	if hooks.Register != nil {
		hostID, err := hooks.Register(b.Refcon)
		if err != nil {
			Unregister(b.Refcon)
			if hooks.Release != nil {
				hooks.Release()
			}
			return nil, err
		}
		b.HostID = hostID
	}
	b.Active = true
	return &Handle[H, S]{block: b}, nil
}

// Block returns the owned block, or nil after Close.
func (h *Handle[H, S]) Block() *Block[H, S] {
	if h == nil || h.closed {
		return nil
	}
	return h.block
}

// Closed reports whether Close has run.
func (h *Handle[H, S]) Closed() bool {
	return h == nil || h.closed
}

// Close unregisters from the host if still active, then frees the block.
// Calling Close more than once is a no-op.
func (h *Handle[H, S]) Close() {
	if h == nil || h.closed {
		return
	}
	h.closed = true
	b := h.block
	if b.Active {
		b.Active = false
		if b.hooks.Unregister != nil {
			b.hooks.Unregister(b.HostID, b.Refcon)
		}
	}
	Unregister(b.Refcon)
	if b.hooks.Release != nil {
		b.hooks.Release()
	}
}

// Resolve returns the block a refcon refers to, if it is live and of the
// requested type.
func Resolve[H any, S any](refcon uintptr) (*Block[H, S], bool) {
	b, ok := Lookup(refcon).(*Block[H, S])
	return b, ok
}

// Invoke runs fn against the block behind refcon on behalf of the host
// callback name. It returns fallback if the refcon is stale or of the wrong
// type, and recovers any panic raised by fn. Nothing escapes to the host.
func Invoke[H any, S any, R any](name string, refcon uintptr, fallback R, fn func(*Block[H, S]) R) (result R) {
	b, ok := Resolve[H, S](refcon)
	if !ok {
		logging.Logger().Debug("callback with unknown refcon", "callback", name, "refcon", refcon)
		return fallback
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Error("callback panicked",
				"callback", name,
				"refcon", refcon,
				"panic", fmt.Sprint(r))
			result = fallback
		}
	}()
	return fn(b)
}

// Guard runs fn and recovers any panic, logging it under name.
// It reports whether fn completed.
func Guard(name string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Error("callback panicked", "callback", name, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	fn()
	return true
}
