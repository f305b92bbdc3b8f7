//go:build !ios && !android && (amd64 || arm64)

package handles

import (
	"errors"
	"sync"
	"testing"

	"github.com/obinnaokechukwu/xpgo/xputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	type testData struct {
		Name  string
		Value int
	}

	data := &testData{Name: "test", Value: 42}
	id := Register(data)
	defer Unregister(id)

	assert.NotZero(t, id)
	got, ok := Lookup(id).(*testData)
	require.True(t, ok)
	assert.Equal(t, "test", got.Name)
	assert.Equal(t, 42, got.Value)
}

func TestUnregister(t *testing.T) {
	id := Register("test string")
	require.NotNil(t, Lookup(id))

	Unregister(id)
	assert.Nil(t, Lookup(id))
}

func TestLookupNonExistent(t *testing.T) {
	assert.Nil(t, Lookup(999999))
}

func TestConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numOps = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				data := struct {
					ID  int
					Seq int
				}{id, j}
				h := Register(&data)
				if Lookup(h) == nil {
					t.Errorf("Lookup returned nil for id %d", h)
				}
				Unregister(h)
			}
		}(i)
	}

	wg.Wait()
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[uintptr]bool)
	for i := 0; i < 1000; i++ {
		h := Register(i)
		assert.False(t, seen[h], "id %d returned twice", h)
		seen[h] = true
	}
	for h := range seen {
		Unregister(h)
	}
}

type counter struct{ n int }

type fakeHost struct {
	calls    []string
	nextID   uintptr
	refcons  map[uintptr]uintptr
	rejectOn bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{nextID: 100, refcons: make(map[uintptr]uintptr)}
}

func (f *fakeHost) hooks() Hooks {
	return Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			f.calls = append(f.calls, "register")
			if f.rejectOn {
				return 0, errors.New("rejected")
			}
			f.nextID++
			f.refcons[f.nextID] = refcon
			return f.nextID, nil
		},
		Unregister: func(hostID, refcon uintptr) {
			f.calls = append(f.calls, "unregister")
			delete(f.refcons, hostID)
		},
		Release: func() {
			f.calls = append(f.calls, "release")
		},
	}
}

func TestNewRegistersOnce(t *testing.T) {
	host := newFakeHost()
	before := Count()

	h, err := New("handler", counter{n: 3}, host.hooks())
	require.NoError(t, err)

	b := h.Block()
	require.NotNil(t, b)
	assert.Equal(t, []string{"register"}, host.calls)
	assert.Equal(t, uintptr(101), b.HostID)
	assert.True(t, b.Active)
	assert.Equal(t, 3, b.State.n)
	assert.Equal(t, b.Refcon, host.refcons[b.HostID])
	assert.Equal(t, before+1, Count())

	h.Close()
	assert.Equal(t, before, Count())
}

func TestNewFailureFreesBlock(t *testing.T) {
	host := newFakeHost()
	host.rejectOn = true
	before := Count()

	h, err := New("handler", counter{}, host.hooks())
	assert.Error(t, err)
	assert.Nil(t, h)
	assert.Equal(t, []string{"register", "release"}, host.calls)
	assert.Equal(t, before, Count())
}

func TestCloseUnregistersBeforeFree(t *testing.T) {
	host := newFakeHost()
	var inTableDuringUnregister bool

	hooks := host.hooks()
	hooks.Unregister = func(hostID, refcon uintptr) {
		host.calls = append(host.calls, "unregister")
		// A host callback racing the unregister must still resolve.
		_, inTableDuringUnregister = Resolve[string, counter](refcon)
	}

	h, err := New("handler", counter{}, hooks)
	require.NoError(t, err)
	h.Close()

	assert.True(t, inTableDuringUnregister)
	assert.Equal(t, []string{"register", "unregister", "release"}, host.calls)
}

func TestCloseIsIdempotent(t *testing.T) {
	host := newFakeHost()
	h, err := New("handler", counter{}, host.hooks())
	require.NoError(t, err)

	h.Close()
	h.Close()

	assert.Equal(t, []string{"register", "unregister", "release"}, host.calls)
	assert.True(t, h.Closed())
	assert.Nil(t, h.Block())
}

func TestCloseSkipsUnregisterAfterDeactivate(t *testing.T) {
	host := newFakeHost()
	h, err := New("handler", counter{}, host.hooks())
	require.NoError(t, err)

	h.Block().Deactivate()
	h.Close()

	assert.Equal(t, []string{"register", "release"}, host.calls)
}

func TestInvokeReachesState(t *testing.T) {
	h, err := New("handler", counter{}, Hooks{})
	require.NoError(t, err)
	defer h.Close()

	refcon := h.Block().Refcon
	for i := 0; i < 3; i++ {
		got := Invoke("test", refcon, -1, func(b *Block[string, counter]) int {
			b.State.n++
			return b.State.n
		})
		assert.Equal(t, i+1, got)
	}
	assert.Equal(t, 3, h.Block().State.n)
}

func TestInvokeStaleRefcon(t *testing.T) {
	h, err := New("handler", counter{}, Hooks{})
	require.NoError(t, err)
	refcon := h.Block().Refcon
	h.Close()

	called := false
	got := Invoke("test", refcon, 7, func(*Block[string, counter]) int {
		called = true
		return 0
	})
	assert.Equal(t, 7, got)
	assert.False(t, called)
}

func TestInvokeWrongType(t *testing.T) {
	h, err := New(1, counter{}, Hooks{})
	require.NoError(t, err)
	defer h.Close()

	got := Invoke("test", h.Block().Refcon, "fallback", func(*Block[string, counter]) string {
		return "reached"
	})
	assert.Equal(t, "fallback", got)
}

func TestInvokeRecoversPanic(t *testing.T) {
	h, err := New("handler", counter{}, Hooks{})
	require.NoError(t, err)
	defer h.Close()

	got := Invoke("test", h.Block().Refcon, int32(1), func(*Block[string, counter]) int32 {
		panic("boom")
	})
	assert.Equal(t, int32(1), got)
}

func TestGuard(t *testing.T) {
	assert.True(t, Guard("ok", func() {}))
	assert.False(t, Guard("panics", func() { panic("boom") }))
}

func TestNames(t *testing.T) {
	before := Count()
	var trampoline func(*byte, uintptr)
	callback := func(fn any) uintptr {
		trampoline = fn.(func(*byte, uintptr))
		return 7
	}
	var stale uintptr
	names, err := Names(callback, func(cb, refcon uintptr) {
		assert.Equal(t, uintptr(7), cb)
		stale = refcon
		for _, s := range []string{"one", "two"} {
			b := append([]byte(s), 0)
			trampoline(&b[0], refcon)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, names)
	assert.Equal(t, before, Count())

	// A late report against the dead refcon is dropped.
	b := []byte("late\x00")
	trampoline(&b[0], stale)
}

func TestNamesInvalidText(t *testing.T) {
	var trampoline func(*byte, uintptr)
	callback := func(fn any) uintptr {
		trampoline = fn.(func(*byte, uintptr))
		return 1
	}
	names, err := Names(callback, func(_, refcon uintptr) {
		for _, s := range []string{"ok\x00", "\xff\x00", "after\x00"} {
			b := []byte(s)
			trampoline(&b[0], refcon)
		}
	})
	var utf *xputil.Utf8Error
	require.ErrorAs(t, err, &utf)
	assert.Equal(t, []string{"ok", "after"}, names)
}
