//go:build !ios && !android && (amd64 || arm64)

package dataref

import (
	"testing"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/internal/xplmtest"
	"github.com/obinnaokechukwu/xpgo/xputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShare(t *testing.T) {
	m := xplmtest.Install(t)
	before := handles.Count()

	var seen []float32
	s, err := Share[float32]("xpgo/shared/flaps", ChangeFunc[float32](func(ref *DataRef[float32]) {
		seen = append(seen, ref.Get())
	}))
	require.NoError(t, err)
	assert.Equal(t, "xpgo/shared/flaps", s.Name())

	d := m.DataRefs["xpgo/shared/flaps"]
	require.NotNil(t, d)

	d.Float = 0.25
	m.NotifyShared("xpgo/shared/flaps")
	d.Float = 0.5
	m.NotifyShared("xpgo/shared/flaps")
	assert.Equal(t, []float32{0.25, 0.5}, seen)
	assert.Equal(t, 1, m.Count("FindDataRef"), "data ref is looked up once")

	var liveDuringUnshare bool
	m.OnUnregister = func(string) {
		liveDuringUnshare = handles.Count() == before+1
	}
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, liveDuringUnshare)
	assert.Equal(t, 1, m.Count("UnshareData"))
	assert.Empty(t, m.Shared["xpgo/shared/flaps"])
	assert.Equal(t, before, handles.Count())
	assert.Empty(t, m.Errors)
}

func TestShareTypeMismatch(t *testing.T) {
	m := xplmtest.Install(t)
	before := handles.Count()

	first, err := Share[int32]("xpgo/shared/mode", ChangeFunc[int32](func(*DataRef[int32]) {}))
	require.NoError(t, err)
	defer first.Close()

	_, err = Share[float64]("xpgo/shared/mode", ChangeFunc[float64](func(*DataRef[float64]) {}))
	assert.ErrorIs(t, err, xputil.ErrTypeMismatch)
	assert.Equal(t, before+1, handles.Count())
	assert.Zero(t, m.Count("UnshareData"), "failed share is never unshared")
}

func TestShareArray(t *testing.T) {
	m := xplmtest.Install(t)

	var got string
	s, err := ShareArray[byte]("xpgo/shared/message", ArrayChangeFunc[byte](func(ref *Array[byte]) {
		got, _ = ReadString(ref)
	}))
	require.NoError(t, err)
	defer s.Close()

	d := m.DataRefs["xpgo/shared/message"]
	require.NotNil(t, d)
	assert.Equal(t, bindings.TypeData, d.Types)

	d.Bytes = []byte("ready\x00")
	m.NotifyShared("xpgo/shared/message")
	assert.Equal(t, "ready", got)
}

func TestShareHandlerPanic(t *testing.T) {
	m := xplmtest.Install(t)

	calls := 0
	s, err := Share[int32]("xpgo/shared/panic", ChangeFunc[int32](func(*DataRef[int32]) {
		calls++
		panic("handler bug")
	}))
	require.NoError(t, err)
	defer s.Close()

	assert.NotPanics(t, func() { m.NotifyShared("xpgo/shared/panic") })
	assert.NotPanics(t, func() { m.NotifyShared("xpgo/shared/panic") })
	assert.Equal(t, 2, calls)
}

func TestShareNilHandler(t *testing.T) {
	m := xplmtest.Install(t)
	before := handles.Count()

	_, err := Share[int32]("xpgo/shared/none", nil)
	assert.Error(t, err)
	_, err = ShareArray[float32]("xpgo/shared/none", nil)
	assert.Error(t, err)
	assert.Zero(t, m.Count("ShareData"))
	assert.Equal(t, before, handles.Count())
}
