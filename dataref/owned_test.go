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

func TestOwnedScalar(t *testing.T) {
	m := xplmtest.Install(t)
	before := handles.Count()

	o, err := NewOwned[float32]("xpgo/test/gain", 0.5, ReadWrite)
	require.NoError(t, err)

	d := m.DataRefs["xpgo/test/gain"]
	require.NotNil(t, d)
	require.NotNil(t, d.Accessor)
	assert.Equal(t, bindings.TypeFloat, d.Types)
	assert.NotZero(t, d.Accessor.GetFloat)
	assert.NotZero(t, d.Accessor.SetFloat)
	assert.Zero(t, d.Accessor.GetInt)

	// Other plugins see Go writes and Go sees theirs.
	ref, err := Find[float32]("xpgo/test/gain")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), ref.Get())
	o.Set(0.75)
	assert.Equal(t, float32(0.75), ref.Get())
	require.NoError(t, ref.Set(2))
	assert.Equal(t, float32(2), o.Get())

	var liveDuringUnregister bool
	m.OnUnregister = func(string) {
		liveDuringUnregister = handles.Count() == before+1
	}
	require.NoError(t, o.Close())
	require.NoError(t, o.Close())
	assert.True(t, liveDuringUnregister)
	assert.Equal(t, 1, m.Count("UnregisterDataAccessor"))
	assert.NotContains(t, m.DataRefs, "xpgo/test/gain")
	assert.Equal(t, before, handles.Count())
	assert.Empty(t, m.Errors)
}

func TestOwnedReadOnly(t *testing.T) {
	m := xplmtest.Install(t)

	o, err := NewOwned[int32]("xpgo/test/count", 7, ReadOnly)
	require.NoError(t, err)
	defer o.Close()

	d := m.DataRefs["xpgo/test/count"]
	assert.False(t, d.Writable)
	assert.Zero(t, d.Accessor.SetInt)

	_, err = FindWritable[int32]("xpgo/test/count")
	assert.ErrorIs(t, err, xputil.ErrNotWritable)

	ref, err := Find[int32]("xpgo/test/count")
	require.NoError(t, err)
	assert.Equal(t, int32(7), ref.Get())
}

func TestOwnedNameConflict(t *testing.T) {
	m := xplmtest.Install(t)
	m.AddDataRef("sim/existing", bindings.TypeInt, false)
	before := handles.Count()

	_, err := NewOwned[int32]("sim/existing", 0, ReadOnly)
	assert.ErrorIs(t, err, xputil.ErrNameConflict)
	assert.Zero(t, m.Count("RegisterDataAccessor"))
	assert.Equal(t, before, handles.Count())
}

func TestOwnedHostRejects(t *testing.T) {
	m := xplmtest.Install(t)
	m.RejectAccessor = true
	before := handles.Count()

	_, err := NewOwned[float64]("xpgo/test/rejected", 0, ReadOnly)
	assert.ErrorIs(t, err, xputil.ErrHostRejected)
	assert.Equal(t, before, handles.Count())
	assert.Zero(t, m.Count("UnregisterDataAccessor"))
}

func TestOwnedArray(t *testing.T) {
	m := xplmtest.Install(t)

	o, err := NewOwnedArray("xpgo/test/values", []int32{1, 2, 3, 4}, ReadWrite)
	require.NoError(t, err)
	defer o.Close()

	a, err := FindArrayWritable[int32]("xpgo/test/values")
	require.NoError(t, err)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []int32{1, 2, 3, 4}, a.Values())

	dst := make([]int32, 3)
	assert.Equal(t, 2, a.ReadAt(dst, 2))
	assert.Equal(t, []int32{3, 4, 0}, dst)
	assert.Zero(t, a.ReadAt(dst, 4))

	// Host writes never grow the array.
	require.NoError(t, a.WriteAt([]int32{9, 9, 9}, 2))
	assert.Equal(t, []int32{1, 2, 9, 9}, o.Values())

	o.Set([]int32{5})
	assert.Equal(t, 1, a.Len())
	assert.Empty(t, m.Errors)
}

func TestOwnedByteArray(t *testing.T) {
	xplmtest.Install(t)

	o, err := NewOwnedArray[byte]("xpgo/test/label", make([]byte, 16), ReadOnly)
	require.NoError(t, err)
	defer o.Close()

	require.NoError(t, SetString(o, "hello"))
	assert.Equal(t, 6, o.Len())

	a, err := FindArray[byte]("xpgo/test/label")
	require.NoError(t, err)
	s, err := ReadString(a)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	assert.ErrorIs(t, SetString(o, "a\x00b"), xputil.ErrInvalidIdentifier)
}

func TestAccessorStaleRefcon(t *testing.T) {
	m := xplmtest.Install(t)

	o, err := NewOwned[int32]("xpgo/test/stale", 3, ReadWrite)
	require.NoError(t, err)
	refcon := m.DataRefs["xpgo/test/stale"].Refcon
	assert.Equal(t, int32(3), getInt(refcon))

	require.NoError(t, o.Close())
	assert.Zero(t, getInt(refcon))
	setInt(refcon, 5)
	assert.Zero(t, getIntArray(refcon, nil, 0, 0))
}

func TestAccessorWrongBlockType(t *testing.T) {
	xplmtest.Install(t)

	h, err := handles.New[int](0, struct{}{}, handles.Hooks{})
	require.NoError(t, err)
	defer h.Close()

	assert.Zero(t, getDouble(h.Block().Refcon))
}
