//go:build !ios && !android && (amd64 || arm64)

package dataref

import (
	"testing"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/xplmtest"
	"github.com/obinnaokechukwu/xpgo/xputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScalar(t *testing.T) {
	m := xplmtest.Install(t)
	d := m.AddDataRef("sim/cockpit/radios/com1_freq_hz", bindings.TypeInt, true)
	d.Int = 12250

	ref, err := Find[int32]("sim/cockpit/radios/com1_freq_hz")
	require.NoError(t, err)
	assert.Equal(t, int32(12250), ref.Get())
	assert.True(t, ref.Writable())

	require.NoError(t, ref.Set(13000))
	assert.Equal(t, int32(13000), d.Int)
}

func TestFindFloatAndDouble(t *testing.T) {
	m := xplmtest.Install(t)
	d := m.AddDataRef("sim/flightmodel/position/elevation", bindings.TypeFloat|bindings.TypeDouble, false)
	d.Float = 1.5
	d.Double = 1500.25

	f, err := Find[float32]("sim/flightmodel/position/elevation")
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f.Get())

	g, err := Find[float64]("sim/flightmodel/position/elevation")
	require.NoError(t, err)
	assert.Equal(t, 1500.25, g.Get())

	assert.ErrorIs(t, g.Set(1), xputil.ErrNotWritable)
	assert.Zero(t, m.Count("SetDatad"))
}

func TestFindErrors(t *testing.T) {
	m := xplmtest.Install(t)
	m.AddDataRef("sim/time/total_running_time_sec", bindings.TypeFloat, false)

	tests := []struct {
		name string
		find func() error
		want error
	}{
		{"not found", func() error { _, err := Find[int32]("sim/none"); return err }, xputil.ErrNotFound},
		{"wrong type", func() error { _, err := Find[int32]("sim/time/total_running_time_sec"); return err }, xputil.ErrTypeMismatch},
		{"not writable", func() error { _, err := FindWritable[float32]("sim/time/total_running_time_sec"); return err }, xputil.ErrNotWritable},
		{"array of scalar", func() error { _, err := FindArray[float32]("sim/time/total_running_time_sec"); return err }, xputil.ErrTypeMismatch},
		{"nul byte", func() error { _, err := Find[int32]("sim/\x00"); return err }, xputil.ErrInvalidIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.find(), tt.want)
		})
	}
}

func TestArray(t *testing.T) {
	m := xplmtest.Install(t)
	d := m.AddDataRef("sim/flightmodel/engine/ENGN_thro", bindings.TypeFloatArray, true)
	d.Floats = []float32{0.1, 0.2, 0.3, 0.4}

	a, err := FindArrayWritable[float32]("sim/flightmodel/engine/ENGN_thro")
	require.NoError(t, err)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, a.Values())

	dst := make([]float32, 2)
	assert.Equal(t, 2, a.ReadAt(dst, 1))
	assert.Equal(t, []float32{0.2, 0.3}, dst)
	assert.Zero(t, a.ReadAt(dst, 10))

	require.NoError(t, a.WriteAt([]float32{1, 1}, 2))
	assert.Equal(t, []float32{0.1, 0.2, 1, 1}, d.Floats)
}

func TestArrayString(t *testing.T) {
	m := xplmtest.Install(t)
	d := m.AddDataRef("sim/aircraft/view/acf_tailnum", bindings.TypeData, true)
	d.Bytes = []byte("N12345\x00\x00\x00")

	a, err := FindArray[byte]("sim/aircraft/view/acf_tailnum")
	require.NoError(t, err)
	s, err := ReadString(a)
	require.NoError(t, err)
	assert.Equal(t, "N12345", s)

	require.NoError(t, WriteString(a, "D-EXYZ"))
	assert.Equal(t, "D-EXYZ\x00\x00\x00", string(d.Bytes))

	assert.ErrorIs(t, WriteString(a, "bad\x00"), xputil.ErrInvalidIdentifier)

	d.Bytes = []byte{'o', 'k', 0xff, 0}
	_, err = ReadString(a)
	var utf8Err *xputil.Utf8Error
	require.ErrorAs(t, err, &utf8Err)
	assert.Equal(t, 2, utf8Err.Offset)
}

func TestReadOnlyArrayWrite(t *testing.T) {
	m := xplmtest.Install(t)
	m.AddDataRef("sim/cockpit2/gauges/indicators/airspeed_kts", bindings.TypeIntArray, false)

	a, err := FindArray[int32]("sim/cockpit2/gauges/indicators/airspeed_kts")
	require.NoError(t, err)
	assert.ErrorIs(t, a.Write([]int32{1}), xputil.ErrNotWritable)
	assert.Nil(t, a.Values())
}
