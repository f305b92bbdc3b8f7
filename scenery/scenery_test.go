//go:build !ios && !android && (amd64 || arm64)

package scenery

import (
	"testing"

	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/internal/xplmtest"
	"github.com/obinnaokechukwu/xpgo/xputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	m := xplmtest.Install(t)
	m.Library["lib/cars/car.obj"] = []string{"Custom Scenery/A/car1.obj", "Custom Scenery/B/car2.obj"}
	before := handles.Count()

	paths, err := Lookup("lib/cars/car.obj", 47.5, -122.3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom Scenery/A/car1.obj", "Custom Scenery/B/car2.obj"}, paths)
	assert.Equal(t, before, handles.Count())

	paths, err = Lookup("lib/none.obj", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, paths)

	m.ResetCalls()
	_, err = Lookup("lib/\x00.obj", 0, 0)
	assert.ErrorIs(t, err, xputil.ErrInvalidIdentifier)
	assert.Zero(t, m.Count("LookupObjects"))
	assert.Empty(t, m.Errors)
}

func TestReload(t *testing.T) {
	m := xplmtest.Install(t)
	require.NoError(t, Reload())
	assert.Equal(t, 1, m.Count("ReloadScenery"))
}

func TestMagnetic(t *testing.T) {
	m := xplmtest.Install(t)
	m.Variation = 15

	v, err := MagneticVariation(47.5, -122.3)
	require.NoError(t, err)
	assert.Equal(t, float32(15), v)

	mag, err := TrueToMagnetic(90)
	require.NoError(t, err)
	assert.Equal(t, float32(75), mag)

	tru, err := MagneticToTrue(75)
	require.NoError(t, err)
	assert.Equal(t, float32(90), tru)
}

func TestMagneticRequiresSDK3(t *testing.T) {
	m := xplmtest.Install(t)
	m.Versions.XPLM = 210

	_, err := MagneticVariation(0, 0)
	assert.ErrorIs(t, err, xputil.ErrUnsupported)
	_, err = TrueToMagnetic(0)
	assert.ErrorIs(t, err, xputil.ErrUnsupported)
	_, err = MagneticToTrue(0)
	assert.ErrorIs(t, err, xputil.ErrUnsupported)
	assert.Zero(t, m.Count("GetMagneticVariation"))
}
