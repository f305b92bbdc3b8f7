//go:build !ios && !android && (amd64 || arm64)

package avionics

import (
	"testing"

	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/internal/xplmtest"
	"github.com/obinnaokechukwu/xpgo/xputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyCustomization(t *testing.T, m *xplmtest.Mock) *xplmtest.Avionics {
	t.Helper()
	require.Len(t, m.Avionics, 1)
	for _, a := range m.Avionics {
		return a
	}
	return nil
}

func TestDeviceRoundTrip(t *testing.T) {
	devices := Devices()
	require.Len(t, devices, 18)
	for _, d := range devices {
		got, err := DeviceFromCode(d.Code())
		require.NoError(t, err, d.String())
		assert.Equal(t, d, got)
	}

	for _, code := range []int32{-1, 18, 1000} {
		_, err := DeviceFromCode(code)
		assert.ErrorIs(t, err, xputil.ErrUnmatchedCode)
		got, ok := xputil.UnmatchedCode(err)
		require.True(t, ok)
		assert.Equal(t, code, got)
	}
	assert.Equal(t, "G1000 MFD", G1000MFD.String())
	assert.Equal(t, "Device(42)", Device(42).String())
}

func TestResultEncoding(t *testing.T) {
	assert.Equal(t, int32(0), AllowDraw.Encode())
	assert.Equal(t, int32(1), SuppressDraw.Encode())
	assert.Equal(t, int32(0), Irrelevant.Encode())
}

type draws struct {
	before, after int
}

func TestCustomize(t *testing.T) {
	m := xplmtest.Install(t)
	before := handles.Count()

	c, err := Customize(G1000PFDPilot,
		HandlerFunc[draws](func(ctx *Context[draws]) Result {
			ctx.State().before++
			d, err := ctx.Device()
			if err != nil || d != G1000PFDPilot || !ctx.Before() {
				return AllowDraw
			}
			return SuppressDraw
		}),
		HandlerFunc[draws](func(ctx *Context[draws]) Result {
			ctx.State().after++
			return Irrelevant
		}),
		draws{})
	require.NoError(t, err)
	assert.Equal(t, G1000PFDPilot, c.Device())

	a := onlyCustomization(t, m)
	assert.Equal(t, G1000PFDPilot.Code(), a.Device)

	r, ok := m.DrawAvionics(a.ID, true)
	require.True(t, ok)
	assert.Equal(t, int32(1), r)
	r, ok = m.DrawAvionics(a.ID, false)
	require.True(t, ok)
	assert.Equal(t, int32(0), r)
	assert.Equal(t, draws{before: 1, after: 1}, *c.State())

	var liveDuringUnregister bool
	m.OnUnregister = func(string) {
		liveDuringUnregister = handles.Count() == before+1
	}
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, liveDuringUnregister)
	assert.Equal(t, 1, m.Count("UnregisterAvionicsCallbacks"))
	assert.Equal(t, before, handles.Count())
	assert.Empty(t, m.Errors)
}

func TestCustomizeAfterOnly(t *testing.T) {
	m := xplmtest.Install(t)

	c, err := Customize[int](CDU815Copilot, nil, HandlerFunc[int](func(ctx *Context[int]) Result {
		*ctx.State()++
		return Irrelevant
	}), 0)
	require.NoError(t, err)
	defer c.Close()

	a := onlyCustomization(t, m)
	assert.Zero(t, a.Before)
	_, ok := m.DrawAvionics(a.ID, true)
	assert.False(t, ok)
	_, ok = m.DrawAvionics(a.ID, false)
	assert.True(t, ok)
	assert.Equal(t, 1, *c.State())
}

func TestCustomizeUnknownDevice(t *testing.T) {
	xplmtest.Install(t)

	var got error
	c, err := Customize(G1000MFD, HandlerFunc[struct{}](func(ctx *Context[struct{}]) Result {
		_, got = ctx.Device()
		return AllowDraw
	}), nil, struct{}{})
	require.NoError(t, err)
	defer c.Close()

	refcon := c.handle.Block().Refcon
	assert.Equal(t, int32(0), avionicsCallback(77, 1, refcon))
	code, ok := xputil.UnmatchedCode(got)
	require.True(t, ok)
	assert.Equal(t, int32(77), code)
}

func TestCustomizeRequiresSDK4(t *testing.T) {
	m := xplmtest.Install(t)
	m.Versions.XPLM = 303

	_, err := Customize[int](GNS430Pilot, HandlerFunc[int](func(*Context[int]) Result { return AllowDraw }), nil, 0)
	assert.ErrorIs(t, err, xputil.ErrUnsupported)
	assert.Zero(t, m.Count("RegisterAvionicsCallbacks"))
}

func TestCustomizeHostRejects(t *testing.T) {
	m := xplmtest.Install(t)
	m.RejectAvionics = true
	before := handles.Count()

	_, err := Customize[int](GNS530Pilot, HandlerFunc[int](func(*Context[int]) Result { return AllowDraw }), nil, 0)
	assert.ErrorIs(t, err, xputil.ErrHostRejected)
	assert.Equal(t, before, handles.Count())
}

func TestCustomizeNeedsHandler(t *testing.T) {
	xplmtest.Install(t)
	_, err := Customize[int](GNS530Pilot, nil, nil, 0)
	assert.Error(t, err)
}

func TestHandlerPanicAllowsDraw(t *testing.T) {
	m := xplmtest.Install(t)

	c, err := Customize[int](PrimusMFDCenter, HandlerFunc[int](func(*Context[int]) Result { panic("bug") }), nil, 0)
	require.NoError(t, err)
	defer c.Close()

	r, ok := m.DrawAvionics(onlyCustomization(t, m).ID, true)
	require.True(t, ok)
	assert.Equal(t, int32(0), r)
}
