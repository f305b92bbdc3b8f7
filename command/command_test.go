//go:build !ios && !android && (amd64 || arm64)

package command

import (
	"testing"

	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/internal/xplmtest"
	"github.com/obinnaokechukwu/xpgo/xputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	m := xplmtest.Install(t)
	m.AddCommand("sim/operation/pause_toggle", "Pause")

	cmd, err := Find("sim/operation/pause_toggle")
	require.NoError(t, err)
	assert.Equal(t, "sim/operation/pause_toggle", cmd.Name())

	cmd.Trigger()
	assert.Equal(t, 1, m.Commands["sim/operation/pause_toggle"].Once)
}

func TestFindErrors(t *testing.T) {
	m := xplmtest.Install(t)

	_, err := Find("sim/none")
	assert.ErrorIs(t, err, xputil.ErrNotFound)

	m.ResetCalls()
	_, err = Find("sim/\x00bad")
	assert.ErrorIs(t, err, xputil.ErrInvalidIdentifier)
	assert.Zero(t, m.Count("FindCommand"), "no host call for an invalid name")
}

func TestHold(t *testing.T) {
	m := xplmtest.Install(t)
	c := m.AddCommand("sim/flight_controls/brakes_toggle_max", "")

	cmd, err := Find(c.Name)
	require.NoError(t, err)

	hold := cmd.Hold()
	assert.Equal(t, 1, c.Begins)
	assert.Zero(t, c.Ends)

	hold.Release()
	hold.Release()
	assert.Equal(t, 1, c.Ends)
}

type phases struct {
	seen []Phase
}

type recorder struct{}

func (recorder) CommandBegin(s *phases) Outcome    { s.seen = append(s.seen, Begin); return Halt }
func (recorder) CommandContinue(s *phases) Outcome { s.seen = append(s.seen, Continue); return Halt }
func (recorder) CommandEnd(s *phases) Outcome      { s.seen = append(s.seen, End); return PassThrough }

func TestOwnedCommand(t *testing.T) {
	m := xplmtest.Install(t)
	before := handles.Count()

	owned, err := NewOwned("xpgo/test/owned", "Test command", recorder{}, phases{})
	require.NoError(t, err)
	assert.Equal(t, "Test command", owned.Description())

	c := m.Commands["xpgo/test/owned"]
	require.NotNil(t, c)
	require.Len(t, c.Handlers, 1)
	assert.True(t, c.Handlers[0].Before)

	assert.Equal(t, []int32{0}, m.RunCommand("xpgo/test/owned", Begin.Code()))
	assert.Equal(t, []int32{0}, m.RunCommand("xpgo/test/owned", Continue.Code()))
	assert.Equal(t, []int32{1}, m.RunCommand("xpgo/test/owned", End.Code()))
	assert.Equal(t, []Phase{Begin, Continue, End}, owned.State().seen)

	var registeredDuringUnregister bool
	m.OnUnregister = func(call string) {
		registeredDuringUnregister = handles.Count() == before+1
	}
	require.NoError(t, owned.Close())
	assert.True(t, registeredDuringUnregister)
	assert.Empty(t, c.Handlers)
	assert.Equal(t, before, handles.Count())

	require.NoError(t, owned.Close())
	assert.Equal(t, 1, m.Count("UnregisterCommandHandler"))
	assert.Empty(t, m.Errors)
}

func TestOwnedNameConflict(t *testing.T) {
	m := xplmtest.Install(t)
	m.AddCommand("sim/existing", "")
	before := handles.Count()

	_, err := NewOwned("sim/existing", "", recorder{}, phases{})
	assert.ErrorIs(t, err, xputil.ErrNameConflict)
	assert.Zero(t, m.Count("CreateCommand"))
	assert.Equal(t, before, handles.Count())
}

func TestOwnedInvalidName(t *testing.T) {
	m := xplmtest.Install(t)

	_, err := NewOwned("xpgo/ok", "bad\x00description", recorder{}, phases{})
	assert.ErrorIs(t, err, xputil.ErrInvalidIdentifier)
	assert.Empty(t, m.CallNames())
}

func TestHandleExistingCommand(t *testing.T) {
	m := xplmtest.Install(t)
	m.AddCommand("sim/lights/landing_lights_toggle", "")

	cmd, err := Find("sim/lights/landing_lights_toggle")
	require.NoError(t, err)

	reg, err := Handle(cmd, false, HandlerFunc[int](func(p Phase, n *int) Outcome {
		if p == Begin {
			*n++
		}
		return PassThrough
	}), 0)
	require.NoError(t, err)
	defer reg.Close()

	m.RunCommand("sim/lights/landing_lights_toggle", Begin.Code())
	m.RunCommand("sim/lights/landing_lights_toggle", End.Code())
	assert.Equal(t, 1, *reg.State())
	assert.Same(t, cmd, reg.Command())
}

func TestUnknownPhasePassesThrough(t *testing.T) {
	m := xplmtest.Install(t)
	owned, err := NewOwned("xpgo/test/phase", "", recorder{}, phases{})
	require.NoError(t, err)
	defer owned.Close()

	assert.Equal(t, []int32{1}, m.RunCommand("xpgo/test/phase", 9))
	assert.Empty(t, owned.State().seen)
}

func TestUnknownPhaseReachesHandlerFunc(t *testing.T) {
	m := xplmtest.Install(t)
	var seen []Phase
	owned, err := NewOwned("xpgo/test/phase", "", HandlerFunc[struct{}](func(p Phase, _ *struct{}) Outcome {
		seen = append(seen, p)
		return Halt
	}), struct{}{})
	require.NoError(t, err)
	defer owned.Close()

	assert.Equal(t, []int32{0}, m.RunCommand("xpgo/test/phase", 9))
	require.Equal(t, []Phase{9}, seen)
	_, err = PhaseFromCode(seen[0].Code())
	code, ok := xputil.UnmatchedCode(err)
	assert.True(t, ok)
	assert.Equal(t, int32(9), code)
}

type strict struct{ recorder }

func (strict) CommandUnknown(err error, s *phases) Outcome {
	code, _ := xputil.UnmatchedCode(err)
	s.seen = append(s.seen, Phase(code))
	return Halt
}

func TestUnknownPhaseHandler(t *testing.T) {
	m := xplmtest.Install(t)
	owned, err := NewOwned("xpgo/test/strict", "", strict{}, phases{})
	require.NoError(t, err)
	defer owned.Close()

	assert.Equal(t, []int32{0}, m.RunCommand("xpgo/test/strict", 5))
	assert.Equal(t, []int32{0}, m.RunCommand("xpgo/test/strict", Begin.Code()))
	assert.Equal(t, []Phase{5, Begin}, owned.State().seen)
}

func TestHandlerPanicPassesThrough(t *testing.T) {
	m := xplmtest.Install(t)
	owned, err := NewOwned("xpgo/test/panic", "", HandlerFunc[struct{}](func(Phase, *struct{}) Outcome {
		panic("boom")
	}), struct{}{})
	require.NoError(t, err)
	defer owned.Close()

	assert.Equal(t, []int32{1}, m.RunCommand("xpgo/test/panic", Begin.Code()))
}

func TestPhaseRoundTrip(t *testing.T) {
	for _, p := range []Phase{Begin, Continue, End} {
		got, err := PhaseFromCode(p.Code())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := PhaseFromCode(-1)
	assert.ErrorIs(t, err, xputil.ErrUnmatchedCode)
}
