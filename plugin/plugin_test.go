//go:build !ios && !android && (amd64 || arm64)

package plugin

import (
	"errors"
	"strings"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/logging"
	"github.com/obinnaokechukwu/xpgo/internal/xplmtest"
	"github.com/obinnaokechukwu/xpgo/message"
	"github.com/obinnaokechukwu/xpgo/xputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type received struct {
	from ID
	msg  message.ID
}

type testPlugin struct {
	info      Info
	enableErr error
	panicIn   string
	events    []string
	messages  []received
}

func (p *testPlugin) maybePanic(entry string) {
	p.events = append(p.events, entry)
	if p.panicIn == entry {
		panic(entry + " bug")
	}
}

func (p *testPlugin) Info() Info { return p.info }

func (p *testPlugin) Enable() error {
	p.maybePanic("enable")
	return p.enableErr
}

func (p *testPlugin) Disable() { p.maybePanic("disable") }
func (p *testPlugin) Stop()    { p.maybePanic("stop") }

func (p *testPlugin) ReceiveMessage(from ID, msg message.ID, _ unsafe.Pointer) {
	p.maybePanic("message")
	p.messages = append(p.messages, received{from, msg})
}

// setup installs a mock host and resets the lifecycle state.
func setup(t *testing.T, p *testPlugin) *xplmtest.Mock {
	t.Helper()
	m := xplmtest.Install(t)
	reset := func() {
		startFunc, current, panicked = nil, nil, false
		logging.SetSink(nil)
	}
	reset()
	t.Cleanup(reset)
	if p != nil {
		Register(func() (Plugin, error) { return p, nil })
	}
	return m
}

type hostBuffers struct {
	name, sig, desc [xputil.HostStringCapacity]byte
}

func (b *hostBuffers) start() int32 {
	return Start(&b.name[0], &b.sig[0], &b.desc[0])
}

func cstr(b []byte) string {
	s, _, _ := strings.Cut(string(b), "\x00")
	return s
}

func TestLifecycle(t *testing.T) {
	p := &testPlugin{info: Info{Name: "Test", Signature: "com.example.test", Description: "A test plugin"}}
	setup(t, p)

	var buf hostBuffers
	require.Equal(t, int32(1), buf.start())
	assert.Equal(t, "Test", cstr(buf.name[:]))
	assert.Equal(t, "com.example.test", cstr(buf.sig[:]))
	assert.Equal(t, "A test plugin", cstr(buf.desc[:]))

	assert.Equal(t, int32(1), Enable())
	ReceiveMessage(0, int32(message.PlaneLoaded), nil)
	ReceiveMessage(7, 0x01000000, nil)
	Disable()
	Stop()
	Stop()

	assert.Equal(t, []string{"enable", "message", "message", "disable", "stop"}, p.events)
	assert.Equal(t, []received{{XPlane, message.PlaneLoaded}, {7, 0x01000000}}, p.messages)
	assert.False(t, Panicked())

	// Nothing reaches a stopped plugin.
	assert.Equal(t, int32(0), Enable())
	ReceiveMessage(0, 101, nil)
	assert.Len(t, p.events, 5)
}

func TestLongInfoIsTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	setup(t, &testPlugin{info: Info{Name: long}})

	var buf hostBuffers
	require.Equal(t, int32(1), buf.start())
	assert.Equal(t, long[:xputil.HostStringCapacity-1], cstr(buf.name[:]))
	assert.Zero(t, buf.name[xputil.HostStringCapacity-1])
}

func TestStartFailure(t *testing.T) {
	setup(t, nil)
	Register(func() (Plugin, error) { return nil, errors.New("no aircraft") })

	var buf hostBuffers
	assert.Equal(t, int32(0), buf.start())
	assert.Equal(t, int32(0), Enable())
	assert.False(t, Panicked())
}

func TestStartWithoutRegister(t *testing.T) {
	setup(t, nil)
	var buf hostBuffers
	assert.Equal(t, int32(0), buf.start())
}

func TestEnableError(t *testing.T) {
	p := &testPlugin{enableErr: errors.New("missing data ref")}
	setup(t, p)

	var buf hostBuffers
	require.Equal(t, int32(1), buf.start())
	assert.Equal(t, int32(0), Enable())
	assert.False(t, Panicked(), "an error is not a panic")
}

func TestPanicDisablesPermanently(t *testing.T) {
	for _, entry := range []string{"enable", "disable", "message"} {
		t.Run(entry, func(t *testing.T) {
			p := &testPlugin{panicIn: entry}
			setup(t, p)

			var buf hostBuffers
			require.Equal(t, int32(1), buf.start())
			assert.NotPanics(t, func() {
				Enable()
				Disable()
				ReceiveMessage(0, 101, nil)
			})
			assert.True(t, Panicked())

			n := len(p.events)
			assert.Equal(t, int32(0), Enable())
			Disable()
			ReceiveMessage(0, 101, nil)
			Stop()
			assert.Len(t, p.events, n, "a panicked plugin receives nothing, not even stop")
			assert.Equal(t, int32(0), buf.start())
		})
	}
}

func TestStartPanic(t *testing.T) {
	setup(t, nil)
	Register(func() (Plugin, error) { panic("start bug") })

	var buf hostBuffers
	assert.NotPanics(t, func() { assert.Equal(t, int32(0), buf.start()) })
	assert.True(t, Panicked())
	assert.Equal(t, int32(0), Enable())
}

func TestManagement(t *testing.T) {
	m := setup(t, nil)
	other := m.AddPlugin(bindings.PluginInfo{
		Name:      "Other",
		Path:      "/x/plugins/other/64/lin.xpl",
		Signature: "com.example.other",
	}, true)
	m.MyID = m.AddPlugin(bindings.PluginInfo{Name: "Me", Signature: "com.example.me"}, false)

	self, err := Self()
	require.NoError(t, err)
	assert.Equal(t, ID(m.MyID), self)
	assert.False(t, self.Enabled())

	id, err := FindBySignature("com.example.other")
	require.NoError(t, err)
	assert.Equal(t, ID(other), id)
	assert.True(t, id.Enabled())

	d, err := id.Details()
	require.NoError(t, err)
	assert.Equal(t, "Other", d.Name)
	assert.Equal(t, "/x/plugins/other/64/lin.xpl", d.Path)

	n, err := Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = FindBySignature("com.example.missing")
	assert.ErrorIs(t, err, xputil.ErrNotFound)
	_, err = FindBySignature("bad\x00sig")
	assert.ErrorIs(t, err, xputil.ErrInvalidIdentifier)

	var payload int32 = 42
	require.NoError(t, SendMessage(id, message.FirstUserID+1, unsafe.Pointer(&payload)))
	require.Len(t, m.Messages, 1)
	assert.Equal(t, int32(other), m.Messages[0].To)
	assert.Equal(t, int32(message.FirstUserID+1), m.Messages[0].ID)
	assert.Equal(t, int32(42), *(*int32)(m.Messages[0].Param))
}

func TestSelfUnknown(t *testing.T) {
	m := setup(t, nil)
	m.MyID = -1
	_, err := Self()
	assert.ErrorIs(t, err, xputil.ErrNotFound)
	assert.Equal(t, "no-plugin", NoID.String())
	assert.Equal(t, "plugin(3)", ID(3).String())
}
