//go:build !ios && !android && (amd64 || arm64)

// Package xplmtest provides an in-memory host implementing bindings.API.
//
// The mock keeps an ordered log of every host call, models the host-side
// registries (flight loops, commands, data refs, menus, windows ...) and can
// fire the callbacks a subsystem registered, exactly as the host would.
package xplmtest

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
)

// Call is one recorded host call.
type Call struct {
	Name string
	Args []any
}

// FlightLoop is a host flight loop.
type FlightLoop struct {
	ID        uintptr
	Phase     int32
	Callback  uintptr
	Refcon    uintptr
	Interval  float32
	Relative  bool
	Scheduled bool
}

// CommandHandler is one handler registered on a command.
type CommandHandler struct {
	Callback uintptr
	Before   bool
	Refcon   uintptr
}

// Command is a host command.
type Command struct {
	Ref         uintptr
	Name        string
	Description string
	Handlers    []CommandHandler
	Once        int
	Begins      int
	Ends        int
}

// DataRef is a host data ref, either plain storage or backed by a
// registered accessor.
type DataRef struct {
	Ref      uintptr
	Name     string
	Types    int32
	Writable bool

	Int    int32
	Float  float32
	Double float64
	Ints   []int32
	Floats []float32
	Bytes  []byte

	Accessor *bindings.Accessors
	Refcon   uintptr
}

// Subscriber is one shared data subscription.
type Subscriber struct {
	Type     int32
	Callback uintptr
	Refcon   uintptr
}

// MenuItem is one entry in a host menu.
type MenuItem struct {
	Name      string
	Ref       uintptr
	Separator bool
	Check     int32
}

// Menu is a host menu.
type Menu struct {
	ID         uintptr
	Name       string
	Parent     uintptr
	ParentItem int32
	Callback   uintptr
	MenuRef    uintptr
	Items      []*MenuItem
	Destroyed  bool
}

// DrawCallback is a registered draw callback.
type DrawCallback struct {
	Callback uintptr
	Phase    int32
	Before   bool
	Refcon   uintptr
}

// Avionics is a registered avionics customization.
type Avionics struct {
	ID     uintptr
	Device int32
	Before uintptr
	After  uintptr
	Refcon uintptr
}

// CameraControl is the active camera controller.
type CameraControl struct {
	Duration int32
	Callback uintptr
	Refcon   uintptr
}

// Window is a host window.
type Window struct {
	ID     uintptr
	Params bindings.WindowParams
}

// Plugin is a plugin known to the host.
type Plugin struct {
	ID      int32
	Info    bindings.PluginInfo
	Enabled bool
}

// Message is a message sent between plugins.
type Message struct {
	To    int32
	ID    int32
	Param unsafe.Pointer
}

// Probe is a host terrain probe.
type Probe struct {
	ID   uintptr
	Type int32
	X    float32
	Y    float32
	Z    float32
}

// Object is a loaded scenery object.
type Object struct {
	ID   uintptr
	Path string
}

// Instance is an instanced object placed in the world.
type Instance struct {
	ID       uintptr
	Object   uintptr
	DataRefs []string
	Position bindings.DrawInfo
	Data     []float32
}

type pendingLoad struct {
	path   string
	cb     uintptr
	refcon uintptr
}

// Mock is an in-memory host.
type Mock struct {
	mu sync.Mutex

	calls  []Call
	nextID uintptr

	funcs   map[uintptr]any
	funcIDs map[uintptr]uintptr

	Versions bindings.Versions
	Debug    []string
	Errors   []string

	// Failure injection. A true flag makes the matching host call fail.
	RejectFlightLoop bool
	RejectDraw       bool
	RejectAvionics   bool
	RejectShare      bool
	RejectWindow     bool
	RejectMenu       bool
	RejectAccessor   bool

	// OnUnregister runs inside every host unregister/destroy call, named
	// after the call.
	OnUnregister func(call string)

	FlightLoops   map[uintptr]*FlightLoop
	Commands      map[string]*Command
	DataRefs      map[string]*DataRef
	Shared        map[string][]Subscriber
	Menus         map[uintptr]*Menu
	PluginsMenu   uintptr
	Draws         []DrawCallback
	Avionics      map[uintptr]*Avionics
	Camera        *CameraControl
	CameraPos     bindings.CameraPosition
	Windows       map[uintptr]*Window
	Plugins       []*Plugin
	MyID          int32
	Messages      []Message
	ErrorCallback uintptr

	Features    map[string]bool
	Probes      map[uintptr]*Probe
	ProbeResult int32
	ProbeHit    bindings.ProbeInfo
	ObjectFiles map[string]bool
	Objects     map[uintptr]*Object
	Library     map[string][]string
	Instances   map[uintptr]*Instance
	Variation   float32

	loads []pendingLoad
}

// New returns an empty mock host reporting SDK 4.1.1.
func New() *Mock {
	m := &Mock{
		nextID:      1000,
		funcs:       make(map[uintptr]any),
		funcIDs:     make(map[uintptr]uintptr),
		Versions:    bindings.Versions{XPlane: 12100, XPLM: 411, HostID: 1},
		FlightLoops: make(map[uintptr]*FlightLoop),
		Commands:    make(map[string]*Command),
		DataRefs:    make(map[string]*DataRef),
		Shared:      make(map[string][]Subscriber),
		Menus:       make(map[uintptr]*Menu),
		Avionics:    make(map[uintptr]*Avionics),
		Windows:     make(map[uintptr]*Window),
		Features:    make(map[string]bool),
		Probes:      make(map[uintptr]*Probe),
		ObjectFiles: make(map[string]bool),
		Objects:     make(map[uintptr]*Object),
		Library:     make(map[string][]string),
		Instances:   make(map[uintptr]*Instance),
	}
	m.PluginsMenu = m.id()
	m.Menus[m.PluginsMenu] = &Menu{ID: m.PluginsMenu, Name: "Plugins"}
	return m
}

// Install creates a mock and installs it as the host API for the test.
func Install(tb testing.TB) *Mock {
	tb.Helper()
	m := New()
	restore := bindings.Use(m)
	tb.Cleanup(restore)
	return m
}

func (m *Mock) id() uintptr {
	m.nextID++
	return m.nextID
}

func (m *Mock) record(name string, args ...any) {
	m.calls = append(m.calls, Call{Name: name, Args: args})
}

func (m *Mock) fail(format string, args ...any) {
	m.Errors = append(m.Errors, fmt.Sprintf(format, args...))
}

func (m *Mock) unregistering(call string) {
	if m.OnUnregister != nil {
		m.OnUnregister(call)
	}
}

// Calls returns the recorded host calls in order.
func (m *Mock) Calls() []Call {
	return append([]Call(nil), m.calls...)
}

// CallNames returns the names of the recorded host calls in order.
func (m *Mock) CallNames() []string {
	names := make([]string, len(m.calls))
	for i, c := range m.calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named host call was made.
func (m *Mock) Count(name string) int {
	n := 0
	for _, c := range m.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (m *Mock) ResetCalls() {
	m.calls = nil
}

// Callback implements bindings.API. Each distinct Go function gets one id.
func (m *Mock) Callback(fn any) uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := reflect.ValueOf(fn).Pointer()
	if id, ok := m.funcIDs[key]; ok {
		return id
	}
	id := m.id()
	m.funcIDs[key] = id
	m.funcs[id] = fn
	return id
}

// Func returns the Go function behind a callback pointer.
func (m *Mock) Func(cb uintptr) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.funcs[cb]
}

func (m *Mock) DebugString(msg string) {
	m.Debug = append(m.Debug, msg)
}

func (m *Mock) GetVersions() bindings.Versions {
	return m.Versions
}

func (m *Mock) SetErrorCallback(cb uintptr) {
	m.record("SetErrorCallback", cb)
	m.ErrorCallback = cb
}

// RaiseError delivers msg to the installed error callback.
func (m *Mock) RaiseError(msg string) {
	fn, ok := m.Func(m.ErrorCallback).(bindings.ErrorFunc)
	if !ok {
		m.fail("RaiseError: no error callback")
		return
	}
	b := append([]byte(msg), 0)
	fn(&b[0])
}

// Flight loops

func (m *Mock) CreateFlightLoop(phase int32, cb, refcon uintptr) uintptr {
	m.record("CreateFlightLoop", phase, cb, refcon)
	if m.RejectFlightLoop {
		return 0
	}
	id := m.id()
	m.FlightLoops[id] = &FlightLoop{ID: id, Phase: phase, Callback: cb, Refcon: refcon}
	return id
}

func (m *Mock) ScheduleFlightLoop(id uintptr, interval float32, relativeToNow bool) {
	m.record("ScheduleFlightLoop", id, interval, relativeToNow)
	fl, ok := m.FlightLoops[id]
	if !ok {
		m.fail("ScheduleFlightLoop: unknown flight loop %d", id)
		return
	}
	fl.Interval = interval
	fl.Relative = relativeToNow
	fl.Scheduled = interval != 0
}

func (m *Mock) DestroyFlightLoop(id uintptr) {
	m.record("DestroyFlightLoop", id)
	m.unregistering("DestroyFlightLoop")
	if _, ok := m.FlightLoops[id]; !ok {
		m.fail("DestroyFlightLoop: unknown flight loop %d", id)
		return
	}
	delete(m.FlightLoops, id)
}

// RunFlightLoop invokes a flight loop callback and applies the returned
// interval the way the host does.
func (m *Mock) RunFlightLoop(id uintptr, sinceLastCall, sinceLastLoop float32, counter int32) float32 {
	fl, ok := m.FlightLoops[id]
	if !ok {
		m.fail("RunFlightLoop: unknown flight loop %d", id)
		return 0
	}
	fn, ok := m.Func(fl.Callback).(bindings.FlightLoopFunc)
	if !ok {
		m.fail("RunFlightLoop: callback %d has the wrong type", fl.Callback)
		return 0
	}
	next := fn(sinceLastCall, sinceLastLoop, counter, fl.Refcon)
	if cur, live := m.FlightLoops[id]; live {
		cur.Interval = next
		cur.Scheduled = next != 0
	}
	return next
}

// Commands

// AddCommand creates a host-owned command.
func (m *Mock) AddCommand(name, description string) *Command {
	c := &Command{Ref: m.id(), Name: name, Description: description}
	m.Commands[name] = c
	return c
}

func (m *Mock) commandByRef(ref uintptr) *Command {
	for _, c := range m.Commands {
		if c.Ref == ref {
			return c
		}
	}
	return nil
}

func (m *Mock) FindCommand(name string) uintptr {
	m.record("FindCommand", name)
	if c, ok := m.Commands[name]; ok {
		return c.Ref
	}
	return 0
}

func (m *Mock) CreateCommand(name, description string) uintptr {
	m.record("CreateCommand", name, description)
	if c, ok := m.Commands[name]; ok {
		return c.Ref
	}
	return m.AddCommand(name, description).Ref
}

func (m *Mock) RegisterCommandHandler(cmd, cb uintptr, before bool, refcon uintptr) {
	m.record("RegisterCommandHandler", cmd, cb, before, refcon)
	c := m.commandByRef(cmd)
	if c == nil {
		m.fail("RegisterCommandHandler: unknown command %d", cmd)
		return
	}
	c.Handlers = append(c.Handlers, CommandHandler{Callback: cb, Before: before, Refcon: refcon})
}

func (m *Mock) UnregisterCommandHandler(cmd, cb uintptr, before bool, refcon uintptr) {
	m.record("UnregisterCommandHandler", cmd, cb, before, refcon)
	m.unregistering("UnregisterCommandHandler")
	c := m.commandByRef(cmd)
	if c == nil {
		m.fail("UnregisterCommandHandler: unknown command %d", cmd)
		return
	}
	for i, h := range c.Handlers {
		if h.Callback == cb && h.Before == before && h.Refcon == refcon {
			c.Handlers = append(c.Handlers[:i], c.Handlers[i+1:]...)
			return
		}
	}
	m.fail("UnregisterCommandHandler: handler not registered on %q", c.Name)
}

func (m *Mock) CommandOnce(cmd uintptr) {
	m.record("CommandOnce", cmd)
	if c := m.commandByRef(cmd); c != nil {
		c.Once++
	}
}

func (m *Mock) CommandBegin(cmd uintptr) {
	m.record("CommandBegin", cmd)
	if c := m.commandByRef(cmd); c != nil {
		c.Begins++
	}
}

func (m *Mock) CommandEnd(cmd uintptr) {
	m.record("CommandEnd", cmd)
	if c := m.commandByRef(cmd); c != nil {
		c.Ends++
	}
}

// RunCommand dispatches phase to the handlers of the named command, before
// handlers first. Dispatch stops at the first handler returning 0. It
// returns the handler results in call order.
func (m *Mock) RunCommand(name string, phase int32) []int32 {
	c, ok := m.Commands[name]
	if !ok {
		m.fail("RunCommand: unknown command %q", name)
		return nil
	}
	var ordered []CommandHandler
	for _, h := range c.Handlers {
		if h.Before {
			ordered = append(ordered, h)
		}
	}
	for _, h := range c.Handlers {
		if !h.Before {
			ordered = append(ordered, h)
		}
	}
	var results []int32
	for _, h := range ordered {
		fn, ok := m.Func(h.Callback).(bindings.CommandFunc)
		if !ok {
			m.fail("RunCommand: callback %d has the wrong type", h.Callback)
			return results
		}
		r := fn(c.Ref, phase, h.Refcon)
		results = append(results, r)
		if r == 0 {
			break
		}
	}
	return results
}

// Data refs

// AddDataRef creates a host-owned data ref with plain storage.
func (m *Mock) AddDataRef(name string, types int32, writable bool) *DataRef {
	d := &DataRef{Ref: m.id(), Name: name, Types: types, Writable: writable}
	m.DataRefs[name] = d
	return d
}

func (m *Mock) dataRef(ref uintptr) *DataRef {
	for _, d := range m.DataRefs {
		if d.Ref == ref {
			return d
		}
	}
	m.fail("unknown data ref %d", ref)
	return nil
}

func (m *Mock) FindDataRef(name string) uintptr {
	m.record("FindDataRef", name)
	if d, ok := m.DataRefs[name]; ok {
		return d.Ref
	}
	return 0
}

func (m *Mock) DataRefTypes(ref uintptr) int32 {
	if d := m.dataRef(ref); d != nil {
		return d.Types
	}
	return bindings.TypeUnknown
}

func (m *Mock) CanWriteDataRef(ref uintptr) bool {
	if d := m.dataRef(ref); d != nil {
		return d.Writable
	}
	return false
}

func (m *Mock) GetDatai(ref uintptr) int32 {
	d := m.dataRef(ref)
	if d == nil {
		return 0
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.GetInt).(bindings.GetIntFunc); ok {
			return fn(d.Refcon)
		}
		return 0
	}
	return d.Int
}

func (m *Mock) SetDatai(ref uintptr, v int32) {
	m.record("SetDatai", ref, v)
	d := m.dataRef(ref)
	if d == nil || !d.Writable {
		return
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.SetInt).(bindings.SetIntFunc); ok {
			fn(d.Refcon, v)
		}
		return
	}
	d.Int = v
}

func (m *Mock) GetDataf(ref uintptr) float32 {
	d := m.dataRef(ref)
	if d == nil {
		return 0
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.GetFloat).(bindings.GetFloatFunc); ok {
			return fn(d.Refcon)
		}
		return 0
	}
	return d.Float
}

func (m *Mock) SetDataf(ref uintptr, v float32) {
	m.record("SetDataf", ref, v)
	d := m.dataRef(ref)
	if d == nil || !d.Writable {
		return
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.SetFloat).(bindings.SetFloatFunc); ok {
			fn(d.Refcon, v)
		}
		return
	}
	d.Float = v
}

func (m *Mock) GetDatad(ref uintptr) float64 {
	d := m.dataRef(ref)
	if d == nil {
		return 0
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.GetDouble).(bindings.GetDoubleFunc); ok {
			return fn(d.Refcon)
		}
		return 0
	}
	return d.Double
}

func (m *Mock) SetDatad(ref uintptr, v float64) {
	m.record("SetDatad", ref, v)
	d := m.dataRef(ref)
	if d == nil || !d.Writable {
		return
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.SetDouble).(bindings.SetDoubleFunc); ok {
			fn(d.Refcon, v)
		}
		return
	}
	d.Double = v
}

func copyOut[E any](src, out []E, offset int32) int32 {
	if len(out) == 0 {
		return int32(len(src))
	}
	if offset < 0 || int(offset) >= len(src) {
		return 0
	}
	return int32(copy(out, src[offset:]))
}

func copyIn[E any](dst *[]E, in []E, offset int32) {
	if offset < 0 {
		return
	}
	end := int(offset) + len(in)
	if end > len(*dst) {
		grown := make([]E, end)
		copy(grown, *dst)
		*dst = grown
	}
	copy((*dst)[offset:], in)
}

func (m *Mock) GetDatavi(ref uintptr, out []int32, offset int32) int32 {
	d := m.dataRef(ref)
	if d == nil {
		return 0
	}
	if d.Accessor != nil {
		fn, ok := m.Func(d.Accessor.GetIntArray).(bindings.GetIntArrayFunc)
		if !ok {
			return 0
		}
		if len(out) == 0 {
			return fn(d.Refcon, nil, 0, 0)
		}
		return fn(d.Refcon, &out[0], offset, int32(len(out)))
	}
	return copyOut(d.Ints, out, offset)
}

func (m *Mock) SetDatavi(ref uintptr, in []int32, offset int32) {
	m.record("SetDatavi", ref, append([]int32(nil), in...), offset)
	d := m.dataRef(ref)
	if d == nil || !d.Writable || len(in) == 0 {
		return
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.SetIntArray).(bindings.SetIntArrayFunc); ok {
			fn(d.Refcon, &in[0], offset, int32(len(in)))
		}
		return
	}
	copyIn(&d.Ints, in, offset)
}

func (m *Mock) GetDatavf(ref uintptr, out []float32, offset int32) int32 {
	d := m.dataRef(ref)
	if d == nil {
		return 0
	}
	if d.Accessor != nil {
		fn, ok := m.Func(d.Accessor.GetFloatArray).(bindings.GetFloatArrayFunc)
		if !ok {
			return 0
		}
		if len(out) == 0 {
			return fn(d.Refcon, nil, 0, 0)
		}
		return fn(d.Refcon, &out[0], offset, int32(len(out)))
	}
	return copyOut(d.Floats, out, offset)
}

func (m *Mock) SetDatavf(ref uintptr, in []float32, offset int32) {
	m.record("SetDatavf", ref, append([]float32(nil), in...), offset)
	d := m.dataRef(ref)
	if d == nil || !d.Writable || len(in) == 0 {
		return
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.SetFloatArray).(bindings.SetFloatArrayFunc); ok {
			fn(d.Refcon, &in[0], offset, int32(len(in)))
		}
		return
	}
	copyIn(&d.Floats, in, offset)
}

func (m *Mock) GetDatab(ref uintptr, out []byte, offset int32) int32 {
	d := m.dataRef(ref)
	if d == nil {
		return 0
	}
	if d.Accessor != nil {
		fn, ok := m.Func(d.Accessor.GetBytes).(bindings.GetBytesFunc)
		if !ok {
			return 0
		}
		if len(out) == 0 {
			return fn(d.Refcon, nil, 0, 0)
		}
		return fn(d.Refcon, unsafe.Pointer(&out[0]), offset, int32(len(out)))
	}
	return copyOut(d.Bytes, out, offset)
}

func (m *Mock) SetDatab(ref uintptr, in []byte, offset int32) {
	m.record("SetDatab", ref, append([]byte(nil), in...), offset)
	d := m.dataRef(ref)
	if d == nil || !d.Writable || len(in) == 0 {
		return
	}
	if d.Accessor != nil {
		if fn, ok := m.Func(d.Accessor.SetBytes).(bindings.SetBytesFunc); ok {
			fn(d.Refcon, unsafe.Pointer(&in[0]), offset, int32(len(in)))
		}
		return
	}
	copyIn(&d.Bytes, in, offset)
}

func (m *Mock) RegisterDataAccessor(name string, typ int32, writable bool, acc bindings.Accessors, refcon uintptr) (uintptr, error) {
	m.record("RegisterDataAccessor", name, typ, writable, refcon)
	if m.RejectAccessor {
		return 0, nil
	}
	accessor := acc
	d := &DataRef{Ref: m.id(), Name: name, Types: typ, Writable: writable, Accessor: &accessor, Refcon: refcon}
	m.DataRefs[name] = d
	return d.Ref, nil
}

func (m *Mock) UnregisterDataAccessor(ref uintptr) {
	m.record("UnregisterDataAccessor", ref)
	m.unregistering("UnregisterDataAccessor")
	for name, d := range m.DataRefs {
		if d.Ref == ref && d.Accessor != nil {
			delete(m.DataRefs, name)
			return
		}
	}
	m.fail("UnregisterDataAccessor: unknown accessor %d", ref)
}

func (m *Mock) ShareData(name string, typ int32, cb, refcon uintptr) bool {
	m.record("ShareData", name, typ, cb, refcon)
	if m.RejectShare {
		return false
	}
	subs := m.Shared[name]
	if len(subs) > 0 && subs[0].Type != typ {
		return false
	}
	m.Shared[name] = append(subs, Subscriber{Type: typ, Callback: cb, Refcon: refcon})
	if _, ok := m.DataRefs[name]; !ok {
		d := m.AddDataRef(name, typ, true)
		if typ == bindings.TypeData {
			d.Bytes = []byte{}
		}
	}
	return true
}

func (m *Mock) UnshareData(name string, typ int32, cb, refcon uintptr) bool {
	m.record("UnshareData", name, typ, cb, refcon)
	m.unregistering("UnshareData")
	subs := m.Shared[name]
	for i, s := range subs {
		if s.Type == typ && s.Callback == cb && s.Refcon == refcon {
			m.Shared[name] = append(subs[:i], subs[i+1:]...)
			return true
		}
	}
	m.fail("UnshareData: %q not shared with refcon %d", name, refcon)
	return false
}

// NotifyShared fires the change callbacks of every subscriber of name.
func (m *Mock) NotifyShared(name string) {
	for _, s := range append([]Subscriber(nil), m.Shared[name]...) {
		fn, ok := m.Func(s.Callback).(bindings.DataChangedFunc)
		if !ok {
			m.fail("NotifyShared: callback %d has the wrong type", s.Callback)
			continue
		}
		fn(s.Refcon)
	}
}

// Menus

func (m *Mock) menu(call string, id uintptr) *Menu {
	mn, ok := m.Menus[id]
	if !ok || mn.Destroyed {
		m.fail("%s: unknown or destroyed menu %d", call, id)
		return nil
	}
	return mn
}

func (m *Mock) item(call string, id uintptr, index int32) (*Menu, *MenuItem) {
	mn := m.menu(call, id)
	if mn == nil {
		return nil, nil
	}
	if index < 0 || int(index) >= len(mn.Items) {
		m.fail("%s: index %d out of range for menu %q (%d items)", call, index, mn.Name, len(mn.Items))
		return mn, nil
	}
	return mn, mn.Items[index]
}

func (m *Mock) FindPluginsMenu() uintptr {
	return m.PluginsMenu
}

func (m *Mock) CreateMenu(name string, parent uintptr, parentItem int32, cb, menuRef uintptr) uintptr {
	m.record("CreateMenu", name, parent, parentItem, cb, menuRef)
	if m.RejectMenu {
		return 0
	}
	if parent != 0 {
		if _, it := m.item("CreateMenu", parent, parentItem); it == nil {
			return 0
		}
	}
	id := m.id()
	m.Menus[id] = &Menu{ID: id, Name: name, Parent: parent, ParentItem: parentItem, Callback: cb, MenuRef: menuRef}
	return id
}

func (m *Mock) DestroyMenu(menu uintptr) {
	m.record("DestroyMenu", menu)
	m.unregistering("DestroyMenu")
	if mn := m.menu("DestroyMenu", menu); mn != nil {
		mn.Destroyed = true
	}
}

func (m *Mock) AppendMenuItem(menu uintptr, name string, itemRef uintptr) int32 {
	m.record("AppendMenuItem", menu, name, itemRef)
	mn := m.menu("AppendMenuItem", menu)
	if mn == nil || m.RejectMenu {
		return -1
	}
	mn.Items = append(mn.Items, &MenuItem{Name: name, Ref: itemRef})
	return int32(len(mn.Items) - 1)
}

func (m *Mock) AppendMenuSeparator(menu uintptr) {
	m.record("AppendMenuSeparator", menu)
	if mn := m.menu("AppendMenuSeparator", menu); mn != nil {
		mn.Items = append(mn.Items, &MenuItem{Separator: true})
	}
}

func (m *Mock) RemoveMenuItem(menu uintptr, index int32) {
	m.record("RemoveMenuItem", menu, index)
	m.unregistering("RemoveMenuItem")
	mn, it := m.item("RemoveMenuItem", menu, index)
	if it == nil {
		return
	}
	mn.Items = append(mn.Items[:index], mn.Items[index+1:]...)
}

func (m *Mock) SetMenuItemName(menu uintptr, index int32, name string) {
	m.record("SetMenuItemName", menu, index, name)
	if _, it := m.item("SetMenuItemName", menu, index); it != nil {
		it.Name = name
	}
}

func (m *Mock) CheckMenuItem(menu uintptr, index int32, check int32) {
	m.record("CheckMenuItem", menu, index, check)
	if _, it := m.item("CheckMenuItem", menu, index); it != nil {
		it.Check = check
	}
}

func (m *Mock) CheckMenuItemState(menu uintptr, index int32) int32 {
	if _, it := m.item("CheckMenuItemState", menu, index); it != nil {
		return it.Check
	}
	return bindings.MenuNoCheck
}

// MenuNames returns the item names of a menu, separators as "-".
func (m *Mock) MenuNames(menu uintptr) []string {
	mn, ok := m.Menus[menu]
	if !ok {
		return nil
	}
	names := make([]string, len(mn.Items))
	for i, it := range mn.Items {
		if it.Separator {
			names[i] = "-"
		} else {
			names[i] = it.Name
		}
	}
	return names
}

// ClickMenuItem fires the handler of the menu as the host does when the
// user selects the item at index.
func (m *Mock) ClickMenuItem(menu uintptr, index int32) {
	mn, it := m.item("ClickMenuItem", menu, index)
	if it == nil {
		return
	}
	fn, ok := m.Func(mn.Callback).(bindings.MenuFunc)
	if !ok {
		m.fail("ClickMenuItem: menu %q has no handler", mn.Name)
		return
	}
	fn(mn.MenuRef, it.Ref)
}

// Drawing

func (m *Mock) RegisterDrawCallback(cb uintptr, phase int32, before bool, refcon uintptr) bool {
	m.record("RegisterDrawCallback", cb, phase, before, refcon)
	if m.RejectDraw {
		return false
	}
	m.Draws = append(m.Draws, DrawCallback{Callback: cb, Phase: phase, Before: before, Refcon: refcon})
	return true
}

func (m *Mock) UnregisterDrawCallback(cb uintptr, phase int32, before bool, refcon uintptr) bool {
	m.record("UnregisterDrawCallback", cb, phase, before, refcon)
	m.unregistering("UnregisterDrawCallback")
	for i, d := range m.Draws {
		if d.Callback == cb && d.Phase == phase && d.Before == before && d.Refcon == refcon {
			m.Draws = append(m.Draws[:i], m.Draws[i+1:]...)
			return true
		}
	}
	m.fail("UnregisterDrawCallback: not registered")
	return false
}

// Draw fires every draw callback registered for phase and before.
func (m *Mock) Draw(phase int32, before bool) []int32 {
	var results []int32
	for _, d := range append([]DrawCallback(nil), m.Draws...) {
		if d.Phase != phase || d.Before != before {
			continue
		}
		fn, ok := m.Func(d.Callback).(bindings.DrawFunc)
		if !ok {
			m.fail("Draw: callback %d has the wrong type", d.Callback)
			continue
		}
		var b int32
		if before {
			b = 1
		}
		results = append(results, fn(phase, b, d.Refcon))
	}
	return results
}

// Avionics

func (m *Mock) RegisterAvionicsCallbacks(device int32, before, after, refcon uintptr) uintptr {
	m.record("RegisterAvionicsCallbacks", device, before, after, refcon)
	if m.RejectAvionics {
		return 0
	}
	id := m.id()
	m.Avionics[id] = &Avionics{ID: id, Device: device, Before: before, After: after, Refcon: refcon}
	return id
}

func (m *Mock) UnregisterAvionicsCallbacks(id uintptr) {
	m.record("UnregisterAvionicsCallbacks", id)
	m.unregistering("UnregisterAvionicsCallbacks")
	if _, ok := m.Avionics[id]; !ok {
		m.fail("UnregisterAvionicsCallbacks: unknown id %d", id)
		return
	}
	delete(m.Avionics, id)
}

// DrawAvionics fires the before or after callback of a customization.
// It returns ok=false if that callback was not provided.
func (m *Mock) DrawAvionics(id uintptr, before bool) (result int32, ok bool) {
	a, live := m.Avionics[id]
	if !live {
		m.fail("DrawAvionics: unknown id %d", id)
		return 0, false
	}
	cb := a.After
	var b int32
	if before {
		cb, b = a.Before, 1
	}
	if cb == 0 {
		return 0, false
	}
	fn, typed := m.Func(cb).(bindings.AvionicsFunc)
	if !typed {
		m.fail("DrawAvionics: callback %d has the wrong type", cb)
		return 0, false
	}
	return fn(a.Device, b, a.Refcon), true
}

// Camera

func (m *Mock) ControlCamera(duration int32, cb, refcon uintptr) {
	m.record("ControlCamera", duration, cb, refcon)
	if m.Camera != nil && m.Camera.Refcon != refcon {
		m.takeCamera()
	}
	m.Camera = &CameraControl{Duration: duration, Callback: cb, Refcon: refcon}
}

func (m *Mock) DontControlCamera() {
	m.record("DontControlCamera")
	m.unregistering("DontControlCamera")
	m.Camera = nil
}

func (m *Mock) IsCameraBeingControlled() (bool, int32) {
	if m.Camera == nil {
		return false, 0
	}
	return true, m.Camera.Duration
}

func (m *Mock) ReadCameraPosition() bindings.CameraPosition {
	return m.CameraPos
}

// RunCamera fires the active camera controller once. A zero result
// releases control, as the host does.
func (m *Mock) RunCamera() int32 {
	if m.Camera == nil {
		m.fail("RunCamera: no controller")
		return 0
	}
	fn, ok := m.Func(m.Camera.Callback).(bindings.CameraFunc)
	if !ok {
		m.fail("RunCamera: callback has the wrong type")
		return 0
	}
	pos := m.CameraPos
	r := fn(&pos, 0, m.Camera.Refcon)
	if r != 0 {
		m.CameraPos = pos
	} else {
		m.Camera = nil
	}
	return r
}

// TakeCamera simulates another plugin taking the camera: the current
// controller gets its final call with the losing-control flag.
func (m *Mock) TakeCamera() {
	m.takeCamera()
	m.Camera = nil
}

func (m *Mock) takeCamera() {
	if m.Camera == nil {
		return
	}
	if fn, ok := m.Func(m.Camera.Callback).(bindings.CameraFunc); ok {
		fn(nil, 1, m.Camera.Refcon)
	}
}

// Windows

func (m *Mock) CreateWindowEx(p bindings.WindowParams) uintptr {
	m.record("CreateWindowEx", p)
	if m.RejectWindow {
		return 0
	}
	id := m.id()
	m.Windows[id] = &Window{ID: id, Params: p}
	return id
}

func (m *Mock) window(call string, id uintptr) *Window {
	w, ok := m.Windows[id]
	if !ok {
		m.fail("%s: unknown window %d", call, id)
	}
	return w
}

func (m *Mock) DestroyWindow(id uintptr) {
	m.record("DestroyWindow", id)
	m.unregistering("DestroyWindow")
	if m.window("DestroyWindow", id) != nil {
		delete(m.Windows, id)
	}
}

func (m *Mock) GetWindowGeometry(id uintptr) (left, top, right, bottom int32) {
	if w := m.window("GetWindowGeometry", id); w != nil {
		return w.Params.Left, w.Params.Top, w.Params.Right, w.Params.Bottom
	}
	return
}

func (m *Mock) SetWindowGeometry(id uintptr, left, top, right, bottom int32) {
	m.record("SetWindowGeometry", id, left, top, right, bottom)
	if w := m.window("SetWindowGeometry", id); w != nil {
		w.Params.Left, w.Params.Top, w.Params.Right, w.Params.Bottom = left, top, right, bottom
	}
}

func (m *Mock) GetWindowIsVisible(id uintptr) bool {
	if w := m.window("GetWindowIsVisible", id); w != nil {
		return w.Params.Visible
	}
	return false
}

func (m *Mock) SetWindowIsVisible(id uintptr, visible bool) {
	m.record("SetWindowIsVisible", id, visible)
	if w := m.window("SetWindowIsVisible", id); w != nil {
		w.Params.Visible = visible
	}
}

// WindowFunc returns the typed callback a window registered for slot, one
// of the bindings.Window*Func types.
func WindowFunc[F any](m *Mock, id uintptr, cb func(bindings.WindowParams) uintptr) (F, uintptr, bool) {
	var zero F
	w, ok := m.Windows[id]
	if !ok {
		m.fail("WindowFunc: unknown window %d", id)
		return zero, 0, false
	}
	fn, ok := m.Func(cb(w.Params)).(F)
	return fn, w.Params.Refcon, ok
}

// Plugins

// AddPlugin registers another plugin with the host.
func (m *Mock) AddPlugin(info bindings.PluginInfo, enabled bool) int32 {
	id := int32(len(m.Plugins) + 1)
	m.Plugins = append(m.Plugins, &Plugin{ID: id, Info: info, Enabled: enabled})
	return id
}

func (m *Mock) plugin(id int32) *Plugin {
	for _, p := range m.Plugins {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *Mock) GetMyID() int32 {
	return m.MyID
}

func (m *Mock) FindPluginBySignature(sig string) int32 {
	m.record("FindPluginBySignature", sig)
	for _, p := range m.Plugins {
		if p.Info.Signature == sig {
			return p.ID
		}
	}
	return -1
}

func (m *Mock) IsPluginEnabled(id int32) bool {
	if p := m.plugin(id); p != nil {
		return p.Enabled
	}
	return false
}

func (m *Mock) CountPlugins() int32 {
	return int32(len(m.Plugins))
}

func (m *Mock) GetPluginInfo(id int32) bindings.PluginInfo {
	if p := m.plugin(id); p != nil {
		return p.Info
	}
	return bindings.PluginInfo{}
}

func (m *Mock) SendMessageToPlugin(id int32, msg int32, param unsafe.Pointer) {
	m.record("SendMessageToPlugin", id, msg, param)
	m.Messages = append(m.Messages, Message{To: id, ID: msg, Param: param})
}

// Features

func (m *Mock) HasFeature(name string) bool {
	m.record("HasFeature", name)
	_, ok := m.Features[name]
	return ok
}

func (m *Mock) IsFeatureEnabled(name string) bool {
	return m.Features[name]
}

func (m *Mock) EnableFeature(name string, enable bool) {
	m.record("EnableFeature", name, enable)
	if _, ok := m.Features[name]; !ok {
		m.fail("EnableFeature: unknown feature %q", name)
		return
	}
	m.Features[name] = enable
}

func (m *Mock) EnumerateFeatures(cb, refcon uintptr) {
	m.record("EnumerateFeatures", cb, refcon)
	names := make([]string, 0, len(m.Features))
	for name := range m.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	m.enumerate("EnumerateFeatures", names, cb, refcon)
}

func (m *Mock) enumerate(call string, names []string, cb, refcon uintptr) {
	fn, ok := m.Func(cb).(bindings.NameEnumFunc)
	if !ok {
		m.fail("%s: callback %d has the wrong type", call, cb)
		return
	}
	for _, name := range names {
		b := append([]byte(name), 0)
		fn(&b[0], refcon)
	}
}

// Scenery

func (m *Mock) CreateProbe(typ int32) uintptr {
	m.record("CreateProbe", typ)
	id := m.id()
	m.Probes[id] = &Probe{ID: id, Type: typ}
	return id
}

func (m *Mock) DestroyProbe(probe uintptr) {
	m.record("DestroyProbe", probe)
	m.unregistering("DestroyProbe")
	if _, ok := m.Probes[probe]; !ok {
		m.fail("DestroyProbe: unknown probe %d", probe)
		return
	}
	delete(m.Probes, probe)
}

// ProbeTerrainXYZ reports ProbeResult and copies ProbeHit into info.
func (m *Mock) ProbeTerrainXYZ(probe uintptr, x, y, z float32, info *bindings.ProbeInfo) int32 {
	m.record("ProbeTerrainXYZ", probe, x, y, z)
	p, ok := m.Probes[probe]
	if !ok {
		m.fail("ProbeTerrainXYZ: unknown probe %d", probe)
		return 1
	}
	p.X, p.Y, p.Z = x, y, z
	size := info.StructSize
	*info = m.ProbeHit
	info.StructSize = size
	return m.ProbeResult
}

func (m *Mock) load(path string) uintptr {
	if !m.ObjectFiles[path] {
		return 0
	}
	id := m.id()
	m.Objects[id] = &Object{ID: id, Path: path}
	return id
}

func (m *Mock) LoadObject(path string) uintptr {
	m.record("LoadObject", path)
	return m.load(path)
}

func (m *Mock) LoadObjectAsync(path string, cb, refcon uintptr) {
	m.record("LoadObjectAsync", path, cb, refcon)
	m.loads = append(m.loads, pendingLoad{path: path, cb: cb, refcon: refcon})
}

// FinishLoads completes every pending asynchronous load, in request order,
// and returns how many callbacks ran.
func (m *Mock) FinishLoads() int {
	pending := m.loads
	m.loads = nil
	for _, l := range pending {
		fn, ok := m.Func(l.cb).(bindings.ObjectLoadedFunc)
		if !ok {
			m.fail("FinishLoads: callback %d has the wrong type", l.cb)
			continue
		}
		fn(m.load(l.path), l.refcon)
	}
	return len(pending)
}

func (m *Mock) UnloadObject(obj uintptr) {
	m.record("UnloadObject", obj)
	m.unregistering("UnloadObject")
	if _, ok := m.Objects[obj]; !ok {
		m.fail("UnloadObject: unknown object %d", obj)
		return
	}
	delete(m.Objects, obj)
}

func (m *Mock) LookupObjects(path string, lat, lon float32, cb, refcon uintptr) int32 {
	m.record("LookupObjects", path, lat, lon, cb, refcon)
	paths := m.Library[path]
	m.enumerate("LookupObjects", paths, cb, refcon)
	return int32(len(paths))
}

func (m *Mock) ReloadScenery() {
	m.record("ReloadScenery")
}

func (m *Mock) GetMagneticVariation(lat, lon float64) float32 {
	m.record("GetMagneticVariation", lat, lon)
	return m.Variation
}

func (m *Mock) DegTrueToDegMagnetic(deg float32) float32 {
	return deg - m.Variation
}

func (m *Mock) DegMagneticToDegTrue(deg float32) float32 {
	return deg + m.Variation
}

// Instances

func (m *Mock) CreateInstance(obj uintptr, datarefs []string) uintptr {
	m.record("CreateInstance", obj, datarefs)
	if _, ok := m.Objects[obj]; !ok {
		m.fail("CreateInstance: unknown object %d", obj)
		return 0
	}
	id := m.id()
	m.Instances[id] = &Instance{ID: id, Object: obj, DataRefs: append([]string(nil), datarefs...)}
	return id
}

func (m *Mock) DestroyInstance(inst uintptr) {
	m.record("DestroyInstance", inst)
	m.unregistering("DestroyInstance")
	if _, ok := m.Instances[inst]; !ok {
		m.fail("DestroyInstance: unknown instance %d", inst)
		return
	}
	delete(m.Instances, inst)
}

func (m *Mock) InstanceSetPosition(inst uintptr, pos bindings.DrawInfo, data []float32) {
	m.record("InstanceSetPosition", inst, pos, data)
	in, ok := m.Instances[inst]
	if !ok {
		m.fail("InstanceSetPosition: unknown instance %d", inst)
		return
	}
	in.Position = pos
	in.Data = append([]float32(nil), data...)
}

var _ bindings.API = (*Mock)(nil)
