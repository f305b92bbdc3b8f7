//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/xpgo/internal/shim"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// createFlightLoop mirrors XPLMCreateFlightLoop_t.
type createFlightLoop struct {
	structSize int32
	phase      int32
	callback   uintptr
	refcon     uintptr
}

// customizeAvionics mirrors XPLMCustomizeAvionics_t.
type customizeAvionics struct {
	structSize int32
	deviceID   int32
	before     uintptr
	after      uintptr
	refcon     uintptr
}

// createWindow mirrors XPLMCreateWindow_t.
type createWindow struct {
	structSize int32
	left       int32
	top        int32
	right      int32
	bottom     int32
	visible    int32
	draw       uintptr
	mouse      uintptr
	key        uintptr
	cursor     uintptr
	wheel      uintptr
	refcon     uintptr
	decorate   int32
	layer      int32
	rightClick uintptr
}

// library is the purego-backed API.
type library struct {
	handle uintptr

	cbMu      sync.Mutex
	callbacks map[uintptr]uintptr

	registerDataAccessorAddr uintptr

	xplmDebugString      func(msg string)
	xplmGetVersions      func(xplane, xplm, host *int32)
	xplmSetErrorCallback func(cb uintptr)

	xplmCreateFlightLoop   func(p *createFlightLoop) uintptr
	xplmScheduleFlightLoop func(id uintptr, interval float32, relative int32)
	xplmDestroyFlightLoop  func(id uintptr)

	xplmFindCommand              func(name string) uintptr
	xplmCreateCommand            func(name, desc string) uintptr
	xplmRegisterCommandHandler   func(cmd, cb uintptr, before int32, refcon uintptr)
	xplmUnregisterCommandHandler func(cmd, cb uintptr, before int32, refcon uintptr)
	xplmCommandOnce              func(cmd uintptr)
	xplmCommandBegin             func(cmd uintptr)
	xplmCommandEnd               func(cmd uintptr)

	xplmFindDataRef            func(name string) uintptr
	xplmGetDataRefTypes        func(ref uintptr) int32
	xplmCanWriteDataRef        func(ref uintptr) int32
	xplmGetDatai               func(ref uintptr) int32
	xplmSetDatai               func(ref uintptr, v int32)
	xplmGetDataf               func(ref uintptr) float32
	xplmSetDataf               func(ref uintptr, v float32)
	xplmGetDatad               func(ref uintptr) float64
	xplmSetDatad               func(ref uintptr, v float64)
	xplmGetDatavi              func(ref uintptr, out *int32, offset, max int32) int32
	xplmSetDatavi              func(ref uintptr, in *int32, offset, count int32)
	xplmGetDatavf              func(ref uintptr, out *float32, offset, max int32) int32
	xplmSetDatavf              func(ref uintptr, in *float32, offset, count int32)
	xplmGetDatab               func(ref uintptr, out unsafe.Pointer, offset, max int32) int32
	xplmSetDatab               func(ref uintptr, in unsafe.Pointer, offset, count int32)
	xplmUnregisterDataAccessor func(ref uintptr)
	xplmShareData              func(name string, typ int32, cb, refcon uintptr) int32
	xplmUnshareData            func(name string, typ int32, cb, refcon uintptr) int32

	xplmFindPluginsMenu     func() uintptr
	xplmCreateMenu          func(name string, parent uintptr, parentItem int32, cb, menuRef uintptr) uintptr
	xplmDestroyMenu         func(menu uintptr)
	xplmAppendMenuItem      func(menu uintptr, name string, itemRef uintptr, unused int32) int32
	xplmAppendMenuSeparator func(menu uintptr)
	xplmRemoveMenuItem      func(menu uintptr, index int32)
	xplmSetMenuItemName     func(menu uintptr, index int32, name string, unused int32)
	xplmCheckMenuItem       func(menu uintptr, index int32, check int32)
	xplmCheckMenuItemState  func(menu uintptr, index int32, out *int32)

	xplmRegisterDrawCallback   func(cb uintptr, phase, before int32, refcon uintptr) int32
	xplmUnregisterDrawCallback func(cb uintptr, phase, before int32, refcon uintptr) int32

	xplmRegisterAvionicsCallbacksEx func(p *customizeAvionics) uintptr
	xplmUnregisterAvionicsCallbacks func(id uintptr)

	xplmControlCamera           func(duration int32, cb, refcon uintptr)
	xplmDontControlCamera       func()
	xplmIsCameraBeingControlled func(duration *int32) int32
	xplmReadCameraPosition      func(pos *CameraPosition)

	xplmCreateWindowEx     func(p *createWindow) uintptr
	xplmDestroyWindow      func(id uintptr)
	xplmGetWindowGeometry  func(id uintptr, left, top, right, bottom *int32)
	xplmSetWindowGeometry  func(id uintptr, left, top, right, bottom int32)
	xplmGetWindowIsVisible func(id uintptr) int32
	xplmSetWindowIsVisible func(id uintptr, visible int32)

	xplmGetMyID               func() int32
	xplmFindPluginBySignature func(sig string) int32
	xplmIsPluginEnabled       func(id int32) int32
	xplmCountPlugins          func() int32
	xplmGetPluginInfo         func(id int32, name, path, sig, desc *byte)
	xplmSendMessageToPlugin   func(id int32, msg int32, param unsafe.Pointer)

	xplmHasFeature        func(name string) int32
	xplmIsFeatureEnabled  func(name string) int32
	xplmEnableFeature     func(name string, enable int32)
	xplmEnumerateFeatures func(cb, refcon uintptr)

	xplmCreateProbe          func(typ int32) uintptr
	xplmDestroyProbe         func(probe uintptr)
	xplmProbeTerrainXYZ      func(probe uintptr, x, y, z float32, info *ProbeInfo) int32
	xplmLoadObject           func(path string) uintptr
	xplmLoadObjectAsync      func(path string, cb, refcon uintptr)
	xplmUnloadObject         func(obj uintptr)
	xplmLookupObjects        func(path string, lat, lon float32, cb, refcon uintptr) int32
	xplmReloadScenery        func()
	xplmGetMagneticVariation func(lat, lon float64) float32
	xplmDegTrueToDegMagnetic func(deg float32) float32
	xplmDegMagneticToDegTrue func(deg float32) float32

	xplmCreateInstance      func(obj uintptr, datarefs **byte) uintptr
	xplmDestroyInstance     func(inst uintptr)
	xplmInstanceSetPosition func(inst uintptr, pos *DrawInfo, data *float32)
}

func newLibrary(handle uintptr) (lib *library, err error) {
	lib = &library{handle: handle, callbacks: make(map[uintptr]uintptr)}

	// purego.RegisterLibFunc panics if a required symbol is missing.
	defer func() {
		if r := recover(); r != nil {
			lib, err = nil, fmt.Errorf("%v", r)
		}
	}()

	purego.RegisterLibFunc(&lib.xplmDebugString, handle, "XPLMDebugString")
	purego.RegisterLibFunc(&lib.xplmGetVersions, handle, "XPLMGetVersions")
	purego.RegisterLibFunc(&lib.xplmSetErrorCallback, handle, "XPLMSetErrorCallback")

	purego.RegisterLibFunc(&lib.xplmCreateFlightLoop, handle, "XPLMCreateFlightLoop")
	purego.RegisterLibFunc(&lib.xplmScheduleFlightLoop, handle, "XPLMScheduleFlightLoop")
	purego.RegisterLibFunc(&lib.xplmDestroyFlightLoop, handle, "XPLMDestroyFlightLoop")

	purego.RegisterLibFunc(&lib.xplmFindCommand, handle, "XPLMFindCommand")
	purego.RegisterLibFunc(&lib.xplmCreateCommand, handle, "XPLMCreateCommand")
	purego.RegisterLibFunc(&lib.xplmRegisterCommandHandler, handle, "XPLMRegisterCommandHandler")
	purego.RegisterLibFunc(&lib.xplmUnregisterCommandHandler, handle, "XPLMUnregisterCommandHandler")
	purego.RegisterLibFunc(&lib.xplmCommandOnce, handle, "XPLMCommandOnce")
	purego.RegisterLibFunc(&lib.xplmCommandBegin, handle, "XPLMCommandBegin")
	purego.RegisterLibFunc(&lib.xplmCommandEnd, handle, "XPLMCommandEnd")

	purego.RegisterLibFunc(&lib.xplmFindDataRef, handle, "XPLMFindDataRef")
	purego.RegisterLibFunc(&lib.xplmGetDataRefTypes, handle, "XPLMGetDataRefTypes")
	purego.RegisterLibFunc(&lib.xplmCanWriteDataRef, handle, "XPLMCanWriteDataRef")
	purego.RegisterLibFunc(&lib.xplmGetDatai, handle, "XPLMGetDatai")
	purego.RegisterLibFunc(&lib.xplmSetDatai, handle, "XPLMSetDatai")
	purego.RegisterLibFunc(&lib.xplmGetDataf, handle, "XPLMGetDataf")
	purego.RegisterLibFunc(&lib.xplmSetDataf, handle, "XPLMSetDataf")
	purego.RegisterLibFunc(&lib.xplmGetDatad, handle, "XPLMGetDatad")
	purego.RegisterLibFunc(&lib.xplmSetDatad, handle, "XPLMSetDatad")
	purego.RegisterLibFunc(&lib.xplmGetDatavi, handle, "XPLMGetDatavi")
	purego.RegisterLibFunc(&lib.xplmSetDatavi, handle, "XPLMSetDatavi")
	purego.RegisterLibFunc(&lib.xplmGetDatavf, handle, "XPLMGetDatavf")
	purego.RegisterLibFunc(&lib.xplmSetDatavf, handle, "XPLMSetDatavf")
	purego.RegisterLibFunc(&lib.xplmGetDatab, handle, "XPLMGetDatab")
	purego.RegisterLibFunc(&lib.xplmSetDatab, handle, "XPLMSetDatab")
	purego.RegisterLibFunc(&lib.xplmUnregisterDataAccessor, handle, "XPLMUnregisterDataAccessor")
	purego.RegisterLibFunc(&lib.xplmShareData, handle, "XPLMShareData")
	purego.RegisterLibFunc(&lib.xplmUnshareData, handle, "XPLMUnshareData")

	purego.RegisterLibFunc(&lib.xplmFindPluginsMenu, handle, "XPLMFindPluginsMenu")
	purego.RegisterLibFunc(&lib.xplmCreateMenu, handle, "XPLMCreateMenu")
	purego.RegisterLibFunc(&lib.xplmDestroyMenu, handle, "XPLMDestroyMenu")
	purego.RegisterLibFunc(&lib.xplmAppendMenuItem, handle, "XPLMAppendMenuItem")
	purego.RegisterLibFunc(&lib.xplmAppendMenuSeparator, handle, "XPLMAppendMenuSeparator")
	purego.RegisterLibFunc(&lib.xplmRemoveMenuItem, handle, "XPLMRemoveMenuItem")
	purego.RegisterLibFunc(&lib.xplmSetMenuItemName, handle, "XPLMSetMenuItemName")
	purego.RegisterLibFunc(&lib.xplmCheckMenuItem, handle, "XPLMCheckMenuItem")
	purego.RegisterLibFunc(&lib.xplmCheckMenuItemState, handle, "XPLMCheckMenuItemState")

	purego.RegisterLibFunc(&lib.xplmRegisterDrawCallback, handle, "XPLMRegisterDrawCallback")
	purego.RegisterLibFunc(&lib.xplmUnregisterDrawCallback, handle, "XPLMUnregisterDrawCallback")

	purego.RegisterLibFunc(&lib.xplmControlCamera, handle, "XPLMControlCamera")
	purego.RegisterLibFunc(&lib.xplmDontControlCamera, handle, "XPLMDontControlCamera")
	purego.RegisterLibFunc(&lib.xplmIsCameraBeingControlled, handle, "XPLMIsCameraBeingControlled")
	purego.RegisterLibFunc(&lib.xplmReadCameraPosition, handle, "XPLMReadCameraPosition")

	purego.RegisterLibFunc(&lib.xplmCreateWindowEx, handle, "XPLMCreateWindowEx")
	purego.RegisterLibFunc(&lib.xplmDestroyWindow, handle, "XPLMDestroyWindow")
	purego.RegisterLibFunc(&lib.xplmGetWindowGeometry, handle, "XPLMGetWindowGeometry")
	purego.RegisterLibFunc(&lib.xplmSetWindowGeometry, handle, "XPLMSetWindowGeometry")
	purego.RegisterLibFunc(&lib.xplmGetWindowIsVisible, handle, "XPLMGetWindowIsVisible")
	purego.RegisterLibFunc(&lib.xplmSetWindowIsVisible, handle, "XPLMSetWindowIsVisible")

	purego.RegisterLibFunc(&lib.xplmGetMyID, handle, "XPLMGetMyID")
	purego.RegisterLibFunc(&lib.xplmFindPluginBySignature, handle, "XPLMFindPluginBySignature")
	purego.RegisterLibFunc(&lib.xplmIsPluginEnabled, handle, "XPLMIsPluginEnabled")
	purego.RegisterLibFunc(&lib.xplmCountPlugins, handle, "XPLMCountPlugins")
	purego.RegisterLibFunc(&lib.xplmGetPluginInfo, handle, "XPLMGetPluginInfo")
	purego.RegisterLibFunc(&lib.xplmSendMessageToPlugin, handle, "XPLMSendMessageToPlugin")

	purego.RegisterLibFunc(&lib.xplmHasFeature, handle, "XPLMHasFeature")
	purego.RegisterLibFunc(&lib.xplmIsFeatureEnabled, handle, "XPLMIsFeatureEnabled")
	purego.RegisterLibFunc(&lib.xplmEnableFeature, handle, "XPLMEnableFeature")
	purego.RegisterLibFunc(&lib.xplmEnumerateFeatures, handle, "XPLMEnumerateFeatures")

	purego.RegisterLibFunc(&lib.xplmCreateProbe, handle, "XPLMCreateProbe")
	purego.RegisterLibFunc(&lib.xplmDestroyProbe, handle, "XPLMDestroyProbe")
	purego.RegisterLibFunc(&lib.xplmProbeTerrainXYZ, handle, "XPLMProbeTerrainXYZ")
	purego.RegisterLibFunc(&lib.xplmLoadObject, handle, "XPLMLoadObject")
	purego.RegisterLibFunc(&lib.xplmLoadObjectAsync, handle, "XPLMLoadObjectAsync")
	purego.RegisterLibFunc(&lib.xplmUnloadObject, handle, "XPLMUnloadObject")
	purego.RegisterLibFunc(&lib.xplmLookupObjects, handle, "XPLMLookupObjects")
	purego.RegisterLibFunc(&lib.xplmReloadScenery, handle, "XPLMReloadScenery")

	// SDK 3.0+ only.
	registerOptionalLibFunc(&lib.xplmGetMagneticVariation, handle, "XPLMGetMagneticVariation")
	registerOptionalLibFunc(&lib.xplmDegTrueToDegMagnetic, handle, "XPLMDegTrueToDegMagnetic")
	registerOptionalLibFunc(&lib.xplmDegMagneticToDegTrue, handle, "XPLMDegMagneticToDegTrue")
	registerOptionalLibFunc(&lib.xplmCreateInstance, handle, "XPLMCreateInstance")
	registerOptionalLibFunc(&lib.xplmDestroyInstance, handle, "XPLMDestroyInstance")
	registerOptionalLibFunc(&lib.xplmInstanceSetPosition, handle, "XPLMInstanceSetPosition")

	// SDK 4.0+ only.
	registerOptionalLibFunc(&lib.xplmRegisterAvionicsCallbacksEx, handle, "XPLMRegisterAvionicsCallbacksEx")
	registerOptionalLibFunc(&lib.xplmUnregisterAvionicsCallbacks, handle, "XPLMUnregisterAvionicsCallbacks")

	// Called through the cgo shim; purego cannot pass 17 arguments.
	if addr, symErr := purego.Dlsym(handle, "XPLMRegisterDataAccessor"); symErr == nil {
		lib.registerDataAccessorAddr = addr
	}

	return lib, nil
}

func registerOptionalLibFunc(fptr any, handle uintptr, name string) {
	defer func() {
		_ = recover() // purego.RegisterLibFunc panics if symbol is missing
	}()
	purego.RegisterLibFunc(fptr, handle, name)
}

// Callback returns a C function pointer for fn. Pointers are cached per Go
// function because purego callbacks are never freed.
func (l *library) Callback(fn any) uintptr {
	key := reflect.ValueOf(fn).Pointer()
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	if cb, ok := l.callbacks[key]; ok {
		return cb
	}
	cb := purego.NewCallback(fn)
	l.callbacks[key] = cb
	return cb
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (l *library) DebugString(msg string) { l.xplmDebugString(msg) }

func (l *library) GetVersions() Versions {
	var v Versions
	l.xplmGetVersions(&v.XPlane, &v.XPLM, &v.HostID)
	return v
}

func (l *library) SetErrorCallback(cb uintptr) { l.xplmSetErrorCallback(cb) }

func (l *library) CreateFlightLoop(phase int32, cb, refcon uintptr) uintptr {
	p := createFlightLoop{
		structSize: int32(unsafe.Sizeof(createFlightLoop{})),
		phase:      phase,
		callback:   cb,
		refcon:     refcon,
	}
	return l.xplmCreateFlightLoop(&p)
}

func (l *library) ScheduleFlightLoop(id uintptr, interval float32, relativeToNow bool) {
	l.xplmScheduleFlightLoop(id, interval, boolInt(relativeToNow))
}

func (l *library) DestroyFlightLoop(id uintptr) { l.xplmDestroyFlightLoop(id) }

func (l *library) FindCommand(name string) uintptr { return l.xplmFindCommand(name) }

func (l *library) CreateCommand(name, description string) uintptr {
	return l.xplmCreateCommand(name, description)
}

func (l *library) RegisterCommandHandler(cmd, cb uintptr, before bool, refcon uintptr) {
	l.xplmRegisterCommandHandler(cmd, cb, boolInt(before), refcon)
}

func (l *library) UnregisterCommandHandler(cmd, cb uintptr, before bool, refcon uintptr) {
	l.xplmUnregisterCommandHandler(cmd, cb, boolInt(before), refcon)
}

func (l *library) CommandOnce(cmd uintptr)  { l.xplmCommandOnce(cmd) }
func (l *library) CommandBegin(cmd uintptr) { l.xplmCommandBegin(cmd) }
func (l *library) CommandEnd(cmd uintptr)   { l.xplmCommandEnd(cmd) }

func (l *library) FindDataRef(name string) uintptr    { return l.xplmFindDataRef(name) }
func (l *library) DataRefTypes(ref uintptr) int32     { return l.xplmGetDataRefTypes(ref) }
func (l *library) CanWriteDataRef(ref uintptr) bool   { return l.xplmCanWriteDataRef(ref) != 0 }
func (l *library) GetDatai(ref uintptr) int32         { return l.xplmGetDatai(ref) }
func (l *library) SetDatai(ref uintptr, v int32)      { l.xplmSetDatai(ref, v) }
func (l *library) GetDataf(ref uintptr) float32       { return l.xplmGetDataf(ref) }
func (l *library) SetDataf(ref uintptr, v float32)    { l.xplmSetDataf(ref, v) }
func (l *library) GetDatad(ref uintptr) float64       { return l.xplmGetDatad(ref) }
func (l *library) SetDatad(ref uintptr, v float64)    { l.xplmSetDatad(ref, v) }
func (l *library) UnregisterDataAccessor(ref uintptr) { l.xplmUnregisterDataAccessor(ref) }

func (l *library) GetDatavi(ref uintptr, out []int32, offset int32) int32 {
	if len(out) == 0 {
		return l.xplmGetDatavi(ref, nil, 0, 0)
	}
	return l.xplmGetDatavi(ref, &out[0], offset, int32(len(out)))
}

func (l *library) SetDatavi(ref uintptr, in []int32, offset int32) {
	if len(in) == 0 {
		return
	}
	l.xplmSetDatavi(ref, &in[0], offset, int32(len(in)))
}

func (l *library) GetDatavf(ref uintptr, out []float32, offset int32) int32 {
	if len(out) == 0 {
		return l.xplmGetDatavf(ref, nil, 0, 0)
	}
	return l.xplmGetDatavf(ref, &out[0], offset, int32(len(out)))
}

func (l *library) SetDatavf(ref uintptr, in []float32, offset int32) {
	if len(in) == 0 {
		return
	}
	l.xplmSetDatavf(ref, &in[0], offset, int32(len(in)))
}

func (l *library) GetDatab(ref uintptr, out []byte, offset int32) int32 {
	if len(out) == 0 {
		return l.xplmGetDatab(ref, nil, 0, 0)
	}
	return l.xplmGetDatab(ref, unsafe.Pointer(&out[0]), offset, int32(len(out)))
}

func (l *library) SetDatab(ref uintptr, in []byte, offset int32) {
	if len(in) == 0 {
		return
	}
	l.xplmSetDatab(ref, unsafe.Pointer(&in[0]), offset, int32(len(in)))
}

func (l *library) RegisterDataAccessor(name string, typ int32, writable bool, acc Accessors, refcon uintptr) (uintptr, error) {
	if !shim.Available() {
		return 0, xputil.NewError(xputil.KindUnsupported, "RegisterDataAccessor", name, shim.ErrUnavailable)
	}
	cbs := shim.Accessors{
		shim.GetInt:        acc.GetInt,
		shim.SetInt:        acc.SetInt,
		shim.GetFloat:      acc.GetFloat,
		shim.SetFloat:      acc.SetFloat,
		shim.GetDouble:     acc.GetDouble,
		shim.SetDouble:     acc.SetDouble,
		shim.GetIntArray:   acc.GetIntArray,
		shim.SetIntArray:   acc.SetIntArray,
		shim.GetFloatArray: acc.GetFloatArray,
		shim.SetFloatArray: acc.SetFloatArray,
		shim.GetBytes:      acc.GetBytes,
		shim.SetBytes:      acc.SetBytes,
	}
	ref, err := shim.RegisterDataAccessor(l.registerDataAccessorAddr, name, typ, writable, cbs, refcon, refcon)
	if err != nil {
		return 0, xputil.NewError(xputil.KindUnsupported, "RegisterDataAccessor", name, err)
	}
	return ref, nil
}

func (l *library) ShareData(name string, typ int32, cb, refcon uintptr) bool {
	return l.xplmShareData(name, typ, cb, refcon) != 0
}

func (l *library) UnshareData(name string, typ int32, cb, refcon uintptr) bool {
	return l.xplmUnshareData(name, typ, cb, refcon) != 0
}

func (l *library) FindPluginsMenu() uintptr { return l.xplmFindPluginsMenu() }

func (l *library) CreateMenu(name string, parent uintptr, parentItem int32, cb, menuRef uintptr) uintptr {
	return l.xplmCreateMenu(name, parent, parentItem, cb, menuRef)
}

func (l *library) DestroyMenu(menu uintptr) { l.xplmDestroyMenu(menu) }

func (l *library) AppendMenuItem(menu uintptr, name string, itemRef uintptr) int32 {
	return l.xplmAppendMenuItem(menu, name, itemRef, 0)
}

func (l *library) AppendMenuSeparator(menu uintptr)               { l.xplmAppendMenuSeparator(menu) }
func (l *library) RemoveMenuItem(menu uintptr, index int32)       { l.xplmRemoveMenuItem(menu, index) }
func (l *library) CheckMenuItem(menu uintptr, index, check int32) { l.xplmCheckMenuItem(menu, index, check) }

func (l *library) SetMenuItemName(menu uintptr, index int32, name string) {
	l.xplmSetMenuItemName(menu, index, name, 0)
}

func (l *library) CheckMenuItemState(menu uintptr, index int32) int32 {
	var state int32
	l.xplmCheckMenuItemState(menu, index, &state)
	return state
}

func (l *library) RegisterDrawCallback(cb uintptr, phase int32, before bool, refcon uintptr) bool {
	return l.xplmRegisterDrawCallback(cb, phase, boolInt(before), refcon) != 0
}

func (l *library) UnregisterDrawCallback(cb uintptr, phase int32, before bool, refcon uintptr) bool {
	return l.xplmUnregisterDrawCallback(cb, phase, boolInt(before), refcon) != 0
}

func (l *library) RegisterAvionicsCallbacks(device int32, before, after, refcon uintptr) uintptr {
	if l.xplmRegisterAvionicsCallbacksEx == nil {
		return 0
	}
	p := customizeAvionics{
		structSize: int32(unsafe.Sizeof(customizeAvionics{})),
		deviceID:   device,
		before:     before,
		after:      after,
		refcon:     refcon,
	}
	return l.xplmRegisterAvionicsCallbacksEx(&p)
}

func (l *library) UnregisterAvionicsCallbacks(id uintptr) {
	if l.xplmUnregisterAvionicsCallbacks != nil {
		l.xplmUnregisterAvionicsCallbacks(id)
	}
}

func (l *library) ControlCamera(duration int32, cb, refcon uintptr) {
	l.xplmControlCamera(duration, cb, refcon)
}

func (l *library) DontControlCamera() { l.xplmDontControlCamera() }

func (l *library) IsCameraBeingControlled() (bool, int32) {
	var duration int32
	controlled := l.xplmIsCameraBeingControlled(&duration) != 0
	return controlled, duration
}

func (l *library) ReadCameraPosition() CameraPosition {
	var pos CameraPosition
	l.xplmReadCameraPosition(&pos)
	return pos
}

func (l *library) CreateWindowEx(p WindowParams) uintptr {
	w := createWindow{
		structSize: int32(unsafe.Sizeof(createWindow{})),
		left:       p.Left,
		top:        p.Top,
		right:      p.Right,
		bottom:     p.Bottom,
		visible:    boolInt(p.Visible),
		draw:       p.Draw,
		mouse:      p.Mouse,
		key:        p.Key,
		cursor:     p.Cursor,
		wheel:      p.Wheel,
		refcon:     p.Refcon,
		decorate:   p.Decoration,
		layer:      p.Layer,
		rightClick: p.RightClick,
	}
	return l.xplmCreateWindowEx(&w)
}

func (l *library) DestroyWindow(id uintptr) { l.xplmDestroyWindow(id) }

func (l *library) GetWindowGeometry(id uintptr) (left, top, right, bottom int32) {
	l.xplmGetWindowGeometry(id, &left, &top, &right, &bottom)
	return
}

func (l *library) SetWindowGeometry(id uintptr, left, top, right, bottom int32) {
	l.xplmSetWindowGeometry(id, left, top, right, bottom)
}

func (l *library) GetWindowIsVisible(id uintptr) bool { return l.xplmGetWindowIsVisible(id) != 0 }

func (l *library) SetWindowIsVisible(id uintptr, visible bool) {
	l.xplmSetWindowIsVisible(id, boolInt(visible))
}

func (l *library) GetMyID() int32                         { return l.xplmGetMyID() }
func (l *library) FindPluginBySignature(sig string) int32 { return l.xplmFindPluginBySignature(sig) }
func (l *library) IsPluginEnabled(id int32) bool          { return l.xplmIsPluginEnabled(id) != 0 }
func (l *library) CountPlugins() int32                    { return l.xplmCountPlugins() }

func (l *library) GetPluginInfo(id int32) PluginInfo {
	name := xputil.NewStringBuffer(xputil.HostStringCapacity)
	path := xputil.NewStringBuffer(xputil.HostStringCapacity)
	sig := xputil.NewStringBuffer(xputil.HostStringCapacity)
	desc := xputil.NewStringBuffer(xputil.HostStringCapacity)
	l.xplmGetPluginInfo(id, name.Ptr(), path.Ptr(), sig.Ptr(), desc.Ptr())

	var info PluginInfo
	info.Name, _ = name.String()
	info.Path, _ = path.String()
	info.Signature, _ = sig.String()
	info.Description, _ = desc.String()
	return info
}

func (l *library) SendMessageToPlugin(id int32, msg int32, param unsafe.Pointer) {
	l.xplmSendMessageToPlugin(id, msg, param)
}

func (l *library) HasFeature(name string) bool       { return l.xplmHasFeature(name) != 0 }
func (l *library) IsFeatureEnabled(name string) bool { return l.xplmIsFeatureEnabled(name) != 0 }

func (l *library) EnableFeature(name string, enable bool) {
	l.xplmEnableFeature(name, boolInt(enable))
}

func (l *library) EnumerateFeatures(cb, refcon uintptr) { l.xplmEnumerateFeatures(cb, refcon) }

func (l *library) CreateProbe(typ int32) uintptr { return l.xplmCreateProbe(typ) }
func (l *library) DestroyProbe(probe uintptr)    { l.xplmDestroyProbe(probe) }

func (l *library) ProbeTerrainXYZ(probe uintptr, x, y, z float32, info *ProbeInfo) int32 {
	info.StructSize = int32(unsafe.Sizeof(ProbeInfo{}))
	return l.xplmProbeTerrainXYZ(probe, x, y, z, info)
}

func (l *library) LoadObject(path string) uintptr { return l.xplmLoadObject(path) }

func (l *library) LoadObjectAsync(path string, cb, refcon uintptr) {
	l.xplmLoadObjectAsync(path, cb, refcon)
}

func (l *library) UnloadObject(obj uintptr) { l.xplmUnloadObject(obj) }

func (l *library) LookupObjects(path string, lat, lon float32, cb, refcon uintptr) int32 {
	return l.xplmLookupObjects(path, lat, lon, cb, refcon)
}

func (l *library) ReloadScenery() { l.xplmReloadScenery() }

func (l *library) GetMagneticVariation(lat, lon float64) float32 {
	return l.xplmGetMagneticVariation(lat, lon)
}

func (l *library) DegTrueToDegMagnetic(deg float32) float32 { return l.xplmDegTrueToDegMagnetic(deg) }
func (l *library) DegMagneticToDegTrue(deg float32) float32 { return l.xplmDegMagneticToDegTrue(deg) }

// CreateInstance passes the names as a NULL-terminated array of C strings.
// The strings live in Go memory, pinned for the duration of the call.
func (l *library) CreateInstance(obj uintptr, datarefs []string) uintptr {
	var pinner runtime.Pinner
	defer pinner.Unpin()

	names := make([]*byte, 0, len(datarefs)+1)
	for _, name := range datarefs {
		c, err := xputil.CString(name)
		if err != nil {
			return 0
		}
		pinner.Pin(&c[0])
		names = append(names, &c[0])
	}
	names = append(names, nil)
	return l.xplmCreateInstance(obj, &names[0])
}

func (l *library) DestroyInstance(inst uintptr) { l.xplmDestroyInstance(inst) }

func (l *library) InstanceSetPosition(inst uintptr, pos DrawInfo, data []float32) {
	pos.StructSize = int32(unsafe.Sizeof(DrawInfo{}))
	var p *float32
	if len(data) > 0 {
		p = &data[0]
	}
	l.xplmInstanceSetPosition(inst, &pos, p)
}
