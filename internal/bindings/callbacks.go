//go:build !ios && !android && (amd64 || arm64)

package bindings

import "unsafe"

// Go shapes of the host callback types. Trampolines passed to API.Callback
// have exactly these signatures.
type (
	FlightLoopFunc    = func(sinceLastCall, sinceLastLoop float32, counter int32, refcon uintptr) float32
	CommandFunc       = func(cmd uintptr, phase int32, refcon uintptr) int32
	DataChangedFunc   = func(refcon uintptr)
	MenuFunc          = func(menuRef, itemRef uintptr)
	DrawFunc          = func(phase, before int32, refcon uintptr) int32
	AvionicsFunc      = func(device, before int32, refcon uintptr) int32
	CameraFunc        = func(pos *CameraPosition, losingControl int32, refcon uintptr) int32
	WindowDrawFunc    = func(win, refcon uintptr)
	WindowMouseFunc   = func(win uintptr, x, y, status int32, refcon uintptr) int32
	WindowKeyFunc     = func(win uintptr, key, flags, vkey int32, refcon uintptr, losingFocus int32)
	WindowCursorFunc  = func(win uintptr, x, y int32, refcon uintptr) int32
	WindowWheelFunc   = func(win uintptr, x, y, wheel, clicks int32, refcon uintptr) int32
	ErrorFunc         = func(msg *byte)
	NameEnumFunc      = func(name *byte, refcon uintptr)
	ObjectLoadedFunc  = func(obj, refcon uintptr)
	GetIntFunc        = func(refcon uintptr) int32
	SetIntFunc        = func(refcon uintptr, v int32)
	GetFloatFunc      = func(refcon uintptr) float32
	SetFloatFunc      = func(refcon uintptr, v float32)
	GetDoubleFunc     = func(refcon uintptr) float64
	SetDoubleFunc     = func(refcon uintptr, v float64)
	GetIntArrayFunc   = func(refcon uintptr, out *int32, offset, max int32) int32
	SetIntArrayFunc   = func(refcon uintptr, in *int32, offset, count int32)
	GetFloatArrayFunc = func(refcon uintptr, out *float32, offset, max int32) int32
	SetFloatArrayFunc = func(refcon uintptr, in *float32, offset, count int32)
	GetBytesFunc      = func(refcon uintptr, out unsafe.Pointer, offset, max int32) int32
	SetBytesFunc      = func(refcon uintptr, in unsafe.Pointer, offset, count int32)
)
