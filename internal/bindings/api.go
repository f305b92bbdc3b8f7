//go:build !ios && !android && (amd64 || arm64)

package bindings

import "unsafe"

// Host data type bits (XPLMDataTypeID).
const (
	TypeUnknown    int32 = 0
	TypeInt        int32 = 1
	TypeFloat      int32 = 2
	TypeDouble     int32 = 4
	TypeFloatArray int32 = 8
	TypeIntArray   int32 = 16
	TypeData       int32 = 32
)

// Menu check states (XPLMMenuCheck).
const (
	MenuNoCheck   int32 = 0
	MenuUnchecked int32 = 1
	MenuChecked   int32 = 2
)

// Accessors holds data accessor callback pointers. A zero field tells the
// host the operation is unsupported.
type Accessors struct {
	GetInt, SetInt               uintptr
	GetFloat, SetFloat           uintptr
	GetDouble, SetDouble         uintptr
	GetIntArray, SetIntArray     uintptr
	GetFloatArray, SetFloatArray uintptr
	GetBytes, SetBytes           uintptr
}

// CameraPosition mirrors XPLMCameraPosition_t.
type CameraPosition struct {
	X, Y, Z float32
	Pitch   float32
	Heading float32
	Roll    float32
	Zoom    float32
}

// WindowParams describes a window for CreateWindowEx.
type WindowParams struct {
	Left, Top, Right, Bottom int32
	Visible                  bool
	Draw                     uintptr
	Mouse                    uintptr
	Key                      uintptr
	Cursor                   uintptr
	Wheel                    uintptr
	RightClick               uintptr
	Refcon                   uintptr
	Decoration               int32
	Layer                    int32
}

// PluginInfo describes a loaded plugin.
type PluginInfo struct {
	Name        string
	Path        string
	Signature   string
	Description string
}

// ProbeInfo mirrors XPLMProbeInfo_t.
type ProbeInfo struct {
	StructSize                      int32
	LocationX, LocationY, LocationZ float32
	NormalX, NormalY, NormalZ       float32
	VelocityX, VelocityY, VelocityZ float32
	IsWet                           int32
}

// DrawInfo mirrors XPLMDrawInfo_t.
type DrawInfo struct {
	StructSize           int32
	X, Y, Z              float32
	Pitch, Heading, Roll float32
}

// Versions are the raw host version numbers.
type Versions struct {
	XPlane int32 // e.g. 12100
	XPLM   int32 // e.g. 411
	HostID int32
}

// API is the host surface xpgo calls through. The purego-backed library
// implements it against the real host; tests install a mock with Use.
//
// Callback pointers passed to the host come from Callback, which receives a
// Go function with a host-compatible signature and returns a stable C
// function pointer for it.
type API interface {
	Callback(fn any) uintptr

	DebugString(msg string)
	GetVersions() Versions
	SetErrorCallback(cb uintptr)

	CreateFlightLoop(phase int32, cb, refcon uintptr) uintptr
	ScheduleFlightLoop(id uintptr, interval float32, relativeToNow bool)
	DestroyFlightLoop(id uintptr)

	FindCommand(name string) uintptr
	CreateCommand(name, description string) uintptr
	RegisterCommandHandler(cmd, cb uintptr, before bool, refcon uintptr)
	UnregisterCommandHandler(cmd, cb uintptr, before bool, refcon uintptr)
	CommandOnce(cmd uintptr)
	CommandBegin(cmd uintptr)
	CommandEnd(cmd uintptr)

	FindDataRef(name string) uintptr
	DataRefTypes(ref uintptr) int32
	CanWriteDataRef(ref uintptr) bool
	GetDatai(ref uintptr) int32
	SetDatai(ref uintptr, v int32)
	GetDataf(ref uintptr) float32
	SetDataf(ref uintptr, v float32)
	GetDatad(ref uintptr) float64
	SetDatad(ref uintptr, v float64)
	// Array reads with a nil out return the array length.
	GetDatavi(ref uintptr, out []int32, offset int32) int32
	SetDatavi(ref uintptr, in []int32, offset int32)
	GetDatavf(ref uintptr, out []float32, offset int32) int32
	SetDatavf(ref uintptr, in []float32, offset int32)
	GetDatab(ref uintptr, out []byte, offset int32) int32
	SetDatab(ref uintptr, in []byte, offset int32)
	RegisterDataAccessor(name string, typ int32, writable bool, acc Accessors, refcon uintptr) (uintptr, error)
	UnregisterDataAccessor(ref uintptr)
	ShareData(name string, typ int32, cb, refcon uintptr) bool
	UnshareData(name string, typ int32, cb, refcon uintptr) bool

	FindPluginsMenu() uintptr
	CreateMenu(name string, parent uintptr, parentItem int32, cb, menuRef uintptr) uintptr
	DestroyMenu(menu uintptr)
	AppendMenuItem(menu uintptr, name string, itemRef uintptr) int32
	AppendMenuSeparator(menu uintptr)
	RemoveMenuItem(menu uintptr, index int32)
	SetMenuItemName(menu uintptr, index int32, name string)
	CheckMenuItem(menu uintptr, index int32, check int32)
	CheckMenuItemState(menu uintptr, index int32) int32

	RegisterDrawCallback(cb uintptr, phase int32, before bool, refcon uintptr) bool
	UnregisterDrawCallback(cb uintptr, phase int32, before bool, refcon uintptr) bool

	RegisterAvionicsCallbacks(device int32, before, after, refcon uintptr) uintptr
	UnregisterAvionicsCallbacks(id uintptr)

	ControlCamera(duration int32, cb, refcon uintptr)
	DontControlCamera()
	IsCameraBeingControlled() (bool, int32)
	ReadCameraPosition() CameraPosition

	CreateWindowEx(p WindowParams) uintptr
	DestroyWindow(id uintptr)
	GetWindowGeometry(id uintptr) (left, top, right, bottom int32)
	SetWindowGeometry(id uintptr, left, top, right, bottom int32)
	GetWindowIsVisible(id uintptr) bool
	SetWindowIsVisible(id uintptr, visible bool)

	GetMyID() int32
	FindPluginBySignature(sig string) int32
	IsPluginEnabled(id int32) bool
	CountPlugins() int32
	GetPluginInfo(id int32) PluginInfo
	SendMessageToPlugin(id int32, msg int32, param unsafe.Pointer)

	HasFeature(name string) bool
	IsFeatureEnabled(name string) bool
	EnableFeature(name string, enable bool)
	EnumerateFeatures(cb, refcon uintptr)

	CreateProbe(typ int32) uintptr
	DestroyProbe(probe uintptr)
	ProbeTerrainXYZ(probe uintptr, x, y, z float32, info *ProbeInfo) int32
	LoadObject(path string) uintptr
	LoadObjectAsync(path string, cb, refcon uintptr)
	UnloadObject(obj uintptr)
	LookupObjects(path string, lat, lon float32, cb, refcon uintptr) int32
	ReloadScenery()
	GetMagneticVariation(lat, lon float64) float32
	DegTrueToDegMagnetic(deg float32) float32
	DegMagneticToDegTrue(deg float32) float32

	// CreateInstance takes the data ref names the object's animations read.
	CreateInstance(obj uintptr, datarefs []string) uintptr
	DestroyInstance(inst uintptr)
	InstanceSetPosition(inst uintptr, pos DrawInfo, data []float32)
}
