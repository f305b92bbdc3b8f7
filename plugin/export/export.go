//go:build cgo && !ios && !android && (amd64 || arm64)

// Package export exports the XPlugin* entry points the host looks up in a
// plugin binary. Import it for its side effect from the main package of a
// -buildmode=c-shared build:
//
//	import _ "github.com/obinnaokechukwu/xpgo/plugin/export"
package export

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/obinnaokechukwu/xpgo/plugin"
)

//export XPluginStart
func XPluginStart(name, signature, description *C.char) C.int {
	return C.int(plugin.Start(
		(*byte)(unsafe.Pointer(name)),
		(*byte)(unsafe.Pointer(signature)),
		(*byte)(unsafe.Pointer(description))))
}

//export XPluginStop
func XPluginStop() {
	plugin.Stop()
}

//export XPluginEnable
func XPluginEnable() C.int {
	return C.int(plugin.Enable())
}

//export XPluginDisable
func XPluginDisable() {
	plugin.Disable()
}

//export XPluginReceiveMessage
func XPluginReceiveMessage(from C.int, msg C.int, param unsafe.Pointer) {
	plugin.ReceiveMessage(int32(from), int32(msg), param)
}
