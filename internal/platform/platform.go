//go:build !ios && !android && (amd64 || arm64)

// Package platform provides platform detection and host library naming for xpgo.
package platform

import (
	"runtime"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// xpgo only supports 64-bit platforms due to purego limitations.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
	case "windows":
		LibraryExtension = ".dll"
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
	}
}

// FormatLibraryName returns the platform-specific file name of a host SDK
// library such as "XPLM" or "XPWidgets".
//
// Examples:
//   - Linux:   FormatLibraryName("XPLM") -> "XPLM_64.so"
//   - macOS:   FormatLibraryName("XPLM") -> "XPLM.framework/XPLM"
//   - Windows: FormatLibraryName("XPLM") -> "XPLM_64.dll"
func FormatLibraryName(name string) string {
	if runtime.GOOS == "darwin" {
		return name + ".framework/" + name
	}
	return name + "_64" + LibraryExtension
}
