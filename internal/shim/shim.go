//go:build !ios && !android && (amd64 || arm64)

// Package shim makes the host calls purego cannot.
//
// purego passes at most 15 arguments. XPLMRegisterDataAccessor takes 17: the
// name, the type mask, the writable flag, twelve accessor callbacks and two
// refcons. The shim calls it through a small C trampoline, so it needs cgo.
// Without cgo, owned data refs are unavailable and every other xpgo feature
// still works.
package shim

import (
	"errors"
	"strings"
)

// ErrUnavailable is returned when the binary was built without cgo.
var ErrUnavailable = errors.New("xpgo: data accessor shim requires cgo")

// ErrNoSymbol is returned when the host library lacks the accessor function.
var ErrNoSymbol = errors.New("xpgo: XPLMRegisterDataAccessor not found in host library")

// Accessor callback slots in host argument order.
const (
	GetInt = iota
	SetInt
	GetFloat
	SetFloat
	GetDouble
	SetDouble
	GetIntArray
	SetIntArray
	GetFloatArray
	SetFloatArray
	GetBytes
	SetBytes
	numAccessors
)

// Accessors holds callback pointers, indexed by the slot constants above.
// A zero slot tells the host the operation is unsupported.
type Accessors [numAccessors]uintptr

// RegisterDataAccessor calls the host function at fn, which must be the
// address of XPLMRegisterDataAccessor.
func RegisterDataAccessor(fn uintptr, name string, typ int32, writable bool, cbs Accessors, readRefcon, writeRefcon uintptr) (uintptr, error) {
	if fn == 0 {
		return 0, ErrNoSymbol
	}
	if strings.IndexByte(name, 0) >= 0 {
		return 0, errors.New("xpgo: data ref name contains a NUL byte")
	}
	return registerDataAccessor(fn, name, typ, writable, &cbs, readRefcon, writeRefcon)
}

// Available reports whether the shim was compiled in.
func Available() bool {
	return available
}
