//go:build !ios && !android && (amd64 || arm64)

package xpgo

import (
	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Error is an xpgo error. Use errors.As to get at its Kind and Op.
type Error = xputil.Error

// Kind classifies an Error.
type Kind = xputil.Kind

// UnmatchedCodeError reports a host code outside a closed enumeration.
type UnmatchedCodeError = xputil.UnmatchedCodeError

// Error kinds re-exported from xputil.
const (
	KindUnknown             = xputil.KindUnknown
	KindNameConflict        = xputil.KindNameConflict
	KindHostRejected        = xputil.KindHostRejected
	KindInvalidIdentifier   = xputil.KindInvalidIdentifier
	KindNotFound            = xputil.KindNotFound
	KindTypeMismatch        = xputil.KindTypeMismatch
	KindUnmatchedOpaqueCode = xputil.KindUnmatchedOpaqueCode
	KindNotWritable         = xputil.KindNotWritable
	KindUnsupported         = xputil.KindUnsupported
)

// Common errors
var (
	// ErrNotLoaded indicates the XPLM library is not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrLibraryNotFound indicates no XPLM library was found to load.
	ErrLibraryNotFound = bindings.ErrLibraryNotFound

	ErrNameConflict      = xputil.ErrNameConflict
	ErrHostRejected      = xputil.ErrHostRejected
	ErrInvalidIdentifier = xputil.ErrInvalidIdentifier
	ErrNotFound          = xputil.ErrNotFound
	ErrTypeMismatch      = xputil.ErrTypeMismatch
	ErrUnmatchedCode     = xputil.ErrUnmatchedCode
	ErrNotWritable       = xputil.ErrNotWritable
	ErrUnsupported       = xputil.ErrUnsupported
	ErrNulByte           = xputil.ErrNulByte
)

// KindOf returns the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	return xputil.KindOf(err)
}

// IsNameConflict reports whether the host already had the name.
func IsNameConflict(err error) bool {
	return xputil.IsKind(err, KindNameConflict)
}

// IsHostRejected reports whether a host registration call failed.
func IsHostRejected(err error) bool {
	return xputil.IsKind(err, KindHostRejected)
}

// IsNotFound reports whether a lookup by name found nothing.
func IsNotFound(err error) bool {
	return xputil.IsKind(err, KindNotFound)
}

// IsUnsupported reports whether the host SDK lacks a feature.
func IsUnsupported(err error) bool {
	return xputil.IsKind(err, KindUnsupported)
}

// UnmatchedCode returns the raw host code carried by err, if any.
func UnmatchedCode(err error) (int32, bool) {
	return xputil.UnmatchedCode(err)
}
