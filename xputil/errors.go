//go:build !ios && !android && (amd64 || arm64)

// Package xputil provides the error taxonomy, opaque host code conversion
// errors and C string marshalling shared by every xpgo subsystem.
package xputil

import (
	"errors"
	"fmt"
)

// Kind classifies an xpgo error independently of the subsystem that raised it.
type Kind int

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota
	// KindNameConflict: the host already has something registered under the name.
	KindNameConflict
	// KindHostRejected: the host registration call signaled failure.
	KindHostRejected
	// KindInvalidIdentifier: a name contained an embedded NUL byte.
	KindInvalidIdentifier
	// KindNotFound: a lookup by name found nothing.
	KindNotFound
	// KindTypeMismatch: the entity exists but its declared type differs.
	KindTypeMismatch
	// KindUnmatchedOpaqueCode: a host code did not map to a known variant.
	KindUnmatchedOpaqueCode
	// KindNotWritable: the entity exists but the host does not allow writes.
	KindNotWritable
	// KindUnsupported: the running host SDK lacks the feature.
	KindUnsupported
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNameConflict:
		return "name conflict"
	case KindHostRejected:
		return "host rejected"
	case KindInvalidIdentifier:
		return "invalid identifier"
	case KindNotFound:
		return "not found"
	case KindTypeMismatch:
		return "type mismatch"
	case KindUnmatchedOpaqueCode:
		return "unmatched opaque code"
	case KindNotWritable:
		return "not writable"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind. An *Error matches the sentinel of its Kind
// with errors.Is.
var (
	ErrNameConflict      = errors.New("xpgo: name already registered with the host")
	ErrHostRejected      = errors.New("xpgo: host rejected the registration")
	ErrInvalidIdentifier = errors.New("xpgo: invalid identifier")
	ErrNotFound          = errors.New("xpgo: not found")
	ErrTypeMismatch      = errors.New("xpgo: type mismatch")
	ErrUnmatchedCode     = errors.New("xpgo: unmatched host code")
	ErrNotWritable       = errors.New("xpgo: not writable")
	ErrUnsupported       = errors.New("xpgo: unsupported by host SDK")

	// ErrNulByte is wrapped by InvalidIdentifier errors caused by an embedded NUL.
	ErrNulByte = errors.New("xpgo: string contains a NUL byte")
)

var sentinels = map[Kind]error{
	KindNameConflict:        ErrNameConflict,
	KindHostRejected:        ErrHostRejected,
	KindInvalidIdentifier:   ErrInvalidIdentifier,
	KindNotFound:            ErrNotFound,
	KindTypeMismatch:        ErrTypeMismatch,
	KindUnmatchedOpaqueCode: ErrUnmatchedCode,
	KindNotWritable:         ErrNotWritable,
	KindUnsupported:         ErrUnsupported,
}

// Error is an xpgo error.
type Error struct {
	Kind Kind   // Classification
	Op   string // Operation that failed
	Name string // Host-side name involved, if any
	Err  error  // Underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("xpgo %s: %s", e.Op, e.Kind)
	if e.Name != "" {
		msg += fmt.Sprintf(" (%q)", e.Name)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// NewError creates an *Error.
func NewError(kind Kind, op, name string, err error) error {
	return &Error{Kind: kind, Op: op, Name: name, Err: err}
}

// KindOf returns the Kind of err, or KindUnknown if err is not an xpgo error.
func KindOf(err error) Kind {
	var xpErr *Error
	if errors.As(err, &xpErr) {
		return xpErr.Kind
	}
	var codeErr *UnmatchedCodeError
	if errors.As(err, &codeErr) {
		return KindUnmatchedOpaqueCode
	}
	return KindUnknown
}

// IsKind reports whether err is an xpgo error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UnmatchedCodeError reports a host integer code with no matching variant in
// a closed enumeration. Callers should treat it as "unknown" and carry on.
type UnmatchedCodeError struct {
	Kind string // Name of the enumeration, e.g. "avionics device"
	Code int32  // Raw host code
}

// Error implements the error interface.
func (e *UnmatchedCodeError) Error() string {
	return fmt.Sprintf("xpgo: no %s matches host code %d", e.Kind, e.Code)
}

// Is matches ErrUnmatchedCode.
func (e *UnmatchedCodeError) Is(target error) bool {
	return target == ErrUnmatchedCode
}

// Unmatched creates an *UnmatchedCodeError.
func Unmatched(kind string, code int32) error {
	return &UnmatchedCodeError{Kind: kind, Code: code}
}

// UnmatchedCode returns the raw host code carried by err, if any.
func UnmatchedCode(err error) (int32, bool) {
	var codeErr *UnmatchedCodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code, true
	}
	return 0, false
}
