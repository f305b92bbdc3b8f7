//go:build !ios && !android && (amd64 || arm64)

package xputil

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"
)

// HostStringCapacity is the size of the buffers the host passes to
// XPluginStart for the plugin name, signature and description.
const HostStringCapacity = 256

// maxHostString bounds reads of host C strings that carry no length.
const maxHostString = 4096

// Utf8Error reports host text that is not valid UTF-8.
type Utf8Error struct {
	Offset int // Byte offset of the first invalid sequence
}

// Error implements the error interface.
func (e *Utf8Error) Error() string {
	return fmt.Sprintf("xpgo: invalid UTF-8 at byte %d", e.Offset)
}

// StringBuffer is a fixed-capacity, zero-filled buffer the host writes
// NUL-terminated text into.
type StringBuffer struct {
	b []byte
}

// NewStringBuffer returns a zero-filled buffer of n bytes.
func NewStringBuffer(n int) *StringBuffer {
	return &StringBuffer{b: make([]byte, n)}
}

// Ptr returns a pointer to the first byte, or nil for an empty buffer.
// The buffer must stay reachable until the host call returns.
func (s *StringBuffer) Ptr() *byte {
	if len(s.b) == 0 {
		return nil
	}
	return &s.b[0]
}

// Bytes returns the whole buffer.
func (s *StringBuffer) Bytes() []byte {
	return s.b
}

// Len returns the capacity of the buffer.
func (s *StringBuffer) Len() int {
	return len(s.b)
}

// String returns the text up to the first NUL byte.
func (s *StringBuffer) String() (string, error) {
	return decode(s.b)
}

func decode(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if !utf8.Valid(b) {
		off := 0
		for off < len(b) {
			r, size := utf8.DecodeRune(b[off:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			off += size
		}
		return "", &Utf8Error{Offset: off}
	}
	return string(b), nil
}

// ValidateName returns an InvalidIdentifier error if s contains a NUL byte.
func ValidateName(op, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return NewError(KindInvalidIdentifier, op, s, ErrNulByte)
	}
	return nil
}

// CString returns s as a NUL-terminated byte slice.
// An embedded NUL is an error, never a silent truncation.
func CString(s string) ([]byte, error) {
	if err := ValidateName("cstring", s); err != nil {
		return nil, err
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b, nil
}

// Truncate returns s as a NUL-terminated buffer no larger than capacity.
// Text longer than capacity-1 bytes is cut at capacity-1 bytes. An embedded
// NUL anywhere in s is an error.
func Truncate(s string, capacity int) ([]byte, error) {
	if err := ValidateName("truncate", s); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, nil
	}
	n := len(s)
	if n > capacity-1 {
		n = capacity - 1
	}
	b := make([]byte, n+1)
	copy(b, s[:n])
	return b, nil
}

// CopyTruncated writes s into dst as NUL-terminated text, truncating to fit.
// dst is left untouched on error.
func CopyTruncated(dst []byte, s string) error {
	b, err := Truncate(s, len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// HostBuffer views host memory at p as a byte slice of length n.
func HostBuffer(p *byte, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

// GoString reads a NUL-terminated host string. Reads stop after max bytes
// (4096 if max <= 0).
func GoString(p *byte, max int) (string, error) {
	if p == nil {
		return "", nil
	}
	if max <= 0 {
		max = maxHostString
	}
	n := 0
	for n < max {
		if *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) == 0 {
			break
		}
		n++
	}
	return decode(unsafe.Slice(p, n))
}
