//go:build !ios && !android && (amd64 || arm64)

package xputil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCString(t *testing.T) {
	b, err := CString("sim/operation/pause_toggle")
	require.NoError(t, err)
	assert.Equal(t, "sim/operation/pause_toggle\x00", string(b))

	_, err = CString("bad\x00name")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.ErrorIs(t, err, ErrNulByte)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		capacity int
		want     string
	}{
		{"fits", "abc", 8, "abc\x00"},
		{"exact", "abcdefg", 8, "abcdefg\x00"},
		{"cut", "abcdefghij", 8, "abcdefg\x00"},
		{"empty", "", 4, "\x00"},
		{"one byte", "abc", 1, "\x00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Truncate(tt.in, tt.capacity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
			assert.LessOrEqual(t, len(b), tt.capacity)
		})
	}
}

func TestTruncateLongPluginName(t *testing.T) {
	name := strings.Repeat("x", 300)
	b, err := Truncate(name, HostStringCapacity)
	require.NoError(t, err)
	require.Len(t, b, HostStringCapacity)
	assert.Equal(t, strings.Repeat("x", 255), string(b[:255]))
	assert.Equal(t, byte(0), b[255])
}

func TestTruncateRejectsNulBeyondCut(t *testing.T) {
	// The NUL sits past the cut point and must still be rejected.
	s := strings.Repeat("a", 10) + "\x00"
	_, err := Truncate(s, 4)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestCopyTruncated(t *testing.T) {
	dst := make([]byte, 6)
	for i := range dst {
		dst[i] = 0xff
	}
	require.NoError(t, CopyTruncated(dst, "plugin name"))
	assert.Equal(t, "plugi\x00", string(dst))

	before := append([]byte(nil), dst...)
	assert.Error(t, CopyTruncated(dst, "x\x00"))
	assert.Equal(t, before, dst)
}

func TestStringBuffer(t *testing.T) {
	buf := NewStringBuffer(16)
	assert.Equal(t, 16, buf.Len())
	require.NotNil(t, buf.Ptr())

	copy(buf.Bytes(), "hello\x00junk")
	s, err := buf.String()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	assert.Nil(t, NewStringBuffer(0).Ptr())
}

func TestStringBufferInvalidUTF8(t *testing.T) {
	buf := NewStringBuffer(8)
	copy(buf.Bytes(), []byte{'o', 'k', 0xff, 0xfe})

	_, err := buf.String()
	var utfErr *Utf8Error
	require.ErrorAs(t, err, &utfErr)
	assert.Equal(t, 2, utfErr.Offset)
}

func TestGoString(t *testing.T) {
	b := []byte("host text\x00tail")
	s, err := GoString(&b[0], 0)
	require.NoError(t, err)
	assert.Equal(t, "host text", s)

	s, err = GoString(&b[0], 4)
	require.NoError(t, err)
	assert.Equal(t, "host", s)

	s, err = GoString(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestHostBuffer(t *testing.T) {
	b := make([]byte, 4)
	view := HostBuffer(&b[0], 4)
	view[1] = 'z'
	assert.Equal(t, byte('z'), b[1])
	assert.Nil(t, HostBuffer(nil, 4))
}
