//go:build !cgo && !ios && !android && (amd64 || arm64)

package shim

const available = false

func registerDataAccessor(uintptr, string, int32, bool, *Accessors, uintptr, uintptr) (uintptr, error) {
	return 0, ErrUnavailable
}
