//go:build !ios && !android && (amd64 || arm64)

package dataref

import (
	"unsafe"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// store is the Go value an owned data ref's accessors read and write.
type store interface {
	scalar() any
	setScalar(v any)
	// read copies up to max elements starting at offset into dst, or
	// returns the length when dst is nil.
	read(dst unsafe.Pointer, offset, max int32) int32
	write(src unsafe.Pointer, offset, count int32)
}

type scalarStore[T Scalar] struct {
	value T
}

func (s *scalarStore[T]) scalar() any { return s.value }

func (s *scalarStore[T]) setScalar(v any) {
	if x, ok := v.(T); ok {
		s.value = x
	}
}

func (s *scalarStore[T]) read(unsafe.Pointer, int32, int32) int32 { return 0 }

func (s *scalarStore[T]) write(unsafe.Pointer, int32, int32) {}

type arrayStore[E Element] struct {
	values []E
}

func (s *arrayStore[E]) scalar() any { return nil }

func (s *arrayStore[E]) setScalar(any) {}

func (s *arrayStore[E]) read(dst unsafe.Pointer, offset, max int32) int32 {
	if dst == nil {
		return int32(len(s.values))
	}
	if offset < 0 || max <= 0 || int(offset) >= len(s.values) {
		return 0
	}
	out := unsafe.Slice((*E)(dst), max)
	return int32(copy(out, s.values[offset:]))
}

// write never grows the array; elements past the end are dropped.
func (s *arrayStore[E]) write(src unsafe.Pointer, offset, count int32) {
	if src == nil || offset < 0 || count <= 0 || int(offset) >= len(s.values) {
		return
	}
	in := unsafe.Slice((*E)(src), count)
	copy(s.values[offset:], in)
}

func registerAccessor(op, name string, typ int32, access Access, st store) (*handles.Handle[store, struct{}], error) {
	if err := xputil.ValidateName(op, name); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	if api.FindDataRef(name) != 0 {
		return nil, xputil.NewError(xputil.KindNameConflict, op, name, nil)
	}
	acc := accessors(api, typ, access == ReadWrite)
	return handles.New[store](st, struct{}{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			ref, err := api.RegisterDataAccessor(name, typ, access == ReadWrite, acc, refcon)
			if err != nil {
				return 0, err
			}
			if ref == 0 {
				return 0, xputil.NewError(xputil.KindHostRejected, op, name, nil)
			}
			return ref, nil
		},
		Unregister: func(ref, _ uintptr) {
			api.UnregisterDataAccessor(ref)
		},
	})
}

// accessors fills only the slots for typ. Setters are left empty unless
// the data ref is writable by others.
func accessors(api bindings.API, typ int32, writable bool) bindings.Accessors {
	var acc bindings.Accessors
	switch typ {
	case bindings.TypeInt:
		acc.GetInt = api.Callback(getInt)
		if writable {
			acc.SetInt = api.Callback(setInt)
		}
	case bindings.TypeFloat:
		acc.GetFloat = api.Callback(getFloat)
		if writable {
			acc.SetFloat = api.Callback(setFloat)
		}
	case bindings.TypeDouble:
		acc.GetDouble = api.Callback(getDouble)
		if writable {
			acc.SetDouble = api.Callback(setDouble)
		}
	case bindings.TypeIntArray:
		acc.GetIntArray = api.Callback(getIntArray)
		if writable {
			acc.SetIntArray = api.Callback(setIntArray)
		}
	case bindings.TypeFloatArray:
		acc.GetFloatArray = api.Callback(getFloatArray)
		if writable {
			acc.SetFloatArray = api.Callback(setFloatArray)
		}
	case bindings.TypeData:
		acc.GetBytes = api.Callback(getBytes)
		if writable {
			acc.SetBytes = api.Callback(setBytes)
		}
	}
	return acc
}

// Owned is a single-value data ref published by this plugin.
//
// An Owned must be used only on the host's main thread.
type Owned[T Scalar] struct {
	_      handles.NoCopy
	name   string
	handle *handles.Handle[store, struct{}]
	value  *scalarStore[T]
}

// NewOwned publishes a data ref named name holding initial. It fails with a
// NameConflict error if the host already has a data ref with that name.
func NewOwned[T Scalar](name string, initial T, access Access) (*Owned[T], error) {
	st := &scalarStore[T]{value: initial}
	h, err := registerAccessor("dataref.NewOwned", name, scalarType[T](), access, st)
	if err != nil {
		return nil, err
	}
	return &Owned[T]{name: name, handle: h, value: st}, nil
}

// Name returns the data ref name.
func (o *Owned[T]) Name() string { return o.name }

// Get returns the current value, including writes made by other plugins.
func (o *Owned[T]) Get() T { return o.value.value }

// Set changes the value.
func (o *Owned[T]) Set(v T) { o.value.value = v }

// Close unpublishes the data ref.
func (o *Owned[T]) Close() error {
	o.handle.Close()
	return nil
}

// OwnedArray is an array data ref published by this plugin.
//
// An OwnedArray must be used only on the host's main thread.
type OwnedArray[E Element] struct {
	_      handles.NoCopy
	name   string
	handle *handles.Handle[store, struct{}]
	values *arrayStore[E]
}

// NewOwnedArray publishes an array data ref named name holding a copy of
// initial. Its length changes only through Set.
func NewOwnedArray[E Element](name string, initial []E, access Access) (*OwnedArray[E], error) {
	st := &arrayStore[E]{values: append([]E(nil), initial...)}
	h, err := registerAccessor("dataref.NewOwnedArray", name, arrayType[E](), access, st)
	if err != nil {
		return nil, err
	}
	return &OwnedArray[E]{name: name, handle: h, values: st}, nil
}

// Name returns the data ref name.
func (o *OwnedArray[E]) Name() string { return o.name }

// Len returns the number of elements.
func (o *OwnedArray[E]) Len() int { return len(o.values.values) }

// Values returns a copy of the elements.
func (o *OwnedArray[E]) Values() []E {
	return append([]E(nil), o.values.values...)
}

// Set replaces the elements with a copy of values.
func (o *OwnedArray[E]) Set(values []E) {
	o.values.values = append(o.values.values[:0:0], values...)
}

// SetString replaces the contents of a byte array with s and a
// terminating NUL.
func SetString(o *OwnedArray[byte], s string) error {
	b, err := xputil.CString(s)
	if err != nil {
		return err
	}
	o.Set(b)
	return nil
}

// Close unpublishes the data ref.
func (o *OwnedArray[E]) Close() error {
	o.handle.Close()
	return nil
}

type accessorBlock = handles.Block[store, struct{}]

func getInt(refcon uintptr) int32 {
	return handles.Invoke("dataref get int", refcon, int32(0), func(b *accessorBlock) int32 {
		v, _ := b.Handler.scalar().(int32)
		return v
	})
}

func setInt(refcon uintptr, v int32) {
	handles.Invoke("dataref set int", refcon, struct{}{}, func(b *accessorBlock) struct{} {
		b.Handler.setScalar(v)
		return struct{}{}
	})
}

func getFloat(refcon uintptr) float32 {
	return handles.Invoke("dataref get float", refcon, float32(0), func(b *accessorBlock) float32 {
		v, _ := b.Handler.scalar().(float32)
		return v
	})
}

func setFloat(refcon uintptr, v float32) {
	handles.Invoke("dataref set float", refcon, struct{}{}, func(b *accessorBlock) struct{} {
		b.Handler.setScalar(v)
		return struct{}{}
	})
}

func getDouble(refcon uintptr) float64 {
	return handles.Invoke("dataref get double", refcon, float64(0), func(b *accessorBlock) float64 {
		v, _ := b.Handler.scalar().(float64)
		return v
	})
}

func setDouble(refcon uintptr, v float64) {
	handles.Invoke("dataref set double", refcon, struct{}{}, func(b *accessorBlock) struct{} {
		b.Handler.setScalar(v)
		return struct{}{}
	})
}

func readArray(name string, refcon uintptr, dst unsafe.Pointer, offset, max int32) int32 {
	return handles.Invoke(name, refcon, int32(0), func(b *accessorBlock) int32 {
		return b.Handler.read(dst, offset, max)
	})
}

func writeArray(name string, refcon uintptr, src unsafe.Pointer, offset, count int32) {
	handles.Invoke(name, refcon, struct{}{}, func(b *accessorBlock) struct{} {
		b.Handler.write(src, offset, count)
		return struct{}{}
	})
}

func getIntArray(refcon uintptr, out *int32, offset, max int32) int32 {
	return readArray("dataref get int array", refcon, unsafe.Pointer(out), offset, max)
}

func setIntArray(refcon uintptr, in *int32, offset, count int32) {
	writeArray("dataref set int array", refcon, unsafe.Pointer(in), offset, count)
}

func getFloatArray(refcon uintptr, out *float32, offset, max int32) int32 {
	return readArray("dataref get float array", refcon, unsafe.Pointer(out), offset, max)
}

func setFloatArray(refcon uintptr, in *float32, offset, count int32) {
	writeArray("dataref set float array", refcon, unsafe.Pointer(in), offset, count)
}

func getBytes(refcon uintptr, out unsafe.Pointer, offset, max int32) int32 {
	return readArray("dataref get bytes", refcon, out, offset, max)
}

func setBytes(refcon uintptr, in unsafe.Pointer, offset, count int32) {
	writeArray("dataref set bytes", refcon, in, offset, count)
}
