//go:build !ios && !android && (amd64 || arm64)

// Package dataref reads and writes host data refs.
//
// Data refs found by name are borrowed: the host or another plugin owns them.
// NewOwned and NewOwnedArray publish data refs backed by Go values, and Share
// subscribes to shared data with change notification.
//
//	alt, err := dataref.Find[float64]("sim/flightmodel/position/elevation")
//	if err != nil {
//		return err
//	}
//	fmt.Println(alt.Get())
package dataref

import (
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Scalar is a single-value data ref type.
type Scalar interface {
	int32 | float32 | float64
}

// Element is an array data ref element type. Byte arrays are the host's
// "data" type and usually hold text.
type Element interface {
	int32 | float32 | byte
}

// Access controls whether other plugins and the host may write an owned
// data ref. The owning plugin can always write it.
type Access int

const (
	ReadOnly Access = iota
	ReadWrite
)

// String returns the string representation of the access mode.
func (a Access) String() string {
	if a == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

func scalarType[T Scalar]() int32 {
	var zero T
	switch any(zero).(type) {
	case int32:
		return bindings.TypeInt
	case float32:
		return bindings.TypeFloat
	default:
		return bindings.TypeDouble
	}
}

func arrayType[E Element]() int32 {
	var zero E
	switch any(zero).(type) {
	case int32:
		return bindings.TypeIntArray
	case float32:
		return bindings.TypeFloatArray
	default:
		return bindings.TypeData
	}
}

// lookup resolves name and checks its type bits against want.
func lookup(op, name string, want int32, writable bool) (bindings.API, uintptr, bool, error) {
	if err := xputil.ValidateName(op, name); err != nil {
		return nil, 0, false, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, 0, false, err
	}
	ref := api.FindDataRef(name)
	if ref == 0 {
		return nil, 0, false, xputil.NewError(xputil.KindNotFound, op, name, nil)
	}
	if types := api.DataRefTypes(ref); types&want == 0 {
		return nil, 0, false, xputil.NewError(xputil.KindTypeMismatch, op, name,
			fmt.Errorf("host types %#x, want %#x", types, want))
	}
	canWrite := api.CanWriteDataRef(ref)
	if writable && !canWrite {
		return nil, 0, false, xputil.NewError(xputil.KindNotWritable, op, name, nil)
	}
	return api, ref, canWrite, nil
}

// DataRef is a borrowed single-value data ref.
//
// A DataRef must be used only on the host's main thread.
type DataRef[T Scalar] struct {
	_        handles.NoCopy
	api      bindings.API
	ref      uintptr
	name     string
	writable bool
}

// Find looks up a data ref holding a T.
func Find[T Scalar](name string) (*DataRef[T], error) {
	api, ref, w, err := lookup("dataref.Find", name, scalarType[T](), false)
	if err != nil {
		return nil, err
	}
	return &DataRef[T]{api: api, ref: ref, name: name, writable: w}, nil
}

// FindWritable looks up a data ref holding a T and fails with a NotWritable
// error unless this plugin may write it.
func FindWritable[T Scalar](name string) (*DataRef[T], error) {
	api, ref, _, err := lookup("dataref.FindWritable", name, scalarType[T](), true)
	if err != nil {
		return nil, err
	}
	return &DataRef[T]{api: api, ref: ref, name: name, writable: true}, nil
}

// Name returns the data ref name.
func (d *DataRef[T]) Name() string { return d.name }

// Writable reports whether the data ref accepts writes.
func (d *DataRef[T]) Writable() bool { return d.writable }

// Get reads the current value.
func (d *DataRef[T]) Get() T {
	var v T
	switch p := any(&v).(type) {
	case *int32:
		*p = d.api.GetDatai(d.ref)
	case *float32:
		*p = d.api.GetDataf(d.ref)
	case *float64:
		*p = d.api.GetDatad(d.ref)
	}
	return v
}

// Set writes v.
func (d *DataRef[T]) Set(v T) error {
	if !d.writable {
		return xputil.NewError(xputil.KindNotWritable, "dataref.Set", d.name, nil)
	}
	switch x := any(v).(type) {
	case int32:
		d.api.SetDatai(d.ref, x)
	case float32:
		d.api.SetDataf(d.ref, x)
	case float64:
		d.api.SetDatad(d.ref, x)
	}
	return nil
}

// Array is a borrowed array data ref.
//
// An Array must be used only on the host's main thread.
type Array[E Element] struct {
	_        handles.NoCopy
	api      bindings.API
	ref      uintptr
	name     string
	writable bool
}

// FindArray looks up an array data ref with elements of type E.
func FindArray[E Element](name string) (*Array[E], error) {
	api, ref, w, err := lookup("dataref.FindArray", name, arrayType[E](), false)
	if err != nil {
		return nil, err
	}
	return &Array[E]{api: api, ref: ref, name: name, writable: w}, nil
}

// FindArrayWritable looks up an array data ref with elements of type E and
// fails with a NotWritable error unless this plugin may write it.
func FindArrayWritable[E Element](name string) (*Array[E], error) {
	api, ref, _, err := lookup("dataref.FindArrayWritable", name, arrayType[E](), true)
	if err != nil {
		return nil, err
	}
	return &Array[E]{api: api, ref: ref, name: name, writable: true}, nil
}

// Name returns the data ref name.
func (a *Array[E]) Name() string { return a.name }

// Writable reports whether the data ref accepts writes.
func (a *Array[E]) Writable() bool { return a.writable }

// Len returns the number of elements the host reports.
func (a *Array[E]) Len() int {
	return int(a.readAt(nil, 0))
}

// Read copies elements into dst starting at the first element and returns
// the number copied.
func (a *Array[E]) Read(dst []E) int {
	return a.ReadAt(dst, 0)
}

// ReadAt copies elements into dst starting at offset and returns the number
// copied. Elements past the end of the data ref leave dst untouched.
func (a *Array[E]) ReadAt(dst []E, offset int) int {
	if len(dst) == 0 || offset < 0 {
		return 0
	}
	return int(a.readAt(dst, int32(offset)))
}

// Values returns a copy of all elements.
func (a *Array[E]) Values() []E {
	n := a.Len()
	if n <= 0 {
		return nil
	}
	out := make([]E, n)
	out = out[:a.Read(out)]
	return out
}

// Write copies src into the data ref starting at the first element.
func (a *Array[E]) Write(src []E) error {
	return a.WriteAt(src, 0)
}

// WriteAt copies src into the data ref starting at offset.
func (a *Array[E]) WriteAt(src []E, offset int) error {
	if !a.writable {
		return xputil.NewError(xputil.KindNotWritable, "dataref.Write", a.name, nil)
	}
	if len(src) == 0 || offset < 0 {
		return nil
	}
	switch s := any(src).(type) {
	case []int32:
		a.api.SetDatavi(a.ref, s, int32(offset))
	case []float32:
		a.api.SetDatavf(a.ref, s, int32(offset))
	case []byte:
		a.api.SetDatab(a.ref, s, int32(offset))
	}
	return nil
}

func (a *Array[E]) readAt(dst []E, offset int32) int32 {
	switch d := any(dst).(type) {
	case []int32:
		return a.api.GetDatavi(a.ref, d, offset)
	case []float32:
		return a.api.GetDatavf(a.ref, d, offset)
	case []byte:
		return a.api.GetDatab(a.ref, d, offset)
	}
	return 0
}

// ReadString reads a byte array data ref as text up to the first NUL.
func ReadString(a *Array[byte]) (string, error) {
	n := a.Len()
	if n <= 0 {
		return "", nil
	}
	buf := xputil.NewStringBuffer(n)
	a.Read(buf.Bytes())
	return buf.String()
}

// WriteString writes s and a terminating NUL to a byte array data ref.
func WriteString(a *Array[byte], s string) error {
	b, err := xputil.CString(s)
	if err != nil {
		return err
	}
	return a.Write(b)
}
