//go:build cgo && !ios && !android && (amd64 || arm64)

package shim

/*
#include <stdint.h>
#include <stdlib.h>

typedef void *(*xpgo_register_accessor_fn)(
	const char *, int, int,
	void *, void *, void *, void *, void *, void *,
	void *, void *, void *, void *, void *, void *,
	void *, void *);

static uintptr_t xpgo_register_data_accessor(uintptr_t fn, const char *name, int typ, int writable,
	const uintptr_t *cb, uintptr_t read_refcon, uintptr_t write_refcon) {
	xpgo_register_accessor_fn f = (xpgo_register_accessor_fn)fn;
	return (uintptr_t)f(name, typ, writable,
		(void *)cb[0], (void *)cb[1], (void *)cb[2], (void *)cb[3],
		(void *)cb[4], (void *)cb[5], (void *)cb[6], (void *)cb[7],
		(void *)cb[8], (void *)cb[9], (void *)cb[10], (void *)cb[11],
		(void *)read_refcon, (void *)write_refcon);
}
*/
import "C"

import "unsafe"

const available = true

func registerDataAccessor(fn uintptr, name string, typ int32, writable bool, cbs *Accessors, readRefcon, writeRefcon uintptr) (uintptr, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var w C.int
	if writable {
		w = 1
	}
	ref := C.xpgo_register_data_accessor(
		C.uintptr_t(fn), cname, C.int(typ), w,
		(*C.uintptr_t)(unsafe.Pointer(&cbs[0])),
		C.uintptr_t(readRefcon), C.uintptr_t(writeRefcon))
	return uintptr(ref), nil
}
