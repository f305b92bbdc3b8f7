//go:build !ios && !android && (amd64 || arm64)

package handles

import "github.com/obinnaokechukwu/xpgo/xputil"

type nameList struct {
	names []string
	err   error
}

// Names runs one synchronous host enumeration and returns the names it
// reported, in order. callback turns the trampoline into a host pointer and
// enumerate makes the host call with that pointer and a refcon. The refcon
// is dead once Names returns.
func Names(callback func(fn any) uintptr, enumerate func(cb, refcon uintptr)) ([]string, error) {
	cb := callback(nameCallback)
	h, err := New[struct{}](struct{}{}, nameList{}, Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			enumerate(cb, refcon)
			return 0, nil
		},
	})
	if err != nil {
		return nil, err
	}
	list := h.Block().State
	h.Close()
	return list.names, list.err
}

func nameCallback(name *byte, refcon uintptr) {
	Invoke("enumerate", refcon, struct{}{}, func(b *Block[struct{}, nameList]) struct{} {
		s, err := xputil.GoString(name, 0)
		if err != nil {
			if b.State.err == nil {
				b.State.err = err
			}
			return struct{}{}
		}
		b.State.names = append(b.State.names, s)
		return struct{}{}
	})
}
