//go:build !ios && !android && (amd64 || arm64)

package menu

import "github.com/obinnaokechukwu/xpgo/internal/bindings"

// slot is the host index of one item this package placed in a menu.
type slot struct {
	index int32
}

// layout tracks the slots of every host menu this package has placed items
// in. The host addresses items by index, and removing an item shifts the
// items after it, so the indices are kept in step here.
var layout = make(map[uintptr][]*slot)

func addSlot(parent uintptr, index int32) *slot {
	s := &slot{index: index}
	layout[parent] = append(layout[parent], s)
	return s
}

// removeSlot removes the item at s from the host and shifts the indices of
// the items after it.
func removeSlot(api bindings.API, parent uintptr, s *slot) {
	api.RemoveMenuItem(parent, s.index)
	slots := layout[parent]
	for i, other := range slots {
		if other == s {
			slots = append(slots[:i], slots[i+1:]...)
			break
		}
	}
	for _, other := range slots {
		if other.index > s.index {
			other.index--
		}
	}
	if len(slots) == 0 {
		delete(layout, parent)
		return
	}
	layout[parent] = slots
}

// forgetMenu drops the slots of a destroyed menu.
func forgetMenu(id uintptr) {
	delete(layout, id)
}
