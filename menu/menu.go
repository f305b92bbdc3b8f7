//go:build !ios && !android && (amd64 || arm64)

// Package menu builds menus in the host menu bar.
//
// A Menu holds items: submenus, action items, check items and separators.
// Items appear in the host only while their menu does. Adding a menu to the
// plugins menu creates it and every item below it; removing it tears the
// whole tree down again, children first.
//
//	m, _ := menu.New("My Plugin")
//	about, _ := menu.NewAction("About", menu.ClickFunc(func(*menu.ActionItem) {
//		xpgo.DebugString("about\n")
//	}))
//	m.Add(about)
//	m.AddToPluginsMenu()
//	defer m.Close()
package menu

import (
	"errors"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

var (
	// ErrAlreadyInMenu is returned when adding an item that is already in a menu.
	ErrAlreadyInMenu = errors.New("xpgo: menu item is already in a menu")
	// ErrNotInMenu is returned when removing an item that is not in a menu.
	ErrNotInMenu = errors.New("xpgo: menu item is not in a menu")
	// ErrNotInThatMenu is returned when removing an item from a menu it is not in.
	ErrNotInThatMenu = errors.New("xpgo: menu item is not in that menu")
)

// Item is an entry in a Menu: *Menu, *ActionItem, *CheckItem or *Separator.
type Item interface {
	base() *entry
	attach(api bindings.API, parent uintptr) error
	detach()
}

// clicker receives host clicks on an item.
type clicker interface {
	click()
}

// placement is the bookkeeping kept in an item's context block while it is
// in a host menu.
type placement struct {
	parent uintptr
	slot   *slot
}

type registration = handles.Handle[clicker, placement]

// entry is the state every item shares.
type entry struct {
	_      handles.NoCopy
	name   string
	owner  *Menu
	handle *registration
	api    bindings.API
}

func (e *entry) base() *entry { return e }

// Name returns the item name.
func (e *entry) Name() string { return e.name }

// InMenu reports whether the item is currently shown in a host menu.
func (e *entry) InMenu() bool { return e.where() != nil }

func (e *entry) where() *placement {
	if b := e.handle.Block(); b != nil {
		return b.State
	}
	return nil
}

// setName renames the item, updating the host if the item is shown.
func (e *entry) setName(name string) error {
	if err := xputil.ValidateName("menu.SetName", name); err != nil {
		return err
	}
	e.name = name
	if p := e.where(); p != nil {
		e.api.SetMenuItemName(p.parent, p.slot.index, name)
	}
	return nil
}

// register appends an item to parent through add, which makes the host
// calls and returns the item's index and host id. The registration's
// teardown runs destroy, if any, and then removes the item from parent.
func register(api bindings.API, parent uintptr, c clicker, add func(refcon uintptr) (int32, uintptr, error), destroy func(hostID uintptr)) (*registration, error) {
	var index int32
	h, err := handles.New[clicker](c, placement{parent: parent}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			i, id, err := add(refcon)
			index = i
			return id, err
		},
		Unregister: func(hostID, refcon uintptr) {
			if destroy != nil {
				destroy(hostID)
			}
			if b, ok := handles.Resolve[clicker, placement](refcon); ok {
				removeSlot(api, b.State.parent, b.State.slot)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	h.Block().State.slot = addSlot(parent, index)
	return h, nil
}

func remove(item Item) {
	e := item.base()
	if e.handle != nil {
		item.detach()
	}
}

func menuClicked(_, itemRef uintptr) {
	handles.Invoke("menu", itemRef, struct{}{}, func(b *handles.Block[clicker, placement]) struct{} {
		b.Handler.click()
		return struct{}{}
	})
}

// Menu is a menu of items. Adding a Menu to another menu makes it a submenu.
//
// A Menu must be used only on the host's main thread.
type Menu struct {
	entry
	children []Item
}

// New creates a menu that is not yet in any host menu.
func New(name string) (*Menu, error) {
	if err := xputil.ValidateName("menu.New", name); err != nil {
		return nil, err
	}
	return &Menu{entry: entry{name: name}}, nil
}

// SetName renames the menu.
func (m *Menu) SetName(name string) error { return m.setName(name) }

// Items returns the menu's items in order.
func (m *Menu) Items() []Item {
	return append([]Item(nil), m.children...)
}

// Add appends item to the menu. If the menu is shown, the item is created
// in the host immediately.
func (m *Menu) Add(item Item) error {
	e := item.base()
	if e.owner != nil || e.handle != nil {
		return ErrAlreadyInMenu
	}
	if sub, ok := item.(*Menu); ok && sub.contains(m) {
		return ErrAlreadyInMenu
	}
	if m.handle != nil {
		if err := item.attach(m.api, m.handle.Block().HostID); err != nil {
			return err
		}
	}
	e.owner = m
	m.children = append(m.children, item)
	return nil
}

// Remove removes item from the menu, deleting it from the host if shown.
func (m *Menu) Remove(item Item) error {
	e := item.base()
	if e.owner == nil {
		return ErrNotInMenu
	}
	if e.owner != m {
		return ErrNotInThatMenu
	}
	remove(item)
	for i, c := range m.children {
		if c == item {
			m.children = append(m.children[:i], m.children[i+1:]...)
			break
		}
	}
	e.owner = nil
	return nil
}

// contains reports whether target is m or below m.
func (m *Menu) contains(target *Menu) bool {
	if m == target {
		return true
	}
	for _, c := range m.children {
		if sub, ok := c.(*Menu); ok && sub.contains(target) {
			return true
		}
	}
	return false
}

// AddToPluginsMenu shows the menu as a submenu of the host plugins menu.
func (m *Menu) AddToPluginsMenu() error {
	if m.owner != nil || m.handle != nil {
		return ErrAlreadyInMenu
	}
	api, err := bindings.Current()
	if err != nil {
		return err
	}
	return m.attach(api, api.FindPluginsMenu())
}

// RemoveFromPluginsMenu removes the menu and its items from the plugins menu.
func (m *Menu) RemoveFromPluginsMenu() error {
	p := m.where()
	if p == nil {
		return ErrNotInMenu
	}
	if m.owner != nil || p.parent != m.api.FindPluginsMenu() {
		return ErrNotInThatMenu
	}
	m.detach()
	return nil
}

// Close removes the menu from wherever it is shown. Closing a menu that is
// not shown is a no-op.
func (m *Menu) Close() error {
	if m.owner != nil {
		return m.owner.Remove(m)
	}
	remove(m)
	return nil
}

func (m *Menu) click() {}

func (m *Menu) attach(api bindings.API, parent uintptr) error {
	cb := api.Callback(menuClicked)
	h, err := register(api, parent, m, func(refcon uintptr) (int32, uintptr, error) {
		index := api.AppendMenuItem(parent, m.name, 0)
		if index < 0 {
			return 0, 0, xputil.NewError(xputil.KindHostRejected, "menu.Add", m.name, nil)
		}
		id := api.CreateMenu(m.name, parent, index, cb, refcon)
		if id == 0 {
			api.RemoveMenuItem(parent, index)
			return 0, 0, xputil.NewError(xputil.KindHostRejected, "menu.Add", m.name, nil)
		}
		return index, id, nil
	}, func(id uintptr) {
		api.DestroyMenu(id)
		forgetMenu(id)
	})
	if err != nil {
		return err
	}
	m.api, m.handle = api, h
	id := h.Block().HostID
	for _, c := range m.children {
		if err := c.attach(api, id); err != nil {
			m.detach()
			return err
		}
	}
	return nil
}

// detach removes the children last index first, so every removal sees the
// index it was given, then destroys the menu itself.
func (m *Menu) detach() {
	for i := len(m.children) - 1; i >= 0; i-- {
		remove(m.children[i])
	}
	m.handle.Close()
	m.handle = nil
}

// ClickHandler is called when an action item is clicked.
type ClickHandler interface {
	ItemClicked(item *ActionItem)
}

// ClickFunc adapts a function to a ClickHandler.
type ClickFunc func(item *ActionItem)

// ItemClicked implements ClickHandler.
func (f ClickFunc) ItemClicked(item *ActionItem) { f(item) }

// ActionItem is a menu item that runs a handler when clicked.
//
// An ActionItem must be used only on the host's main thread.
type ActionItem struct {
	entry
	handler ClickHandler
}

// NewAction creates an action item.
func NewAction(name string, handler ClickHandler) (*ActionItem, error) {
	if err := xputil.ValidateName("menu.NewAction", name); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, errors.New("xpgo: menu click handler is nil")
	}
	return &ActionItem{entry: entry{name: name}, handler: handler}, nil
}

// SetName renames the item.
func (a *ActionItem) SetName(name string) error { return a.setName(name) }

// Close removes the item from its menu.
func (a *ActionItem) Close() error {
	if a.owner != nil {
		return a.owner.Remove(a)
	}
	return nil
}

func (a *ActionItem) click() { a.handler.ItemClicked(a) }

func (a *ActionItem) attach(api bindings.API, parent uintptr) error {
	h, err := register(api, parent, a, func(refcon uintptr) (int32, uintptr, error) {
		index := api.AppendMenuItem(parent, a.name, refcon)
		if index < 0 {
			return 0, 0, xputil.NewError(xputil.KindHostRejected, "menu.Add", a.name, nil)
		}
		api.CheckMenuItem(parent, index, bindings.MenuNoCheck)
		return index, 0, nil
	}, nil)
	if err != nil {
		return err
	}
	a.api, a.handle = api, h
	return nil
}

func (a *ActionItem) detach() {
	a.handle.Close()
	a.handle = nil
}

// CheckHandler is called when a check item is clicked, after its check
// mark has been toggled.
type CheckHandler interface {
	ItemChecked(item *CheckItem, checked bool)
}

// CheckFunc adapts a function to a CheckHandler.
type CheckFunc func(item *CheckItem, checked bool)

// ItemChecked implements CheckHandler.
func (f CheckFunc) ItemChecked(item *CheckItem, checked bool) { f(item, checked) }

// CheckItem is a menu item with a check mark that toggles when clicked.
//
// A CheckItem must be used only on the host's main thread.
type CheckItem struct {
	entry
	checked bool
	handler CheckHandler
}

// NewCheck creates a check item.
func NewCheck(name string, checked bool, handler CheckHandler) (*CheckItem, error) {
	if err := xputil.ValidateName("menu.NewCheck", name); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, errors.New("xpgo: menu check handler is nil")
	}
	return &CheckItem{entry: entry{name: name}, checked: checked, handler: handler}, nil
}

// SetName renames the item.
func (c *CheckItem) SetName(name string) error { return c.setName(name) }

// Checked reports whether the item is checked. While shown, the host's
// check state is authoritative; a state other than checked or unchecked is
// reset to unchecked.
func (c *CheckItem) Checked() bool {
	p := c.where()
	if p == nil {
		return c.checked
	}
	switch c.api.CheckMenuItemState(p.parent, p.slot.index) {
	case bindings.MenuChecked:
		c.checked = true
	case bindings.MenuUnchecked:
		c.checked = false
	default:
		c.api.CheckMenuItem(p.parent, p.slot.index, bindings.MenuUnchecked)
		c.checked = false
	}
	return c.checked
}

// SetChecked sets the check mark.
func (c *CheckItem) SetChecked(checked bool) {
	c.checked = checked
	if p := c.where(); p != nil {
		c.api.CheckMenuItem(p.parent, p.slot.index, checkState(checked))
	}
}

// Close removes the item from its menu.
func (c *CheckItem) Close() error {
	if c.owner != nil {
		return c.owner.Remove(c)
	}
	return nil
}

func (c *CheckItem) click() {
	checked := !c.Checked()
	c.SetChecked(checked)
	c.handler.ItemChecked(c, checked)
}

func (c *CheckItem) attach(api bindings.API, parent uintptr) error {
	h, err := register(api, parent, c, func(refcon uintptr) (int32, uintptr, error) {
		index := api.AppendMenuItem(parent, c.name, refcon)
		if index < 0 {
			return 0, 0, xputil.NewError(xputil.KindHostRejected, "menu.Add", c.name, nil)
		}
		api.CheckMenuItem(parent, index, checkState(c.checked))
		return index, 0, nil
	}, nil)
	if err != nil {
		return err
	}
	c.api, c.handle = api, h
	return nil
}

func (c *CheckItem) detach() {
	c.handle.Close()
	c.handle = nil
}

func checkState(checked bool) int32 {
	if checked {
		return bindings.MenuChecked
	}
	return bindings.MenuUnchecked
}

// Separator is a divider line. The zero value is ready to use; add it as
// &menu.Separator{}.
type Separator struct {
	entry
}

func (s *Separator) click() {}

// The host does not report a separator's index. Items only reach the host
// through this package, so it is the number of items already in parent.
func (s *Separator) attach(api bindings.API, parent uintptr) error {
	h, err := register(api, parent, s, func(uintptr) (int32, uintptr, error) {
		index := int32(len(layout[parent]))
		api.AppendMenuSeparator(parent)
		return index, 0, nil
	}, nil)
	if err != nil {
		return err
	}
	s.api, s.handle = api, h
	return nil
}

func (s *Separator) detach() {
	s.handle.Close()
	s.handle = nil
}
