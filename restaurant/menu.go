package restaurant

import (
	"slices"
	"strings"
)

// Menu lists one or more menu items. An item belongs to at most one menu, and
// the item's back-reference always agrees with the menu's member list.
type Menu struct {
	id     string
	name   string
	active bool

	items []*MenuItem
}

// NewMenu creates a menu holding the given items. At least one item is
// required, and either every item is attached or none is.
func (r *Registry) NewMenu(id, name string, active bool, items ...*MenuItem) (*Menu, error) {
	id, err := requireText("menu id", id)
	if err != nil {
		return nil, err
	}
	name, err = requireText("menu name", name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyMenu
	}

	for n, item := range items {
		if item == nil {
			return nil, invalid("menu item", "cannot be nil")
		}
		if slices.Contains(items[:n], item) {
			return nil, ErrDuplicateMember
		}
		if item.menu != nil {
			return nil, ErrOwnedElsewhere
		}
	}

	m := &Menu{id: id, name: name, active: active}
	for _, item := range items {
		m.attach(item)
	}
	return m, nil
}

func (m *Menu) ID() string       { return m.id }
func (m *Menu) Name() string     { return m.name }
func (m *Menu) IsActive() bool   { return m.active }
func (m *Menu) SetActive(b bool) { m.active = b }

// Items returns the current members. The order carries no meaning.
func (m *Menu) Items() []*MenuItem {
	return slices.Clone(m.items)
}

// Len returns the number of members.
func (m *Menu) Len() int {
	return len(m.items)
}

// Contains reports whether item is a member, by identity.
func (m *Menu) Contains(item *MenuItem) bool {
	return slices.Contains(m.items, item)
}

// AddItem puts item on this menu and points the item back at it.
func (m *Menu) AddItem(item *MenuItem) error {
	if item == nil {
		return invalid("menu item", "cannot be nil")
	}
	if m.Contains(item) {
		return ErrDuplicateMember
	}
	if item.menu != nil && item.menu != m {
		return ErrOwnedElsewhere
	}
	m.attach(item)
	return nil
}

// RemoveItem takes item off this menu and clears its back-reference.
// The last remaining item cannot be removed.
func (m *Menu) RemoveItem(item *MenuItem) error {
	if item == nil {
		return invalid("menu item", "cannot be nil")
	}
	idx := slices.Index(m.items, item)
	if idx < 0 {
		return ErrNotMember
	}
	if len(m.items) == 1 {
		return ErrLastMember
	}
	m.items = slices.Delete(m.items, idx, idx+1)
	item.menu = nil
	return nil
}

// FindItemByName returns the member whose name matches, ignoring case.
func (m *Menu) FindItemByName(name string) (*MenuItem, bool) {
	for _, item := range m.items {
		if strings.EqualFold(item.name, name) {
			return item, true
		}
	}
	return nil, false
}

func (m *Menu) attach(item *MenuItem) {
	m.items = append(m.items, item)
	item.menu = m
}
