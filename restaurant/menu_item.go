package restaurant

import "github.com/shopspring/decimal"

// MenuItem is a dish or drink that can be listed on at most one Menu.
type MenuItem struct {
	id          string
	name        string
	description string
	basePrice   decimal.Decimal
	category    string
	available   bool

	menu *Menu
}

// NewMenuItem creates a menu item that is not yet on any menu.
// Menu items have no extent; the registry only validates them.
func (r *Registry) NewMenuItem(id, name, description string, basePrice decimal.Decimal, category string, available bool) (*MenuItem, error) {
	id, err := requireText("menu item id", id)
	if err != nil {
		return nil, err
	}
	name, err = requireText("menu item name", name)
	if err != nil {
		return nil, err
	}
	if err := requireNonNegative("base price", basePrice); err != nil {
		return nil, err
	}
	return &MenuItem{
		id:          id,
		name:        name,
		description: description,
		basePrice:   basePrice,
		category:    category,
		available:   available,
	}, nil
}

func (i *MenuItem) ID() string                 { return i.id }
func (i *MenuItem) Name() string               { return i.name }
func (i *MenuItem) Description() string        { return i.description }
func (i *MenuItem) BasePrice() decimal.Decimal { return i.basePrice }
func (i *MenuItem) Category() string           { return i.category }
func (i *MenuItem) IsAvailable() bool          { return i.available }

// ChangePrice sets a new base price.
func (i *MenuItem) ChangePrice(price decimal.Decimal) error {
	if err := requireNonNegative("base price", price); err != nil {
		return err
	}
	i.basePrice = price
	return nil
}

func (i *MenuItem) MarkAvailable()   { i.available = true }
func (i *MenuItem) MarkUnavailable() { i.available = false }

// HasMenu reports whether the item is on a menu.
func (i *MenuItem) HasMenu() bool {
	return i.menu != nil
}

// Menu returns the menu listing this item, or ErrNoMenu.
func (i *MenuItem) Menu() (*Menu, error) {
	if i.menu == nil {
		return nil, ErrNoMenu
	}
	return i.menu, nil
}
