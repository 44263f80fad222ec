package restaurant

import "github.com/shopspring/decimal"

// OrderItem is one line of an Order. Its owning order and the menu item it
// refers to are two independent links: the first is set and cleared only by
// the order, the second travels with it.
type OrderItem struct {
	quantity  int
	unitPrice decimal.Decimal

	order    *Order
	menuItem *MenuItem
}

// NewOrderItem creates a detached order item and registers it in the
// order item extent. Items created this way never join an order; use
// Order.AddItem for that.
func (r *Registry) NewOrderItem(quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	item, err := newOrderItem(quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	r.orderItems.add(item)
	return item, nil
}

func newOrderItem(quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := requireNonNegative("unit price", unitPrice); err != nil {
		return nil, err
	}
	return &OrderItem{quantity: quantity, unitPrice: unitPrice}, nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return invalid("quantity", "must be greater than zero")
	}
	return nil
}

func (i *OrderItem) Quantity() int              { return i.quantity }
func (i *OrderItem) UnitPrice() decimal.Decimal { return i.unitPrice }

// LineTotal is quantity × unit price, computed on every call.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// SetQuantity changes the quantity. It must stay positive.
func (i *OrderItem) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}

// SetUnitPrice changes the unit price. It cannot be negative.
func (i *OrderItem) SetUnitPrice(price decimal.Decimal) error {
	if err := requireNonNegative("unit price", price); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *OrderItem) HasOrder() bool    { return i.order != nil }
func (i *OrderItem) HasMenuItem() bool { return i.menuItem != nil }

// Order returns the owning order, or ErrNoOrder.
func (i *OrderItem) Order() (*Order, error) {
	if i.order == nil {
		return nil, ErrNoOrder
	}
	return i.order, nil
}

// MenuItem returns the referenced menu item, or ErrNoMenuItem.
func (i *OrderItem) MenuItem() (*MenuItem, error) {
	if i.menuItem == nil {
		return nil, ErrNoMenuItem
	}
	return i.menuItem, nil
}

func (i *OrderItem) detach() {
	i.menuItem = nil
	i.order = nil
}
