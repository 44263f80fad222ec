package restaurant

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Order owns its order items. Items are created by AddItem and can never move
// to another order.
type Order struct {
	id        string
	createdAt time.Time
	status    string

	items    []*OrderItem
	registry *Registry
}

// NewOrder creates an empty order. Order items added to it are registered in
// this registry's order item extent.
func (r *Registry) NewOrder(id string, createdAt time.Time, status string) (*Order, error) {
	id, err := requireText("order id", id)
	if err != nil {
		return nil, err
	}
	status, err = requireText("order status", status)
	if err != nil {
		return nil, err
	}
	return &Order{
		id:        id,
		createdAt: createdAt,
		status:    status,
		registry:  r,
	}, nil
}

func (o *Order) ID() string           { return o.id }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) Status() string       { return o.status }

// SetStatus replaces the free-form status text.
func (o *Order) SetStatus(status string) error {
	status, err := requireText("order status", status)
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

// Items returns the owned order items in insertion order.
func (o *Order) Items() []*OrderItem {
	return slices.Clone(o.items)
}

// Len returns the number of owned items.
func (o *Order) Len() int {
	return len(o.items)
}

// Contains reports whether item is owned by this order.
func (o *Order) Contains(item *OrderItem) bool {
	return slices.Contains(o.items, item)
}

// TotalAmount sums the line totals of the current items. It is never cached.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// AddItem creates a new order item for menuItem, owned by this order, and
// returns it. The item is also registered in the order item extent.
func (o *Order) AddItem(menuItem *MenuItem, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if menuItem == nil {
		return nil, invalid("menu item", "cannot be nil")
	}
	item, err := newOrderItem(quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	item.order = o
	item.menuItem = menuItem
	o.items = append(o.items, item)
	o.registry.orderItems.add(item)
	return item, nil
}

// RemoveItem detaches item from this order and from its menu item.
// The last remaining item cannot be removed; use Delete to cancel the order.
func (o *Order) RemoveItem(item *OrderItem) error {
	if item == nil {
		return invalid("order item", "cannot be nil")
	}
	idx := slices.Index(o.items, item)
	if idx < 0 {
		return ErrNotMember
	}
	if len(o.items) == 1 {
		return ErrLastMember
	}
	item.detach()
	o.items = slices.Delete(o.items, idx, idx+1)
	return nil
}

// Delete detaches every item and leaves the order empty. The items stay in
// the order item extent.
func (o *Order) Delete() {
	for _, item := range o.items {
		item.detach()
	}
	o.items = nil
}
