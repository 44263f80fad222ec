package restaurant

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every validation failure.
	ErrInvalidArgument = errors.New("restaurant: invalid argument")

	// ErrInvalidOperation is matched by every relationship change that would violate an invariant.
	ErrInvalidOperation = errors.New("restaurant: invalid operation")
)

var (
	// ErrDuplicateMember is returned when an element is already part of the collection.
	ErrDuplicateMember = fmt.Errorf("%w: element is already a member", ErrInvalidOperation)

	// ErrOwnedElsewhere is returned when a menu item already belongs to a different menu.
	ErrOwnedElsewhere = fmt.Errorf("%w: element belongs to another owner", ErrInvalidOperation)

	// ErrNotMember is returned when removing an element that is not part of the collection.
	ErrNotMember = fmt.Errorf("%w: element is not a member", ErrInvalidOperation)

	// ErrLastMember is returned when a removal would leave a 1..* collection empty.
	ErrLastMember = fmt.Errorf("%w: cannot remove the last element", ErrInvalidOperation)

	// ErrEmptyMenu is returned when a menu is created without items.
	ErrEmptyMenu = fmt.Errorf("%w: menu needs at least one item", ErrInvalidOperation)

	// ErrSelfManagement is returned when a staff member would manage themselves.
	ErrSelfManagement = fmt.Errorf("%w: staff member cannot manage themselves", ErrInvalidOperation)

	// ErrNotSubordinate is returned when removing someone who is not a subordinate.
	ErrNotSubordinate = fmt.Errorf("%w: staff member is not a subordinate", ErrInvalidOperation)

	// ErrDuplicateKey is returned when a qualified association already holds the key.
	ErrDuplicateKey = fmt.Errorf("%w: key already assigned", ErrInvalidOperation)

	// ErrKeyNotFound is returned when a qualified association has no entry for the key.
	ErrKeyNotFound = fmt.Errorf("%w: key not assigned", ErrInvalidOperation)

	// ErrDuplicateTableID is returned when a table id is already used in the extent.
	ErrDuplicateTableID = fmt.Errorf("%w: table id already exists", ErrInvalidOperation)

	// ErrNoMenu is returned when reading the menu of an unassigned menu item.
	ErrNoMenu = fmt.Errorf("%w: menu item is not assigned to any menu", ErrInvalidOperation)

	// ErrNoOrder is returned when reading the order of a detached order item.
	ErrNoOrder = fmt.Errorf("%w: order item is not associated with any order", ErrInvalidOperation)

	// ErrNoMenuItem is returned when reading the menu item of a detached order item.
	ErrNoMenuItem = fmt.Errorf("%w: order item is not associated with any menu item", ErrInvalidOperation)

	// ErrTableOccupied is returned when occupying a table that is already occupied.
	ErrTableOccupied = fmt.Errorf("%w: table is already occupied", ErrInvalidOperation)

	// ErrTableFree is returned when freeing a table that is already free.
	ErrTableFree = fmt.Errorf("%w: table is already free", ErrInvalidOperation)

	// ErrNoGateway is returned when a payment transition runs without a gateway attached.
	ErrNoGateway = fmt.Errorf("%w: payment has no gateway", ErrInvalidOperation)
)

// ArgumentError describes a value that failed validation.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("restaurant: invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(field, format string, args ...any) error {
	return &ArgumentError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
