// Package restaurant models a restaurant's operational entities and keeps the
// relationships between them consistent in memory.
//
// Every relationship is updated on both sides inside a single call, so no caller
// ever observes a half-applied change. Five relationship shapes are supported:
//
//   - Menu ↔ MenuItem: bidirectional, 1..* on the menu side, 0..1 on the item side
//   - Order ⇒ OrderItem: composition, the order owns its items
//   - OrderItem → MenuItem: simple one-directional reference
//   - Staff ↔ Staff: reflexive manager/subordinate hierarchy
//   - Reservation → Table: qualified by table id
//
// # Registry
//
// Entities are created through a [Registry], which validates the input and
// appends the new instance to the extent of its type in the same step:
//
//	reg := restaurant.NewRegistry()
//	table, err := reg.NewTable(1, 4)
//
// The registry also holds the minimum wage shared by all staff and the clock
// used for time-based validation. Tests create a fresh registry (or call
// [Registry.Reset]) instead of clearing package globals.
//
// # Errors
//
// Failures fall into two families, both checkable with [errors.Is]:
//
//   - [ErrInvalidArgument] - a value failed validation (see [ArgumentError])
//   - [ErrInvalidOperation] - a relationship change would break an invariant
//
// The more specific sentinels ([ErrLastMember], [ErrDuplicateKey], ...) all match
// [ErrInvalidOperation] as well.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use.
package restaurant
