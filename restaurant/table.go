package restaurant

const (
	MinTableCapacity = 1
	MaxTableCapacity = 20
)

// Table is a physical table. Table ids are unique within a registry.
type Table struct {
	tableID  int
	capacity int
	occupied bool
}

// NewTable creates a free table and registers it in the table extent.
// It fails with ErrDuplicateTableID when the id is already taken.
func (r *Registry) NewTable(tableID, capacity int) (*Table, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	if _, ok := r.TableByID(tableID); ok {
		return nil, ErrDuplicateTableID
	}
	t := &Table{tableID: tableID, capacity: capacity}
	r.tables.add(t)
	return t, nil
}

// TableByID looks a table up in the table extent.
func (r *Registry) TableByID(tableID int) (*Table, bool) {
	for _, t := range r.tables.items {
		if t.tableID == tableID {
			return t, true
		}
	}
	return nil, false
}

func validateTableID(tableID int) error {
	if tableID <= 0 {
		return invalid("table id", "must be a positive number")
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < MinTableCapacity || capacity > MaxTableCapacity {
		return invalid("capacity", "must be between %d and %d", MinTableCapacity, MaxTableCapacity)
	}
	return nil
}

func (t *Table) ID() int          { return t.tableID }
func (t *Table) Capacity() int    { return t.capacity }
func (t *Table) IsOccupied() bool { return t.occupied }

// SetCapacity changes the number of seats.
func (t *Table) SetCapacity(capacity int) error {
	if err := validateCapacity(capacity); err != nil {
		return err
	}
	t.capacity = capacity
	return nil
}

// MarkOccupied seats guests at a free table.
func (t *Table) MarkOccupied() error {
	if t.occupied {
		return ErrTableOccupied
	}
	t.occupied = true
	return nil
}

// MarkFree releases an occupied table.
func (t *Table) MarkFree() error {
	if !t.occupied {
		return ErrTableFree
	}
	t.occupied = false
	return nil
}
