package restaurant

import (
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxCustomerNameLength    = 100
	MaxSpecialRequestsLength = 500
	MinPeopleCount           = 1
	MaxPeopleCount           = 20

	// LargeGroupSize is the party size from which a reservation counts as a large group.
	LargeGroupSize = 6

	minPhoneNumber = 100_000_000
	maxPhoneNumber = 999_999_999
)

// Reservation books one or more tables for a party. Tables are assigned by
// table id; a table carries no link back to its reservations.
type Reservation struct {
	id              uuid.UUID
	customerName    string
	peopleCount     int
	phoneNumber     int
	time            time.Time
	specialRequests string

	tables   map[int]*Table
	registry *Registry
}

// NewReservation creates a reservation with a generated id and registers it in
// the reservation extent. The reservation time must be after now and no more
// than one year ahead. An empty specialRequests means none.
func (r *Registry) NewReservation(customerName string, peopleCount, phoneNumber int, at time.Time, specialRequests string) (*Reservation, error) {
	res := &Reservation{
		id:       r.newID(),
		tables:   make(map[int]*Table),
		registry: r,
	}
	if err := res.SetCustomerName(customerName); err != nil {
		return nil, err
	}
	if err := res.SetPeopleCount(peopleCount); err != nil {
		return nil, err
	}
	if err := res.SetPhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	if err := res.SetTime(at); err != nil {
		return nil, err
	}
	if err := res.SetSpecialRequests(specialRequests); err != nil {
		return nil, err
	}
	r.reservations.add(res)
	return res, nil
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) CustomerName() string { return r.customerName }
func (r *Reservation) PeopleCount() int     { return r.peopleCount }
func (r *Reservation) PhoneNumber() int     { return r.phoneNumber }
func (r *Reservation) Time() time.Time      { return r.time }

// SpecialRequests returns the special requests, if any.
func (r *Reservation) SpecialRequests() (string, bool) {
	return r.specialRequests, r.specialRequests != ""
}

// IsLargeGroup reports whether the party has LargeGroupSize people or more.
func (r *Reservation) IsLargeGroup() bool {
	return r.peopleCount >= LargeGroupSize
}

// SetCustomerName sets the trimmed customer name.
func (r *Reservation) SetCustomerName(name string) error {
	name, err := normalizeCustomerName(name)
	if err != nil {
		return err
	}
	r.customerName = name
	return nil
}

// SetPeopleCount sets the party size.
func (r *Reservation) SetPeopleCount(n int) error {
	if err := validatePeopleCount(n); err != nil {
		return err
	}
	r.peopleCount = n
	return nil
}

// SetPhoneNumber sets the contact number, which must have exactly nine digits.
func (r *Reservation) SetPhoneNumber(phone int) error {
	if err := validatePhoneNumber(phone); err != nil {
		return err
	}
	r.phoneNumber = phone
	return nil
}

// SetTime moves the reservation. The new time must be after now and at most
// one year ahead.
func (r *Reservation) SetTime(at time.Time) error {
	now := r.registry.now()
	if !at.After(now) {
		return invalid("reservation time", "must be in the future")
	}
	if at.After(now.AddDate(1, 0, 0)) {
		return invalid("reservation time", "cannot be more than 1 year ahead")
	}
	r.time = at
	return nil
}

// SetSpecialRequests sets the trimmed special requests. Blank text clears them.
func (r *Reservation) SetSpecialRequests(text string) error {
	text, err := normalizeSpecialRequests(text)
	if err != nil {
		return err
	}
	r.specialRequests = text
	return nil
}

// AssignTable adds table under its table id. Each id can be assigned once,
// even when a different Table instance carries the same id.
func (r *Reservation) AssignTable(table *Table) error {
	if table == nil {
		return invalid("table", "cannot be nil")
	}
	if _, ok := r.tables[table.tableID]; ok {
		return ErrDuplicateKey
	}
	r.tables[table.tableID] = table
	return nil
}

// UnassignTable removes the table assigned under tableID.
func (r *Reservation) UnassignTable(tableID int) error {
	if _, ok := r.tables[tableID]; !ok {
		return ErrKeyNotFound
	}
	delete(r.tables, tableID)
	return nil
}

// TableByID returns the table assigned under tableID, if any.
func (r *Reservation) TableByID(tableID int) (*Table, bool) {
	t, ok := r.tables[tableID]
	return t, ok
}

// Tables returns the assigned tables ordered by table id.
func (r *Reservation) Tables() []*Table {
	ids := slices.Sorted(maps.Keys(r.tables))
	out := make([]*Table, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.tables[id])
	}
	return out
}

func normalizeCustomerName(name string) (string, error) {
	name, err := requireText("customer name", name)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(name) > MaxCustomerNameLength {
		return "", invalid("customer name", "cannot exceed %d characters", MaxCustomerNameLength)
	}
	return name, nil
}

func validatePeopleCount(n int) error {
	if n < MinPeopleCount || n > MaxPeopleCount {
		return invalid("people count", "must be between %d and %d", MinPeopleCount, MaxPeopleCount)
	}
	return nil
}

func validatePhoneNumber(phone int) error {
	if phone <= 0 {
		return invalid("phone number", "must be a positive number")
	}
	if phone < minPhoneNumber || phone > maxPhoneNumber {
		return invalid("phone number", "must have exactly 9 digits")
	}
	return nil
}

func normalizeSpecialRequests(text string) (string, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > MaxSpecialRequestsLength {
		return "", invalid("special requests", "cannot exceed %d characters", MaxSpecialRequestsLength)
	}
	return text, nil
}
