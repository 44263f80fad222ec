package restaurant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMinimumWage is the minimum wage a new Registry starts with.
var DefaultMinimumWage = decimal.NewFromInt(30)

// Registry creates entities and holds the process-wide state they share:
// one extent per registered entity type, the staff minimum wage and the clock.
type Registry struct {
	orderItems   Extent[*OrderItem]
	staff        Extent[*Staff]
	tables       Extent[*Table]
	reservations Extent[*Reservation]
	payments     Extent[*Payment]

	minimumWage decimal.Decimal

	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the clock used for reservation windows and payment timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator sets the generator used for reservation ids.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(r *Registry) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewRegistry creates a new Registry with empty extents.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		minimumWage: DefaultMinimumWage,
		now:         time.Now,
		newID:       uuid.New,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OrderItems returns the extent of every order item created through this registry.
func (r *Registry) OrderItems() *Extent[*OrderItem] { return &r.orderItems }

// Staff returns the staff extent.
func (r *Registry) Staff() *Extent[*Staff] { return &r.staff }

// Tables returns the table extent.
func (r *Registry) Tables() *Extent[*Table] { return &r.tables }

// Reservations returns the reservation extent.
func (r *Registry) Reservations() *Extent[*Reservation] { return &r.reservations }

// Payments returns the payment extent.
func (r *Registry) Payments() *Extent[*Payment] { return &r.payments }

// MinimumWage returns the minimum wage shared by all staff of this registry.
func (r *Registry) MinimumWage() decimal.Decimal {
	return r.minimumWage
}

// SetMinimumWage changes the shared minimum wage. Negative values are rejected.
func (r *Registry) SetMinimumWage(wage decimal.Decimal) error {
	if wage.IsNegative() {
		return invalid("minimum wage", "cannot be negative")
	}
	r.minimumWage = wage
	return nil
}

// Reset clears every extent and restores the default minimum wage.
func (r *Registry) Reset() {
	r.orderItems.Clear()
	r.staff.Clear()
	r.tables.Clear()
	r.reservations.Clear()
	r.payments.Clear()
	r.minimumWage = DefaultMinimumWage
}
