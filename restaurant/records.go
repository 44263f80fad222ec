package restaurant

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The record types below carry the scalar attributes of an entity and nothing
// else. Relationships (menus, orders, managers, tables, gateways) are never
// part of a record and are not rebuilt by a restore.

// OrderItemRecord is the stored form of an OrderItem.
type OrderItemRecord struct {
	Quantity  int    `yaml:"quantity" json:"quantity" bson:"quantity" dynamodbav:"quantity"`
	UnitPrice string `yaml:"unit_price" json:"unit_price" bson:"unit_price" dynamodbav:"unit_price"`
}

// StaffRecord is the stored form of a Staff member.
type StaffRecord struct {
	FullName        string   `yaml:"full_name" json:"full_name" bson:"full_name" dynamodbav:"full_name"`
	Role            string   `yaml:"role" json:"role" bson:"role" dynamodbav:"role"`
	Email           string   `yaml:"email,omitempty" json:"email,omitempty" bson:"email,omitempty" dynamodbav:"email,omitempty"`
	SpokenLanguages []string `yaml:"spoken_languages" json:"spoken_languages" bson:"spoken_languages" dynamodbav:"spoken_languages"`
}

// TableRecord is the stored form of a Table.
type TableRecord struct {
	TableID  int  `yaml:"table_id" json:"table_id" bson:"table_id" dynamodbav:"table_id"`
	Capacity int  `yaml:"capacity" json:"capacity" bson:"capacity" dynamodbav:"capacity"`
	Occupied bool `yaml:"occupied" json:"occupied" bson:"occupied" dynamodbav:"occupied"`
}

// ReservationRecord is the stored form of a Reservation.
type ReservationRecord struct {
	ID              string    `yaml:"id" json:"id" bson:"id" dynamodbav:"id"`
	CustomerName    string    `yaml:"customer_name" json:"customer_name" bson:"customer_name" dynamodbav:"customer_name"`
	PeopleCount     int       `yaml:"people_count" json:"people_count" bson:"people_count" dynamodbav:"people_count"`
	PhoneNumber     int       `yaml:"phone_number" json:"phone_number" bson:"phone_number" dynamodbav:"phone_number"`
	Time            time.Time `yaml:"time" json:"time" bson:"time" dynamodbav:"time"`
	SpecialRequests string    `yaml:"special_requests,omitempty" json:"special_requests,omitempty" bson:"special_requests,omitempty" dynamodbav:"special_requests,omitempty"`
}

// PaymentRecord is the stored form of a Payment.
type PaymentRecord struct {
	ID          string    `yaml:"id" json:"id" bson:"id" dynamodbav:"id"`
	Amount      string    `yaml:"amount" json:"amount" bson:"amount" dynamodbav:"amount"`
	Status      string    `yaml:"status" json:"status" bson:"status" dynamodbav:"status"`
	Method      string    `yaml:"method" json:"method" bson:"method" dynamodbav:"method"`
	PaymentTime time.Time `yaml:"payment_time" json:"payment_time" bson:"payment_time" dynamodbav:"payment_time"`
	RefundTime  time.Time `yaml:"refund_time" json:"refund_time" bson:"refund_time" dynamodbav:"refund_time"`
}

// OrderItemRecords snapshots the order item extent.
func (r *Registry) OrderItemRecords() []OrderItemRecord {
	out := make([]OrderItemRecord, 0, r.orderItems.Len())
	for _, item := range r.orderItems.items {
		out = append(out, OrderItemRecord{
			Quantity:  item.quantity,
			UnitPrice: item.unitPrice.String(),
		})
	}
	return out
}

// RestoreOrderItems replaces the order item extent with detached items built
// from recs. Nothing changes if any record is invalid.
func (r *Registry) RestoreOrderItems(recs []OrderItemRecord) error {
	items := make([]*OrderItem, 0, len(recs))
	for n, rec := range recs {
		price, err := parseDecimal("unit price", rec.UnitPrice)
		if err != nil {
			return recordError("order item", n, err)
		}
		item, err := newOrderItem(rec.Quantity, price)
		if err != nil {
			return recordError("order item", n, err)
		}
		items = append(items, item)
	}
	r.orderItems.replace(items)
	return nil
}

// StaffRecords snapshots the staff extent.
func (r *Registry) StaffRecords() []StaffRecord {
	out := make([]StaffRecord, 0, r.staff.Len())
	for _, s := range r.staff.items {
		out = append(out, StaffRecord{
			FullName:        s.fullName,
			Role:            s.role,
			Email:           s.email,
			SpokenLanguages: s.SpokenLanguages(),
		})
	}
	return out
}

// RestoreStaff replaces the staff extent with staff built from recs. Restored
// staff have no manager and no subordinates.
func (r *Registry) RestoreStaff(recs []StaffRecord) error {
	staff := make([]*Staff, 0, len(recs))
	for n, rec := range recs {
		s := &Staff{registry: r}
		if err := s.SetFullName(rec.FullName); err != nil {
			return recordError("staff", n, err)
		}
		if err := s.SetRole(rec.Role); err != nil {
			return recordError("staff", n, err)
		}
		if err := s.SetEmail(rec.Email); err != nil {
			return recordError("staff", n, err)
		}
		s.SetSpokenLanguages(rec.SpokenLanguages)
		staff = append(staff, s)
	}
	r.staff.replace(staff)
	return nil
}

// TableRecords snapshots the table extent.
func (r *Registry) TableRecords() []TableRecord {
	out := make([]TableRecord, 0, r.tables.Len())
	for _, t := range r.tables.items {
		out = append(out, TableRecord{
			TableID:  t.tableID,
			Capacity: t.capacity,
			Occupied: t.occupied,
		})
	}
	return out
}

// RestoreTables replaces the table extent. Table ids must be unique among recs.
func (r *Registry) RestoreTables(recs []TableRecord) error {
	tables := make([]*Table, 0, len(recs))
	seen := make(map[int]bool, len(recs))
	for n, rec := range recs {
		if err := validateTableID(rec.TableID); err != nil {
			return recordError("table", n, err)
		}
		if err := validateCapacity(rec.Capacity); err != nil {
			return recordError("table", n, err)
		}
		if seen[rec.TableID] {
			return recordError("table", n, ErrDuplicateTableID)
		}
		seen[rec.TableID] = true
		tables = append(tables, &Table{
			tableID:  rec.TableID,
			capacity: rec.Capacity,
			occupied: rec.Occupied,
		})
	}
	r.tables.replace(tables)
	return nil
}

// ReservationRecords snapshots the reservation extent.
func (r *Registry) ReservationRecords() []ReservationRecord {
	out := make([]ReservationRecord, 0, r.reservations.Len())
	for _, res := range r.reservations.items {
		out = append(out, ReservationRecord{
			ID:              res.id.String(),
			CustomerName:    res.customerName,
			PeopleCount:     res.peopleCount,
			PhoneNumber:     res.phoneNumber,
			Time:            res.time,
			SpecialRequests: res.specialRequests,
		})
	}
	return out
}

// RestoreReservations replaces the reservation extent. The booking window is
// not checked again, so reservations that are now in the past load fine.
// Restored reservations have no tables assigned.
func (r *Registry) RestoreReservations(recs []ReservationRecord) error {
	reservations := make([]*Reservation, 0, len(recs))
	for n, rec := range recs {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return recordError("reservation", n, invalid("reservation id", "%v", err))
		}
		res := &Reservation{
			id:       id,
			time:     rec.Time,
			tables:   make(map[int]*Table),
			registry: r,
		}
		if err := res.SetCustomerName(rec.CustomerName); err != nil {
			return recordError("reservation", n, err)
		}
		if err := res.SetPeopleCount(rec.PeopleCount); err != nil {
			return recordError("reservation", n, err)
		}
		if err := res.SetPhoneNumber(rec.PhoneNumber); err != nil {
			return recordError("reservation", n, err)
		}
		if err := res.SetSpecialRequests(rec.SpecialRequests); err != nil {
			return recordError("reservation", n, err)
		}
		reservations = append(reservations, res)
	}
	r.reservations.replace(reservations)
	return nil
}

// PaymentRecords snapshots the payment extent.
func (r *Registry) PaymentRecords() []PaymentRecord {
	out := make([]PaymentRecord, 0, r.payments.Len())
	for _, p := range r.payments.items {
		out = append(out, PaymentRecord{
			ID:          p.id,
			Amount:      p.amount.String(),
			Status:      string(p.status),
			Method:      p.method,
			PaymentTime: p.paidAt,
			RefundTime:  p.refundedAt,
		})
	}
	return out
}

// RestorePayments replaces the payment extent. Restored payments have no
// gateway; call Payment.AttachGateway before moving them on.
func (r *Registry) RestorePayments(recs []PaymentRecord) error {
	payments := make([]*Payment, 0, len(recs))
	for n, rec := range recs {
		id, err := requireText("payment id", rec.ID)
		if err != nil {
			return recordError("payment", n, err)
		}
		amount, err := parseDecimal("amount", rec.Amount)
		if err != nil {
			return recordError("payment", n, err)
		}
		if err := requirePositive("amount", amount); err != nil {
			return recordError("payment", n, err)
		}
		method, err := requireText("payment method", rec.Method)
		if err != nil {
			return recordError("payment", n, err)
		}
		status := PaymentStatus(rec.Status)
		if !status.Valid() {
			return recordError("payment", n, invalid("payment status", "unknown status %q", rec.Status))
		}
		payments = append(payments, &Payment{
			id:         id,
			amount:     amount,
			status:     status,
			method:     method,
			paidAt:     rec.PaymentTime,
			refundedAt: rec.RefundTime,
			registry:   r,
		})
	}
	r.payments.replace(payments)
	return nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, "not a decimal: %q", s)
	}
	return d, nil
}

func recordError(kind string, n int, err error) error {
	return fmt.Errorf("%s record %d: %w", kind, n, err)
}
