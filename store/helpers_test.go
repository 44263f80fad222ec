package store_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gczaar/BYT-RestaurantSystem/gateway"
	"github.com/gczaar/BYT-RestaurantSystem/restaurant"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newRegistry() *restaurant.Registry {
	return restaurant.NewRegistry(restaurant.WithClock(func() time.Time { return fixedNow }))
}

// seedRegistry fills every extent with a few valid entities.
func seedRegistry(t *testing.T) *restaurant.Registry {
	t.Helper()
	reg := newRegistry()

	burger, err := reg.NewMenuItem("m1", "Burger", "Beef burger", decimal.RequireFromString("12.50"), "Mains", true)
	require.NoError(t, err)
	order, err := reg.NewOrder("o1", fixedNow, "open")
	require.NoError(t, err)
	_, err = order.AddItem(burger, 2, decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	_, err = reg.NewOrderItem(1, decimal.RequireFromString("3.20"))
	require.NoError(t, err)

	chef, err := reg.NewStaff("Anna Nowak", "Chef")
	require.NoError(t, err)
	require.NoError(t, chef.SetEmail("anna@example.com"))
	chef.SetSpokenLanguages([]string{"pl", "en"})
	_, err = reg.NewStaff("Jan Kowalski", "Waiter")
	require.NoError(t, err)

	_, err = reg.NewTable(1, 4)
	require.NoError(t, err)
	t2, err := reg.NewTable(2, 8)
	require.NoError(t, err)
	require.NoError(t, t2.MarkOccupied())

	_, err = reg.NewReservation("Maria Wiśniewska", 4, 600700800, fixedNow.Add(48*time.Hour), "Window seat")
	require.NoError(t, err)
	_, err = reg.NewReservation("Piotr Zieliński", 8, 500600700, fixedNow.Add(72*time.Hour), "")
	require.NoError(t, err)

	gw, err := gateway.NewLoggingGateway("test", nil)
	require.NoError(t, err)
	p1, err := reg.NewPayment("p1", decimal.RequireFromString("25.00"), "card", gw)
	require.NoError(t, err)
	require.NoError(t, p1.Authorize())
	require.NoError(t, p1.Capture())
	require.NoError(t, p1.Refund())
	_, err = reg.NewPayment("p2", decimal.RequireFromString("3.20"), "cash", gw)
	require.NoError(t, err)

	return reg
}

// snapshot collects the records of every extent for comparison.
type snapshot struct {
	OrderItems   []restaurant.OrderItemRecord
	Staff        []restaurant.StaffRecord
	Tables       []restaurant.TableRecord
	Reservations []restaurant.ReservationRecord
	Payments     []restaurant.PaymentRecord
}

func takeSnapshot(reg *restaurant.Registry) snapshot {
	return snapshot{
		OrderItems:   reg.OrderItemRecords(),
		Staff:        reg.StaffRecords(),
		Tables:       reg.TableRecords(),
		Reservations: reg.ReservationRecords(),
		Payments:     reg.PaymentRecords(),
	}
}
