package restaurant_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gczaar/BYT-RestaurantSystem/restaurant"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newRegistry() *restaurant.Registry {
	return restaurant.NewRegistry(restaurant.WithClock(func() time.Time { return now }))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newMenuItem(t *testing.T, reg *restaurant.Registry, id, name string) *restaurant.MenuItem {
	t.Helper()
	item, err := reg.NewMenuItem(id, name, "", dec("10"), "Mains", true)
	require.NoError(t, err)
	return item
}

func newStaff(t *testing.T, reg *restaurant.Registry, name string) *restaurant.Staff {
	t.Helper()
	s, err := reg.NewStaff(name, "Waiter")
	require.NoError(t, err)
	return s
}

// recordingGateway remembers every call it receives.
type recordingGateway struct {
	processed  []string
	failures   []string
	processErr error
}

var _ restaurant.Gateway = (*recordingGateway)(nil)

func (g *recordingGateway) ProcessPayment(p *restaurant.Payment) error {
	g.processed = append(g.processed, p.ID())
	return g.processErr
}

func (g *recordingGateway) NotifyFailure(message string) {
	g.failures = append(g.failures, message)
}
