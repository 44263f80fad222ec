package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gczaar/BYT-RestaurantSystem/gateway"
	"github.com/gczaar/BYT-RestaurantSystem/restaurant"
	"github.com/gczaar/BYT-RestaurantSystem/store"
)

// seed builds a small restaurant through the domain API and saves it.
func seed(ctx context.Context, s *store.Store, out io.Writer, logger *zap.SugaredLogger) error {
	reg := restaurant.NewRegistry()
	if err := buildSample(reg, logger); err != nil {
		return fmt.Errorf("build sample: %w", err)
	}
	if err := s.SaveAll(ctx, reg); err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d order items, %d staff, %d tables, %d reservations, %d payments\n",
		reg.OrderItems().Len(), reg.Staff().Len(), reg.Tables().Len(),
		reg.Reservations().Len(), reg.Payments().Len())
	return nil
}

func buildSample(reg *restaurant.Registry, logger *zap.SugaredLogger) error {
	soup, err := reg.NewMenuItem("m-soup", "Tomato Soup", "With basil", decimal.RequireFromString("9"), "Starters", true)
	if err != nil {
		return err
	}
	pierogi, err := reg.NewMenuItem("m-pierogi", "Pierogi", "Potato and cheese", decimal.RequireFromString("5"), "Mains", true)
	if err != nil {
		return err
	}
	if _, err := reg.NewMenu("menu-lunch", "Lunch", true, soup, pierogi); err != nil {
		return err
	}

	order, err := reg.NewOrder("o-1", time.Now(), "open")
	if err != nil {
		return err
	}
	if _, err := order.AddItem(soup, 2, soup.BasePrice()); err != nil {
		return err
	}
	if _, err := order.AddItem(pierogi, 3, pierogi.BasePrice()); err != nil {
		return err
	}

	manager, err := reg.NewStaff("Anna Nowak", "Manager")
	if err != nil {
		return err
	}
	if err := manager.SetEmail("anna.nowak@example.com"); err != nil {
		return err
	}
	manager.SetSpokenLanguages([]string{"pl", "en"})
	for _, name := range []string{"Jan Kowalski", "Ewa Lis"} {
		waiter, err := reg.NewStaff(name, "Waiter")
		if err != nil {
			return err
		}
		if err := manager.AddSubordinate(waiter); err != nil {
			return err
		}
	}

	var tables []*restaurant.Table
	for id, capacity := range []int{2, 4, 8} {
		t, err := reg.NewTable(id+1, capacity)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	res, err := reg.NewReservation("Maria Wiśniewska", 6, 600700800, time.Now().Add(48*time.Hour), "Birthday")
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t.Capacity() >= 4 {
			if err := res.AssignTable(t); err != nil {
				return err
			}
		}
	}

	gw, err := gateway.NewLoggingGateway("front-desk", logger)
	if err != nil {
		return err
	}
	payment, err := reg.NewPayment("pay-1", order.TotalAmount(), "card", gw)
	if err != nil {
		return err
	}
	if err := payment.Authorize(); err != nil {
		return err
	}
	return payment.Capture()
}

// show loads every extent and prints it.
func show(ctx context.Context, s *store.Store, out io.Writer) error {
	reg := restaurant.NewRegistry()
	if err := s.LoadAll(ctx, reg); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "ORDER ITEMS (%d)\n", reg.OrderItems().Len())
	for _, r := range reg.OrderItemRecords() {
		fmt.Fprintf(w, "  %d\tx %s\t\n", r.Quantity, r.UnitPrice)
	}

	fmt.Fprintf(w, "STAFF (%d)\n", reg.Staff().Len())
	for _, r := range reg.StaffRecords() {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t\n", r.FullName, r.Role, r.Email, strings.Join(r.SpokenLanguages, ","))
	}

	fmt.Fprintf(w, "TABLES (%d)\n", reg.Tables().Len())
	for _, r := range reg.TableRecords() {
		state := "free"
		if r.Occupied {
			state = "occupied"
		}
		fmt.Fprintf(w, "  #%d\t%d seats\t%s\t\n", r.TableID, r.Capacity, state)
	}

	fmt.Fprintf(w, "RESERVATIONS (%d)\n", reg.Reservations().Len())
	for _, r := range reg.ReservationRecords() {
		fmt.Fprintf(w, "  %s\t%s\t%d people\t%s\t%s\t\n",
			r.ID, r.CustomerName, r.PeopleCount, r.Time.Format(time.RFC3339), r.SpecialRequests)
	}

	fmt.Fprintf(w, "PAYMENTS (%d)\n", reg.Payments().Len())
	for _, r := range reg.PaymentRecords() {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t\n", r.ID, r.Amount, r.Method, r.Status)
	}

	return w.Flush()
}
