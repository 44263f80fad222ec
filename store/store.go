package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gczaar/BYT-RestaurantSystem/restaurant"
)

// Extent names, used as file names and DynamoDB partition key prefixes.
const (
	ExtentOrderItems   = "orderitems"
	ExtentStaff        = "staff"
	ExtentTables       = "tables"
	ExtentReservations = "reservations"
	ExtentPayments     = "payments"
)

// Backend reads and writes whole extent snapshots.
type Backend interface {
	// Write replaces the stored snapshot of doc.Name() with doc.
	Write(ctx context.Context, doc Rows) error

	// Read fills doc from the stored snapshot of doc.Name().
	// Returns ErrSnapshotNotFound if nothing was saved under that name.
	Read(ctx context.Context, doc Rows) error
}

// Store saves and loads the extents of a restaurant.Registry.
//
// Loading never fails because of bad data: a missing snapshot leaves the
// extent untouched, and an unreadable or invalid one empties it. Only context
// errors are returned from Load methods.
type Store struct {
	backend Backend
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// New creates a Store on top of backend.
func New(backend Backend, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Open creates a Store with the backend selected by cfg. client is only used,
// and then required, by the dynamodb backend.
func Open(cfg Config, client DynamoAPI, logger *zap.SugaredLogger) (*Store, error) {
	cfg.validate()
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	switch cfg.Backend {
	case BackendFile:
		codec, err := CodecFor(cfg.Format)
		if err != nil {
			return nil, err
		}
		return New(NewFileBackend(cfg.DataDir, codec), logger), nil
	case BackendDynamoDB:
		if client == nil {
			return nil, fmt.Errorf("%w: dynamodb backend needs a client", ErrUnsupportedBackend)
		}
		return New(NewDynamoBackend(client, cfg, logger), logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}

// Backend returns the backend the store writes to.
func (s *Store) Backend() Backend {
	return s.backend
}

func (s *Store) SaveOrderItems(ctx context.Context, reg *restaurant.Registry) error {
	return save(ctx, s, ExtentOrderItems, reg.OrderItemRecords())
}

func (s *Store) LoadOrderItems(ctx context.Context, reg *restaurant.Registry) error {
	return load(ctx, s, ExtentOrderItems, reg.RestoreOrderItems, reg.OrderItems().Clear)
}

func (s *Store) SaveStaff(ctx context.Context, reg *restaurant.Registry) error {
	return save(ctx, s, ExtentStaff, reg.StaffRecords())
}

func (s *Store) LoadStaff(ctx context.Context, reg *restaurant.Registry) error {
	return load(ctx, s, ExtentStaff, reg.RestoreStaff, reg.Staff().Clear)
}

func (s *Store) SaveTables(ctx context.Context, reg *restaurant.Registry) error {
	return save(ctx, s, ExtentTables, reg.TableRecords())
}

func (s *Store) LoadTables(ctx context.Context, reg *restaurant.Registry) error {
	return load(ctx, s, ExtentTables, reg.RestoreTables, reg.Tables().Clear)
}

func (s *Store) SaveReservations(ctx context.Context, reg *restaurant.Registry) error {
	return save(ctx, s, ExtentReservations, reg.ReservationRecords())
}

func (s *Store) LoadReservations(ctx context.Context, reg *restaurant.Registry) error {
	return load(ctx, s, ExtentReservations, reg.RestoreReservations, reg.Reservations().Clear)
}

func (s *Store) SavePayments(ctx context.Context, reg *restaurant.Registry) error {
	return save(ctx, s, ExtentPayments, reg.PaymentRecords())
}

func (s *Store) LoadPayments(ctx context.Context, reg *restaurant.Registry) error {
	return load(ctx, s, ExtentPayments, reg.RestorePayments, reg.Payments().Clear)
}

// SaveAll saves every extent, stopping at the first error.
func (s *Store) SaveAll(ctx context.Context, reg *restaurant.Registry) error {
	for _, fn := range []func(context.Context, *restaurant.Registry) error{
		s.SaveOrderItems,
		s.SaveStaff,
		s.SaveTables,
		s.SaveReservations,
		s.SavePayments,
	} {
		if err := fn(ctx, reg); err != nil {
			return err
		}
	}
	return nil
}

// LoadAll loads every extent.
func (s *Store) LoadAll(ctx context.Context, reg *restaurant.Registry) error {
	for _, fn := range []func(context.Context, *restaurant.Registry) error{
		s.LoadOrderItems,
		s.LoadStaff,
		s.LoadTables,
		s.LoadReservations,
		s.LoadPayments,
	} {
		if err := fn(ctx, reg); err != nil {
			return err
		}
	}
	return nil
}

func save[T any](ctx context.Context, s *Store, extent string, recs []T) error {
	doc := &Document[T]{
		Extent:  extent,
		SavedAt: s.now().UTC(),
		Records: recs,
	}
	if err := s.backend.Write(ctx, doc); err != nil {
		return fmt.Errorf("save %s: %w", extent, err)
	}
	s.logger.Infow("saved extent", "extent", extent, "records", len(recs))
	return nil
}

func load[T any](ctx context.Context, s *Store, extent string, restore func([]T) error, reset func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := &Document[T]{Extent: extent}
	err := s.backend.Read(ctx, doc)
	if errors.Is(err, ErrSnapshotNotFound) {
		s.logger.Infow("no snapshot, extent unchanged", "extent", extent)
		return nil
	}
	if err == nil && doc.Extent != extent {
		err = fmt.Errorf("%w: got %q", ErrExtentMismatch, doc.Extent)
	}
	if err == nil {
		err = restore(doc.Records)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.logger.Warnw("discarding unusable snapshot", "extent", extent, "error", err)
		reset()
		return nil
	}

	s.logger.Infow("loaded extent", "extent", extent, "records", len(doc.Records))
	return nil
}
