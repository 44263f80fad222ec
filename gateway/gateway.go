// Package gateway provides a payment gateway that records payment activity
// in a structured log.
package gateway

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/gczaar/BYT-RestaurantSystem/restaurant"
)

var (
	// ErrEmptyName is returned when creating a gateway without a name.
	ErrEmptyName = errors.New("gateway: name cannot be empty")

	// ErrNilPayment is returned when asked to process a nil payment.
	ErrNilPayment = errors.New("gateway: payment is nil")
)

// LoggingGateway accepts every payment and logs what it was asked to do.
type LoggingGateway struct {
	name   string
	logger *zap.SugaredLogger
}

var _ restaurant.Gateway = (*LoggingGateway)(nil)

// NewLoggingGateway creates a gateway. A nil logger discards all output.
func NewLoggingGateway(name string, logger *zap.SugaredLogger) (*LoggingGateway, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LoggingGateway{
		name:   name,
		logger: logger.With("gateway", name),
	}, nil
}

// Name returns the gateway name.
func (g *LoggingGateway) Name() string {
	return g.name
}

// ProcessPayment logs the payment being settled.
func (g *LoggingGateway) ProcessPayment(p *restaurant.Payment) error {
	if p == nil {
		return ErrNilPayment
	}
	g.logger.Infow("processing payment",
		"paymentID", p.ID(),
		"amount", p.Amount().String(),
		"method", p.Method(),
	)
	return nil
}

// NotifyFailure logs a refused payment transition.
func (g *LoggingGateway) NotifyFailure(message string) {
	g.logger.Warnw("payment failure notice", "message", message)
}
