package restaurant

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway is the payment processor a Payment reports to.
type Gateway interface {
	// ProcessPayment settles a payment that is being captured.
	ProcessPayment(p *Payment) error

	// NotifyFailure reports a transition that was refused.
	NotifyFailure(message string)
}

// PaymentStatus is a step of the payment lifecycle.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentAuthorized PaymentStatus = "Authorized"
	PaymentCaptured   PaymentStatus = "Captured"
	PaymentRefunded   PaymentStatus = "Refunded"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentAuthorized, PaymentCaptured, PaymentRefunded:
		return true
	}
	return false
}

// next lists the single status each status may move to.
var next = map[PaymentStatus]PaymentStatus{
	PaymentPending:    PaymentAuthorized,
	PaymentAuthorized: PaymentCaptured,
	PaymentCaptured:   PaymentRefunded,
}

// Payment settles an amount through a Gateway. It moves forward only:
// Pending → Authorized → Captured → Refunded.
type Payment struct {
	id         string
	amount     decimal.Decimal
	status     PaymentStatus
	method     string
	paidAt     time.Time
	refundedAt time.Time

	gateway  Gateway
	registry *Registry
}

// NewPayment creates a pending payment and registers it in the payment extent.
func (r *Registry) NewPayment(id string, amount decimal.Decimal, method string, gateway Gateway) (*Payment, error) {
	id, err := requireText("payment id", id)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("amount", amount); err != nil {
		return nil, err
	}
	method, err = requireText("payment method", method)
	if err != nil {
		return nil, err
	}
	if gateway == nil {
		return nil, invalid("gateway", "cannot be nil")
	}
	p := &Payment{
		id:       id,
		amount:   amount,
		status:   PaymentPending,
		method:   method,
		paidAt:   r.now(),
		gateway:  gateway,
		registry: r,
	}
	r.payments.add(p)
	return p, nil
}

func (p *Payment) ID() string              { return p.id }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) Status() PaymentStatus   { return p.status }
func (p *Payment) Method() string          { return p.method }
func (p *Payment) PaymentTime() time.Time  { return p.paidAt }

// RefundTime returns when the payment was refunded. It is the zero time until then.
func (p *Payment) RefundTime() time.Time { return p.refundedAt }

// Gateway returns the attached gateway, if any.
func (p *Payment) Gateway() (Gateway, bool) {
	return p.gateway, p.gateway != nil
}

// AttachGateway links a gateway, typically to a payment restored from storage.
func (p *Payment) AttachGateway(gateway Gateway) error {
	if gateway == nil {
		return invalid("gateway", "cannot be nil")
	}
	p.gateway = gateway
	return nil
}

// CanTransitionTo reports whether status is the next step from the current one.
func (p *Payment) CanTransitionTo(status PaymentStatus) bool {
	to, ok := next[p.status]
	return ok && to == status
}

// Authorize moves a pending payment to Authorized. From any other status the
// gateway is notified and nothing changes.
func (p *Payment) Authorize() error {
	return p.transition(PaymentAuthorized,
		fmt.Sprintf("Cannot authorize payment %s. Current status: %s", p.id, p.status), nil)
}

// Capture asks the gateway to process an authorized payment and moves it to
// Captured. From any other status the gateway is notified and nothing changes.
// An error from the gateway is returned and leaves the payment authorized.
func (p *Payment) Capture() error {
	return p.transition(PaymentCaptured,
		fmt.Sprintf("Cannot capture payment %s. It must be Authorized first.", p.id),
		func() error {
			if err := p.gateway.ProcessPayment(p); err != nil {
				return fmt.Errorf("process payment %s: %w", p.id, err)
			}
			return nil
		})
}

// Refund moves a captured payment to Refunded and records the refund time.
// From any other status the gateway is notified and nothing changes.
func (p *Payment) Refund() error {
	return p.transition(PaymentRefunded,
		fmt.Sprintf("Cannot refund payment %s. It has not been captured.", p.id),
		func() error {
			p.refundedAt = p.registry.now()
			return nil
		})
}

func (p *Payment) transition(to PaymentStatus, refusal string, apply func() error) error {
	if p.gateway == nil {
		return ErrNoGateway
	}
	if !p.CanTransitionTo(to) {
		p.gateway.NotifyFailure(refusal)
		return nil
	}
	if apply != nil {
		if err := apply(); err != nil {
			return err
		}
	}
	p.status = to
	return nil
}
