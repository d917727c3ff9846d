// Package payment is the capability boundary between checkout and whatever
// charges the customer. Simulated stands in for a real processor.
package payment

import (
	"context"
	"errors"
	"time"
)

// ErrDeclined matches every decline returned by a Gateway.
var ErrDeclined = errors.New("payment declined")

// DeclineError carries the processor's reason for refusing a charge.
type DeclineError struct {
	Reason string
}

func (e *DeclineError) Error() string {
	return "payment declined: " + e.Reason
}

// Is makes errors.Is(err, ErrDeclined) hold for any DeclineError.
func (e *DeclineError) Is(target error) bool {
	return target == ErrDeclined
}

// Decline reasons reported by Simulated.
const (
	ReasonMethodRefused = "payment method refused"
	ReasonOverLimit     = "amount exceeds limit"
	ReasonInvalidAmount = "amount must not be negative"
)

// ChargeRequest asks the gateway to take AmountCents from Method.
//
// IdempotencyKey identifies the attempt; repeating a key returns the
// original receipt instead of charging again.
type ChargeRequest struct {
	OrderID        string
	AmountCents    int64
	Method         string
	IdempotencyKey string
}

// Receipt confirms a successful charge.
type Receipt struct {
	Reference   string
	OrderID     string
	AmountCents int64
	Method      string
	ChargedAt   time.Time
}

// Gateway charges customers. Implementations must honour ctx cancellation
// and return a *DeclineError when the charge is refused.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Receipt, error)
}
