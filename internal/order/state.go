package order

import (
	"time"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
)

// Status is the lifecycle position of an order.
type Status string

const (
	StatusNone             Status = ""
	StatusPending          Status = "pending"
	StatusPaymentSubmitted Status = "payment_submitted"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

// State is the rebuilt order state.
type State struct {
	OrderID          string
	SessionID        string
	AddressID        string
	Items            []cart.LineItem
	Totals           cart.Totals
	PaymentMethod    string
	PaymentReference string
	Attempts         int
	LastDecline      string
	Status           Status
	PlacedAt         time.Time
	CompletedAt      time.Time
}

// Exists reports whether the order has been placed.
func (s State) Exists() bool {
	return s.Status != StatusNone
}

// IsPaymentSubmitted reports whether a charge attempt is outstanding.
func (s State) IsPaymentSubmitted() bool {
	return s.Status == StatusPaymentSubmitted
}

func (s State) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// EmptyState returns an order that has not been placed.
func EmptyState() State {
	return State{}
}
