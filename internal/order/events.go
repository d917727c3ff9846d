package order

import (
	"time"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
)

// OrderPlaced freezes the ledger into an order awaiting payment.
type OrderPlaced struct {
	OrderID   string          `json:"order_id"`
	SessionID string          `json:"session_id"`
	AddressID string          `json:"address_id"`
	Items     []cart.LineItem `json:"items"`
	Totals    cart.Totals     `json:"totals"`
	PlacedAt  time.Time       `json:"placed_at"`
}

func (OrderPlaced) TypeName() string { return "OrderPlaced" }

// PaymentSubmitted records a charge attempt handed to the gateway.
type PaymentSubmitted struct {
	Method      string    `json:"method"`
	AmountCents int64     `json:"amount_cents"`
	Attempt     int       `json:"attempt"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (PaymentSubmitted) TypeName() string { return "PaymentSubmitted" }

// PaymentDeclined returns the order to pending after a failed attempt.
type PaymentDeclined struct {
	Reason     string    `json:"reason"`
	Attempt    int       `json:"attempt"`
	DeclinedAt time.Time `json:"declined_at"`
}

func (PaymentDeclined) TypeName() string { return "PaymentDeclined" }

// OrderCompleted records the confirmed payment.
type OrderCompleted struct {
	PaymentReference string    `json:"payment_reference"`
	FinalTotalCents  int64     `json:"final_total_cents"`
	CompletedAt      time.Time `json:"completed_at"`
}

func (OrderCompleted) TypeName() string { return "OrderCompleted" }

// OrderCancelled closes an order that will never be paid.
type OrderCancelled struct {
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
}

func (OrderCancelled) TypeName() string { return "OrderCancelled" }
