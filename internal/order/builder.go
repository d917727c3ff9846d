package order

import (
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

var stateBuilder = kit.NewStateBuilder(EmptyState).
	On("OrderPlaced", kit.Decode(applyOrderPlaced)).
	On("PaymentSubmitted", kit.Decode(applyPaymentSubmitted)).
	On("PaymentDeclined", kit.Decode(applyPaymentDeclined)).
	On("OrderCompleted", kit.Decode(applyOrderCompleted)).
	On("OrderCancelled", kit.Decode(applyOrderCancelled))

// RebuildState reconstructs order state from its event history.
func RebuildState(book *kit.EventBook) State {
	return stateBuilder.Rebuild(book)
}

func applyOrderPlaced(state *State, e *OrderPlaced) {
	state.OrderID = e.OrderID
	state.SessionID = e.SessionID
	state.AddressID = e.AddressID
	state.Items = e.Items
	state.Totals = e.Totals
	state.PlacedAt = e.PlacedAt
	state.Status = StatusPending
}

func applyPaymentSubmitted(state *State, e *PaymentSubmitted) {
	state.PaymentMethod = e.Method
	state.Attempts = e.Attempt
	state.Status = StatusPaymentSubmitted
}

func applyPaymentDeclined(state *State, e *PaymentDeclined) {
	state.LastDecline = e.Reason
	state.Status = StatusPending
}

func applyOrderCompleted(state *State, e *OrderCompleted) {
	state.PaymentReference = e.PaymentReference
	state.CompletedAt = e.CompletedAt
	state.LastDecline = ""
	state.Status = StatusCompleted
}

func applyOrderCancelled(state *State, _ *OrderCancelled) {
	state.Status = StatusCancelled
}
