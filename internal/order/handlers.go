package order

import (
	"time"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// PlaceOrder is the input of HandlePlaceOrder.
type PlaceOrder struct {
	OrderID   string
	SessionID string
	AddressID string
	Snapshot  cart.Snapshot
}

// HandlePlaceOrder freezes a ledger snapshot into a pending order.
func HandlePlaceOrder(state *State, cmd PlaceOrder, now time.Time) (*OrderPlaced, error) {
	if state.Exists() {
		return nil, kit.NewFailedPrecondition(ErrMsgOrderExists)
	}
	if err := kit.First(
		kit.RequireNotBlank(cmd.OrderID, ErrMsgOrderIDRequired),
		kit.RequireNotEmpty(cmd.Snapshot.Items, ErrMsgItemsRequired),
		kit.RequireNotBlank(cmd.AddressID, ErrMsgAddressRequired),
	); err != nil {
		return nil, err
	}

	return &OrderPlaced{
		OrderID:   cmd.OrderID,
		SessionID: cmd.SessionID,
		AddressID: cmd.AddressID,
		Items:     cmd.Snapshot.Items,
		Totals:    cmd.Snapshot.Totals,
		PlacedAt:  now,
	}, nil
}

// HandleSubmitPayment starts a charge attempt. The amount must match the
// order total.
func HandleSubmitPayment(state *State, method string, amountCents int64, now time.Time) (*PaymentSubmitted, error) {
	if err := kit.First(
		kit.RequireExists(state.OrderID, ErrMsgOrderNotFound),
		kit.RequireStatus(state.Status, StatusPending, ErrMsgOrderNotPending),
		kit.RequireNotBlank(method, ErrMsgPaymentMethodReq),
	); err != nil {
		return nil, err
	}
	if amountCents != state.Totals.TotalCents {
		return nil, kit.NewInvalidArgument(ErrMsgPaymentAmountMatch)
	}

	return &PaymentSubmitted{
		Method:      method,
		AmountCents: amountCents,
		Attempt:     state.Attempts + 1,
		SubmittedAt: now,
	}, nil
}

// HandleDeclinePayment records a failed attempt and reopens the order.
func HandleDeclinePayment(state *State, reason string, now time.Time) (*PaymentDeclined, error) {
	if err := kit.First(
		kit.RequireStatus(state.Status, StatusPaymentSubmitted, ErrMsgPaymentNotSubmitted),
		kit.RequireNotBlank(reason, ErrMsgReasonRequired),
	); err != nil {
		return nil, err
	}

	return &PaymentDeclined{
		Reason:     reason,
		Attempt:    state.Attempts,
		DeclinedAt: now,
	}, nil
}

// HandleConfirmPayment completes the order with the gateway's reference.
func HandleConfirmPayment(state *State, paymentReference string, now time.Time) (*OrderCompleted, error) {
	if err := kit.First(
		kit.RequireStatus(state.Status, StatusPaymentSubmitted, ErrMsgPaymentNotSubmitted),
		kit.RequireNotBlank(paymentReference, ErrMsgPaymentRefRequired),
	); err != nil {
		return nil, err
	}

	return &OrderCompleted{
		PaymentReference: paymentReference,
		FinalTotalCents:  state.Totals.TotalCents,
		CompletedAt:      now,
	}, nil
}

// HandleCancelOrder cancels an order that has not completed.
func HandleCancelOrder(state *State, reason string, now time.Time) (*OrderCancelled, error) {
	if err := kit.First(
		kit.RequireExists(state.OrderID, ErrMsgOrderNotFound),
		kit.RequireStatusNot(state.Status, StatusCompleted, ErrMsgCannotCancelDone),
		kit.RequireStatusNot(state.Status, StatusCancelled, ErrMsgAlreadyCancelled),
		kit.RequireNotBlank(reason, ErrMsgReasonRequired),
	); err != nil {
		return nil, err
	}

	return &OrderCancelled{
		Reason:      reason,
		CancelledAt: now,
	}, nil
}
