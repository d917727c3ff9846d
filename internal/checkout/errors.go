package checkout

import "errors"

var (
	// ErrSubmitInProgress is returned while a payment attempt is running.
	ErrSubmitInProgress = errors.New("payment already in progress")
	// ErrAlreadyCompleted is returned once the order has been paid.
	ErrAlreadyCompleted = errors.New("order already completed")
	// ErrTimeout reports a charge that did not settle within the timeout.
	ErrTimeout = errors.New("payment timed out")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("checkout session closed")
)

// Error message constants.
const (
	ErrMsgNotOnReview  = "submit is only allowed on the review step"
	ErrMsgOrderPlaced  = "cart is locked once payment has been attempted"
	ErrMsgCancelReason = "session closed during payment"
)
