package order

// Error message constants for the order domain.
const (
	ErrMsgOrderExists         = "Order already exists"
	ErrMsgOrderNotFound       = "Order does not exist"
	ErrMsgOrderIDRequired     = "Order ID is required"
	ErrMsgItemsRequired       = "Order must have at least one item"
	ErrMsgAddressRequired     = "Delivery address is required"
	ErrMsgOrderNotPending     = "Order is not in pending state"
	ErrMsgCannotCancelDone    = "Cannot cancel completed order"
	ErrMsgAlreadyCancelled    = "Order already cancelled"
	ErrMsgReasonRequired      = "Reason is required"
	ErrMsgPaymentMethodReq    = "Payment method is required"
	ErrMsgPaymentAmountMatch  = "Payment amount must match order total"
	ErrMsgPaymentNotSubmitted = "Payment not submitted"
	ErrMsgPaymentRefRequired  = "Payment reference is required"
)
