package cart

// Error message constants for the cart domain.
const (
	ErrMsgItemIDRequired     = "Item ID is required"
	ErrMsgItemNotInCart      = "Item not in cart"
	ErrMsgPriceNegative      = "Unit price cannot be negative"
	ErrMsgPointsNegative     = "Unit points cannot be negative"
	ErrMsgWeightNegative     = "Unit weight cannot be negative"
	ErrMsgCO2Negative        = "Unit CO2 cannot be negative"
	ErrMsgQuantityPositive   = "Quantity must be positive"
	ErrMsgPromotionRequired  = "Promotion code is required"
	ErrMsgInvalidPromotion   = "Invalid promotion code"
	ErrMsgDiscountExceedsSub = "Discount cannot exceed subtotal"
)
