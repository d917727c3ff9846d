package rpc

import (
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
)

// Command type names, matched by type URL suffix.
const (
	CmdOpenSession    = "OpenSession"
	CmdAddItem        = "AddItem"
	CmdSetQuantity    = "SetQuantity"
	CmdRemoveItem     = "RemoveItem"
	CmdApplyPromotion = "ApplyPromotion"
	CmdClearPromotion = "ClearPromotion"
	CmdSelectAddress  = "SelectAddress"
	CmdChoosePayment  = "ChoosePayment"
	CmdNext           = "Next"
	CmdBack           = "Back"
	CmdSubmit         = "Submit"
	CmdGetSession     = "GetSession"
	CmdCloseSession   = "CloseSession"
)

// OpenSession opens a checkout session, restoring its cart from the store.
// An empty SessionID opens a new session with a generated id.
type OpenSession struct {
	SessionID string `json:"session_id,omitempty"`
}

func (OpenSession) TypeName() string { return CmdOpenSession }

// AddItem adds Quantity units of an item to the cart. Zero means one.
type AddItem struct {
	SessionID       string `json:"session_id"`
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	UnitPriceCents  int64  `json:"unit_price_cents"`
	UnitPoints      int64  `json:"unit_points"`
	UnitWeightGrams int64  `json:"unit_weight_grams,omitempty"`
	UnitCO2Grams    int64  `json:"unit_co2_grams,omitempty"`
	Quantity        int64  `json:"quantity,omitempty"`
}

func (AddItem) TypeName() string { return CmdAddItem }

func (c AddItem) candidate() cart.Candidate {
	return cart.Candidate{
		ID:              c.ID,
		Name:            c.Name,
		UnitPriceCents:  c.UnitPriceCents,
		UnitPoints:      c.UnitPoints,
		UnitWeightGrams: c.UnitWeightGrams,
		UnitCO2Grams:    c.UnitCO2Grams,
	}
}

func (c AddItem) delta() int64 {
	if c.Quantity == 0 {
		return 1
	}
	return c.Quantity
}

// SetQuantity sets the quantity of a cart item; zero or less removes it.
type SetQuantity struct {
	SessionID string `json:"session_id"`
	ID        string `json:"id"`
	Quantity  int64  `json:"quantity"`
}

func (SetQuantity) TypeName() string { return CmdSetQuantity }

// RemoveItem removes an item from the cart.
type RemoveItem struct {
	SessionID string `json:"session_id"`
	ID        string `json:"id"`
}

func (RemoveItem) TypeName() string { return CmdRemoveItem }

// ApplyPromotion applies a promotion code, replacing any active one.
type ApplyPromotion struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
}

func (ApplyPromotion) TypeName() string { return CmdApplyPromotion }

// ClearPromotion removes the active promotion.
type ClearPromotion struct {
	SessionID string `json:"session_id"`
}

func (ClearPromotion) TypeName() string { return CmdClearPromotion }

// SelectAddress records the delivery address.
type SelectAddress struct {
	SessionID string `json:"session_id"`
	AddressID string `json:"address_id"`
}

func (SelectAddress) TypeName() string { return CmdSelectAddress }

// ChoosePayment records the payment method.
type ChoosePayment struct {
	SessionID string `json:"session_id"`
	Method    string `json:"method"`
}

func (ChoosePayment) TypeName() string { return CmdChoosePayment }

// Next advances the checkout flow. On the review step it submits the order;
// with Wait set the reply is sent once the payment attempt settles.
type Next struct {
	SessionID string `json:"session_id"`
	Wait      bool   `json:"wait,omitempty"`
}

func (Next) TypeName() string { return CmdNext }

// Back returns to the previous step. Leaving the first step is reported as
// exited in the reply.
type Back struct {
	SessionID string `json:"session_id"`
}

func (Back) TypeName() string { return CmdBack }

// Submit places the order and starts a payment attempt.
type Submit struct {
	SessionID string `json:"session_id"`
	Wait      bool   `json:"wait,omitempty"`
}

func (Submit) TypeName() string { return CmdSubmit }

// GetSession returns the session view, optionally after the running payment
// attempt settles.
type GetSession struct {
	SessionID string `json:"session_id"`
	Wait      bool   `json:"wait,omitempty"`
}

func (GetSession) TypeName() string { return CmdGetSession }

// CloseSession tears a session down, cancelling any running payment.
type CloseSession struct {
	SessionID string `json:"session_id"`
}

func (CloseSession) TypeName() string { return CmdCloseSession }
