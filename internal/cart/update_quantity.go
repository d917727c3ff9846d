package cart

import (
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// HandleSetQuantity sets the quantity of a held item. A quantity of zero or
// less removes the item instead.
func HandleSetQuantity(state *State, id string, newQuantity int64) (kit.Named, error) {
	if !state.Has(id) {
		return nil, kit.NewFailedPrecondition(ErrMsgItemNotInCart)
	}
	if newQuantity <= 0 {
		return HandleRemoveItem(state, id)
	}

	item := state.Items[id]

	newSubtotal := state.Subtotal() - item.LineTotalCents() + newQuantity*item.UnitPriceCents

	return &QuantityUpdated{
		ID:          id,
		OldQuantity: item.Quantity,
		NewQuantity: newQuantity,
		NewSubtotal: newSubtotal,
	}, nil
}
