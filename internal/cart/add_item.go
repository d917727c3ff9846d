package cart

import (
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// Candidate is an item offered to the ledger by a product or recyclable card.
type Candidate struct {
	ID              string
	Name            string
	UnitPriceCents  int64
	UnitPoints      int64
	UnitWeightGrams int64
	UnitCO2Grams    int64
}

// HandleAddItem increments an existing line by delta, or inserts the
// candidate with quantity delta. An existing line keeps its unit values.
func HandleAddItem(state *State, c Candidate, delta int64) (*ItemAdded, error) {
	if err := kit.First(
		kit.RequireNotBlank(c.ID, ErrMsgItemIDRequired),
		kit.RequireNonNegative(c.UnitPriceCents, ErrMsgPriceNegative),
		kit.RequireNonNegative(c.UnitPoints, ErrMsgPointsNegative),
		kit.RequireNonNegative(c.UnitWeightGrams, ErrMsgWeightNegative),
		kit.RequireNonNegative(c.UnitCO2Grams, ErrMsgCO2Negative),
		kit.RequirePositive(delta, ErrMsgQuantityPositive),
	); err != nil {
		return nil, err
	}

	event := &ItemAdded{
		ID:              c.ID,
		Name:            c.Name,
		UnitPriceCents:  c.UnitPriceCents,
		UnitPoints:      c.UnitPoints,
		UnitWeightGrams: c.UnitWeightGrams,
		UnitCO2Grams:    c.UnitCO2Grams,
		Delta:           delta,
		NewQuantity:     delta,
	}
	if existing, ok := state.Items[c.ID]; ok {
		event.Name = existing.Name
		event.UnitPriceCents = existing.UnitPriceCents
		event.UnitPoints = existing.UnitPoints
		event.UnitWeightGrams = existing.UnitWeightGrams
		event.UnitCO2Grams = existing.UnitCO2Grams
		event.NewQuantity = existing.Quantity + delta
	}
	event.NewSubtotal = state.Subtotal() + delta*event.UnitPriceCents

	return event, nil
}
