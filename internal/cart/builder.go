package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
)

var stateBuilder = kit.NewStateBuilder(EmptyState).
	On("ItemAdded", kit.Decode(applyItemAdded)).
	On("QuantityUpdated", kit.Decode(applyQuantityUpdated)).
	On("ItemRemoved", kit.Decode(applyItemRemoved)).
	On("CartCleared", kit.Decode(applyCartCleared)).
	On("PromotionApplied", kit.Decode(applyPromotionApplied)).
	On("PromotionCleared", kit.Decode(applyPromotionCleared))

// RebuildState reconstructs ledger state from its event history.
func RebuildState(book *kit.EventBook) State {
	return stateBuilder.Rebuild(book)
}

func applyItemAdded(state *State, e *ItemAdded) {
	if item, ok := state.Items[e.ID]; ok {
		item.Quantity = e.NewQuantity
		return
	}
	state.Items[e.ID] = &LineItem{
		ID:              e.ID,
		Name:            e.Name,
		UnitPriceCents:  e.UnitPriceCents,
		UnitPoints:      e.UnitPoints,
		UnitWeightGrams: e.UnitWeightGrams,
		UnitCO2Grams:    e.UnitCO2Grams,
		Quantity:        e.NewQuantity,
	}
	state.Order = append(state.Order, e.ID)
}

func applyQuantityUpdated(state *State, e *QuantityUpdated) {
	if item, ok := state.Items[e.ID]; ok {
		item.Quantity = e.NewQuantity
	}
}

func applyItemRemoved(state *State, e *ItemRemoved) {
	state.remove(e.ID)
}

func applyCartCleared(state *State, _ *CartCleared) {
	state.Items = make(map[string]*LineItem)
	state.Order = nil
	state.Promotion = nil
}

func applyPromotionApplied(state *State, e *PromotionApplied) {
	ratio, err := decimal.NewFromString(e.Ratio)
	if err != nil {
		return
	}
	state.Promotion = &promo.Promotion{Code: e.Code, Ratio: ratio}
}

func applyPromotionCleared(state *State, _ *PromotionCleared) {
	state.Promotion = nil
}
