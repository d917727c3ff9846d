package cart

import (
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
)

// HandleApplyPromotion resolves raw against table. A valid code replaces
// any active promotion; an unknown code is rejected and leaves state alone.
func HandleApplyPromotion(state *State, table *promo.Table, raw string) (*PromotionApplied, error) {
	if promo.Normalize(raw) == "" {
		return nil, kit.NewInvalidArgument(ErrMsgPromotionRequired)
	}

	p, err := table.Lookup(raw)
	if err != nil {
		return nil, kit.NewInvalidArgument(ErrMsgInvalidPromotion).WithCause(err)
	}

	event := &PromotionApplied{
		Code:  p.Code,
		Ratio: p.Ratio.String(),
	}
	if state.Promotion != nil {
		event.ReplacedCode = state.Promotion.Code
	}
	return event, nil
}

// HandleClearPromotion removes the active promotion. Without one it is a
// no-op and yields no event.
func HandleClearPromotion(state *State) (*PromotionCleared, error) {
	if state.Promotion == nil {
		return nil, nil
	}
	return &PromotionCleared{Code: state.Promotion.Code}, nil
}
