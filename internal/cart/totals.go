package cart

import (
	"fmt"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
)

// Totals are the values derived from a ledger.
type Totals struct {
	SubtotalCents int64  `json:"subtotal_cents"`
	DiscountCents int64  `json:"discount_cents"`
	TotalCents    int64  `json:"total_cents"`
	Points        int64  `json:"points"`
	WeightGrams   int64  `json:"weight_grams"`
	CO2Grams      int64  `json:"co2_grams"`
	Units         int64  `json:"units"`
	PromotionCode string `json:"promotion_code,omitempty"`
}

// ComputeTotals sums price, points, weight and CO2 over items. It is zero
// for an empty ledger and carries no discount.
func ComputeTotals(items []LineItem) Totals {
	var t Totals
	for _, item := range items {
		t.SubtotalCents += item.UnitPriceCents * item.Quantity
		t.Points += item.UnitPoints * item.Quantity
		t.WeightGrams += item.UnitWeightGrams * item.Quantity
		t.CO2Grams += item.UnitCO2Grams * item.Quantity
		t.Units += item.Quantity
	}
	t.TotalCents = t.SubtotalCents
	return t
}

// PriceTotals computes totals for items with the active promotion applied.
func PriceTotals(items []LineItem, active *promo.Promotion) (Totals, error) {
	t := ComputeTotals(items)
	if active == nil {
		return t, nil
	}
	t.PromotionCode = active.Code
	t.DiscountCents = promo.Discount(t.SubtotalCents, active)
	total, err := promo.Total(t.SubtotalCents, t.DiscountCents)
	if err != nil {
		return Totals{}, fmt.Errorf("%s: %w", ErrMsgDiscountExceedsSub, err)
	}
	t.TotalCents = total
	return t, nil
}
