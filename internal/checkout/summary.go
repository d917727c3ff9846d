package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/order"
)

// OrderSummary is the read-only record handed to OnComplete when checkout
// reaches its terminal step.
type OrderSummary struct {
	OrderID          string          `json:"order_id"`
	Items            []cart.LineItem `json:"items"`
	SubtotalCents    int64           `json:"subtotal_cents"`
	DiscountCents    int64           `json:"discount_cents"`
	TotalCents       int64           `json:"total_cents"`
	TotalPoints      int64           `json:"total_points"`
	WeightGrams      int64           `json:"weight_grams"`
	CO2Grams         int64           `json:"co2_grams"`
	PromotionCode    string          `json:"promotion_code,omitempty"`
	AddressID        string          `json:"address_id"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference"`
	CompletedAt      time.Time       `json:"completed_at"`
}

func summarize(st order.State) OrderSummary {
	items := make([]cart.LineItem, len(st.Items))
	copy(items, st.Items)
	return OrderSummary{
		OrderID:          st.OrderID,
		Items:            items,
		SubtotalCents:    st.Totals.SubtotalCents,
		DiscountCents:    st.Totals.DiscountCents,
		TotalCents:       st.Totals.TotalCents,
		TotalPoints:      st.Totals.Points,
		WeightGrams:      st.Totals.WeightGrams,
		CO2Grams:         st.Totals.CO2Grams,
		PromotionCode:    st.Totals.PromotionCode,
		AddressID:        st.AddressID,
		PaymentMethod:    st.PaymentMethod,
		PaymentReference: st.PaymentReference,
		CompletedAt:      st.CompletedAt,
	}
}

// FormatReceipt renders a summary as human-readable receipt text.
func FormatReceipt(s OrderSummary) string {
	var lines []string

	shortID := s.OrderID
	if len(shortID) > 16 {
		shortID = shortID[:16] + "..."
	}

	lines = append(lines, strings.Repeat("═", 40))
	lines = append(lines, "           RECEIPT")
	lines = append(lines, strings.Repeat("═", 40))
	lines = append(lines, fmt.Sprintf("Order: %s", shortID))
	lines = append(lines, strings.Repeat("─", 40))

	for _, item := range s.Items {
		name := item.Name
		if name == "" {
			name = item.ID
		}
		lines = append(lines, fmt.Sprintf("%d x %s @ %s = %s",
			item.Quantity,
			name,
			money(item.UnitPriceCents),
			money(item.LineTotalCents())))
	}

	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, fmt.Sprintf("Subtotal:              %s", money(s.SubtotalCents)))
	if s.DiscountCents > 0 {
		lines = append(lines, fmt.Sprintf("Discount (%s):  -%s", s.PromotionCode, money(s.DiscountCents)))
	}
	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, fmt.Sprintf("TOTAL:                 %s", money(s.TotalCents)))
	lines = append(lines, fmt.Sprintf("Payment: %s (%s)", s.PaymentMethod, s.PaymentReference))
	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, fmt.Sprintf("Eco Points Earned: %d", s.TotalPoints))
	if s.WeightGrams > 0 || s.CO2Grams > 0 {
		lines = append(lines, fmt.Sprintf("Weight: %dg  CO2 saved: %dg", s.WeightGrams, s.CO2Grams))
	}
	lines = append(lines, strings.Repeat("═", 40))
	lines = append(lines, "     Thank you for shopping green!")
	lines = append(lines, strings.Repeat("═", 40))

	return strings.Join(lines, "\n")
}

func money(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
