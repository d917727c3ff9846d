package cart

import (
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
)

// LineItem is one orderable entity in the ledger: a shop product or a
// recyclable item. Unit values are per piece; Quantity is never zero while
// the item is held.
type LineItem struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	UnitPriceCents  int64  `json:"unit_price_cents"`
	UnitPoints      int64  `json:"unit_points"`
	UnitWeightGrams int64  `json:"unit_weight_grams,omitempty"`
	UnitCO2Grams    int64  `json:"unit_co2_grams,omitempty"`
	Quantity        int64  `json:"quantity"`
}

// LineTotalCents is the price of the line.
func (i LineItem) LineTotalCents() int64 {
	return i.UnitPriceCents * i.Quantity
}

// State is the rebuilt ledger state.
type State struct {
	Items     map[string]*LineItem // id -> item
	Order     []string             // insertion order of ids
	Promotion *promo.Promotion
}

// EmptyState returns a ledger with no items and no promotion.
func EmptyState() State {
	return State{
		Items: make(map[string]*LineItem),
	}
}

// Has reports whether the ledger holds id.
func (s *State) Has(id string) bool {
	_, ok := s.Items[id]
	return ok
}

// List returns copies of the items in insertion order.
func (s *State) List() []LineItem {
	out := make([]LineItem, 0, len(s.Order))
	for _, id := range s.Order {
		if item, ok := s.Items[id]; ok {
			out = append(out, *item)
		}
	}
	return out
}

// Subtotal computes the subtotal from the current items.
func (s *State) Subtotal() int64 {
	var subtotal int64
	for _, item := range s.Items {
		subtotal += item.LineTotalCents()
	}
	return subtotal
}

func (s *State) remove(id string) {
	delete(s.Items, id)
	for i, existing := range s.Order {
		if existing == id {
			s.Order = append(s.Order[:i:i], s.Order[i+1:]...)
			return
		}
	}
}
