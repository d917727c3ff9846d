package cart

// ItemAdded records a new line or an increment of an existing one.
type ItemAdded struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	UnitPriceCents  int64  `json:"unit_price_cents"`
	UnitPoints      int64  `json:"unit_points"`
	UnitWeightGrams int64  `json:"unit_weight_grams,omitempty"`
	UnitCO2Grams    int64  `json:"unit_co2_grams,omitempty"`
	Delta           int64  `json:"delta"`
	NewQuantity     int64  `json:"new_quantity"`
	NewSubtotal     int64  `json:"new_subtotal"`
}

func (ItemAdded) TypeName() string { return "ItemAdded" }

// QuantityUpdated records an explicit quantity change to a positive value.
type QuantityUpdated struct {
	ID          string `json:"id"`
	OldQuantity int64  `json:"old_quantity"`
	NewQuantity int64  `json:"new_quantity"`
	NewSubtotal int64  `json:"new_subtotal"`
}

func (QuantityUpdated) TypeName() string { return "QuantityUpdated" }

// ItemRemoved records a line leaving the ledger.
type ItemRemoved struct {
	ID          string `json:"id"`
	Quantity    int64  `json:"quantity"`
	NewSubtotal int64  `json:"new_subtotal"`
}

func (ItemRemoved) TypeName() string { return "ItemRemoved" }

// CartCleared records the ledger being emptied.
type CartCleared struct {
	ItemCount int `json:"item_count"`
}

func (CartCleared) TypeName() string { return "CartCleared" }

// PromotionApplied records the active promotion, replacing any prior one.
type PromotionApplied struct {
	Code         string `json:"code"`
	Ratio        string `json:"ratio"`
	ReplacedCode string `json:"replaced_code,omitempty"`
}

func (PromotionApplied) TypeName() string { return "PromotionApplied" }

// PromotionCleared records the active promotion being removed.
type PromotionCleared struct {
	Code string `json:"code"`
}

func (PromotionCleared) TypeName() string { return "PromotionCleared" }
