// Package promo maps promotion codes to discount ratios and computes the
// discount a promotion grants on a subtotal.
package promo

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidCode is returned when a code is not in the promotion table.
var ErrInvalidCode = errors.New("invalid promotion code")

// Promotion is a discount code and its ratio, 0 < Ratio < 1.
type Promotion struct {
	Code  string
	Ratio decimal.Decimal
}

// Percent renders the ratio as a whole-number percentage.
func (p Promotion) Percent() string {
	return p.Ratio.Shift(2).StringFixed(0) + "%"
}

// Table is an immutable lookup set of promotions keyed by upper-case code.
type Table struct {
	byCode map[string]Promotion
}

// DefaultRatios is the built-in promotion table.
var DefaultRatios = map[string]string{
	"ECO10":     "0.10",
	"GREEN15":   "0.15",
	"RECYCLE20": "0.20",
}

// DefaultTable returns the built-in promotion table.
func DefaultTable() *Table {
	t, err := NewTable(DefaultRatios)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable builds a table from code → ratio strings. Codes are normalized;
// every ratio must lie strictly between 0 and 1.
func NewTable(ratios map[string]string) (*Table, error) {
	byCode := make(map[string]Promotion, len(ratios))
	for raw, value := range ratios {
		code := Normalize(raw)
		if code == "" {
			return nil, fmt.Errorf("promotion code must not be blank")
		}
		ratio, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("promotion %s: invalid ratio %q: %w", code, value, err)
		}
		if !ratio.IsPositive() || ratio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("promotion %s: ratio %s must be between 0 and 1", code, ratio)
		}
		if _, dup := byCode[code]; dup {
			return nil, fmt.Errorf("promotion %s: duplicate code", code)
		}
		byCode[code] = Promotion{Code: code, Ratio: ratio}
	}
	return &Table{byCode: byCode}, nil
}

// Normalize trims and upper-cases a user-entered code.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Lookup resolves a raw code. Unknown codes return ErrInvalidCode.
func (t *Table) Lookup(raw string) (Promotion, error) {
	code := Normalize(raw)
	p, ok := t.byCode[code]
	if !ok {
		return Promotion{}, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return p, nil
}

// Promotions returns the table sorted by code.
func (t *Table) Promotions() []Promotion {
	out := make([]Promotion, 0, len(t.byCode))
	for _, p := range t.byCode {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Discount returns subtotal × ratio rounded half-up to the minor unit, or 0
// when no promotion is active.
func Discount(subtotalCents int64, active *Promotion) int64 {
	if active == nil || subtotalCents <= 0 {
		return 0
	}
	return decimal.NewFromInt(subtotalCents).Mul(active.Ratio).Round(0).IntPart()
}

// Total returns subtotal - discount. A negative total means the discount
// table or the arithmetic is broken and is reported as an error.
func Total(subtotalCents, discountCents int64) (int64, error) {
	total := subtotalCents - discountCents
	if total < 0 {
		return 0, fmt.Errorf("discount %d exceeds subtotal %d", discountCents, subtotalCents)
	}
	return total, nil
}
