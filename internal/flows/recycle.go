package flows

import (
	"errors"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

// Recycle order steps, followed by the shared review and confirmation.
const (
	StepItems   wizard.Step = "items"
	StepCharity wizard.Step = "charity"
)

// Recycle guard reasons.
var (
	ErrNoItems         = errors.New("add at least one item to recycle")
	ErrCharityRequired = errors.New("choose a charity")
)

// RecycleForm is the data collected by a recycle order. The ledger holds the
// recyclables being handed in.
type RecycleForm struct {
	Ledger    *cart.Ledger
	CharityID string
}

// Recycle is the recycle order flow.
var Recycle = wizard.Definition[RecycleForm]{
	Name:  "recycle",
	Steps: []wizard.Step{StepItems, StepCharity, StepReview, StepConfirmation},
	Guards: map[wizard.Step]wizard.Guard[RecycleForm]{
		StepItems: func(f *RecycleForm) error {
			if f.Ledger == nil || f.Ledger.Len() == 0 {
				return ErrNoItems
			}
			return nil
		},
		StepCharity: func(f *RecycleForm) error {
			return requireText(f.CharityID, ErrCharityRequired)
		},
	},
}

// NewRecycle starts a recycle order flow.
func NewRecycle(form *RecycleForm, opts ...wizard.Option) *wizard.Wizard[RecycleForm] {
	return wizard.MustNew(Recycle, form, opts...)
}
