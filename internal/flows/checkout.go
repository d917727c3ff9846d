// Package flows defines the concrete step flows of the app on top of the
// shared wizard: checkout, pickup scheduling, listing upload and recycle
// orders.
package flows

import (
	"errors"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

// Checkout steps.
const (
	StepAddress    wizard.Step = "address"
	StepPayment    wizard.Step = "payment"
	StepReview     wizard.Step = "review"
	StepProcessing wizard.Step = "processing"
	StepSuccess    wizard.Step = "success"
)

// Checkout guard reasons.
var (
	ErrAddressRequired       = errors.New("select a delivery address")
	ErrPaymentMethodRequired = errors.New("choose a payment method")
	ErrPaymentPending        = errors.New("payment not confirmed")
)

// CheckoutForm is the data collected by the checkout flow.
type CheckoutForm struct {
	AddressID        string
	PaymentMethod    string
	PaymentReference string
}

// Checkout is the checkout flow. Only a confirmed payment reference lets the
// processing step advance to success.
var Checkout = wizard.Definition[CheckoutForm]{
	Name:  "checkout",
	Steps: []wizard.Step{StepAddress, StepPayment, StepReview, StepProcessing, StepSuccess},
	Guards: map[wizard.Step]wizard.Guard[CheckoutForm]{
		StepAddress: func(f *CheckoutForm) error {
			return requireText(f.AddressID, ErrAddressRequired)
		},
		StepPayment: func(f *CheckoutForm) error {
			return requireText(f.PaymentMethod, ErrPaymentMethodRequired)
		},
		StepProcessing: func(f *CheckoutForm) error {
			return requireText(f.PaymentReference, ErrPaymentPending)
		},
	},
}

// NewCheckout starts a checkout flow.
func NewCheckout(form *CheckoutForm, opts ...wizard.Option) *wizard.Wizard[CheckoutForm] {
	return wizard.MustNew(Checkout, form, opts...)
}

// ReadyToSubmit re-evaluates the address and payment guards, which only ran
// when those steps were left and may no longer hold.
func ReadyToSubmit(f *CheckoutForm) error {
	for _, step := range []wizard.Step{StepAddress, StepPayment} {
		if err := Checkout.Guards[step](f); err != nil {
			return err
		}
	}
	return nil
}
