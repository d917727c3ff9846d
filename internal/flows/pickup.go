package flows

import (
	"errors"
	"time"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

// Pickup steps.
const (
	StepCategory     wizard.Step = "category"
	StepDate         wizard.Step = "date"
	StepTime         wizard.Step = "time"
	StepDetails      wizard.Step = "details"
	StepConfirmation wizard.Step = "confirmation"
)

// Pickup guard reasons.
var (
	ErrCategoryRequired = errors.New("select what should be picked up")
	ErrDateRequired     = errors.New("select a pickup date")
	ErrDateInPast       = errors.New("pickup date is in the past")
	ErrSlotRequired     = errors.New("select a time slot")
	ErrContactRequired  = errors.New("name, phone and address are required")
)

// PickupForm is the data collected when scheduling a pickup.
type PickupForm struct {
	Category string
	Date     time.Time
	TimeSlot string
	Name     string
	Phone    string
	Address  string

	// Now is the clock used to reject past dates. Defaults to time.Now.
	Now func() time.Time
}

func (f *PickupForm) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Pickup is the schedule pickup flow.
var Pickup = wizard.Definition[PickupForm]{
	Name:  "pickup",
	Steps: []wizard.Step{StepCategory, StepDate, StepTime, StepDetails, StepConfirmation},
	Guards: map[wizard.Step]wizard.Guard[PickupForm]{
		StepCategory: func(f *PickupForm) error {
			return requireText(f.Category, ErrCategoryRequired)
		},
		StepDate: func(f *PickupForm) error {
			if f.Date.IsZero() {
				return ErrDateRequired
			}
			if startOfDay(f.Date).Before(startOfDay(f.now().In(f.Date.Location()))) {
				return ErrDateInPast
			}
			return nil
		},
		StepTime: func(f *PickupForm) error {
			return requireText(f.TimeSlot, ErrSlotRequired)
		},
		StepDetails: func(f *PickupForm) error {
			for _, v := range []string{f.Name, f.Phone, f.Address} {
				if err := requireText(v, ErrContactRequired); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// NewPickup starts a schedule pickup flow.
func NewPickup(form *PickupForm, opts ...wizard.Option) *wizard.Wizard[PickupForm] {
	return wizard.MustNew(Pickup, form, opts...)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
