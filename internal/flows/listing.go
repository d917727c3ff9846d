package flows

import (
	"errors"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

// Listing steps. The details and review steps are shared with other flows.
const (
	StepPhotos    wizard.Step = "photos"
	StepPricing   wizard.Step = "pricing"
	StepPublished wizard.Step = "published"
)

// Listing guard reasons.
var (
	ErrPhotoRequired    = errors.New("add at least one photo")
	ErrListingDetails   = errors.New("title, category and condition are required")
	ErrPriceNotPositive = errors.New("price must be greater than zero")
)

// ListingForm is the data collected when listing an item for resale.
type ListingForm struct {
	Photos      []string
	Title       string
	Category    string
	Condition   string
	Description string
	PriceCents  int64
}

// Listing is the listing upload flow.
var Listing = wizard.Definition[ListingForm]{
	Name:  "listing",
	Steps: []wizard.Step{StepPhotos, StepDetails, StepPricing, StepReview, StepPublished},
	Guards: map[wizard.Step]wizard.Guard[ListingForm]{
		StepPhotos: func(f *ListingForm) error {
			if len(f.Photos) == 0 {
				return ErrPhotoRequired
			}
			return nil
		},
		StepDetails: func(f *ListingForm) error {
			for _, v := range []string{f.Title, f.Category, f.Condition} {
				if err := requireText(v, ErrListingDetails); err != nil {
					return err
				}
			}
			return nil
		},
		StepPricing: func(f *ListingForm) error {
			if f.PriceCents <= 0 {
				return ErrPriceNotPositive
			}
			return nil
		},
	},
}

// NewListing starts a listing upload flow.
func NewListing(form *ListingForm, opts ...wizard.Option) *wizard.Wizard[ListingForm] {
	return wizard.MustNew(Listing, form, opts...)
}
