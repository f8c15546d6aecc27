package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Listing is a bike offered for sale. SellerID is set once at creation to the
// creator's user id and never reassigned: it is the sole basis for deciding
// who may mutate the listing.
type Listing struct {
	ID               string
	Brand            string
	Model            string
	Year             int
	Price            float64
	KilometersDriven float64
	Location         string
	ImageURL         string
	SellerID         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewID returns a new public listing id.
func NewID() string {
	return fmt.Sprintf("BIKE_%s", uuid.New().String())
}

// Validate validates the listing for persistence. Returns an error describing the first validation failure.
func (l *Listing) Validate() error {
	if l.ID == "" {
		return errors.New("id is required")
	}
	if l.Brand == "" {
		return errors.New("brand is required")
	}
	if l.Model == "" {
		return errors.New("model is required")
	}
	if l.Year < 1900 {
		return errors.New("year must be 1900 or later")
	}
	if l.Price <= 0 {
		return errors.New("price must be positive")
	}
	if l.KilometersDriven < 0 {
		return errors.New("kilometers_driven must not be negative")
	}
	if l.Location == "" {
		return errors.New("location is required")
	}
	if l.ImageURL == "" {
		return errors.New("image url is required")
	}
	if l.SellerID == "" {
		return errors.New("seller id is required")
	}
	return nil
}
