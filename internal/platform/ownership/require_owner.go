// Package ownership enforces the owner-only mutation rule for listings.
package ownership

import (
	"context"

	"bikemarket/backend/internal/apperr"
	"bikemarket/backend/internal/listing/domain"
)

// ListingGetter loads a listing by its public id, returning nil when absent.
type ListingGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
}

// RequireOwner loads the listing and ensures userID is its seller. verb names
// the attempted mutation ("edit" or "delete") for the rejection message.
// The existence check always precedes the ownership check, so a missing id is
// a NotFound for every caller. On success the loaded listing is returned; the
// mutation itself is the caller's job. Seller ids are opaque tokens and are
// compared exactly, no case folding.
func RequireOwner(ctx context.Context, getter ListingGetter, listingID, userID, verb string) (*domain.Listing, error) {
	l, err := getter.GetByID(ctx, listingID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch bike", err)
	}
	if l == nil {
		return nil, apperr.NotFound("Bike not found")
	}
	if l.SellerID != userID {
		return nil, apperr.Forbidden("Access denied. Only the seller can " + verb + " this bike.")
	}
	return l, nil
}
