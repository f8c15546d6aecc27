package repository

import (
	"context"

	"bikemarket/backend/internal/listing/domain"
)

// Repository defines persistence for listings.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, l *domain.Listing) error
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) error
	// ListAll returns all listings, newest first.
	ListAll(ctx context.Context) ([]*domain.Listing, error)
	// ListBySeller returns the seller's listings, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error)
	// Search filters by brand and/or model substring, case-insensitive.
	// Empty arguments match everything.
	Search(ctx context.Context, brand, model string) ([]*domain.Listing, error)
}
