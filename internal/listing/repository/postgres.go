package repository

import (
	"context"
	"database/sql"
	"errors"

	"bikemarket/backend/internal/listing/domain"
)

// PostgresRepository persists listings in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a listing repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listingColumns = "id, brand, model, year, price, kilometers_driven, location, image_url, seller_id, created_at, updated_at"

// GetByID returns the listing for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = $1", id)
	var l domain.Listing
	err := scanListing(row.Scan, &l)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Create persists the listing. The listing must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, l *domain.Listing) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO listings (id, brand, model, year, price, kilometers_driven, location, image_url, seller_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.Brand, l.Model, l.Year, l.Price, l.KilometersDriven, l.Location, l.ImageURL, l.SellerID, l.CreatedAt, l.UpdatedAt)
	return err
}

// Update rewrites the mutable columns of the listing. seller_id is immutable
// and deliberately not part of the statement.
func (r *PostgresRepository) Update(ctx context.Context, l *domain.Listing) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE listings
		 SET brand = $2, model = $3, year = $4, price = $5, kilometers_driven = $6,
		     location = $7, image_url = $8, updated_at = $9
		 WHERE id = $1`,
		l.ID, l.Brand, l.Model, l.Year, l.Price, l.KilometersDriven, l.Location, l.ImageURL, l.UpdatedAt)
	return err
}

// Delete removes the listing with the given id. Deleting a missing row is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id = $1", id)
	return err
}

// ListAll returns all listings, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Listing, error) {
	return r.queryListings(ctx,
		"SELECT "+listingColumns+" FROM listings ORDER BY created_at DESC")
}

// ListBySeller returns the seller's listings, newest first.
func (r *PostgresRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	return r.queryListings(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE seller_id = $1 ORDER BY created_at DESC",
		sellerID)
}

// Search filters by brand and/or model substring, case-insensitive.
func (r *PostgresRepository) Search(ctx context.Context, brand, model string) ([]*domain.Listing, error) {
	return r.queryListings(ctx,
		`SELECT `+listingColumns+` FROM listings
		 WHERE ($1 = '' OR brand ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR model ILIKE '%' || $2 || '%')
		 ORDER BY created_at DESC`,
		brand, model)
}

func (r *PostgresRepository) queryListings(ctx context.Context, query string, args ...any) ([]*domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows.Scan, &l); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func scanListing(scan func(...any) error, l *domain.Listing) error {
	return scan(&l.ID, &l.Brand, &l.Model, &l.Year, &l.Price, &l.KilometersDriven,
		&l.Location, &l.ImageURL, &l.SellerID, &l.CreatedAt, &l.UpdatedAt)
}
