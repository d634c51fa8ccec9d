package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/roomradar/roomradar/internal/core/domain"
)

// ListingRepo implements ports.ListingRepository with pgx over PostGIS.
// The location column is geography(Point,4326) with a GIST index, so the
// record and its spatial index entry always change in one transactional
// write.
type ListingRepo struct {
	db *DB
}

// NewListingRepo creates a new ListingRepo.
func NewListingRepo(db *DB) *ListingRepo {
	return &ListingRepo{db: db}
}

const listingColumns = `
	id, title, rent, COALESCE(address, ''), COALESCE(description, ''),
	COALESCE(contact_number, ''), COALESCE(images, '[]'),
	ST_X(location::geometry), ST_Y(location::geometry),
	owner_id, created_at, updated_at`

// Create persists a new listing. A NULL location simply has no index entry.
func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	var lon, lat *float64
	if l.Location != nil {
		lon, lat = &l.Location.Lon, &l.Location.Lat
	}

	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO listings (title, rent, address, description, contact_number, images, location, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6,
		        CASE WHEN $7::float8 IS NULL THEN NULL
		             ELSE ST_SetSRID(ST_MakePoint($7, $8), 4326)::geography END,
		        $9)
		RETURNING id, created_at, updated_at
	`, l.Title, l.Rent, l.Address, l.Description, l.ContactNumber, l.Images,
		lon, lat, l.OwnerID,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return &domain.StorageError{Op: "create listing", Err: err}
	}
	return nil
}

// GetByID returns a listing by UUID.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT`+listingColumns+` FROM listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get listing", Err: err}
	}
	return l, nil
}

// List returns listings in insertion order, optionally filtered by owner.
func (r *ListingRepo) List(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+listingColumns+`
		FROM listings
		WHERE $1 = '' OR owner_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list listings", Err: err}
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list listings", Err: err}
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list listings", Err: err}
	}
	return listings, nil
}

// Delete removes a listing after an ownership check, both inside one
// transaction so a failed check mutates nothing and a successful delete
// removes record and index entry together.
func (r *ListingRepo) Delete(ctx context.Context, id, requesterID string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Op: "delete listing", Err: err}
	}
	defer tx.Rollback(ctx)

	var ownerID string
	err = tx.QueryRow(ctx, `SELECT owner_id FROM listings WHERE id = $1 FOR UPDATE`, id).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return &domain.StorageError{Op: "delete listing", Err: err}
	}

	if ownerID != requesterID {
		return domain.ErrForbidden
	}

	if _, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id); err != nil {
		return &domain.StorageError{Op: "delete listing", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Op: "delete listing", Err: err}
	}
	return nil
}

// SearchRadius returns listings within radiusMeters of center using
// ST_DWithin over the GIST index, ordered by distance with ID tie-break.
func (r *ListingRepo) SearchRadius(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+listingColumns+`,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) AS distance
		FROM listings
		WHERE location IS NOT NULL
		  AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance, id
	`, center.Lon, center.Lat, radiusMeters)
	if err != nil {
		return nil, &domain.StorageError{Op: "radius search", Err: err}
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var (
			l        domain.Listing
			lon, lat *float64
			dist     float64
		)
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Rent, &l.Address, &l.Description,
			&l.ContactNumber, &l.Images, &lon, &lat,
			&l.OwnerID, &l.CreatedAt, &l.UpdatedAt, &dist,
		); err != nil {
			return nil, &domain.StorageError{Op: "radius search", Err: err}
		}
		if lon != nil && lat != nil {
			l.Location = &domain.GeoPoint{Lon: *lon, Lat: *lat}
		}
		l.Distance = &dist
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "radius search", Err: err}
	}
	return listings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var (
		l        domain.Listing
		lon, lat *float64
	)
	if err := row.Scan(
		&l.ID, &l.Title, &l.Rent, &l.Address, &l.Description,
		&l.ContactNumber, &l.Images, &lon, &lat,
		&l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lon != nil && lat != nil {
		l.Location = &domain.GeoPoint{Lon: *lon, Lat: *lat}
	}
	return &l, nil
}
