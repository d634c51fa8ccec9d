package ports

import (
	"context"

	"github.com/roomradar/roomradar/internal/core/domain"
)

// ListingRepository persists listings and maintains the spatial index over
// their location points. Implementations must keep record and index updates
// atomic: a reader may never observe a listing present in one but not the
// other.
type ListingRepository interface {
	// Create persists a new listing, assigning its ID and timestamps.
	// The listing is indexed (if it has a location) before Create returns.
	Create(ctx context.Context, l *domain.Listing) error

	// GetByID returns a listing or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Listing, error)

	// List returns all listings, or only those of ownerID when non-empty.
	List(ctx context.Context, ownerID string) ([]domain.Listing, error)

	// Delete removes a listing and its index entry atomically. It returns
	// domain.ErrNotFound for an unknown id and domain.ErrForbidden when
	// requesterID is not the owner; on either failure nothing is mutated.
	Delete(ctx context.Context, id, requesterID string) error

	// SearchRadius returns every listing whose point lies within
	// radiusMeters of center, ascending by distance with ties broken by ID.
	// Each result carries its Distance. Listings without a location are
	// never returned.
	SearchRadius(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error)
}
