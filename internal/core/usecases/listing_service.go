package usecases

import (
	"context"
	"log/slog"

	"github.com/roomradar/roomradar/internal/core/domain"
	"github.com/roomradar/roomradar/internal/core/ports"
	"github.com/roomradar/roomradar/internal/pkg/metrics"
)

// ListingService handles the listing lifecycle: publish, fetch, delete.
type ListingService struct {
	listings ports.ListingRepository
	events   ports.EventPublisher
}

// NewListingService creates a new ListingService. events may be nil.
func NewListingService(listings ports.ListingRepository, events ports.EventPublisher) *ListingService {
	return &ListingService{listings: listings, events: events}
}

// Create validates and persists a new listing. The spatial index entry for
// a located listing is visible to searches as soon as Create returns.
func (s *ListingService) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	metrics.ListingsCreated.Inc()

	if s.events != nil {
		if err := s.events.PublishListingCreated(ctx, l); err != nil {
			slog.Warn("publish listing created", "id", l.ID, "error", err)
		}
	}

	return l, nil
}

// Get returns a single listing by ID.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	if id == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "must not be empty"}
	}
	return s.listings.GetByID(ctx, id)
}

// List returns all listings, optionally filtered to one owner.
func (s *ListingService) List(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	return s.listings.List(ctx, ownerID)
}

// Delete removes a listing on behalf of requesterID. Ownership is checked
// before any mutation; a mismatch leaves the store untouched.
func (s *ListingService) Delete(ctx context.Context, id, requesterID string) error {
	if id == "" {
		return &domain.ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if requesterID == "" {
		return &domain.ValidationError{Field: "requester", Reason: "must not be empty"}
	}

	if err := s.listings.Delete(ctx, id, requesterID); err != nil {
		return err
	}
	metrics.ListingsDeleted.Inc()

	if s.events != nil {
		if err := s.events.PublishListingDeleted(ctx, id); err != nil {
			slog.Warn("publish listing deleted", "id", id, "error", err)
		}
	}
	return nil
}
