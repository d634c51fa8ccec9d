package ports

import (
	"context"
	"time"

	"github.com/roomradar/roomradar/internal/core/domain"
)

// EventPublisher announces listing lifecycle events to a message broker.
// Publishing is best-effort: a broker outage must not fail the write path.
type EventPublisher interface {
	PublishListingCreated(ctx context.Context, l *domain.Listing) error
	PublishListingDeleted(ctx context.Context, id string) error
}

// CacheService provides read-through caching for search results.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
