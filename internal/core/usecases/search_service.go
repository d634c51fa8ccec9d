package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roomradar/roomradar/internal/core/domain"
	"github.com/roomradar/roomradar/internal/core/ports"
	"github.com/roomradar/roomradar/internal/pkg/metrics"
)

// searchCacheTTL is short: a freshly created listing must show up in a
// renter's next search quickly, while identical repeat queries still avoid
// the index.
const searchCacheTTL = 60 * time.Second

// SearchService evaluates radius queries against the listing store.
type SearchService struct {
	listings ports.ListingRepository
	cache    ports.CacheService
}

// NewSearchService creates a new SearchService. cache may be nil.
func NewSearchService(listings ports.ListingRepository, cache ports.CacheService) *SearchService {
	return &SearchService{listings: listings, cache: cache}
}

// Search returns every listing within the query radius, ascending by
// distance with ties broken by listing ID. The center is validated before
// any scan; an empty store yields an empty result, not an error.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Listing, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	metrics.SearchesTotal.Inc()

	cacheKey := fmt.Sprintf("listings:radius:%.6f:%.6f:%.0f", q.Center.Lon, q.Center.Lat, q.RadiusMeters)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []domain.Listing
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.SearchCacheHits.Inc()
				return cached, nil
			}
		}
		metrics.SearchCacheMisses.Inc()
	}

	results, err := s.listings.SearchRadius(ctx, q.Center, q.RadiusMeters)
	if err != nil {
		return nil, err
	}
	metrics.SearchResultCount.Observe(float64(len(results)))

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, searchCacheTTL)
		}
	}

	return results, nil
}
