package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/roomradar/roomradar/internal/core/domain"
	"github.com/roomradar/roomradar/internal/core/usecases"
)

// --- Mock CacheService ---

type mockCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.store[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

func mustQuery(t *testing.T, lon, lat, radius float64) domain.SearchQuery {
	t.Helper()
	center, err := domain.NewGeoPoint(lon, lat)
	if err != nil {
		t.Fatalf("bad test center: %v", err)
	}
	return domain.SearchQuery{Center: center, RadiusMeters: radius}
}

func TestSearchService_Search(t *testing.T) {
	dist := 611.5
	repo := &mockListingRepo{
		searchRadiusFn: func(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error) {
			if center.Lon != 77.6 || center.Lat != 12.97 {
				t.Errorf("center mangled: %v", center)
			}
			loc := domain.GeoPoint{Lon: 77.5946, Lat: 12.9716}
			return []domain.Listing{
				{ID: "l-1", Title: "near", Location: &loc, Distance: &dist},
			}, nil
		},
	}
	svc := usecases.NewSearchService(repo, nil)

	results, err := svc.Search(context.Background(), mustQuery(t, 77.6, 12.97, 2000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "l-1" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].Distance == nil || *results[0].Distance != dist {
		t.Errorf("distance lost: %v", results[0].Distance)
	}
}

func TestSearchService_RejectsBeforeScan(t *testing.T) {
	scanned := false
	repo := &mockListingRepo{
		searchRadiusFn: func(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error) {
			scanned = true
			return nil, nil
		},
	}
	svc := usecases.NewSearchService(repo, nil)

	bad := []domain.SearchQuery{
		{Center: domain.GeoPoint{Lon: 200, Lat: 10}, RadiusMeters: 100},
		{Center: domain.GeoPoint{Lon: 10, Lat: 95}, RadiusMeters: 100},
		mustQuery(t, 10, 10, -5),
		mustQuery(t, 10, 10, domain.MaxSearchRadiusMeters+1),
	}
	for i, q := range bad {
		if _, err := svc.Search(context.Background(), q); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if scanned {
		t.Error("invalid query must fail before any scan")
	}
}

func TestSearchService_EmptyResultIsNotAnError(t *testing.T) {
	svc := usecases.NewSearchService(&mockListingRepo{}, nil)
	results, err := svc.Search(context.Background(), mustQuery(t, 77.6, 12.97, 500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestSearchService_CacheAside(t *testing.T) {
	calls := 0
	repo := &mockListingRepo{
		searchRadiusFn: func(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error) {
			calls++
			d := 42.0
			loc := domain.GeoPoint{Lon: 77.5946, Lat: 12.9716}
			return []domain.Listing{{ID: "l-1", Title: "cached", Location: &loc, Distance: &d}}, nil
		},
	}
	svc := usecases.NewSearchService(repo, newMockCache())

	q := mustQuery(t, 77.6, 12.97, 2000)
	for i := 0; i < 3; i++ {
		results, err := svc.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if len(results) != 1 || results[0].ID != "l-1" {
			t.Fatalf("search %d: unexpected results %+v", i, results)
		}
		if results[0].Location == nil || results[0].Location.Lon != 77.5946 {
			t.Errorf("search %d: location lost through cache round trip", i)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 repository scan, got %d", calls)
	}
}

func TestSearchService_RepoErrorSurfaces(t *testing.T) {
	repo := &mockListingRepo{
		searchRadiusFn: func(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error) {
			return nil, &domain.StorageError{Op: "radius search", Err: errors.New("index unreachable")}
		},
	}
	svc := usecases.NewSearchService(repo, nil)

	_, err := svc.Search(context.Background(), mustQuery(t, 10, 10, 100))
	var serr *domain.StorageError
	if !errors.As(err, &serr) {
		t.Errorf("expected *StorageError, got %v", err)
	}
}
