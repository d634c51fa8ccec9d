// Package memory provides an in-process ListingRepository backed by an
// R-tree spatial index. It exists for development and tests: no PostGIS
// required, identical observable behavior to the postgres adapter.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"

	"github.com/roomradar/roomradar/internal/core/domain"
	"github.com/roomradar/roomradar/internal/pkg/geospatial"
)

// pointExtent is the side length of the degenerate rectangle that stands in
// for a point in the R-tree (rtreego requires positive extents).
const pointExtent = 1e-9

// ListingRepo keeps listings in a map and located listings in an R-tree.
// One RWMutex guards both, so a reader can never observe a listing present
// in the record set but absent from the index, or vice versa.
type ListingRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.Listing
	order   []string // insertion order for List
	tree    *rtreego.Rtree
	entries map[string]*treeEntry
}

type treeEntry struct {
	id   string
	loc  domain.GeoPoint
	rect *rtreego.Rect
}

func (e *treeEntry) Bounds() *rtreego.Rect { return e.rect }

// NewListingRepo creates an empty in-memory repository.
func NewListingRepo() *ListingRepo {
	return &ListingRepo{
		byID:    make(map[string]domain.Listing),
		tree:    rtreego.NewTree(2, 25, 50),
		entries: make(map[string]*treeEntry),
	}
}

// Create stores the listing and, when it has a location, indexes it before
// returning, under a single write lock.
func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[l.ID]; exists {
		return &domain.StorageError{Op: "create listing", Err: fmt.Errorf("duplicate id %s", l.ID)}
	}

	if l.Location != nil {
		entry := newTreeEntry(l.ID, *l.Location)
		r.tree.Insert(entry)
		r.entries[l.ID] = entry
	}

	r.byID[l.ID] = *l
	r.order = append(r.order, l.ID)
	return nil
}

// GetByID returns a copy of the listing or domain.ErrNotFound.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

// List returns listings in insertion order, optionally filtered by owner.
func (r *ListingRepo) List(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var listings []domain.Listing
	for _, id := range r.order {
		l := r.byID[id]
		if ownerID != "" && l.OwnerID != ownerID {
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Delete checks ownership and then removes the record and its index entry
// under one write lock; a failed check leaves both untouched.
func (r *ListingRepo) Delete(ctx context.Context, id, requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if l.OwnerID != requesterID {
		return domain.ErrForbidden
	}

	if entry, ok := r.entries[id]; ok {
		r.tree.Delete(entry)
		delete(r.entries, id)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// SearchRadius probes the R-tree with a bounding box around the circle,
// refines candidates by haversine distance, and sorts ascending by
// (distance, id). Listings without a location are never candidates.
func (r *ListingRepo) SearchRadius(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(center.Lat, center.Lon, radiusMeters)
	rect, err := rtreego.NewRect(
		rtreego.Point{minLon, minLat},
		[]float64{maxLon - minLon + pointExtent, maxLat - minLat + pointExtent},
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "radius search", Err: err}
	}

	var listings []domain.Listing
	for _, candidate := range r.tree.SearchIntersect(rect) {
		entry := candidate.(*treeEntry)
		dist := geospatial.Distance(center.Lat, center.Lon, entry.loc.Lat, entry.loc.Lon)
		if dist > radiusMeters {
			continue
		}
		l := r.byID[entry.id]
		d := dist
		l.Distance = &d
		listings = append(listings, l)
	}

	sort.Slice(listings, func(i, j int) bool {
		if *listings[i].Distance != *listings[j].Distance {
			return *listings[i].Distance < *listings[j].Distance
		}
		return listings[i].ID < listings[j].ID
	})
	return listings, nil
}

func newTreeEntry(id string, loc domain.GeoPoint) *treeEntry {
	rect := rtreego.Point{loc.Lon, loc.Lat}.ToRect(pointExtent)
	return &treeEntry{id: id, loc: loc, rect: rect}
}
