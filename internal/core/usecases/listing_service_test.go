package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/roomradar/roomradar/internal/core/domain"
	"github.com/roomradar/roomradar/internal/core/usecases"
)

// --- Mock ListingRepository ---

type mockListingRepo struct {
	createFn       func(ctx context.Context, l *domain.Listing) error
	getByIDFn      func(ctx context.Context, id string) (*domain.Listing, error)
	listFn         func(ctx context.Context, ownerID string) ([]domain.Listing, error)
	deleteFn       func(ctx context.Context, id, requesterID string) error
	searchRadiusFn func(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error)
}

func (m *mockListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	if m.createFn != nil {
		return m.createFn(ctx, l)
	}
	return nil
}

func (m *mockListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockListingRepo) List(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockListingRepo) Delete(ctx context.Context, id, requesterID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, requesterID)
	}
	return nil
}

func (m *mockListingRepo) SearchRadius(ctx context.Context, center domain.GeoPoint, radiusMeters float64) ([]domain.Listing, error) {
	if m.searchRadiusFn != nil {
		return m.searchRadiusFn(ctx, center, radiusMeters)
	}
	return nil, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	created []string
	deleted []string
	err     error
}

func (m *mockPublisher) PublishListingCreated(ctx context.Context, l *domain.Listing) error {
	m.created = append(m.created, l.ID)
	return m.err
}

func (m *mockPublisher) PublishListingDeleted(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

// --- Tests ---

func TestListingService_Create(t *testing.T) {
	repo := &mockListingRepo{
		createFn: func(ctx context.Context, l *domain.Listing) error {
			l.ID = "l-1"
			return nil
		},
	}
	events := &mockPublisher{}
	svc := usecases.NewListingService(repo, events)

	l, err := svc.Create(context.Background(), &domain.Listing{
		Title: "Bright room", Rent: 12000, Address: "5 Brigade Rd", OwnerID: "u-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID != "l-1" {
		t.Errorf("expected assigned id, got %q", l.ID)
	}
	if len(events.created) != 1 || events.created[0] != "l-1" {
		t.Errorf("created event not published: %v", events.created)
	}
}

func TestListingService_Create_RejectsInvalid(t *testing.T) {
	repoCalled := false
	repo := &mockListingRepo{
		createFn: func(ctx context.Context, l *domain.Listing) error {
			repoCalled = true
			return nil
		},
	}
	svc := usecases.NewListingService(repo, nil)

	bad := []*domain.Listing{
		{Title: "", Rent: 100, OwnerID: "u"},
		{Title: "x", Rent: 0, OwnerID: "u"},
		{Title: "x", Rent: 100, OwnerID: ""},
		{Title: "x", Rent: 100, OwnerID: "u", Location: &domain.GeoPoint{Lon: 200, Lat: 10}},
	}
	for i, l := range bad {
		if _, err := svc.Create(context.Background(), l); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
		var verr *domain.ValidationError
		if _, err := svc.Create(context.Background(), l); !errors.As(err, &verr) {
			t.Errorf("case %d: expected *ValidationError, got %T", i, err)
		}
	}
	if repoCalled {
		t.Error("invalid listing must never reach the repository")
	}
}

func TestListingService_Create_PublishFailureDoesNotFail(t *testing.T) {
	repo := &mockListingRepo{
		createFn: func(ctx context.Context, l *domain.Listing) error {
			l.ID = "l-1"
			return nil
		},
	}
	events := &mockPublisher{err: errors.New("broker down")}
	svc := usecases.NewListingService(repo, events)

	if _, err := svc.Create(context.Background(), &domain.Listing{
		Title: "room", Rent: 100, OwnerID: "u",
	}); err != nil {
		t.Errorf("publish failure must not fail the create: %v", err)
	}
}

func TestListingService_Delete(t *testing.T) {
	var gotID, gotRequester string
	repo := &mockListingRepo{
		deleteFn: func(ctx context.Context, id, requesterID string) error {
			gotID, gotRequester = id, requesterID
			return nil
		},
	}
	events := &mockPublisher{}
	svc := usecases.NewListingService(repo, events)

	if err := svc.Delete(context.Background(), "l-1", "u-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "l-1" || gotRequester != "u-1" {
		t.Errorf("repo called with (%q, %q)", gotID, gotRequester)
	}
	if len(events.deleted) != 1 {
		t.Error("deleted event not published")
	}
}

func TestListingService_Delete_PropagatesOwnershipErrors(t *testing.T) {
	repo := &mockListingRepo{
		deleteFn: func(ctx context.Context, id, requesterID string) error {
			return domain.ErrForbidden
		},
	}
	events := &mockPublisher{}
	svc := usecases.NewListingService(repo, events)

	if err := svc.Delete(context.Background(), "l-1", "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if len(events.deleted) != 0 {
		t.Error("no event may be published for a rejected delete")
	}
}

func TestListingService_Get_EmptyID(t *testing.T) {
	svc := usecases.NewListingService(&mockListingRepo{}, nil)
	if _, err := svc.Get(context.Background(), ""); err == nil {
		t.Error("expected validation error for empty id")
	}
}
