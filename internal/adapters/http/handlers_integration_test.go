//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/roomradar/roomradar/internal/adapters/postgres"
	"github.com/roomradar/roomradar/internal/core/domain"
	"github.com/roomradar/roomradar/internal/pkg/config"
)

// setupTestDB connects to the test database configured via ROOMRADAR_* env vars.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("roomradar-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func seedListing(t *testing.T, repo *postgres.ListingRepo, title, owner string, loc *domain.GeoPoint) string {
	t.Helper()
	l := &domain.Listing{
		Title:    title,
		Rent:     15000,
		Address:  "Integration Test Street",
		OwnerID:  owner,
		Location: loc,
	}
	if err := repo.Create(context.Background(), l); err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return l.ID
}

// TestSearchListings_Integration exercises the PostGIS radius query end to end.
func TestSearchListings_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	repo := postgres.NewListingRepo(db)
	owner := "integ-" + time.Now().Format("20060102150405")

	near := domain.GeoPoint{Lon: 77.6, Lat: 12.975}
	far := domain.GeoPoint{Lon: 77.7, Lat: 12.97}
	nearID := seedListing(t, repo, "Integ Near", owner, &near)
	farID := seedListing(t, repo, "Integ Far", owner, &far)
	defer repo.Delete(context.Background(), nearID, owner)
	defer repo.Delete(context.Background(), farID, owner)

	app := setupApp(repo)

	body := `{"center":[77.5946,12.9716],"radius_meters":20000}`
	req := httptest.NewRequest("POST", "/v1/listings/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Listings []domain.Listing `json:"listings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	var gotNear, gotFar int = -1, -1
	for i, l := range result.Listings {
		switch l.ID {
		case nearID:
			gotNear = i
		case farID:
			gotFar = i
		}
	}
	if gotNear == -1 || gotFar == -1 {
		t.Fatalf("seeded listings missing from results: near=%d far=%d", gotNear, gotFar)
	}
	if gotNear > gotFar {
		t.Errorf("expected near listing before far listing, got near=%d far=%d", gotNear, gotFar)
	}
}

// TestDeleteListing_Integration verifies ownership enforcement against a real database.
func TestDeleteListing_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	repo := postgres.NewListingRepo(db)
	owner := "integ-del-" + time.Now().Format("20060102150405")
	id := seedListing(t, repo, "Integ Delete", owner, nil)

	app := setupApp(repo)

	// Wrong owner first
	req := httptest.NewRequest("DELETE", "/v1/listings/"+id, nil)
	req.Header.Set("X-User-Id", "someone-else")
	req.Header.Set("X-User-Role", "landlord")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for non-owner, got %d", resp.StatusCode)
	}

	// Then the real owner
	req = httptest.NewRequest("DELETE", "/v1/listings/"+id, nil)
	req.Header.Set("X-User-Id", owner)
	req.Header.Set("X-User-Role", "landlord")
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for owner delete, got %d", resp.StatusCode)
	}
}
