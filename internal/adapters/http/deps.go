package http

import (
	"github.com/nats-io/nats.go"

	"github.com/roomradar/roomradar/internal/adapters/postgres"
	"github.com/roomradar/roomradar/internal/adapters/valkey"
	"github.com/roomradar/roomradar/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers. DB, NATS, and
// Cache may be nil (memory storage mode, broker or cache unavailable).
type Dependencies struct {
	Listings *usecases.ListingService
	Search   *usecases.SearchService
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
