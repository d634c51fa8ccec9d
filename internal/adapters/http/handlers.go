package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/roomradar/roomradar/internal/core/domain"
)

// createListingRequest is the POST /v1/listings body. The location object
// carries lng and lat as separate optional fields so that a partial pair is
// representable — and rejected — rather than silently dropped.
type createListingRequest struct {
	Title         string            `json:"title"`
	Rent          float64           `json:"rent"`
	Address       string            `json:"address"`
	Description   string            `json:"description"`
	ContactNumber string            `json:"contact_number"`
	Images        []domain.ImageRef `json:"images"`
	Location      *locationRequest  `json:"location"`
}

type locationRequest struct {
	Lng *float64 `json:"lng"`
	Lat *float64 `json:"lat"`
}

// CreateListingHandler publishes a new listing for the calling landlord.
func CreateListingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := requireIdentity(c)
		if err != nil {
			return errUnauthorized(c, "authentication required")
		}
		if ident.Role != RoleLandlord {
			return errForbidden(c, "only landlords can create listings")
		}

		var req createListingRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		var point *domain.GeoPoint
		if req.Location != nil {
			point, err = domain.ParseCoordinates(req.Location.Lng, req.Location.Lat)
			if err != nil {
				return errFromDomain(c, err)
			}
		}

		listing := &domain.Listing{
			Title:         req.Title,
			Rent:          req.Rent,
			Address:       req.Address,
			Description:   req.Description,
			ContactNumber: req.ContactNumber,
			Images:        req.Images,
			Location:      point,
			OwnerID:       ident.UserID,
		}

		created, err := deps.Listings.Create(c.Context(), listing)
		if err != nil {
			return errFromDomain(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      created.ID,
			"title":   created.Title,
			"rent":    created.Rent,
			"address": created.Address,
		})
	}
}

// ListListingsHandler returns all listings, optionally filtered by owner.
func ListListingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listings, err := deps.Listings.List(c.Context(), c.Query("owner"))
		if err != nil {
			return errFromDomain(c, err)
		}
		if listings == nil {
			listings = []domain.Listing{}
		}
		return c.JSON(fiber.Map{"listings": listings, "count": len(listings)})
	}
}

// GetListingHandler returns a single listing by ID.
func GetListingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listing, err := deps.Listings.Get(c.Context(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(listing)
	}
}

// DeleteListingHandler removes a listing owned by the caller.
func DeleteListingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := requireIdentity(c)
		if err != nil {
			return errUnauthorized(c, "authentication required")
		}

		id := c.Params("id")
		if err := deps.Listings.Delete(c.Context(), id, ident.UserID); err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "id": id})
	}
}

// searchRequest is the POST /v1/listings/search body. The center is the
// [lng, lat] pair used everywhere else; radius defaults to 5 km.
type searchRequest struct {
	Center       *domain.GeoPoint `json:"center"`
	RadiusMeters *float64         `json:"radius_meters"`
}

// SearchListingsHandler returns listings within a radius of a center point,
// ordered by ascending distance.
func SearchListingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req searchRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return errFromDomain(c, err)
			}
			return errBadRequest(c, "invalid JSON body")
		}
		if req.Center == nil {
			return errBadRequest(c, "center is required as a [lng, lat] array")
		}

		radius := 5000.0
		if req.RadiusMeters != nil {
			radius = *req.RadiusMeters
		}

		results, err := deps.Search.Search(c.Context(), domain.SearchQuery{
			Center:       *req.Center,
			RadiusMeters: radius,
		})
		if err != nil {
			return errFromDomain(c, err)
		}
		if results == nil {
			results = []domain.Listing{}
		}

		return c.JSON(fiber.Map{"listings": results, "count": len(results)})
	}
}
