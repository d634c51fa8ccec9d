package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Identity is the caller as asserted by the external identity provider.
// Authentication itself is out of scope: an upstream gateway terminates the
// session and injects these headers, and this service only reads them.
type Identity struct {
	UserID string
	Role   string // "landlord" or "renter"
}

const (
	headerUserID = "X-User-Id"
	headerRole   = "X-User-Role"

	RoleLandlord = "landlord"
	RoleRenter   = "renter"
)

// IdentityMiddleware extracts the caller identity into request locals.
// Requests without identity headers pass through anonymously; handlers that
// need an identity enforce it via requireIdentity.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerUserID)
		if id != "" {
			c.Locals("identity", Identity{UserID: id, Role: c.Get(headerRole)})
		}
		return c.Next()
	}
}

// errNoIdentity signals a request without identity headers. A real sentinel,
// not a written response: fiber handlers writing a 401 return nil, so the
// caller could never branch on that.
var errNoIdentity = errors.New("no caller identity")

// requireIdentity returns the caller identity or errNoIdentity.
func requireIdentity(c *fiber.Ctx) (Identity, error) {
	ident, ok := c.Locals("identity").(Identity)
	if !ok || ident.UserID == "" {
		return Identity{}, errNoIdentity
	}
	return ident, nil
}
