package http

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers. Authentication happens upstream (gateway or reverse
// proxy); these carry the already-authenticated identity into the service.
const (
	HeaderUserID   = "X-User-Id"
	HeaderTenantID = "X-Tenant-Id"
	HeaderUserRole = "X-User-Role"
)

// actorFromRequest builds the acting identity from the identity headers.
// Missing or malformed headers fail closed with an error the caller renders
// as 400.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	header := ctx.Request().Header

	userID, err := kernel.UUIDFromString(header.Get(HeaderUserID))
	if err != nil {
		return kernel.Actor{}, errors.New("missing or invalid " + HeaderUserID + " header")
	}

	tenantID, err := kernel.UUIDFromString(header.Get(HeaderTenantID))
	if err != nil {
		return kernel.Actor{}, errors.New("missing or invalid " + HeaderTenantID + " header")
	}

	role, err := kernel.RoleFromString(header.Get(HeaderUserRole))
	if err != nil {
		return kernel.Actor{}, errors.New("missing or invalid " + HeaderUserRole + " header")
	}

	return kernel.NewActor(userID, tenantID, role)
}
