// Package controller exposes the HTTP handlers of the API. Every
// controller holds the backend-agnostic store; handlers never see
// which backend serves them.
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

// storeFor returns the viewer-appropriate store view. Restricted
// roles get redacted reads; everyone else the store unchanged.
func storeFor(c *fiber.Ctx, st *store.Store) *store.Store {
	if user, ok := c.Locals("user").(*models.User); ok {
		return st.ForRole(user.RoleName)
	}
	return st
}

// actorFrom extracts the acting user for privileged store calls. The
// zero Actor carries no role and fails every privilege check.
func actorFrom(c *fiber.Ctx) models.Actor {
	if actor, ok := c.Locals("actor").(models.Actor); ok {
		return actor
	}
	return models.Actor{}
}

// currentUserID returns the authenticated user's id for audit fields.
func currentUserID(c *fiber.Ctx) *int64 {
	if user, ok := c.Locals("user").(*models.User); ok {
		return &user.ID
	}
	return nil
}

// storeError maps store sentinel errors to HTTP statuses.
func storeError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, store.ErrPermissionDenied):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Permission denied", nil)
	case errors.Is(err, store.ErrLastAdmin):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Cannot remove the last admin user", nil)
	case errors.Is(err, store.ErrValidation):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, message, err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
}

// queryID parses an optional int64 query parameter into a filter
// pointer.
func queryID(c *fiber.Ctx, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id := utils.ParseID(raw)
	if id == 0 {
		return nil
	}
	return &id
}
