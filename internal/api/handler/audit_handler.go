package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-squad/user-api/internal/core/ports"
)

// AuditHandler serves the per-user activity trail.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Activity handles GET /users/:id/activity — ADMIN only.
//
// @Summary      List recent activity for a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {array}   domain.AuditEntry
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/{id}/activity [get]
func (h *AuditHandler) Activity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	entries, err := h.service.Activity(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
