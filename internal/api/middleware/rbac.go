package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/identity-squad/user-api/internal/api/metrics"
	"github.com/identity-squad/user-api/internal/core/domain"
)

// Policy is the static per-route rule set evaluated by the authorization
// gate.
type Policy struct {
	// AllowedRoles grant access unconditionally (subject to ForbidSelf).
	AllowedRoles []domain.Role
	// AllowSelf additionally grants access when the requester's id equals
	// the target resource id.
	AllowSelf bool
	// ForbidSelf vetoes a role-granted request whose target is the
	// requester themselves. With AllowedRoles={ADMIN} this means an ADMIN
	// may act on anyone except their own record.
	ForbidSelf bool
}

// Authorize decides allow/deny for one request. Precedence: an allowed role
// wins first (minus the self veto), then ownership, then deny.
func Authorize(id domain.Identity, p Policy, targetID int64) error {
	for _, r := range p.AllowedRoles {
		if id.Role != r {
			continue
		}
		if p.ForbidSelf && id.ID == targetID {
			return domain.ErrForbidden
		}
		return nil
	}
	if p.AllowSelf && id.ID == targetID {
		return nil
	}
	return domain.ErrForbidden
}

// Require wraps Authorize as route middleware. For ownership-sensitive
// routes the target id is read from the :id path parameter.
func Require(p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := Identity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			var targetID int64
			if raw := c.Param("id"); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
				}
				targetID = id
			}

			if err := Authorize(identity, p, targetID); err != nil {
				metrics.AuthzDenialsTotal.WithLabelValues(c.Path()).Inc()
				return err
			}
			return next(c)
		}
	}
}
