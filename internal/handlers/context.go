package handlers

import (
	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the acting user id placed by the JWT
// middleware, or 0 when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// serviceError translates a service-layer error into the HTTP error Echo renders.
func serviceError(err error) error {
	return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
}
