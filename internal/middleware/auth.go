package middleware

import (
	"net/http"

	"workspace-service/internal/workspace"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
)

// AuthUserIDKey is the context key the authenticated user id is stored under.
const AuthUserIDKey = "auth_user_id"

// AuthMiddleware resolves the session token from the "token" header to a user
// id. Tokens that do not map to a live session are rejected with 403.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		token := c.Request().Header.Get("token")
		if token == "" {
			log.Error("Missing token header")
			prometheus.RecordRequestError("authorization")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "missing token"})
		}

		authUserID, err := workspace.ResolveToken(token)
		if err != nil {
			log.Error("Invalid session token")
			prometheus.RecordRequestError("authorization")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
		}

		c.Set(AuthUserIDKey, authUserID)
		return next(c)
	}
}

// AuthUserID retrieves the user id AuthMiddleware stored on the context.
func AuthUserID(c echo.Context) int {
	id, _ := c.Get(AuthUserIDKey).(int)
	return id
}
