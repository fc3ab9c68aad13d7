package handler

import (
	"net/http"

	"workspace-service/internal/middleware"
	"workspace-service/internal/workspace"
	"workspace-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

func NotificationsGet(c echo.Context) error {
	notifications, err := workspace.NotificationsGet(middleware.AuthUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

func Search(c echo.Context) error {
	messages, err := workspace.Search(middleware.AuthUserID(c), c.QueryParam("queryStr"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// Clear wipes the workspace back to its empty state. It needs no token: it
// exists so test environments can reset between runs.
func Clear(c echo.Context) error {
	log := logger.FromContext(c)

	if err := workspace.Clear(); err != nil {
		return writeError(c, err)
	}

	log.Info("Workspace cleared")
	return c.JSON(http.StatusOK, echo.Map{})
}
