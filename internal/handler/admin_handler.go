package handler

import (
	"net/http"

	"workspace-service/internal/middleware"
	"workspace-service/internal/workspace"
	"workspace-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func AdminUserRemove(c echo.Context) error {
	log := logger.FromContext(c)

	uID, err := intQueryParam(c, "uId")
	if err != nil {
		return writeError(c, err)
	}

	if err := workspace.AdminUserRemove(middleware.AuthUserID(c), uID); err != nil {
		return writeError(c, err)
	}

	log.Info("User removed from workspace", zap.Int("uId", uID))
	return c.JSON(http.StatusOK, echo.Map{})
}

func AdminPermissionChange(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		UID          int `json:"uId"`
		PermissionID int `json:"permissionId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.AdminPermissionChange(middleware.AuthUserID(c), req.UID, req.PermissionID); err != nil {
		return writeError(c, err)
	}

	log.Info("User permission changed", zap.Int("uId", req.UID), zap.Int("permissionId", req.PermissionID))
	return c.JSON(http.StatusOK, echo.Map{})
}
