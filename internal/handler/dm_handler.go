package handler

import (
	"net/http"

	"workspace-service/internal/middleware"
	"workspace-service/internal/workspace"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func DmCreate(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		UIDs []int `json:"uIds"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	dmID, err := workspace.DmCreate(middleware.AuthUserID(c), req.UIDs)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.DmCreatedCounter.Inc()
	log.Info("DM created", zap.Int("dmId", dmID), zap.Int("members", len(req.UIDs)+1))
	return c.JSON(http.StatusOK, echo.Map{"dmId": dmID})
}

func DmList(c echo.Context) error {
	dms, err := workspace.DmList(middleware.AuthUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"dms": dms})
}

func DmRemove(c echo.Context) error {
	dmID, err := intQueryParam(c, "dmId")
	if err != nil {
		return writeError(c, err)
	}

	if err := workspace.DmRemove(middleware.AuthUserID(c), dmID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func DmDetails(c echo.Context) error {
	dmID, err := intQueryParam(c, "dmId")
	if err != nil {
		return writeError(c, err)
	}

	details, err := workspace.DmDetails(middleware.AuthUserID(c), dmID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func DmLeave(c echo.Context) error {
	var req struct {
		DmID int `json:"dmId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.DmLeave(middleware.AuthUserID(c), req.DmID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func DmMessages(c echo.Context) error {
	dmID, err := intQueryParam(c, "dmId")
	if err != nil {
		return writeError(c, err)
	}
	start, err := intQueryParam(c, "start")
	if err != nil {
		return writeError(c, err)
	}

	page, err := workspace.DmMessages(middleware.AuthUserID(c), dmID, start)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
