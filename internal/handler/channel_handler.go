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

func ChannelsCreate(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name     string `json:"name"`
		IsPublic bool   `json:"isPublic"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	channelID, err := workspace.ChannelsCreate(middleware.AuthUserID(c), req.Name, req.IsPublic)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.ChannelCreatedCounter.Inc()
	log.Info("Channel created", zap.Int("channelId", channelID), zap.String("name", req.Name))
	return c.JSON(http.StatusOK, echo.Map{"channelId": channelID})
}

func ChannelsList(c echo.Context) error {
	channels, err := workspace.ChannelsList(middleware.AuthUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"channels": channels})
}

func ChannelsListAll(c echo.Context) error {
	channels, err := workspace.ChannelsListAll(middleware.AuthUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"channels": channels})
}

func ChannelDetails(c echo.Context) error {
	channelID, err := intQueryParam(c, "channelId")
	if err != nil {
		return writeError(c, err)
	}

	details, err := workspace.ChannelDetails(middleware.AuthUserID(c), channelID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func ChannelJoin(c echo.Context) error {
	var req struct {
		ChannelID int `json:"channelId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.ChannelJoin(middleware.AuthUserID(c), req.ChannelID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func ChannelInvite(c echo.Context) error {
	var req struct {
		ChannelID int `json:"channelId"`
		UID       int `json:"uId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.ChannelInvite(middleware.AuthUserID(c), req.ChannelID, req.UID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func ChannelMessages(c echo.Context) error {
	channelID, err := intQueryParam(c, "channelId")
	if err != nil {
		return writeError(c, err)
	}
	start, err := intQueryParam(c, "start")
	if err != nil {
		return writeError(c, err)
	}

	page, err := workspace.ChannelMessages(middleware.AuthUserID(c), channelID, start)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func ChannelLeave(c echo.Context) error {
	var req struct {
		ChannelID int `json:"channelId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.ChannelLeave(middleware.AuthUserID(c), req.ChannelID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func ChannelAddOwner(c echo.Context) error {
	var req struct {
		ChannelID int `json:"channelId"`
		UID       int `json:"uId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.ChannelAddOwner(middleware.AuthUserID(c), req.ChannelID, req.UID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func ChannelRemoveOwner(c echo.Context) error {
	var req struct {
		ChannelID int `json:"channelId"`
		UID       int `json:"uId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.ChannelRemoveOwner(middleware.AuthUserID(c), req.ChannelID, req.UID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}
