package handler

import (
	"net/http"

	"workspace-service/internal/middleware"
	"workspace-service/internal/workspace"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
)

func StandupStart(c echo.Context) error {
	prometheus.RecordStandupOperation("start")

	var req struct {
		ChannelID int `json:"channelId"`
		Length    int `json:"length"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	timeFinish, err := workspace.StandupStart(middleware.AuthUserID(c), req.ChannelID, req.Length)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"timeFinish": timeFinish})
}

func StandupActive(c echo.Context) error {
	prometheus.RecordStandupOperation("active")

	channelID, err := intQueryParam(c, "channelId")
	if err != nil {
		return writeError(c, err)
	}

	result, err := workspace.StandupActive(middleware.AuthUserID(c), channelID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func StandupSend(c echo.Context) error {
	prometheus.RecordStandupOperation("send")

	var req struct {
		ChannelID int    `json:"channelId"`
		Message   string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.StandupSend(middleware.AuthUserID(c), req.ChannelID, req.Message); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}
