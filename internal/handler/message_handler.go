package handler

import (
	"net/http"

	"workspace-service/internal/middleware"
	"workspace-service/internal/workspace"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
)

func MessageSend(c echo.Context) error {
	var req struct {
		ChannelID int    `json:"channelId"`
		Message   string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	messageID, err := workspace.MessageSend(middleware.AuthUserID(c), req.ChannelID, req.Message)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.RecordMessageSent("channel")
	return c.JSON(http.StatusOK, echo.Map{"messageId": messageID})
}

func MessageSendDm(c echo.Context) error {
	var req struct {
		DmID    int    `json:"dmId"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	messageID, err := workspace.MessageSendDm(middleware.AuthUserID(c), req.DmID, req.Message)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.RecordMessageSent("dm")
	return c.JSON(http.StatusOK, echo.Map{"messageId": messageID})
}

func MessageEdit(c echo.Context) error {
	var req struct {
		MessageID int    `json:"messageId"`
		Message   string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.MessageEdit(middleware.AuthUserID(c), req.MessageID, req.Message); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func MessageRemove(c echo.Context) error {
	messageID, err := intQueryParam(c, "messageId")
	if err != nil {
		return writeError(c, err)
	}

	if err := workspace.MessageRemove(middleware.AuthUserID(c), messageID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func MessageSendLater(c echo.Context) error {
	var req struct {
		ChannelID int    `json:"channelId"`
		Message   string `json:"message"`
		TimeSent  int64  `json:"timeSent"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	messageID, err := workspace.MessageSendLater(middleware.AuthUserID(c), req.ChannelID, req.Message, req.TimeSent)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messageId": messageID})
}

func MessageSendLaterDm(c echo.Context) error {
	var req struct {
		DmID     int    `json:"dmId"`
		Message  string `json:"message"`
		TimeSent int64  `json:"timeSent"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	messageID, err := workspace.MessageSendLaterDm(middleware.AuthUserID(c), req.DmID, req.Message, req.TimeSent)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messageId": messageID})
}

func MessageShare(c echo.Context) error {
	var req struct {
		OgMessageID int    `json:"ogMessageId"`
		Message     string `json:"message"`
		ChannelID   int    `json:"channelId"`
		DmID        int    `json:"dmId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	sharedMessageID, err := workspace.MessageShare(middleware.AuthUserID(c), req.OgMessageID, req.ChannelID, req.DmID, req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sharedMessageId": sharedMessageID})
}

func MessageReact(c echo.Context) error {
	var req struct {
		MessageID int `json:"messageId"`
		ReactID   int `json:"reactId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.MessageReact(middleware.AuthUserID(c), req.MessageID, req.ReactID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func MessageUnreact(c echo.Context) error {
	var req struct {
		MessageID int `json:"messageId"`
		ReactID   int `json:"reactId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.MessageUnreact(middleware.AuthUserID(c), req.MessageID, req.ReactID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func MessagePin(c echo.Context) error {
	var req struct {
		MessageID int `json:"messageId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.MessagePin(middleware.AuthUserID(c), req.MessageID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func MessageUnpin(c echo.Context) error {
	var req struct {
		MessageID int `json:"messageId"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.MessageUnpin(middleware.AuthUserID(c), req.MessageID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}
