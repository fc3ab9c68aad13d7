package handler

import (
	"net/http"

	"workspace-service/internal/middleware"
	"workspace-service/internal/workspace"

	"github.com/labstack/echo/v4"
)

func UserProfile(c echo.Context) error {
	uID, err := intQueryParam(c, "uId")
	if err != nil {
		return writeError(c, err)
	}

	profile, err := workspace.UserProfile(middleware.AuthUserID(c), uID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": profile})
}

func UsersAll(c echo.Context) error {
	users, err := workspace.UsersAll(middleware.AuthUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

func UserSetName(c echo.Context) error {
	var req struct {
		NameFirst string `json:"nameFirst"`
		NameLast  string `json:"nameLast"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.UserSetName(middleware.AuthUserID(c), req.NameFirst, req.NameLast); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func UserSetEmail(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.UserSetEmail(middleware.AuthUserID(c), req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func UserSetHandle(c echo.Context) error {
	var req struct {
		HandleStr string `json:"handleStr"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.UserSetHandle(middleware.AuthUserID(c), req.HandleStr); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func UserStats(c echo.Context) error {
	stats, err := workspace.UserStats(middleware.AuthUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"userStats": stats})
}

func UsersStats(c echo.Context) error {
	stats, err := workspace.UsersStats(middleware.AuthUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"workspaceStats": stats})
}
