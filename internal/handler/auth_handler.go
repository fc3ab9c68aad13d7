package handler

import (
	"net/http"

	"workspace-service/internal/workspace"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		NameFirst string `json:"nameFirst"`
		NameLast  string `json:"nameLast"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	result, err := workspace.Register(req.Email, req.Password, req.NameFirst, req.NameLast)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.IncreaseActiveSessions()
	log.Info("User registered", zap.Int("authUserId", result.AuthUserID))
	return c.JSON(http.StatusOK, result)
}

func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	result, err := workspace.Login(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.IncreaseActiveSessions()
	log.Info("User logged in", zap.Int("authUserId", result.AuthUserID))
	return c.JSON(http.StatusOK, result)
}

func Logout(c echo.Context) error {
	log := logger.FromContext(c)

	if err := workspace.Logout(c.Request().Header.Get("token")); err != nil {
		return writeError(c, err)
	}

	prometheus.DecreaseActiveSessions()
	log.Info("Session revoked")
	return c.JSON(http.StatusOK, echo.Map{})
}

// PasswordResetRequest issues a reset code. The response is empty whether or
// not the email exists, so the endpoint cannot be used to enumerate accounts.
func PasswordResetRequest(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	// The code is returned to the caller of the workspace layer only. With no
	// mail transport configured, it is logged for operator delivery.
	code, err := workspace.PasswordResetRequest(req.Email)
	if err != nil {
		return writeError(c, err)
	}
	if code != "" {
		log.Info("Password reset code issued", zap.String("email", req.Email))
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func PasswordResetReset(c echo.Context) error {
	var req struct {
		ResetCode   string `json:"resetCode"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	if err := workspace.PasswordResetReset(req.ResetCode, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}
