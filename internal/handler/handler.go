package handler

import (
	"errors"
	"net/http"
	"strconv"

	"workspace-service/internal/workspace"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// writeError maps a workspace error onto the HTTP surface: validation
// failures become 400, authorization failures 403, anything else 500.
func writeError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	var werr *workspace.Error
	if errors.As(err, &werr) {
		status := http.StatusBadRequest
		errType := "validation"
		if werr.Kind == workspace.KindAuthorization {
			status = http.StatusForbidden
			errType = "authorization"
		}
		prometheus.RecordRequestError(errType)
		return c.JSON(status, echo.Map{"error": werr.Message})
	}

	log.Error("Request failed", zap.Error(err))
	prometheus.RecordRequestError("internal")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// intQueryParam parses a required integer query parameter.
func intQueryParam(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0, &workspace.Error{Kind: workspace.KindValidation, Message: name + " must be an integer"}
	}
	return value, nil
}

func invalidRequest(c echo.Context, err error) error {
	log := logger.FromContext(c)
	log.Error("Failed to parse request", zap.Error(err))
	prometheus.RecordRequestError("validation")
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
