package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"workspace-service/internal/middleware"
	"workspace-service/pkg/config"
	"workspace-service/pkg/jwtutil"
	"workspace-service/pkg/store"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	require.NoError(t, store.Initialize(filepath.Join(t.TempDir(), "database.json")))

	e := echo.New()
	e.DELETE("/clear/v1", Clear)
	e.POST("/auth/register/v3", Register)
	e.POST("/auth/login/v3", Login)
	e.POST("/auth/logout/v2", Logout)
	e.POST("/auth/passwordreset/request/v1", PasswordResetRequest)
	e.DELETE("/admin/user/remove/v1", AdminUserRemove, middleware.AuthMiddleware)
	e.POST("/channels/create/v3", ChannelsCreate, middleware.AuthMiddleware)
	e.GET("/channels/list/v3", ChannelsList, middleware.AuthMiddleware)
	e.GET("/channel/messages/v3", ChannelMessages, middleware.AuthMiddleware)
	e.POST("/message/send/v2", MessageSend, middleware.AuthMiddleware)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("token", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRegisterAndSendOverHTTP(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/register/v3", "", echo.Map{
		"email": "ada@example.com", "password": "password123",
		"nameFirst": "Ada", "nameLast": "Lovelace",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	auth := decode(t, rec)
	token, _ := auth["token"].(string)
	require.NotEmpty(t, token)
	assert.EqualValues(t, 1, auth["authUserId"])

	rec = doJSON(t, e, http.MethodPost, "/channels/create/v3", token, echo.Map{
		"name": "general", "isPublic": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["channelId"])

	rec = doJSON(t, e, http.MethodPost, "/message/send/v2", token, echo.Map{
		"channelId": 1, "message": "hello over http",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/channel/messages/v3?channelId=1&start=0", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	messages, _ := page["messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.EqualValues(t, 0, page["start"])
	assert.EqualValues(t, -1, page["end"])
}

func TestErrorStatusMapping(t *testing.T) {
	e := newTestServer(t)

	// Validation failures map to 400.
	rec := doJSON(t, e, http.MethodPost, "/auth/register/v3", "", echo.Map{
		"email": "bad", "password": "password123", "nameFirst": "A", "nameLast": "B",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing and garbage tokens map to 403.
	rec = doJSON(t, e, http.MethodPost, "/channels/create/v3", "", echo.Map{"name": "x", "isPublic": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, e, http.MethodPost, "/channels/create/v3", "garbage", echo.Map{"name": "x", "isPublic": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogoutOverHTTP(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/register/v3", "", echo.Map{
		"email": "ada@example.com", "password": "password123",
		"nameFirst": "Ada", "nameLast": "Lovelace",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["token"].(string)

	rec = doJSON(t, e, http.MethodPost, "/auth/logout/v2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer opens authenticated routes.
	rec = doJSON(t, e, http.MethodGet, "/channels/list/v3", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestActiveSessionsGaugeOnBulkRevocation(t *testing.T) {
	e := newTestServer(t)
	base := testutil.ToFloat64(prometheus.ActiveSessionsGauge)

	rec := doJSON(t, e, http.MethodPost, "/auth/register/v3", "", echo.Map{
		"email": "owner@example.com", "password": "password123",
		"nameFirst": "Olive", "nameLast": "Owner",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	ownerToken, _ := decode(t, rec)["token"].(string)

	rec = doJSON(t, e, http.MethodPost, "/auth/register/v3", "", echo.Map{
		"email": "target@example.com", "password": "password123",
		"nameFirst": "Tess", "nameLast": "Target",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	for i := 0; i < 2; i++ {
		rec = doJSON(t, e, http.MethodPost, "/auth/login/v3", "", echo.Map{
			"email": "target@example.com", "password": "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, base+4, testutil.ToFloat64(prometheus.ActiveSessionsGauge))

	// A reset request revokes every session of the account, and the gauge
	// drops by the same amount.
	rec = doJSON(t, e, http.MethodPost, "/auth/passwordreset/request/v1", "", echo.Map{
		"email": "target@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, base+1, testutil.ToFloat64(prometheus.ActiveSessionsGauge))

	// Admin removal revokes the removed user's sessions too.
	rec = doJSON(t, e, http.MethodPost, "/auth/login/v3", "", echo.Map{
		"email": "target@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodDelete, "/admin/user/remove/v1?uId=2", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, base+1, testutil.ToFloat64(prometheus.ActiveSessionsGauge))
}

func TestClearOverHTTP(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/register/v3", "", echo.Map{
		"email": "ada@example.com", "password": "password123",
		"nameFirst": "Ada", "nameLast": "Lovelace",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["token"].(string)

	rec = doJSON(t, e, http.MethodDelete, "/clear/v1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// All sessions die with the wipe, and ids restart from 1.
	rec = doJSON(t, e, http.MethodGet, "/channels/list/v3", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/auth/register/v3", "", echo.Map{
		"email": "ada@example.com", "password": "password123",
		"nameFirst": "Ada", "nameLast": "Lovelace",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["authUserId"])
}
