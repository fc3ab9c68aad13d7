package workspace

import (
	"path/filepath"
	"testing"

	"workspace-service/internal/model"
	"workspace-service/pkg/config"
	"workspace-service/pkg/jwtutil"
	"workspace-service/pkg/store"

	"github.com/stretchr/testify/require"
)

// setup points the store at a fresh snapshot file for each test.
func setup(t *testing.T) {
	t.Helper()
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	require.NoError(t, store.Initialize(filepath.Join(t.TempDir(), "database.json")))
}

func registerUser(t *testing.T, email, nameFirst, nameLast string) *AuthResult {
	t.Helper()
	result, err := Register(email, "password123", nameFirst, nameLast)
	require.NoError(t, err)
	return result
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	werr, ok := err.(*Error)
	require.True(t, ok, "expected a workspace error, got %T", err)
	require.Equal(t, KindValidation, werr.Kind, "expected a validation error: %v", err)
}

func requireAuthorization(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	werr, ok := err.(*Error)
	require.True(t, ok, "expected a workspace error, got %T", err)
	require.Equal(t, KindAuthorization, werr.Kind, "expected an authorization error: %v", err)
}

func userHandle(t *testing.T, uID int) string {
	t.Helper()
	handle := ""
	require.NoError(t, store.View(func(s *model.Snapshot) error {
		u := s.FindUser(uID)
		require.NotNil(t, u)
		handle = u.Handle
		return nil
	}))
	return handle
}
