package workspace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	setup(t)

	cases := []struct {
		name      string
		email     string
		password  string
		nameFirst string
		nameLast  string
	}{
		{"bad email", "not-an-email", "password123", "Ada", "Lovelace"},
		{"short password", "ada@example.com", "12345", "Ada", "Lovelace"},
		{"empty first name", "ada@example.com", "password123", "", "Lovelace"},
		{"empty last name", "ada@example.com", "password123", "Ada", ""},
		{"first name too long", "ada@example.com", "password123", string(make([]byte, 51)), "Lovelace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Register(tc.email, tc.password, tc.nameFirst, tc.nameLast)
			requireValidation(t, err)
		})
	}
}

func TestRegisterAcceptsMultibyteNames(t *testing.T) {
	setup(t)

	// 50 accented characters is the limit even though it is 100 bytes.
	result, err := Register("e@example.com", "password123", strings.Repeat("é", 50), "Müller")
	require.NoError(t, err)
	assert.NotZero(t, result.AuthUserID)

	_, err = Register("f@example.com", "password123", strings.Repeat("é", 51), "Müller")
	requireValidation(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup(t)

	registerUser(t, "ada@example.com", "Ada", "Lovelace")
	_, err := Register("ada@example.com", "password123", "Other", "Person")
	requireValidation(t, err)
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	setup(t)

	first := registerUser(t, "a@example.com", "Ada", "Lovelace")
	second := registerUser(t, "b@example.com", "Grace", "Hopper")
	assert.Equal(t, 1, first.AuthUserID)
	assert.Equal(t, 2, second.AuthUserID)
}

func TestHandleGeneration(t *testing.T) {
	setup(t)

	ada := registerUser(t, "a@example.com", "Ada", "Lovelace")
	assert.Equal(t, "adalovelace", userHandle(t, ada.AuthUserID))

	// Same name gets a numeric suffix.
	twin := registerUser(t, "b@example.com", "Ada", "Lovelace")
	assert.Equal(t, "adalovelace0", userHandle(t, twin.AuthUserID))

	triplet := registerUser(t, "c@example.com", "Ada", "Lovelace")
	assert.Equal(t, "adalovelace1", userHandle(t, triplet.AuthUserID))

	// Non-alphanumerics are stripped and long names truncated to 20.
	long := registerUser(t, "d@example.com", "Jean-Michel!", "Basquiat-Warhola")
	assert.Equal(t, "jeanmichelbasquiatwa", userHandle(t, long.AuthUserID))
}

func TestTokenRoundTrip(t *testing.T) {
	setup(t)

	result := registerUser(t, "ada@example.com", "Ada", "Lovelace")
	uID, err := ResolveToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.AuthUserID, uID)

	_, err = ResolveToken("not a real token")
	requireAuthorization(t, err)
}

func TestLogin(t *testing.T) {
	setup(t)

	registered := registerUser(t, "ada@example.com", "Ada", "Lovelace")

	loggedIn, err := Login("ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.AuthUserID, loggedIn.AuthUserID)
	assert.NotEqual(t, registered.Token, loggedIn.Token)

	// Both sessions resolve independently.
	for _, token := range []string{registered.Token, loggedIn.Token} {
		uID, err := ResolveToken(token)
		require.NoError(t, err)
		assert.Equal(t, registered.AuthUserID, uID)
	}

	_, err = Login("ada@example.com", "wrongpassword")
	requireValidation(t, err)

	_, err = Login("nobody@example.com", "password123")
	requireValidation(t, err)
}

func TestLogoutRevokesOnlyThatSession(t *testing.T) {
	setup(t)

	registered := registerUser(t, "ada@example.com", "Ada", "Lovelace")
	loggedIn, err := Login("ada@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, Logout(registered.Token))

	_, err = ResolveToken(registered.Token)
	requireAuthorization(t, err)

	uID, err := ResolveToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.AuthUserID, uID)

	// A revoked token cannot log out twice.
	requireAuthorization(t, Logout(registered.Token))
}

func TestPasswordResetFlow(t *testing.T) {
	setup(t)

	registered := registerUser(t, "ada@example.com", "Ada", "Lovelace")

	code, err := PasswordResetRequest("ada@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	// Requesting a reset revokes every open session.
	_, err = ResolveToken(registered.Token)
	requireAuthorization(t, err)

	requireValidation(t, PasswordResetReset("000000x", "newpassword"))
	requireValidation(t, PasswordResetReset(code, "short"))

	require.NoError(t, PasswordResetReset(code, "newpassword"))

	_, err = Login("ada@example.com", "password123")
	requireValidation(t, err)
	result, err := Login("ada@example.com", "newpassword")
	require.NoError(t, err)
	assert.Equal(t, registered.AuthUserID, result.AuthUserID)

	// The code is single-use.
	requireValidation(t, PasswordResetReset(code, "anotherpassword"))
}

func TestPasswordResetRequestUnknownEmailIsSilent(t *testing.T) {
	setup(t)

	code, err := PasswordResetRequest("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, code)
}
