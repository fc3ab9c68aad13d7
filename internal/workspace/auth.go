package workspace

import (
	"fmt"
	"math/rand"
	"net/mail"
	"strconv"
	"strings"

	"workspace-service/internal/model"
	"workspace-service/pkg/jwtutil"
	"workspace-service/pkg/store"
	"workspace-service/prometheus"

	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	Token      string `json:"token"`
	AuthUserID int    `json:"authUserId"`
}

// ResolveToken maps a session token to the owning user id. The token must
// parse, and its session id must still be recorded against the user: logout,
// password reset, and admin removal all revoke sessions server-side.
func ResolveToken(token string) (int, error) {
	claims, err := jwtutil.ValidateSessionToken(token)
	if err != nil {
		return 0, authorizationError("invalid token")
	}

	uID := 0
	err = store.View(func(s *model.Snapshot) error {
		u := s.FindUser(claims.UserID)
		if u == nil {
			return authorizationError("invalid token")
		}
		for _, session := range u.Sessions {
			if session == claims.SessionID {
				uID = u.UID
				return nil
			}
		}
		return authorizationError("invalid token")
	})
	if err != nil {
		return 0, err
	}
	return uID, nil
}

// Register creates a new user and an initial session. The first user to
// register becomes the global owner.
func Register(email, password, nameFirst, nameLast string) (*AuthResult, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError("invalid email")
	}
	if runeLen(password) < 6 {
		return nil, validationError("password must be at least 6 characters")
	}
	if runeLen(nameFirst) < 1 || runeLen(nameFirst) > 50 {
		return nil, validationError("nameFirst must be between 1 and 50 characters")
	}
	if runeLen(nameLast) < 1 || runeLen(nameLast) > 50 {
		return nil, validationError("nameLast must be between 1 and 50 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var result AuthResult
	err = store.Update(func(s *model.Snapshot) error {
		for _, u := range s.Users {
			if u.Email == email {
				return validationError("email is already registered")
			}
		}

		uID := nextUserID(s)
		permission := model.PermissionMember
		if len(s.Users) == 0 {
			permission = model.PermissionOwner
		}

		token, sessionID, err := jwtutil.GenerateSessionToken(uID)
		if err != nil {
			return fmt.Errorf("generate session token: %w", err)
		}

		ts := now()
		s.Users = append(s.Users, model.User{
			UID:            uID,
			NameFirst:      nameFirst,
			NameLast:       nameLast,
			Email:          email,
			Handle:         generateHandle(s, nameFirst, nameLast),
			PasswordHash:   string(hash),
			PermissionID:   permission,
			Sessions:       []string{sessionID},
			ChannelsJoined: []model.ChannelsJoinedLog{{NumChannelsJoined: 0, TimeStamp: ts}},
			DmsJoined:      []model.DmsJoinedLog{{NumDmsJoined: 0, TimeStamp: ts}},
			MessagesSent:   []model.MessagesSentLog{{NumMessagesSent: 0, TimeStamp: ts}},
		})

		result = AuthResult{Token: token, AuthUserID: uID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Login opens a new session for an existing user.
func Login(email, password string) (*AuthResult, error) {
	var result AuthResult
	err := store.Update(func(s *model.Snapshot) error {
		for i := range s.Users {
			u := &s.Users[i]
			if u.Email != email {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return validationError("incorrect password")
			}
			token, sessionID, err := jwtutil.GenerateSessionToken(u.UID)
			if err != nil {
				return fmt.Errorf("generate session token: %w", err)
			}
			u.Sessions = append(u.Sessions, sessionID)
			result = AuthResult{Token: token, AuthUserID: u.UID}
			return nil
		}
		return validationError("email not registered")
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the session the token was issued for.
func Logout(token string) error {
	claims, err := jwtutil.ValidateSessionToken(token)
	if err != nil {
		return authorizationError("invalid token")
	}

	return store.Update(func(s *model.Snapshot) error {
		u := s.FindUser(claims.UserID)
		if u == nil {
			return authorizationError("invalid token")
		}
		for i, session := range u.Sessions {
			if session == claims.SessionID {
				u.Sessions = append(u.Sessions[:i], u.Sessions[i+1:]...)
				return nil
			}
		}
		return authorizationError("invalid token")
	})
}

// PasswordResetRequest stores a 6-digit reset code against the account and
// revokes all its sessions. It succeeds whether or not the email is
// registered, so callers cannot enumerate accounts. Delivery of the code is
// the caller's concern.
func PasswordResetRequest(email string) (string, error) {
	code := ""
	revoked := 0
	err := store.Update(func(s *model.Snapshot) error {
		for i := range s.Users {
			u := &s.Users[i]
			if u.Email == email {
				code = fmt.Sprintf("%06d", rand.Intn(1000000))
				u.ResetCode = code
				revoked = len(u.Sessions)
				u.Sessions = []string{}
				return nil
			}
		}
		return nil
	})
	if err == nil {
		prometheus.RemoveActiveSessions(revoked)
	}
	return code, err
}

// PasswordResetReset consumes a reset code and installs the new password.
func PasswordResetReset(resetCode, newPassword string) error {
	if runeLen(newPassword) < 6 {
		return validationError("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return store.Update(func(s *model.Snapshot) error {
		for i := range s.Users {
			u := &s.Users[i]
			if u.ResetCode != "" && u.ResetCode == resetCode {
				u.PasswordHash = string(hash)
				u.ResetCode = ""
				return nil
			}
		}
		return validationError("invalid password reset code")
	})
}

// generateHandle derives a unique handle from the user's name: lowercased
// alphanumeric first+last truncated to 20 characters, with a numeric suffix
// on collision.
func generateHandle(s *model.Snapshot, nameFirst, nameLast string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(nameFirst + nameLast) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	handle := b.String()
	if len(handle) > 20 {
		handle = handle[:20]
	}

	taken := make(map[string]bool, len(s.Users))
	for _, u := range s.Users {
		taken[u.Handle] = true
	}
	if !taken[handle] {
		return handle
	}
	for n := 0; ; n++ {
		candidate := handle + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}
