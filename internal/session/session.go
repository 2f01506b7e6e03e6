// Package session keeps the bearer token and profile of one role (user or
// seller) for one browser session. Each role has its own key namespace, so
// clearing one never touches the other.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
)

// Auth keys kept per role.
const (
	KeyToken     = "token"
	KeyTokenType = "token_type"
	KeyProfile   = "profile"
	KeyRemember  = "remember"
	KeyTwoFactor = "two_factor_pending"
)

var authKeys = []string{KeyToken, KeyTokenType, KeyProfile, KeyRemember, KeyTwoFactor}

// LoginRoute is where the browser is sent when this role's session ends.
func (r Role) LoginRoute() string {
	return "/" + string(r) + "/auth/login"
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSeller
}

type Session struct {
	store repositories.Store
	sid   string
	role  Role
	now   func() time.Time
}

func New(store repositories.Store, sid string, role Role) *Session {
	return &Session{store: store, sid: sid, role: role, now: time.Now}
}

func (s *Session) Role() Role { return s.role }

func (s *Session) ID() string { return s.sid }

func (s *Session) key(name string) string {
	return repositories.Key(s.sid, string(s.role), name)
}

// Keys lists every storage key this session owns.
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(authKeys))
	for _, k := range authKeys {
		keys = append(keys, s.key(k))
	}
	return keys
}

// Token returns the stored bearer token. A missing token yields
// ErrMissingToken; a JWT whose exp has passed is cleared and yields
// ErrSessionExpired. Opaque tokens are returned as is.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, ok, err := s.store.Get(ctx, s.key(KeyToken))
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if !ok || token == "" {
		return "", apperr.ErrMissingToken
	}
	if s.expired(token) {
		if err := s.Clear(ctx); err != nil {
			return "", err
		}
		return "", apperr.ErrSessionExpired
	}
	return token, nil
}

func (s *Session) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}

// SetToken stores a fresh token after login.
func (s *Session) SetToken(ctx context.Context, token, tokenType string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if tokenType == "" {
		tokenType = "Bearer"
	}
	if err := s.store.Set(ctx, s.key(KeyToken), token); err != nil {
		return err
	}
	return s.store.Set(ctx, s.key(KeyTokenType), tokenType)
}

// TokenType returns the scheme to use in the Authorization header.
func (s *Session) TokenType(ctx context.Context) string {
	t, ok, err := s.store.Get(ctx, s.key(KeyTokenType))
	if err != nil || !ok || t == "" {
		return "Bearer"
	}
	return t
}

func (s *Session) SetProfile(ctx context.Context, p *models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.key(KeyProfile), string(data))
}

// Profile returns the cached profile, or nil when none is stored.
func (s *Session) Profile(ctx context.Context) (*models.Profile, error) {
	raw, ok, err := s.store.Get(ctx, s.key(KeyProfile))
	if err != nil || !ok {
		return nil, err
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	return &p, nil
}

// SetPendingTwoFactor marks that login is waiting for a 2FA code.
func (s *Session) SetPendingTwoFactor(ctx context.Context, pending bool) error {
	if !pending {
		return s.store.Delete(ctx, s.key(KeyTwoFactor))
	}
	return s.store.Set(ctx, s.key(KeyTwoFactor), "1")
}

func (s *Session) PendingTwoFactor(ctx context.Context) bool {
	_, ok, err := s.store.Get(ctx, s.key(KeyTwoFactor))
	return err == nil && ok
}

func (s *Session) SetRemember(ctx context.Context, remember bool) error {
	if !remember {
		return s.store.Delete(ctx, s.key(KeyRemember))
	}
	return s.store.Set(ctx, s.key(KeyRemember), "1")
}

// Clear removes every auth key of this role.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.Keys()...)
}
