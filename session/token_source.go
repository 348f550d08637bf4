package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/hostelhub/go-booking-client/internal/errors"
	"golang.org/x/oauth2"
)

// TokenSource adapts the session to oauth2.TokenSource so oauth2-aware
// libraries can consume the current access token directly. The source always
// reflects the live session; after Logout it starts returning an error.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return &managerTokenSource{manager: m}
}

type managerTokenSource struct {
	manager *Manager
}

func (ts *managerTokenSource) Token() (*oauth2.Token, error) {
	ts.manager.lock.RLock()
	defer ts.manager.lock.RUnlock()

	if ts.manager.accessToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrNoSession, "[TokenSource]")
	}

	token := &oauth2.Token{
		AccessToken:  ts.manager.accessToken,
		RefreshToken: ts.manager.refreshToken,
		TokenType:    "Bearer",
	}
	if exp, ok := expiryOf(ts.manager.accessToken); ok {
		token.Expiry = exp
	}
	return token, nil
}

// ExpiresAt reports when the current access token expires, read from its exp
// claim without signature verification. The backend is the verifier; the
// client only uses this for display and for deciding when to prompt a fresh
// login. ok is false when anonymous or when the token carries no parseable
// expiry.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	m.lock.RLock()
	token := m.accessToken
	m.lock.RUnlock()

	if token == "" {
		return time.Time{}, false
	}
	return expiryOf(token)
}

// Expired reports whether the access token's exp claim is in the past.
// Tokens without a readable expiry are assumed live.
func (m *Manager) Expired() bool {
	exp, ok := m.ExpiresAt()
	if !ok {
		return false
	}
	return exp.Before(m.nowTime())
}

func expiryOf(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
