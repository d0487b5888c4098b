// Package session holds the relay endpoint and credential state shared by
// relay clients. A Session is an explicit handle injected into every client
// rather than a hidden global, so tests can run several sessions side by
// side; the package-level Init/Current pair is kept for applications that
// want one process-wide session.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Mode selects how requests to the relay are authenticated.
type Mode int

const (
	// ModePrivate is the administrative mode: every request carries the
	// private API key and a 401 is fatal.
	ModePrivate Mode = iota
	// ModePublic is the client mode: requests carry the public API key plus
	// a JWT that is refreshed once on 401.
	ModePublic
)

// JWTSource fetches a fresh JWT from the identity provider. It is supplied by
// the application for public-key sessions and invoked on ReloadJWT.
type JWTSource func(ctx context.Context) (string, error)

// Credential is the authentication material for one session. Exactly one of
// the two modes applies: PrivateAPIKey for ModePrivate, or PublicAPIKey plus
// Source for ModePublic.
type Credential struct {
	PrivateAPIKey string
	PublicAPIKey  string
	// Source is the JWT fetch hook for public-key sessions. Optional when an
	// initial JWT is provided and never expires.
	Source JWTSource
	// JWT is the initial token for public-key sessions; it may be empty when
	// Source is set, in which case the first ReloadJWT populates it.
	JWT string
}

// Session binds a relay base URL to a credential. The stored JWT is the only
// mutable field; it is replaced in place on refresh under a lock. In-flight
// requests holding an older token are unaffected until they next read it.
type Session struct {
	relayAddr string
	mode      Mode
	private   string
	public    string
	source    JWTSource

	mu  sync.RWMutex
	jwt string
}

// New constructs a session handle for the given relay base URL and
// credential. It returns an error when the credential is ambiguous (both or
// neither key set) or when a public-key credential has neither an initial JWT
// nor a source to fetch one.
func New(relayAddr string, cred Credential) (*Session, error) {
	if relayAddr == "" {
		return nil, fmt.Errorf("relay address is required")
	}

	switch {
	case cred.PrivateAPIKey != "" && cred.PublicAPIKey != "":
		return nil, fmt.Errorf("private and public API keys are mutually exclusive")
	case cred.PrivateAPIKey != "":
		return &Session{
			relayAddr: relayAddr,
			mode:      ModePrivate,
			private:   cred.PrivateAPIKey,
		}, nil
	case cred.PublicAPIKey != "":
		if cred.JWT == "" && cred.Source == nil {
			return nil, fmt.Errorf("public-key credential needs an initial JWT or a JWT source")
		}
		return &Session{
			relayAddr: relayAddr,
			mode:      ModePublic,
			public:    cred.PublicAPIKey,
			source:    cred.Source,
			jwt:       cred.JWT,
		}, nil
	default:
		return nil, fmt.Errorf("credential must carry a private or a public API key")
	}
}

// RelayAddr returns the relay base URL this session was created with.
func (s *Session) RelayAddr() string {
	return s.relayAddr
}

// Mode returns the authentication mode of the session.
func (s *Session) Mode() Mode {
	return s.mode
}

// PrivateAPIKey returns the private API key (ModePrivate only).
func (s *Session) PrivateAPIKey() string {
	return s.private
}

// PublicAPIKey returns the public API key (ModePublic only).
func (s *Session) PublicAPIKey() string {
	return s.public
}

// JWT returns the currently stored token. Safe for concurrent use.
func (s *Session) JWT() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jwt
}

// ReloadJWT re-invokes the credential source and replaces the stored JWT in
// place. Concurrent reloads are benign: each stores the token it fetched and
// the last write wins. Failure of the source itself is reported as a
// *CredentialRefreshError.
func (s *Session) ReloadJWT(ctx context.Context) error {
	if s.mode != ModePublic {
		return fmt.Errorf("jwt reload is only available for public-key sessions")
	}
	if s.source == nil {
		return &CredentialRefreshError{Err: fmt.Errorf("no jwt source configured")}
	}

	token, err := s.source(ctx)
	if err != nil {
		zap.L().Error("jwt refresh failed", zap.Error(err))
		return &CredentialRefreshError{Err: err}
	}

	s.mu.Lock()
	s.jwt = token
	s.mu.Unlock()

	if exp, ok := tokenExpiry(token); ok {
		zap.L().Debug("jwt refreshed", zap.Time("expires_at", exp))
	}
	return nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying its
// signature. Diagnostics only; the relay is the authority on token validity.
func tokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
