package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNewPrivateSession(t *testing.T) {
	s, err := New("https://relay.example", Credential{PrivateAPIKey: "priv-key"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if s.Mode() != ModePrivate {
		t.Fatalf("unexpected mode: %v", s.Mode())
	}
	if s.RelayAddr() != "https://relay.example" {
		t.Fatalf("unexpected relay addr: %s", s.RelayAddr())
	}
	if s.PrivateAPIKey() != "priv-key" {
		t.Fatalf("unexpected private key: %s", s.PrivateAPIKey())
	}
}

func TestNewRejectsInvalidCredentials(t *testing.T) {
	tests := []struct {
		name string
		addr string
		cred Credential
	}{
		{"no keys", "https://relay.example", Credential{}},
		{"both keys", "https://relay.example", Credential{PrivateAPIKey: "a", PublicAPIKey: "b"}},
		{"public without jwt or source", "https://relay.example", Credential{PublicAPIKey: "pub"}},
		{"missing relay addr", "", Credential{PrivateAPIKey: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.addr, tt.cred); err == nil {
				t.Fatal("expected constructor error")
			}
		})
	}
}

func TestReloadJWTReplacesToken(t *testing.T) {
	calls := 0
	s, err := New("https://relay.example", Credential{
		PublicAPIKey: "pub",
		JWT:          "stale",
		Source: func(context.Context) (string, error) {
			calls++
			return fmt.Sprintf("fresh-%d", calls), nil
		},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := s.ReloadJWT(context.Background()); err != nil {
		t.Fatalf("ReloadJWT error: %v", err)
	}
	if got := s.JWT(); got != "fresh-1" {
		t.Fatalf("unexpected jwt after reload: %s", got)
	}

	if err := s.ReloadJWT(context.Background()); err != nil {
		t.Fatalf("ReloadJWT error: %v", err)
	}
	if got := s.JWT(); got != "fresh-2" {
		t.Fatalf("last write should win: %s", got)
	}
}

func TestReloadJWTSourceFailure(t *testing.T) {
	s, err := New("https://relay.example", Credential{
		PublicAPIKey: "pub",
		JWT:          "stale",
		Source: func(context.Context) (string, error) {
			return "", errors.New("idp unreachable")
		},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	err = s.ReloadJWT(context.Background())
	var refreshErr *CredentialRefreshError
	if !errors.As(err, &refreshErr) {
		t.Fatalf("expected CredentialRefreshError, got %v", err)
	}
	if got := s.JWT(); got != "stale" {
		t.Fatalf("failed reload must not replace token: %s", got)
	}
}

func TestReloadJWTPrivateMode(t *testing.T) {
	s, err := New("https://relay.example", Credential{PrivateAPIKey: "priv"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := s.ReloadJWT(context.Background()); err == nil {
		t.Fatal("expected error reloading jwt in private mode")
	}
}

func TestCurrentBeforeInit(t *testing.T) {
	Reset()
	if _, err := Current(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestInitInstallsCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	s, err := Init("https://relay.example", Credential{PrivateAPIKey: "priv"})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}

	got, err := Current()
	if err != nil {
		t.Fatalf("Current error: %v", err)
	}
	if got != s {
		t.Fatal("Current returned a different session")
	}
	if got.RelayAddr() != "https://relay.example" {
		t.Fatalf("unexpected relay addr: %s", got.RelayAddr())
	}
}

func TestInitReplacesSession(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, err := Init("https://relay-a.example", Credential{PrivateAPIKey: "a"}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if _, err := Init("https://relay-b.example", Credential{PrivateAPIKey: "b"}); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	got, err := Current()
	if err != nil {
		t.Fatalf("Current error: %v", err)
	}
	if got.RelayAddr() != "https://relay-b.example" {
		t.Fatalf("Init did not replace the session: %s", got.RelayAddr())
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	token := unsignedToken(t, map[string]any{"exp": exp})

	got, ok := tokenExpiry(token)
	if !ok {
		t.Fatal("expected expiry to be extracted")
	}
	if got.Unix() != exp {
		t.Fatalf("unexpected expiry: %v", got)
	}

	if _, ok := tokenExpiry("not-a-jwt"); ok {
		t.Fatal("expected failure for malformed token")
	}
}

// unsignedToken builds a structurally valid JWT with the given claims and an
// empty signature, enough for unverified parsing.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	body, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(body) + "."
}
