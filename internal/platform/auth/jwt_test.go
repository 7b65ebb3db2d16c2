package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tok, exp, err := testTokens.Issue(Principal{Username: "user", Roles: []string{RoleUser}}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expected expiry in the future")
	}
	claims, err := testTokens.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := claims.Principal()
	if p.Username != "user" || !p.HasRole(RoleUser) {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestTokenService_Expired(t *testing.T) {
	tok, _, err := testTokens.Issue(Principal{Username: "user"}, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := testTokens.Parse(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	tok, _, _ := testTokens.Issue(Principal{Username: "user"}, time.Now())
	other := TokenService{Secret: []byte("wrong-secret"), TTL: time.Hour}
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestTokenService_Tampered(t *testing.T) {
	tok, _, _ := testTokens.Issue(Principal{Username: "user"}, time.Now())
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatal("expected 3 JWT parts")
	}
	if _, err := testTokens.Parse(parts[0] + ".dGFtcGVyZWQ." + parts[2]); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestTokenService_MissingSecret(t *testing.T) {
	if _, _, err := (TokenService{TTL: time.Hour}).Issue(Principal{Username: "user"}, time.Now()); err == nil {
		t.Fatal("expected error without secret")
	}
}
