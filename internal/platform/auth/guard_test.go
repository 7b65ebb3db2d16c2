package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeAuthenticator map[string]struct {
	password string
	roles    []string
}

func (f fakeAuthenticator) Authenticate(_ context.Context, username, password string) (Principal, error) {
	u, ok := f[username]
	if !ok || u.password != password {
		return Principal{}, ErrBadCredentials
	}
	return Principal{Username: username, Roles: u.roles}, nil
}

type brokenAuthenticator struct{}

func (brokenAuthenticator) Authenticate(context.Context, string, string) (Principal, error) {
	return Principal{}, errors.New("db down")
}

var testTokens = &TokenService{Secret: []byte("test-secret-key-32-bytes-long!!!"), TTL: time.Hour}

func newGuard() Guard {
	return Guard{
		Policy: testPolicy(),
		Authenticator: fakeAuthenticator{
			"jackson": {password: "root", roles: []string{RoleUser, RoleAdmin}},
			"user":    {password: "user", roles: []string{RoleUser}},
		},
		Tokens: testTokens,
		Realm:  "animes",
	}
}

func serve(g Guard, req *http.Request) (*httptest.ResponseRecorder, *Principal) {
	var seen *Principal
	rr := httptest.NewRecorder()
	g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok {
			seen = &p
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, req)
	return rr, seen
}

func TestGuard_NoCredentialsChallenges(t *testing.T) {
	rr, seen := serve(newGuard(), httptest.NewRequest(http.MethodGet, "/animes/1", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if got := rr.Header().Get("WWW-Authenticate"); got != `Basic realm="animes"` {
		t.Fatalf("unexpected challenge %q", got)
	}
	if seen != nil {
		t.Fatal("handler must not run for unauthenticated request")
	}
}

func TestGuard_WrongPassword(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/animes/1", nil)
	req.SetBasicAuth("user", "nope")
	rr, _ := serve(newGuard(), req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGuard_UserCanRead(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/animes/1", nil)
	req.SetBasicAuth("user", "user")
	rr, seen := serve(newGuard(), req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if seen == nil || seen.Username != "user" {
		t.Fatalf("expected principal 'user' in context, got %+v", seen)
	}
}

func TestGuard_UserCannotCreate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/animes", nil)
	req.SetBasicAuth("user", "user")
	rr, seen := serve(newGuard(), req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if seen != nil {
		t.Fatal("handler must not run for forbidden request")
	}
}

func TestGuard_AdminCanCreate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/animes", nil)
	req.SetBasicAuth("jackson", "root")
	rr, _ := serve(newGuard(), req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestGuard_PublicSkipsAuthentication(t *testing.T) {
	rr, _ := serve(newGuard(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestGuard_BearerToken(t *testing.T) {
	tok, _, err := testTokens.Issue(Principal{Username: "jackson", Roles: []string{RoleUser, RoleAdmin}}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodDelete, "/animes/admin/1", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr, seen := serve(newGuard(), req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if seen == nil || seen.Username != "jackson" {
		t.Fatalf("expected principal from token, got %+v", seen)
	}
}

func TestGuard_BearerWithoutTokenService(t *testing.T) {
	g := newGuard()
	g.Tokens = nil
	req := httptest.NewRequest(http.MethodGet, "/animes/1", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rr, _ := serve(g, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGuard_BackendFailure(t *testing.T) {
	g := newGuard()
	g.Authenticator = brokenAuthenticator{}
	req := httptest.NewRequest(http.MethodGet, "/animes/1", nil)
	req.SetBasicAuth("user", "user")
	rr, _ := serve(g, req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
