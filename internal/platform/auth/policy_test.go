package auth

import (
	"net/http"
	"testing"
)

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/animes/**", "/animes", true},
		{"/animes/**", "/animes/", true},
		{"/animes/**", "/animes/1", true},
		{"/animes/**", "/animes/admin/1", true},
		{"/animes/**", "/animesx", false},
		{"/animes/admin/**", "/animes/1", false},
		{"/animes/admin/**", "/animes/admin", true},
		{"/animes/*", "/animes/1", true},
		{"/animes/*", "/animes/1/2", false},
		{"/animes/*", "/animes", false},
		{"/healthz", "/healthz", true},
		{"/healthz", "/healthz/x", false},
		{"/**/find", "/animes/find", true},
		{"/**", "/", true},
	}
	for _, c := range cases {
		if got := MatchPattern(c.pattern, c.path); got != c.want {
			t.Fatalf("MatchPattern(%q, %q) = %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func testPolicy() Policy {
	return Policy{
		{Method: http.MethodPost, Pattern: "/animes", Access: RequireRole(RoleAdmin)},
		{Pattern: "/animes/admin/**", Access: RequireRole(RoleAdmin)},
		{Pattern: "/animes/**", Access: RequireRole(RoleUser)},
		{Pattern: "/healthz", Access: Public},
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	p := testPolicy()

	if got := p.Resolve(http.MethodPost, "/animes"); got != RequireRole(RoleAdmin) {
		t.Fatalf("POST /animes: expected admin rule, got %s", got)
	}
	if got := p.Resolve(http.MethodGet, "/animes"); got != RequireRole(RoleUser) {
		t.Fatalf("GET /animes: expected user rule, got %s", got)
	}
	if got := p.Resolve(http.MethodDelete, "/animes/admin/3"); got != RequireRole(RoleAdmin) {
		t.Fatalf("DELETE /animes/admin/3: expected admin rule, got %s", got)
	}
	if got := p.Resolve(http.MethodGet, "/healthz"); !got.IsPublic() {
		t.Fatalf("GET /healthz: expected public, got %s", got)
	}
	if got := p.Resolve(http.MethodGet, "/other"); got != Authenticated {
		t.Fatalf("GET /other: expected authenticated fallback, got %s", got)
	}
}

func TestAccess_Permits(t *testing.T) {
	admin := Principal{Username: "jackson", Roles: []string{"ROLE_USER", "role_admin"}}
	user := Principal{Username: "user", Roles: []string{"User"}}

	if !RequireRole(RoleAdmin).Permits(admin) {
		t.Fatal("admin should satisfy admin rule")
	}
	if RequireRole(RoleAdmin).Permits(user) {
		t.Fatal("user should not satisfy admin rule")
	}
	if !RequireRole(RoleUser).Permits(user) {
		t.Fatal("user should satisfy user rule (case insensitive)")
	}
	if !Authenticated.Permits(Principal{Username: "nobody"}) {
		t.Fatal("authenticated should accept any principal")
	}
}

func TestParseAuthorities(t *testing.T) {
	got := ParseAuthorities(" ROLE_USER, role_admin ,,")
	if len(got) != 2 || got[0] != RoleUser || got[1] != RoleAdmin {
		t.Fatalf("unexpected roles %v", got)
	}
}
