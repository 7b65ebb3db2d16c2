package auth

import (
	"context"
	"strings"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	Username string
	Roles    []string
}

// HasRole reports whether p carries role, ignoring case and a ROLE_ prefix.
func (p Principal) HasRole(role string) bool {
	want := NormalizeRole(role)
	for _, r := range p.Roles {
		if NormalizeRole(r) == want {
			return true
		}
	}
	return false
}

// NormalizeRole maps "role_admin", "Admin" and "ADMIN" to "ADMIN".
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}

// ParseAuthorities splits a comma separated authority list into normalized roles.
func ParseAuthorities(raw string) []string {
	var roles []string
	for _, part := range strings.Split(raw, ",") {
		if r := NormalizeRole(part); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

type ctxKeyPrincipal struct{}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal{}).(Principal)
	return p, ok
}

// WithPrincipal injects p into ctx. Useful for testing.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal{}, p)
}
