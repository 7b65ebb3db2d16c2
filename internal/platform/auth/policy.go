package auth

import (
	"net/http"
	"strings"
)

type accessKind int

const (
	accessAuthenticated accessKind = iota
	accessPublic
	accessRole
)

// Access is the requirement a Rule places on a request.
type Access struct {
	kind accessKind
	role string
}

var (
	Public        = Access{kind: accessPublic}
	Authenticated = Access{kind: accessAuthenticated}
)

func RequireRole(role string) Access {
	return Access{kind: accessRole, role: NormalizeRole(role)}
}

func (a Access) IsPublic() bool { return a.kind == accessPublic }

// Permits reports whether an authenticated principal satisfies a.
func (a Access) Permits(p Principal) bool {
	if a.kind == accessRole {
		return p.HasRole(a.role)
	}
	return true
}

func (a Access) String() string {
	switch a.kind {
	case accessPublic:
		return "permitAll"
	case accessRole:
		return "hasRole(" + a.role + ")"
	default:
		return "authenticated"
	}
}

// Rule binds an Ant-style path pattern, optionally restricted to one HTTP
// method, to an Access requirement.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

// Policy is evaluated top-down; the first matching rule wins. Requests that
// match no rule require authentication.
type Policy []Rule

func (p Policy) Resolve(method, path string) Access {
	for _, rule := range p {
		if rule.Method != "" && !strings.EqualFold(rule.Method, method) {
			continue
		}
		if MatchPattern(rule.Pattern, path) {
			return rule.Access
		}
	}
	return Authenticated
}

// ResolveRequest is Resolve for an *http.Request.
func (p Policy) ResolveRequest(r *http.Request) Access {
	return p.Resolve(r.Method, r.URL.Path)
}

// MatchPattern matches path against an Ant-style pattern: "*" matches one
// segment, "**" matches zero or more segments. A trailing slash on path is
// ignored.
func MatchPattern(pattern, path string) bool {
	return matchSegments(splitPath(pattern), splitPath(path))
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pat, segs []string) bool {
	for len(pat) > 0 {
		switch pat[0] {
		case "**":
			rest := pat[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(segs); i++ {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		case "*":
			if len(segs) == 0 {
				return false
			}
		default:
			if len(segs) == 0 || pat[0] != segs[0] {
				return false
			}
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}
