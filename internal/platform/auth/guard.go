package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/api"
	"github.com/example/anime-registry/internal/platform/httpserver"
)

// ErrBadCredentials is returned by an Authenticator for unknown users and
// wrong passwords alike.
var ErrBadCredentials = errors.New("bad credentials")

var errNoCredentials = errors.New("no credentials")

// Authenticator verifies a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Principal, error)
}

// Guard authenticates requests (Basic, or Bearer when Tokens is set) and
// enforces Policy before the wrapped handler runs.
type Guard struct {
	Policy        Policy
	Authenticator Authenticator
	Tokens        *TokenService
	Realm         string
	Log           *zap.Logger
}

func (g Guard) Middleware(next http.Handler) http.Handler {
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}
	realm := g.Realm
	if realm == "" {
		realm = "Realm"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		access := g.Policy.ResolveRequest(r)
		if access.IsPublic() {
			next.ServeHTTP(w, r)
			return
		}

		p, err := g.authenticate(r)
		switch {
		case errors.Is(err, errNoCredentials):
			challenge(w, realm, "Full authentication is required to access this resource", rid)
			return
		case errors.Is(err, ErrBadCredentials):
			log.Info("authentication failed", zap.String("path", r.URL.Path), zap.String("request_id", rid))
			challenge(w, realm, "Bad credentials", rid)
			return
		case err != nil:
			log.Error("authentication backend", zap.Error(err), zap.String("request_id", rid))
			api.Internal(w, rid)
			return
		}

		if !access.Permits(p) {
			log.Info("access denied",
				zap.String("user", p.Username),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Stringer("rule", access),
				zap.String("request_id", rid))
			api.Forbidden(w, "ACCESS_DENIED", "Access is denied", rid)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func (g Guard) authenticate(r *http.Request) (Principal, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return Principal{}, errNoCredentials
	}
	scheme, rest, _ := strings.Cut(authz, " ")
	switch strings.ToLower(scheme) {
	case "basic":
		username, password, ok := r.BasicAuth()
		if !ok || username == "" {
			return Principal{}, ErrBadCredentials
		}
		if g.Authenticator == nil {
			return Principal{}, ErrBadCredentials
		}
		return g.Authenticator.Authenticate(r.Context(), username, password)
	case "bearer":
		if g.Tokens == nil {
			return Principal{}, ErrBadCredentials
		}
		claims, err := g.Tokens.Parse(strings.TrimSpace(rest))
		if err != nil {
			return Principal{}, ErrBadCredentials
		}
		return claims.Principal(), nil
	default:
		return Principal{}, errNoCredentials
	}
}

func challenge(w http.ResponseWriter, realm, details, rid string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	api.Unauthorized(w, "UNAUTHORIZED", details, rid)
}
