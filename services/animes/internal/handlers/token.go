package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/api"
	"github.com/example/anime-registry/internal/platform/auth"
	"github.com/example/anime-registry/internal/platform/httpserver"
)

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IssueToken handles POST /auth/token. The caller has already been
// authenticated by the guard; the token carries the same roles.
func IssueToken(tokens *auth.TokenService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		p, ok := auth.PrincipalFromContext(r.Context())
		if !ok || p.Username == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "Full authentication is required to access this resource", rid)
			return
		}
		signed, exp, err := tokens.Issue(p, time.Time{})
		if err != nil {
			log.Error("issue token", zap.Error(err), zap.String("request_id", rid))
			api.Internal(w, rid)
			return
		}
		api.WriteJSON(w, http.StatusOK, tokenResponse{
			AccessToken: signed,
			TokenType:   "Bearer",
			ExpiresAt:   exp,
		})
	}
}
