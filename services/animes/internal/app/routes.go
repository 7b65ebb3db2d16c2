package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/anime-registry/internal/platform/auth"
	"github.com/example/anime-registry/internal/platform/httpserver"
	"github.com/example/anime-registry/services/animes/internal/handlers"
)

const realm = "animes"

// Policy is the access policy of the anime API, most specific rule first.
func Policy() auth.Policy {
	return auth.Policy{
		{Method: http.MethodPost, Pattern: "/animes", Access: auth.RequireRole(auth.RoleAdmin)},
		{Pattern: "/animes/admin/**", Access: auth.RequireRole(auth.RoleAdmin)},
		{Pattern: "/animes/**", Access: auth.RequireRole(auth.RoleUser)},
		{Pattern: "/healthz", Access: auth.Public},
		{Pattern: "/readyz", Access: auth.Public},
		{Pattern: "/metrics", Access: auth.Public},
	}
}

// Router builds the HTTP surface: platform endpoints, then the guarded API.
func (a *App) Router(corsOrigins string) chi.Router {
	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		ReadyFunc:   a.Service.Ping,
		CORSOrigins: corsOrigins,
		Logger:      a.Log,
		Metrics:     a.Metrics,
	})

	guard := auth.Guard{
		Policy:        Policy(),
		Authenticator: a.Authenticator(),
		Tokens:        a.Tokens,
		Realm:         realm,
		Log:           a.Log,
	}
	paging := handlers.Paging{DefaultSize: a.Config.PageDefaultSize, MaxSize: a.Config.PageMaxSize}
	svc, log := a.Service, a.Log

	r.Group(func(r chi.Router) {
		if a.Config.RateLimitRPS > 0 {
			limiter := httpserver.NewRateLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst)
			limiter.TrustedProxies = a.Config.TrustedProxies
			r.Use(limiter.Middleware)
		}
		r.Use(guard.Middleware)

		r.Route("/animes", func(r chi.Router) {
			r.Get("/", handlers.List(svc, paging, log))
			r.Post("/", handlers.Create(svc, log))
			r.Get("/all", handlers.ListAll(svc, log))
			r.Get("/find", handlers.FindByName(svc, log))
			r.Get("/by-id/{id}", handlers.GetWithPrincipal(svc, log))
			r.Get("/{id}", handlers.Get(svc, log))
			r.Put("/{id}", handlers.Replace(svc, log))
			r.Delete("/{id}", handlers.Delete(svc, log))
			r.Delete("/admin/{id}", handlers.Delete(svc, log))
		})

		if a.Tokens != nil {
			r.Post("/auth/token", handlers.IssueToken(a.Tokens, log))
		}
	})
	return r
}
