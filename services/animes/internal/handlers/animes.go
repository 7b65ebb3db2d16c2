package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/api"
	"github.com/example/anime-registry/internal/platform/auth"
	"github.com/example/anime-registry/internal/platform/httpserver"
	"github.com/example/anime-registry/services/animes/internal/domain"
)

// AnimeService is the subset of *service.AnimeService the handlers use.
type AnimeService interface {
	ListAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Anime], error)
	ListAllUnpaged(ctx context.Context) ([]domain.Anime, error)
	FindByName(ctx context.Context, name string) ([]domain.Anime, error)
	GetOrFail(ctx context.Context, id int64) (domain.Anime, error)
	Create(ctx context.Context, actor string, req domain.CreateRequest) (domain.Anime, error)
	Delete(ctx context.Context, actor string, id int64) error
	Replace(ctx context.Context, actor string, req domain.UpdateRequest) error
}

func actor(r *http.Request) string {
	p, _ := auth.PrincipalFromContext(r.Context())
	return p.Username
}

// List handles GET /animes?page=&size=&sort=
func List(svc AnimeService, paging Paging, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := paging.parse(r)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		page, err := svc.ListAll(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, page)
	}
}

// ListAll handles GET /animes/all
func ListAll(svc AnimeService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.ListAllUnpaged(r.Context())
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, all)
	}
}

// Get handles GET /animes/{id}
func Get(svc AnimeService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			api.BadRequest(w, "INVALID_ID", err.Error(), httpserver.RequestIDFromContext(r.Context()))
			return
		}
		a, err := svc.GetOrFail(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, a)
	}
}

// GetWithPrincipal handles GET /animes/by-id/{id}; it is Get plus a record of
// who asked.
func GetWithPrincipal(svc AnimeService, log *zap.Logger) http.HandlerFunc {
	get := Get(svc, log)
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("anime requested by principal",
			zap.String("user", actor(r)),
			zap.String("id", chi.URLParam(r, "id")),
			zap.String("request_id", httpserver.RequestIDFromContext(r.Context())))
		get(w, r)
	}
}

// FindByName handles GET /animes/find?name=
func FindByName(svc AnimeService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := svc.FindByName(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, found)
	}
}

// Create handles POST /animes
func Create(svc AnimeService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		var req domain.CreateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", rid)
			return
		}
		if err := validate.Struct(req); err != nil {
			if !writeValidationError(w, r, err) {
				writeServiceError(w, r, log, err)
			}
			return
		}

		created, err := svc.Create(r.Context(), actor(r), req)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// Replace handles PUT /animes/{id}. A zero id in the body takes the path id;
// any other mismatch is rejected.
func Replace(svc AnimeService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		id, err := pathID(r)
		if err != nil {
			api.BadRequest(w, "INVALID_ID", err.Error(), rid)
			return
		}
		var req domain.UpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", rid)
			return
		}
		if req.ID == 0 {
			req.ID = id
		}
		if req.ID != id {
			api.BadRequest(w, "ID_MISMATCH", "body id does not match the path id", rid)
			return
		}
		if err := validate.Struct(req); err != nil {
			if !writeValidationError(w, r, err) {
				writeServiceError(w, r, log, err)
			}
			return
		}

		if err := svc.Replace(r.Context(), actor(r), req); err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Delete handles DELETE /animes/{id} and DELETE /animes/admin/{id}
func Delete(svc AnimeService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			api.BadRequest(w, "INVALID_ID", err.Error(), httpserver.RequestIDFromContext(r.Context()))
			return
		}
		if err := svc.Delete(r.Context(), actor(r), id); err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
