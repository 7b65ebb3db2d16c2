package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/api"
	"github.com/example/anime-registry/internal/platform/httpserver"
	"github.com/example/anime-registry/services/animes/internal/domain"
	"github.com/example/anime-registry/services/animes/internal/service"
	"github.com/example/anime-registry/services/animes/internal/store"
)

// writeServiceError maps service and store errors to the API error body.
// Unknown errors are logged and reported as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	rid := httpserver.RequestIDFromContext(r.Context())
	switch {
	case errors.Is(err, service.ErrAnimeNotFound), errors.Is(err, store.ErrNotFound):
		api.BadRequest(w, "ANIME_NOT_FOUND", "Anime not found", rid)
	case errors.Is(err, store.ErrConstraint):
		api.BadRequest(w, "CONSTRAINT_VIOLATION", "The anime violates a storage constraint", rid)
	case errors.Is(err, domain.ErrInvalidPage):
		api.BadRequest(w, "INVALID_PAGE", err.Error(), rid)
	default:
		log.Error("anime request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", rid))
		api.Internal(w, rid)
	}
}

func writeValidationError(w http.ResponseWriter, r *http.Request, err error) bool {
	fields, messages, ok := fieldErrors(err)
	if !ok {
		return false
	}
	api.InvalidFields(w, "Check the field(s) error", fields, messages, httpserver.RequestIDFromContext(r.Context()))
	return true
}
