package store

import (
	"context"
	"errors"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

var (
	ErrNotFound = errors.New("anime not found")
	// ErrConstraint reports a row the database refused, e.g. an empty name.
	ErrConstraint = errors.New("anime violates a storage constraint")
)

// AnimeStore defines the contract for anime persistence.
type AnimeStore interface {
	// FindPage returns one page ordered by req.Sort, then by id.
	FindPage(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Anime], error)
	FindAll(ctx context.Context) ([]domain.Anime, error)
	// FindByID returns ErrNotFound when no row has id.
	FindByID(ctx context.Context, id int64) (domain.Anime, error)
	// FindByName matches name exactly and returns an empty slice on no match.
	FindByName(ctx context.Context, name string) ([]domain.Anime, error)
	// Save inserts when a.ID is zero and updates in place otherwise.
	Save(ctx context.Context, a domain.Anime) (domain.Anime, error)
	// Delete removes a by id. Deleting a missing row is not an error.
	Delete(ctx context.Context, a domain.Anime) error
	Ping(ctx context.Context) error
}
