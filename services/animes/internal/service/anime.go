// Package service holds the anime use cases between the HTTP handlers and
// the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/anime-registry/services/animes/internal/domain"
	"github.com/example/anime-registry/services/animes/internal/store"
)

// ErrAnimeNotFound wraps store.ErrNotFound for ids the caller asked for.
var ErrAnimeNotFound = fmt.Errorf("anime not found: %w", store.ErrNotFound)

// Event names published after successful mutations.
const (
	EventCreated  = "anime.created"
	EventReplaced = "anime.replaced"
	EventDeleted  = "anime.deleted"
)

// Publisher is satisfied by *events.Publisher.
type Publisher interface {
	Publish(eventName, actor string, payload map[string]any)
}

type AnimeService struct {
	store  store.AnimeStore
	events Publisher
}

// New creates an AnimeService. pub may be nil.
func New(s store.AnimeStore, pub Publisher) *AnimeService {
	return &AnimeService{store: s, events: pub}
}

func (s *AnimeService) ListAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Anime], error) {
	return s.store.FindPage(ctx, req)
}

func (s *AnimeService) ListAllUnpaged(ctx context.Context) ([]domain.Anime, error) {
	return s.store.FindAll(ctx)
}

func (s *AnimeService) FindByName(ctx context.Context, name string) ([]domain.Anime, error) {
	return s.store.FindByName(ctx, name)
}

func (s *AnimeService) GetOrFail(ctx context.Context, id int64) (domain.Anime, error) {
	a, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Anime{}, ErrAnimeNotFound
	}
	return a, err
}

// Create persists a new anime and returns it with its assigned id.
func (s *AnimeService) Create(ctx context.Context, actor string, req domain.CreateRequest) (domain.Anime, error) {
	a, err := s.store.Save(ctx, req.ToAnime())
	if err != nil {
		return domain.Anime{}, err
	}
	s.publish(EventCreated, actor, a)
	return a, nil
}

func (s *AnimeService) Delete(ctx context.Context, actor string, id int64) error {
	a, err := s.GetOrFail(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, a); err != nil {
		return err
	}
	s.publish(EventDeleted, actor, a)
	return nil
}

// Replace overwrites the name of an existing anime; the id never changes.
func (s *AnimeService) Replace(ctx context.Context, actor string, req domain.UpdateRequest) error {
	existing, err := s.GetOrFail(ctx, req.ID)
	if err != nil {
		return err
	}
	updated := req.ToAnime()
	updated.ID = existing.ID

	if _, err := s.store.Save(ctx, updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}
	s.publish(EventReplaced, actor, updated)
	return nil
}

func (s *AnimeService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *AnimeService) publish(event, actor string, a domain.Anime) {
	if s.events == nil {
		return
	}
	s.events.Publish(event, actor, map[string]any{
		"anime_id": strconv.FormatInt(a.ID, 10),
		"name":     a.Name,
	})
}
