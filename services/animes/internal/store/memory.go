package store

import (
	"context"
	"sort"
	"sync"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

// InMemoryAnimeStore is a development and test implementation.
type InMemoryAnimeStore struct {
	mu     sync.RWMutex
	nextID int64
	animes map[int64]domain.Anime
}

func NewInMemoryAnimeStore() *InMemoryAnimeStore {
	return &InMemoryAnimeStore{
		nextID: 1,
		animes: make(map[int64]domain.Anime),
	}
}

func (s *InMemoryAnimeStore) FindPage(_ context.Context, req domain.PageRequest) (domain.Page[domain.Anime], error) {
	s.mu.RLock()
	all := s.sortedLocked(req.Sort)
	s.mu.RUnlock()

	total := int64(len(all))
	start := req.Offset()
	if start < 0 || start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end < start || end > len(all) {
		end = len(all)
	}
	return domain.NewPage(all[start:end], req, total), nil
}

func (s *InMemoryAnimeStore) FindAll(_ context.Context) ([]domain.Anime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(nil), nil
}

func (s *InMemoryAnimeStore) FindByID(_ context.Context, id int64) (domain.Anime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.animes[id]
	if !ok {
		return domain.Anime{}, ErrNotFound
	}
	return a, nil
}

func (s *InMemoryAnimeStore) FindByName(_ context.Context, name string) ([]domain.Anime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Anime{}
	for _, a := range s.sortedLocked(nil) {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *InMemoryAnimeStore) Save(_ context.Context, a domain.Anime) (domain.Anime, error) {
	if a.Name == "" {
		return domain.Anime{}, ErrConstraint
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == 0 {
		a.ID = s.nextID
		s.nextID++
		s.animes[a.ID] = a
		return a, nil
	}
	if _, ok := s.animes[a.ID]; !ok {
		return domain.Anime{}, ErrNotFound
	}
	s.animes[a.ID] = a
	return a, nil
}

func (s *InMemoryAnimeStore) Delete(_ context.Context, a domain.Anime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.animes, a.ID)
	return nil
}

func (s *InMemoryAnimeStore) Ping(context.Context) error { return nil }

func (s *InMemoryAnimeStore) sortedLocked(orders []domain.Order) []domain.Anime {
	out := make([]domain.Anime, 0, len(s.animes))
	for _, a := range s.animes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		for _, o := range orders {
			if c := compare(out[i], out[j], o.Property); c != 0 {
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func compare(a, b domain.Anime, property string) int {
	switch property {
	case domain.SortByName:
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	default:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	}
}
