package store

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

// PostgresAnimeStore persists animes in Postgres.
type PostgresAnimeStore struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPostgresAnimeStore(pool *pgxpool.Pool) *PostgresAnimeStore {
	return &PostgresAnimeStore{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *PostgresAnimeStore) FindPage(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Anime], error) {
	q, args, err := countQuery(s.sb).ToSql()
	if err != nil {
		return domain.Page[domain.Anime]{}, err
	}
	var total int64
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&total); err != nil {
		return domain.Page[domain.Anime]{}, err
	}

	q, args, err = pageQuery(s.sb, req).ToSql()
	if err != nil {
		return domain.Page[domain.Anime]{}, err
	}
	content, err := s.query(ctx, q, args...)
	if err != nil {
		return domain.Page[domain.Anime]{}, err
	}
	return domain.NewPage(content, req, total), nil
}

func (s *PostgresAnimeStore) FindAll(ctx context.Context) ([]domain.Anime, error) {
	q, args, err := allQuery(s.sb).ToSql()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, q, args...)
}

func (s *PostgresAnimeStore) FindByID(ctx context.Context, id int64) (domain.Anime, error) {
	q, args, err := byIDQuery(s.sb, id).ToSql()
	if err != nil {
		return domain.Anime{}, err
	}
	var a domain.Anime
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&a.ID, &a.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Anime{}, ErrNotFound
		}
		return domain.Anime{}, err
	}
	return a, nil
}

func (s *PostgresAnimeStore) FindByName(ctx context.Context, name string) ([]domain.Anime, error) {
	q, args, err := byNameQuery(s.sb, name).ToSql()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, q, args...)
}

func (s *PostgresAnimeStore) Save(ctx context.Context, a domain.Anime) (domain.Anime, error) {
	if a.ID == 0 {
		q, args, err := insertQuery(s.sb, a).ToSql()
		if err != nil {
			return domain.Anime{}, err
		}
		if err := s.pool.QueryRow(ctx, q, args...).Scan(&a.ID); err != nil {
			return domain.Anime{}, mapPgError(err)
		}
		return a, nil
	}

	q, args, err := updateQuery(s.sb, a).ToSql()
	if err != nil {
		return domain.Anime{}, err
	}
	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return domain.Anime{}, mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Anime{}, ErrNotFound
	}
	return a, nil
}

func (s *PostgresAnimeStore) Delete(ctx context.Context, a domain.Anime) error {
	q, args, err := deleteQuery(s.sb, a.ID).ToSql()
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, q, args...)
	return err
}

func (s *PostgresAnimeStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresAnimeStore) query(ctx context.Context, q string, args ...any) ([]domain.Anime, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Anime{}
	for rows.Next() {
		var a domain.Anime
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Postgres SQLSTATE codes reported for rows the anime table refuses.
const (
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgCheckViolation:
			return ErrConstraint
		}
	}
	return err
}
