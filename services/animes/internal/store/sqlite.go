package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

// SQLiteAnimeStore persists animes in an embedded SQLite database.
type SQLiteAnimeStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewSQLiteAnimeStore(db *sql.DB) *SQLiteAnimeStore {
	return &SQLiteAnimeStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (s *SQLiteAnimeStore) FindPage(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Anime], error) {
	q, args, err := countQuery(s.sb).ToSql()
	if err != nil {
		return domain.Page[domain.Anime]{}, err
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
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

func (s *SQLiteAnimeStore) FindAll(ctx context.Context) ([]domain.Anime, error) {
	q, args, err := allQuery(s.sb).ToSql()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, q, args...)
}

func (s *SQLiteAnimeStore) FindByID(ctx context.Context, id int64) (domain.Anime, error) {
	q, args, err := byIDQuery(s.sb, id).ToSql()
	if err != nil {
		return domain.Anime{}, err
	}
	var a domain.Anime
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&a.ID, &a.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Anime{}, ErrNotFound
		}
		return domain.Anime{}, err
	}
	return a, nil
}

func (s *SQLiteAnimeStore) FindByName(ctx context.Context, name string) ([]domain.Anime, error) {
	q, args, err := byNameQuery(s.sb, name).ToSql()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, q, args...)
}

func (s *SQLiteAnimeStore) Save(ctx context.Context, a domain.Anime) (domain.Anime, error) {
	if a.ID == 0 {
		q, args, err := insertQuery(s.sb, a).ToSql()
		if err != nil {
			return domain.Anime{}, err
		}
		if err := s.db.QueryRowContext(ctx, q, args...).Scan(&a.ID); err != nil {
			return domain.Anime{}, mapSQLiteError(err)
		}
		return a, nil
	}

	q, args, err := updateQuery(s.sb, a).ToSql()
	if err != nil {
		return domain.Anime{}, err
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.Anime{}, mapSQLiteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Anime{}, err
	}
	if n == 0 {
		return domain.Anime{}, ErrNotFound
	}
	return a, nil
}

func (s *SQLiteAnimeStore) Delete(ctx context.Context, a domain.Anime) error {
	q, args, err := deleteQuery(s.sb, a.ID).ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *SQLiteAnimeStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteAnimeStore) query(ctx context.Context, q string, args ...any) ([]domain.Anime, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
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

func mapSQLiteError(err error) error {
	var liteErr *sqlite.Error
	// extended codes (CHECK, NOTNULL) share the primary code in the low byte
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return ErrConstraint
	}
	return err
}
