package credentials

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/anime-registry/internal/platform/auth"
)

const usersTable = "users"

func lookupQuery(b sq.StatementBuilderType, username string) sq.SelectBuilder {
	return b.Select("username", "name", "password", "authorities").
		From(usersTable).
		Where(sq.Eq{"username": username})
}

func insertUserQuery(b sq.StatementBuilderType, c Credential) sq.InsertBuilder {
	return b.Insert(usersTable).
		Columns("username", "name", "password", "authorities").
		Values(c.Username, c.Name, c.PasswordHash, strings.Join(c.Roles, ","))
}

type row interface {
	Scan(dest ...any) error
}

func scanCredential(r row) (Credential, string, error) {
	var c Credential
	var authorities string
	err := r.Scan(&c.Username, &c.Name, &c.PasswordHash, &authorities)
	return c, authorities, err
}

// PostgresStore reads credentials from the users table.
type PostgresStore struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

func (s *PostgresStore) Lookup(ctx context.Context, username string) (Credential, error) {
	q, args, err := lookupQuery(s.sb, username).ToSql()
	if err != nil {
		return Credential{}, err
	}
	c, authorities, err := scanCredential(s.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credential{}, ErrUnknownUser
		}
		return Credential{}, err
	}
	c.Roles = auth.ParseAuthorities(authorities)
	return c, nil
}

// Insert adds c to the users table.
func (s *PostgresStore) Insert(ctx context.Context, c Credential) error {
	q, args, err := insertUserQuery(s.sb, c).ToSql()
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, q, args...)
	return err
}

// SQLiteStore reads credentials from the users table of an embedded database.
type SQLiteStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

func (s *SQLiteStore) Lookup(ctx context.Context, username string) (Credential, error) {
	q, args, err := lookupQuery(s.sb, username).ToSql()
	if err != nil {
		return Credential{}, err
	}
	c, authorities, err := scanCredential(s.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Credential{}, ErrUnknownUser
		}
		return Credential{}, err
	}
	c.Roles = auth.ParseAuthorities(authorities)
	return c, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, c Credential) error {
	q, args, err := insertUserQuery(s.sb, c).ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q, args...)
	return err
}
