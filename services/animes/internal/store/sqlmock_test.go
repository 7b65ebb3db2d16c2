package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

func newMockStore(t *testing.T) (*SQLiteAnimeStore, sqlmock.Sqlmock) {
	t.Helper()
	handle, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = handle.Close() })
	return NewSQLiteAnimeStore(handle), mock
}

func TestSQLiteAnimeStore_UpdateNoRows(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE anime SET name = ? WHERE id = ?")).
		WithArgs("Fly", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.Save(context.Background(), domain.Anime{ID: 7, Name: "Fly"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSQLiteAnimeStore_InsertReturnsID(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO anime (name) VALUES (?) RETURNING id")).
		WithArgs("Kingdom").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	a, err := s.Save(context.Background(), domain.Anime{Name: "Kingdom"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if a.ID != 12 {
		t.Fatalf("expected id 12, got %d", a.ID)
	}
}

func TestSQLiteAnimeStore_PropagatesQueryErrors(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM anime ORDER BY id ASC")).WillReturnError(boom)

	if _, err := s.FindAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected driver error, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM anime")).WillReturnError(boom)
	if _, err := s.FindPage(context.Background(), domain.PageRequest{Size: 5}); !errors.Is(err, boom) {
		t.Fatalf("expected driver error from count, got %v", err)
	}
}

func TestSQLiteAnimeStore_FindPageQueries(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM anime")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM anime ORDER BY id ASC LIMIT 2 OFFSET 2")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(3), "Monster"))

	p, err := s.FindPage(context.Background(), domain.PageRequest{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("find page: %v", err)
	}
	if p.TotalElements != 3 || len(p.Content) != 1 || p.Content[0].Name != "Monster" || !p.Last {
		t.Fatalf("unexpected page %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMapPgError(t *testing.T) {
	if err := mapPgError(&pgconn.PgError{Code: "23514"}); !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected ErrConstraint for check violation, got %v", err)
	}
	other := &pgconn.PgError{Code: "40001"}
	if err := mapPgError(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}
