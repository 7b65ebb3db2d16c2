package store

import (
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

var dollar = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func TestPageQuery_Postgres(t *testing.T) {
	req := domain.PageRequest{Page: 2, Size: 10, Sort: []domain.Order{{Property: domain.SortByName, Desc: true}}}
	q, args, err := pageQuery(dollar, req).ToSql()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	want := "SELECT id, name FROM anime ORDER BY name DESC, id ASC LIMIT 10 OFFSET 20"
	if q != want {
		t.Fatalf("expected %q, got %q", want, q)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestOrderClauses_IDTieBreaker(t *testing.T) {
	got := orderClauses([]domain.Order{{Property: domain.SortByID, Desc: true}})
	if len(got) != 1 || got[0] != "id DESC" {
		t.Fatalf("expected explicit id order only, got %v", got)
	}
	got = orderClauses(nil)
	if len(got) != 1 || got[0] != "id ASC" {
		t.Fatalf("expected default id order, got %v", got)
	}
	// unknown properties never reach SQL
	got = orderClauses([]domain.Order{{Property: "name; DROP TABLE anime"}})
	if got[0] != "id ASC" {
		t.Fatalf("expected fallback to id, got %v", got)
	}
}

func TestWriteQueries_Postgres(t *testing.T) {
	q, args, err := insertQuery(dollar, domain.Anime{Name: "Kingdom"}).ToSql()
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if q != "INSERT INTO anime (name) VALUES ($1) RETURNING id" || len(args) != 1 || args[0] != "Kingdom" {
		t.Fatalf("unexpected insert %q %v", q, args)
	}

	q, args, err = updateQuery(dollar, domain.Anime{ID: 7, Name: "Fly"}).ToSql()
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if q != "UPDATE anime SET name = $1 WHERE id = $2" || len(args) != 2 {
		t.Fatalf("unexpected update %q %v", q, args)
	}

	q, _, err = deleteQuery(dollar, 7).ToSql()
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if q != "DELETE FROM anime WHERE id = $1" {
		t.Fatalf("unexpected delete %q", q)
	}
}
