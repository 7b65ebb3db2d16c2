package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

const animeTable = "anime"

var animeColumns = []string{"id", "name"}

// Query shapes shared by the SQL backends; only the placeholder format of the
// builder differs between them.

func selectAnimes(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(animeColumns...).From(animeTable)
}

func pageQuery(b sq.StatementBuilderType, req domain.PageRequest) sq.SelectBuilder {
	return selectAnimes(b).
		OrderBy(orderClauses(req.Sort)...).
		Limit(uint64(req.Size)).
		Offset(uint64(req.Offset()))
}

func countQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select("count(*)").From(animeTable)
}

func allQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return selectAnimes(b).OrderBy("id ASC")
}

func byIDQuery(b sq.StatementBuilderType, id int64) sq.SelectBuilder {
	return selectAnimes(b).Where(sq.Eq{"id": id})
}

func byNameQuery(b sq.StatementBuilderType, name string) sq.SelectBuilder {
	return selectAnimes(b).Where(sq.Eq{"name": name}).OrderBy("id ASC")
}

func insertQuery(b sq.StatementBuilderType, a domain.Anime) sq.InsertBuilder {
	return b.Insert(animeTable).Columns("name").Values(a.Name).Suffix("RETURNING id")
}

func updateQuery(b sq.StatementBuilderType, a domain.Anime) sq.UpdateBuilder {
	return b.Update(animeTable).Set("name", a.Name).Where(sq.Eq{"id": a.ID})
}

func deleteQuery(b sq.StatementBuilderType, id int64) sq.DeleteBuilder {
	return b.Delete(animeTable).Where(sq.Eq{"id": id})
}

// orderClauses renders validated sort orders, always ending with id so pages
// are stable.
func orderClauses(orders []domain.Order) []string {
	clauses := make([]string, 0, len(orders)+1)
	hasID := false
	for _, o := range orders {
		col := domain.SortByID
		if o.Property == domain.SortByName {
			col = domain.SortByName
		}
		if col == domain.SortByID {
			hasID = true
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		clauses = append(clauses, col+" "+dir)
	}
	if !hasID {
		clauses = append(clauses, "id ASC")
	}
	return clauses
}
