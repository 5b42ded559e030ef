package food

import (
	"strings"

	"foodloss-backend/domain"

	sq "github.com/Masterminds/squirrel"
)

const (
	tagSubquery = "id IN (SELECT food_id FROM food_tags WHERE tag = ?)"
	nameLike    = `LOWER(name) LIKE ? ESCAPE '\'`
	descLike    = `LOWER(description) LIKE ? ESCAPE '\'`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// BuildCondition turns a filter into a WHERE fragment for the foods table.
// Inactive listings are always excluded.
func BuildCondition(filter domain.FoodFilter) (string, []any, error) {
	cond := sq.And{sq.Eq{"is_active": true}}

	if filter.StoreID != "" {
		cond = append(cond, sq.Eq{"store_id": filter.StoreID})
	}
	if filter.CategoryID != "" {
		cond = append(cond, sq.Eq{"category_id": filter.CategoryID})
	}
	if filter.Status != "" {
		cond = append(cond, sq.Eq{"status": filter.Status})
	}
	if filter.MinPrice != nil {
		cond = append(cond, sq.GtOrEq{"current_price": filter.MinPrice.String()})
	}
	if filter.MaxPrice != nil {
		cond = append(cond, sq.LtOrEq{"current_price": filter.MaxPrice.String()})
	}
	if filter.Tag != "" {
		cond = append(cond, sq.Expr(tagSubquery, filter.Tag))
	}
	if kw := strings.ToLower(strings.TrimSpace(filter.Keyword)); kw != "" {
		// wildcards typed by the caller match literally
		pattern := "%" + likeEscaper.Replace(kw) + "%"
		cond = append(cond, sq.Or{
			sq.Expr(nameLike, pattern),
			sq.Expr(descLike, pattern),
		})
	}

	return cond.ToSql()
}
