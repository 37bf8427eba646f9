package search

import (
	"fmt"
	"strings"
)

// From returns the FROM clause shared by the page and count queries
func (f Filter) From() string {
	t := f.Target
	return fmt.Sprintf("%s %s LEFT JOIN categories c ON c.id = %s", t.Table, t.Alias, t.column("category_id"))
}

// Where renders the predicates into a WHERE clause and its bind arguments.
// An empty string is returned when there are no predicates.
func (f Filter) Where() (string, []any) {
	if len(f.Predicates) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(f.Predicates))
	args := make([]any, 0, len(f.Predicates)+1)
	for _, p := range f.Predicates {
		clause, pArgs := renderPredicate(p)
		clauses = append(clauses, clause)
		args = append(args, pArgs...)
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// OrderBy renders the sort with the target id as tie-breaker
func (f Filter) OrderBy() string {
	idColumn := f.Target.column("id")
	dir := "ASC"
	if f.Sort.Desc {
		dir = "DESC"
	}
	if f.Sort.Column == idColumn {
		return fmt.Sprintf("ORDER BY %s %s", idColumn, dir)
	}
	return fmt.Sprintf("ORDER BY %s %s, %s %s", f.Sort.Column, dir, idColumn, dir)
}

func renderPredicate(p Predicate) (string, []any) {
	switch p.Op {
	case OpLike:
		parts := make([]string, len(p.Columns))
		args := make([]any, len(p.Columns))
		for i, col := range p.Columns {
			parts[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
			args[i] = p.Value
		}
		if len(parts) == 1 {
			return parts[0], args
		}
		return "(" + strings.Join(parts, " OR ") + ")", args
	case OpGreaterOrEqual:
		return fmt.Sprintf("%s >= ?", p.Columns[0]), []any{p.Value}
	case OpLessOrEqual:
		return fmt.Sprintf("%s <= ?", p.Columns[0]), []any{p.Value}
	case OpJSONContains:
		return fmt.Sprintf("JSON_CONTAINS(%s, ?)", p.Columns[0]), []any{p.Value}
	default:
		return fmt.Sprintf("%s = ?", p.Columns[0]), []any{p.Value}
	}
}
