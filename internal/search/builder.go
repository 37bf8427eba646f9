package search

import (
	"encoding/json"
	"strings"
)

// Build translates a search request into a filter set for the target.
// It never returns an error: unknown sort keys and out-of-range pagination are normalized.
func Build(target Target, p Params, limits Limits) Filter {
	if limits.Default <= 0 || limits.Max <= 0 {
		limits = DefaultLimits
	}

	predicates := make([]Predicate, 0, len(target.BasePredicates)+6)
	predicates = append(predicates, target.BasePredicates...)

	if p.Query != "" {
		predicates = append(predicates, Predicate{
			Columns: []string{target.column("title"), target.column("description")},
			Op:      OpLike,
			Value:   "%" + escapeLike(strings.ToLower(p.Query)) + "%",
		})
	}

	if p.CategorySlug != "" {
		predicates = append(predicates, Predicate{
			Columns: []string{"c.slug"},
			Op:      OpEqual,
			Value:   p.CategorySlug,
		})
	}

	if p.Quality != "" && target.QualityColumn != "" {
		predicates = append(predicates, Predicate{
			Columns: []string{target.QualityColumn},
			Op:      OpEqual,
			Value:   p.Quality,
		})
	}

	if target.DurationColumn != "" {
		if p.DurationMin != nil {
			predicates = append(predicates, Predicate{
				Columns: []string{target.DurationColumn},
				Op:      OpGreaterOrEqual,
				Value:   *p.DurationMin * 60,
			})
		}
		if p.DurationMax != nil {
			predicates = append(predicates, Predicate{
				Columns: []string{target.DurationColumn},
				Op:      OpLessOrEqual,
				Value:   *p.DurationMax * 60,
			})
		}
	}

	if p.Tag != "" {
		// JSON encoding quotes the token so containment is exact, never a substring match
		encoded, _ := json.Marshal(p.Tag)
		predicates = append(predicates, Predicate{
			Columns: []string{target.column("tags")},
			Op:      OpJSONContains,
			Value:   string(encoded),
		})
	}

	page, limit := clampPage(p.Page, p.Limit, limits)

	return Filter{
		Target:     target,
		Predicates: predicates,
		Sort:       resolveSort(target, p.Sort),
		Page:       page,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
}

// clampPage normalizes page and limit to [1, MaxPage] and [1, limits.Max]
func clampPage(page, limit int, limits Limits) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = limits.Default
	}
	if limit > limits.Max {
		limit = limits.Max
	}
	return page, limit
}

func resolveSort(target Target, key SortKey) Sort {
	if s, ok := target.Sorts[key]; ok {
		return s
	}
	if s, ok := target.Sorts[SortNewest]; ok {
		return s
	}
	return Sort{Column: target.column("id"), Desc: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
