// Package search builds parameterized filter sets for catalog searches.
//
// A search request is turned into a Filter: an ordered list of predicates with bound values,
// a fixed sort and a clamped limit/offset. Filter rendering only ever emits identifiers taken
// from a Target; every request value travels as a bind argument.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mediacatalog/backend/internal/apperrors"
)

// SortKey selects the result order
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortPopular SortKey = "popular"
	SortRating  SortKey = "rating"
	SortTitle   SortKey = "title"
)

// MaxPage bounds the page number so offsets stay within a sane range
const MaxPage = 10000

// maxQueryLength caps free text so LIKE patterns stay small
const maxQueryLength = 200

// Params is a structured search request
type Params struct {
	Query        string
	CategorySlug string
	Quality      string
	// Duration bounds in minutes
	DurationMin *int
	DurationMax *int
	Tag         string
	Sort        SortKey
	Page        int
	Limit       int
}

// Limits holds the default and maximal page size
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits are used when no configuration is supplied
var DefaultLimits = Limits{Default: 20, Max: 100}

// ParseQuery reads search parameters from a query string.
//
// Unparsable page and limit values fall back to defaults during Build. Malformed duration
// bounds are a validation error.
func ParseQuery(values url.Values) (Params, error) {
	p := Params{
		Query:        strings.TrimSpace(values.Get("q")),
		CategorySlug: strings.TrimSpace(values.Get("category")),
		Quality:      strings.TrimSpace(values.Get("quality")),
		Tag:          strings.TrimSpace(values.Get("tag")),
		Sort:         SortKey(strings.ToLower(strings.TrimSpace(values.Get("sort")))),
	}
	if p.Query == "" {
		p.Query = strings.TrimSpace(values.Get("search"))
	}
	if len(p.Query) > maxQueryLength {
		return Params{}, apperrors.Validation("search query is too long")
	}

	p.Page, _ = strconv.Atoi(values.Get("page"))

	limitStr := values.Get("limit")
	if limitStr == "" {
		limitStr = values.Get("per_page")
	}
	p.Limit, _ = strconv.Atoi(limitStr)

	var err error
	if p.DurationMin, err = parseMinutes(values.Get("duration_min"), "duration_min"); err != nil {
		return Params{}, err
	}
	if p.DurationMax, err = parseMinutes(values.Get("duration_max"), "duration_max"); err != nil {
		return Params{}, err
	}
	if p.DurationMin != nil && p.DurationMax != nil && *p.DurationMin > *p.DurationMax {
		return Params{}, apperrors.Validation("duration_min must not exceed duration_max")
	}

	return p, nil
}

func parseMinutes(raw, name string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, apperrors.Validation(name + " must be a non-negative integer")
	}
	// Keep minutes * 60 far from int overflow
	if v > 1_000_000 {
		return nil, apperrors.Validation(name + " is out of range")
	}
	return &v, nil
}
