package search

// Operator is a comparison applied by a predicate
type Operator int

const (
	OpEqual Operator = iota
	// OpLike matches any of the predicate columns case-insensitively
	OpLike
	OpGreaterOrEqual
	OpLessOrEqual
	// OpJSONContains tests membership of a JSON encoded value in a JSON array column
	OpJSONContains
)

// Predicate is a single filter condition.
//
// Columns are trusted identifiers supplied by a Target. More than one column is only
// meaningful for OpLike, where the columns are OR-ed and share the bound value.
type Predicate struct {
	Columns []string
	Op      Operator
	Value   any
}

// Sort is a fixed column and direction
type Sort struct {
	Column string
	Desc   bool
}

// Filter is the output of Build: predicates, sort and pagination for one target
type Filter struct {
	Target     Target
	Predicates []Predicate
	Sort       Sort
	Page       int
	Limit      int
	Offset     int
}
