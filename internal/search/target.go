package search

// Target describes a searchable collection.
//
// Every column name is qualified with Alias. An empty DurationColumn or QualityColumn means
// the collection cannot be filtered that way and the matching request field is ignored.
type Target struct {
	Table          string
	Alias          string
	DurationColumn string
	QualityColumn  string
	BasePredicates []Predicate
	Sorts          map[SortKey]Sort
}

// VideoTarget is the hosted videos collection
var VideoTarget = Target{
	Table:          "videos",
	Alias:          "v",
	DurationColumn: "v.duration",
	QualityColumn:  "v.quality",
	Sorts: map[SortKey]Sort{
		SortNewest:  {Column: "v.created_at", Desc: true},
		SortOldest:  {Column: "v.created_at"},
		SortPopular: {Column: "v.view_count", Desc: true},
		SortRating:  {Column: "v.rating", Desc: true},
		SortTitle:   {Column: "v.title"},
	},
}

// VideoEmbedTarget is the approved video embeds collection
var VideoEmbedTarget = Target{
	Table:          "video_embeds",
	Alias:          "e",
	DurationColumn: "e.duration",
	BasePredicates: []Predicate{
		{Columns: []string{"e.is_approved"}, Op: OpEqual, Value: true},
	},
	Sorts: map[SortKey]Sort{
		SortNewest:  {Column: "e.created_at", Desc: true},
		SortOldest:  {Column: "e.created_at"},
		SortPopular: {Column: "e.view_count", Desc: true},
		SortRating:  {Column: "e.like_count", Desc: true},
		SortTitle:   {Column: "e.title"},
	},
}

// ExternalLinkTarget is the approved external links collection
var ExternalLinkTarget = Target{
	Table: "external_links",
	Alias: "l",
	BasePredicates: []Predicate{
		{Columns: []string{"l.is_approved"}, Op: OpEqual, Value: true},
	},
	Sorts: map[SortKey]Sort{
		SortNewest:  {Column: "l.created_at", Desc: true},
		SortOldest:  {Column: "l.created_at"},
		SortPopular: {Column: "l.click_count", Desc: true},
		SortRating:  {Column: "l.like_count", Desc: true},
		SortTitle:   {Column: "l.title"},
	},
}

func (t Target) column(name string) string {
	return t.Alias + "." + name
}
