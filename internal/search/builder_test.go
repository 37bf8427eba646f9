package search

import (
	"net/url"
	"testing"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBuild_Predicates(t *testing.T) {
	tests := []struct {
		name         string
		target       Target
		params       Params
		expectedPred []Predicate
	}{
		{
			name:         "no filters on videos",
			target:       VideoTarget,
			params:       Params{},
			expectedPred: []Predicate{},
		},
		{
			name:   "free text matches title or description lowercased",
			target: VideoTarget,
			params: Params{Query: "Go Tutorial"},
			expectedPred: []Predicate{
				{Columns: []string{"v.title", "v.description"}, Op: OpLike, Value: "%go tutorial%"},
			},
		},
		{
			name:   "free text escapes like wildcards",
			target: VideoTarget,
			params: Params{Query: `100%_a\b`},
			expectedPred: []Predicate{
				{Columns: []string{"v.title", "v.description"}, Op: OpLike, Value: `%100\%\_a\\b%`},
			},
		},
		{
			name:   "category filters by slug through join",
			target: VideoTarget,
			params: Params{CategorySlug: "music"},
			expectedPred: []Predicate{
				{Columns: []string{"c.slug"}, Op: OpEqual, Value: "music"},
			},
		},
		{
			name:   "duration bounds converted to seconds",
			target: VideoTarget,
			params: Params{DurationMin: intPtr(5), DurationMax: intPtr(20)},
			expectedPred: []Predicate{
				{Columns: []string{"v.duration"}, Op: OpGreaterOrEqual, Value: 300},
				{Columns: []string{"v.duration"}, Op: OpLessOrEqual, Value: 1200},
			},
		},
		{
			name:   "tag uses json quoted token",
			target: VideoTarget,
			params: Params{Tag: "ab"},
			expectedPred: []Predicate{
				{Columns: []string{"v.tags"}, Op: OpJSONContains, Value: `"ab"`},
			},
		},
		{
			name:   "tag with quotes stays a single json string",
			target: VideoTarget,
			params: Params{Tag: `a"b`},
			expectedPred: []Predicate{
				{Columns: []string{"v.tags"}, Op: OpJSONContains, Value: `"a\"b"`},
			},
		},
		{
			name:   "quality applies to videos",
			target: VideoTarget,
			params: Params{Quality: "1080p"},
			expectedPred: []Predicate{
				{Columns: []string{"v.quality"}, Op: OpEqual, Value: "1080p"},
			},
		},
		{
			name:   "embeds carry approval predicate and ignore quality",
			target: VideoEmbedTarget,
			params: Params{Quality: "1080p", DurationMin: intPtr(1)},
			expectedPred: []Predicate{
				{Columns: []string{"e.is_approved"}, Op: OpEqual, Value: true},
				{Columns: []string{"e.duration"}, Op: OpGreaterOrEqual, Value: 60},
			},
		},
		{
			name:   "links ignore duration",
			target: ExternalLinkTarget,
			params: Params{DurationMin: intPtr(1), DurationMax: intPtr(2), Query: "x"},
			expectedPred: []Predicate{
				{Columns: []string{"l.is_approved"}, Op: OpEqual, Value: true},
				{Columns: []string{"l.title", "l.description"}, Op: OpLike, Value: "%x%"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(tt.target, tt.params, DefaultLimits)
			assert.Equal(t, tt.expectedPred, f.Predicates)
		})
	}
}

func TestBuild_DurationMinutesToSeconds(t *testing.T) {
	for _, minutes := range []int{0, 1, 7, 59, 60, 90, 1440} {
		f := Build(VideoTarget, Params{DurationMin: intPtr(minutes), DurationMax: intPtr(minutes)}, DefaultLimits)
		require.Len(t, f.Predicates, 2)
		assert.Equal(t, minutes*60, f.Predicates[0].Value)
		assert.Equal(t, minutes*60, f.Predicates[1].Value)
	}
}

func TestBuild_Sort(t *testing.T) {
	tests := []struct {
		name     string
		target   Target
		key      SortKey
		expected Sort
	}{
		{name: "default newest", target: VideoTarget, key: "", expected: Sort{Column: "v.created_at", Desc: true}},
		{name: "unknown falls back to newest", target: VideoTarget, key: "random", expected: Sort{Column: "v.created_at", Desc: true}},
		{name: "oldest", target: VideoTarget, key: SortOldest, expected: Sort{Column: "v.created_at"}},
		{name: "popular videos", target: VideoTarget, key: SortPopular, expected: Sort{Column: "v.view_count", Desc: true}},
		{name: "rating videos", target: VideoTarget, key: SortRating, expected: Sort{Column: "v.rating", Desc: true}},
		{name: "title", target: VideoTarget, key: SortTitle, expected: Sort{Column: "v.title"}},
		{name: "popular links by clicks", target: ExternalLinkTarget, key: SortPopular, expected: Sort{Column: "l.click_count", Desc: true}},
		{name: "rating embeds by likes", target: VideoEmbedTarget, key: SortRating, expected: Sort{Column: "e.like_count", Desc: true}},
		{name: "target without sorts uses id", target: Target{Alias: "x"}, key: SortTitle, expected: Sort{Column: "x.id", Desc: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(tt.target, Params{Sort: tt.key}, DefaultLimits)
			assert.Equal(t, tt.expected, f.Sort)
		})
	}
}

func TestBuild_PaginationClamp(t *testing.T) {
	tests := []struct {
		name           string
		page, limit    int
		limits         Limits
		expectedPage   int
		expectedLimit  int
		expectedOffset int
	}{
		{name: "defaults", page: 0, limit: 0, limits: DefaultLimits, expectedPage: 1, expectedLimit: 20, expectedOffset: 0},
		{name: "negative page", page: -3, limit: 10, limits: DefaultLimits, expectedPage: 1, expectedLimit: 10, expectedOffset: 0},
		{name: "negative limit", page: 2, limit: -5, limits: DefaultLimits, expectedPage: 2, expectedLimit: 20, expectedOffset: 20},
		{name: "oversized limit", page: 1, limit: 1000000, limits: DefaultLimits, expectedPage: 1, expectedLimit: 100, expectedOffset: 0},
		{name: "oversized page", page: 1 << 30, limit: 100, limits: DefaultLimits, expectedPage: MaxPage, expectedLimit: 100, expectedOffset: (MaxPage - 1) * 100},
		{name: "regular page", page: 3, limit: 25, limits: DefaultLimits, expectedPage: 3, expectedLimit: 25, expectedOffset: 50},
		{name: "custom limits", page: 1, limit: 60, limits: Limits{Default: 10, Max: 50}, expectedPage: 1, expectedLimit: 50, expectedOffset: 0},
		{name: "invalid limits fall back", page: 1, limit: 0, limits: Limits{}, expectedPage: 1, expectedLimit: 20, expectedOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(VideoTarget, Params{Page: tt.page, Limit: tt.limit}, tt.limits)
			assert.Equal(t, tt.expectedPage, f.Page)
			assert.Equal(t, tt.expectedLimit, f.Limit)
			assert.Equal(t, tt.expectedOffset, f.Offset)
			assert.GreaterOrEqual(t, f.Offset, 0)
		})
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expected      Params
		expectedError bool
	}{
		{
			name:     "empty",
			query:    "",
			expected: Params{},
		},
		{
			name:  "all fields",
			query: "q=+cats+&category=pets&quality=720p&duration_min=1&duration_max=10&tag=funny&sort=POPULAR&page=2&limit=5",
			expected: Params{
				Query: "cats", CategorySlug: "pets", Quality: "720p",
				DurationMin: intPtr(1), DurationMax: intPtr(10), Tag: "funny",
				Sort: SortPopular, Page: 2, Limit: 5,
			},
		},
		{
			name:     "search and per_page aliases",
			query:    "search=dogs&per_page=7",
			expected: Params{Query: "dogs", Limit: 7},
		},
		{
			name:     "garbage page and limit left for clamping",
			query:    "page=abc&limit=-1",
			expected: Params{Page: 0, Limit: -1},
		},
		{name: "non numeric duration", query: "duration_min=ten", expectedError: true},
		{name: "negative duration", query: "duration_max=-1", expectedError: true},
		{name: "inverted duration bounds", query: "duration_min=10&duration_max=5", expectedError: true},
		{name: "huge duration", query: "duration_min=99999999", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			p, err := ParseQuery(values)
			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}
