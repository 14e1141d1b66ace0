package repository

import (
	"context"
	"testing"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// tierSQL renders the statement a tier would send without executing it.
// tsvector and pg_trgm are Postgres only, so the shape is what gets checked here.
func tierSQL(t *testing.T, tier string, req TierRequest) string {
	t.Helper()
	db := setupTestDB(t)
	target, err := targetFor(req.Kind)
	require.NoError(t, err)

	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		r := &searchRepository{db: tx, opts: SearchOptions{}.withDefaults()}
		q := r.filtered(context.Background(), target, req)
		if tier == "fuzzy" {
			q = r.fuzzyQuery(q, target, req)
		} else {
			q = r.rankedQuery(q, target, req)
		}
		var ids []int64
		return q.Offset(req.Offset).Limit(req.Limit + 1).Pluck(target.id, &ids)
	})
}

func TestSearchRepository_RankedQueryShape(t *testing.T) {
	sql := tierSQL(t, "ranked", TierRequest{
		Kind:    domain.KindPost,
		Keyword: "notice",
		Access:  domain.Anonymous(),
		Order:   domain.OrderNewest,
		Limit:   10,
	})

	assert.Contains(t, sql, "FROM posts AS p")
	assert.Contains(t, sql, "JOIN communities AS c ON c.id = p.community_id")
	assert.Contains(t, sql, `p.search_vector @@ websearch_to_tsquery("simple"::regconfig, "notice")`)
	assert.Contains(t, sql, `ORDER BY ts_rank(p.search_vector, websearch_to_tsquery("simple"::regconfig, "notice")) DESC, p.created_at DESC, p.id DESC`)
	assert.Contains(t, sql, "LIMIT 11")
	assert.NotContains(t, sql, "OFFSET")
	assert.NotContains(t, sql, "similarity(")
}

func TestSearchRepository_RankedOldestKeepsScoreDescending(t *testing.T) {
	sql := tierSQL(t, "ranked", TierRequest{
		Kind:    domain.KindComment,
		Keyword: "reply",
		Access:  domain.Anonymous(),
		Order:   domain.OrderOldest,
		Offset:  20,
		Limit:   10,
	})

	assert.Contains(t, sql, "FROM comments AS cm")
	assert.Contains(t, sql, `DESC, cm.created_at ASC, cm.id ASC`)
	assert.Contains(t, sql, "LIMIT 11 OFFSET 20")
}

func TestSearchRepository_FuzzyQueryShape(t *testing.T) {
	sql := tierSQL(t, "fuzzy", TierRequest{
		Kind:      domain.KindPost,
		Keyword:   "notice",
		Access:    domain.Authenticated(accAlice, false),
		ScopeSlug: "pub",
		Order:     domain.OrderNewest,
		Limit:     10,
		Exclude:   []int64{7, 8},
	})

	assert.Contains(t, sql, `p.title ILIKE "%notice%"`)
	assert.Contains(t, sql, `similarity(p.title, "notice") >= 0.2`)
	assert.Contains(t, sql, `similarity(p.content, "notice") >= 0.2`)
	assert.Contains(t, sql, `NOT (p.search_vector @@ websearch_to_tsquery("simple"::regconfig, "notice"))`)
	assert.Contains(t, sql, `c.slug = "pub"`)
	assert.Contains(t, sql, "p.id NOT IN (7,8)")
	assert.Contains(t, sql, `ORDER BY GREATEST(similarity(p.title, "notice"), similarity(p.content, "notice")) DESC, p.created_at DESC, p.id DESC`)
}

func TestSearchRepository_ScopeIgnoredForAccounts(t *testing.T) {
	sql := tierSQL(t, "fuzzy", TierRequest{
		Kind:      domain.KindAccount,
		Keyword:   "hello",
		Access:    domain.Anonymous(),
		ScopeSlug: "pub",
		Limit:     10,
	})

	assert.Contains(t, sql, "FROM accounts AS a")
	assert.Contains(t, sql, `a.handle ILIKE "%hello%"`)
	assert.NotContains(t, sql, "c.slug")
}

func TestSearchRepository_UnknownKind(t *testing.T) {
	repo := NewSearchRepository(setupTestDB(t), SearchOptions{})
	ctx := context.Background()
	req := TierRequest{Kind: domain.SearchKind("BOARD"), Keyword: "x", Limit: 10}

	_, err := repo.Ranked(ctx, req)
	assert.Error(t, err)
	_, err = repo.Fuzzy(ctx, req)
	assert.Error(t, err)
	_, err = repo.CountRanked(ctx, req, 5)
	assert.Error(t, err)
}

func TestSearchRepository_CountRankedNothingToCount(t *testing.T) {
	repo := NewSearchRepository(setupTestDB(t), SearchOptions{})

	n, err := repo.CountRanked(context.Background(), TierRequest{Kind: domain.KindPost, Keyword: "x"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSearchOptions_WithDefaults(t *testing.T) {
	opts := SearchOptions{}.withDefaults()
	assert.Equal(t, DefaultTextSearchConfig, opts.TextSearchConfig)
	assert.Equal(t, DefaultSimilarityThreshold, opts.SimilarityThreshold)

	opts = SearchOptions{TextSearchConfig: "english", SimilarityThreshold: 0.4}.withDefaults()
	assert.Equal(t, "english", opts.TextSearchConfig)
	assert.Equal(t, 0.4, opts.SimilarityThreshold)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"50%", `50\%`},
		{"snake_case", `snake\_case`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in))
	}
}
