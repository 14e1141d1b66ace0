package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/damoang/angple-search/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default search tuning
const (
	DefaultTextSearchConfig    = "simple"
	DefaultSimilarityThreshold = 0.2
)

// SearchOptions tuning for the ranked and fuzzy tiers
type SearchOptions struct {
	// TextSearchConfig Postgres regconfig used to build tsquery values
	TextSearchConfig string
	// SimilarityThreshold minimum pg_trgm similarity for a fuzzy match
	SimilarityThreshold float64
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.TextSearchConfig == "" {
		o.TextSearchConfig = DefaultTextSearchConfig
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	return o
}

// TierRequest input of one retrieval tier for one content kind
type TierRequest struct {
	Kind      domain.SearchKind
	Keyword   string
	Access    domain.AccessContext
	ScopeSlug string
	Order     domain.SortOrder
	Offset    int
	Limit     int
	Exclude   []int64
}

// IDPage ids returned by a tier, in tier order, plus the lookahead flag
type IDPage struct {
	IDs     []int64
	HasMore bool
}

// SearchRepository id retrieval for the ranked and fuzzy tiers
type SearchRepository interface {
	// Ranked full-text match ordered by ts_rank
	Ranked(ctx context.Context, req TierRequest) (IDPage, error)
	// Fuzzy substring/trigram match over rows the ranked tier does not match
	Fuzzy(ctx context.Context, req TierRequest) (IDPage, error)
	// CountRanked counts ranked matches, stopping at upTo
	CountRanked(ctx context.Context, req TierRequest, upTo int) (int, error)
}

// searchTarget per-kind table layout used to build tier queries
type searchTarget struct {
	from     string
	joins    []string
	id       string
	vector   string
	recency  string
	fields   []string
	scopable bool
}

var searchTargets = map[domain.SearchKind]searchTarget{
	domain.KindCommunity: {
		from:    "communities AS " + aliasCommunity,
		id:      "c.id",
		vector:  "c.search_vector",
		recency: "c.created_at",
		fields:  []string{"c.name", "c.slug", "c.description"},
	},
	domain.KindPost: {
		from:     "posts AS " + aliasPost,
		joins:    []string{"JOIN communities AS c ON c.id = p.community_id"},
		id:       "p.id",
		vector:   "p.search_vector",
		recency:  "p.created_at",
		fields:   []string{"p.title", "p.content"},
		scopable: true,
	},
	domain.KindComment: {
		from: "comments AS " + aliasComment,
		joins: []string{
			"JOIN posts AS p ON p.id = cm.post_id",
			"JOIN communities AS c ON c.id = p.community_id",
		},
		id:       "cm.id",
		vector:   "cm.search_vector",
		recency:  "cm.created_at",
		fields:   []string{"cm.content"},
		scopable: true,
	},
	domain.KindAccount: {
		from:    "accounts AS " + aliasAccount,
		id:      "a.id",
		vector:  "a.search_vector",
		recency: "a.created_at",
		fields:  []string{"a.handle", "a.display_name"},
	},
}

type searchRepository struct {
	db   *gorm.DB
	opts SearchOptions
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *gorm.DB, opts SearchOptions) SearchRepository {
	return &searchRepository{db: db, opts: opts.withDefaults()}
}

func (r *searchRepository) Ranked(ctx context.Context, req TierRequest) (IDPage, error) {
	t, err := targetFor(req.Kind)
	if err != nil {
		return IDPage{}, err
	}

	q := r.rankedQuery(r.filtered(ctx, t, req), t, req)
	ids, more, err := FetchPageWithLookahead[int64](q, t.id, req.Offset, req.Limit)
	if err != nil {
		return IDPage{}, fmt.Errorf("ranked %s search: %w", strings.ToLower(string(req.Kind)), err)
	}
	return IDPage{IDs: ids, HasMore: more}, nil
}

func (r *searchRepository) Fuzzy(ctx context.Context, req TierRequest) (IDPage, error) {
	t, err := targetFor(req.Kind)
	if err != nil {
		return IDPage{}, err
	}

	q := r.fuzzyQuery(r.filtered(ctx, t, req), t, req)
	ids, more, err := FetchPageWithLookahead[int64](q, t.id, req.Offset, req.Limit)
	if err != nil {
		return IDPage{}, fmt.Errorf("fuzzy %s search: %w", strings.ToLower(string(req.Kind)), err)
	}
	return IDPage{IDs: ids, HasMore: more}, nil
}

func (r *searchRepository) CountRanked(ctx context.Context, req TierRequest, upTo int) (int, error) {
	if upTo <= 0 {
		return 0, nil
	}
	t, err := targetFor(req.Kind)
	if err != nil {
		return 0, err
	}

	req.Exclude = nil
	sub := r.filtered(ctx, t, req).
		Select(t.id).
		Where(t.vector+" @@ "+r.tsQuery(), r.opts.TextSearchConfig, req.Keyword).
		Limit(upTo)

	var n int64
	if err := r.db.WithContext(ctx).Table("(?) AS ranked", sub).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count ranked %s: %w", strings.ToLower(string(req.Kind)), err)
	}
	return int(n), nil
}

// filtered base query: joins, visibility, scope and exclusions
func (r *searchRepository) filtered(ctx context.Context, t searchTarget, req TierRequest) *gorm.DB {
	q := r.db.WithContext(ctx).Table(t.from)
	for _, j := range t.joins {
		q = q.Joins(j)
	}
	q = VisibilityPredicate(req.Kind, req.Access).Apply(q)
	if req.ScopeSlug != "" && t.scopable {
		q = q.Where("c.slug = ?", req.ScopeSlug)
	}
	if len(req.Exclude) > 0 {
		q = q.Where(t.id+" NOT IN ?", req.Exclude)
	}
	return q
}

func (r *searchRepository) tsQuery() string {
	return "websearch_to_tsquery(?::regconfig, ?)"
}

func (r *searchRepository) rankedQuery(q *gorm.DB, t searchTarget, req TierRequest) *gorm.DB {
	cfg := r.opts.TextSearchConfig
	return q.Where(t.vector+" @@ "+r.tsQuery(), cfg, req.Keyword).
		Order(rankOrder(t, req.Order, "ts_rank("+t.vector+", "+r.tsQuery()+")", cfg, req.Keyword))
}

func (r *searchRepository) fuzzyQuery(q *gorm.DB, t searchTarget, req TierRequest) *gorm.DB {
	pattern := "%" + escapeLike(req.Keyword) + "%"

	conds := make([]string, 0, len(t.fields)*2)
	vars := make([]interface{}, 0, len(t.fields)*3)
	scores := make([]string, 0, len(t.fields))
	scoreVars := make([]interface{}, 0, len(t.fields))
	for _, f := range t.fields {
		conds = append(conds, f+" ILIKE ?", "similarity("+f+", ?) >= ?")
		vars = append(vars, pattern, req.Keyword, r.opts.SimilarityThreshold)
		scores = append(scores, "similarity("+f+", ?)")
		scoreVars = append(scoreVars, req.Keyword)
	}

	return q.Where("("+strings.Join(conds, " OR ")+")", vars...).
		// ranked matches belong to the ranked tier only
		Where("NOT ("+t.vector+" @@ "+r.tsQuery()+")", r.opts.TextSearchConfig, req.Keyword).
		Order(rankOrder(t, req.Order, "GREATEST("+strings.Join(scores, ", ")+")", scoreVars...))
}

// rankOrder score DESC, then recency and id in the requested direction.
// Built as a single expression: gorm drops an expression ORDER BY when columns are merged into it.
func rankOrder(t searchTarget, order domain.SortOrder, score string, vars ...interface{}) clause.OrderBy {
	dir := order.Direction()
	return clause.OrderBy{Expression: clause.Expr{
		SQL:                score + " DESC, " + t.recency + " " + dir + ", " + t.id + " " + dir,
		Vars:               vars,
		WithoutParentheses: true,
	}}
}

func targetFor(kind domain.SearchKind) (searchTarget, error) {
	t, ok := searchTargets[kind]
	if !ok {
		return searchTarget{}, fmt.Errorf("unsupported search kind %q", kind)
	}
	return t, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so the keyword matches literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
