package repository

import (
	"context"
	"fmt"

	"github.com/damoang/angple-search/internal/domain"
	"gorm.io/gorm"
)

// HydrateRepository batch loads result projections by id.
// Every projection query re-applies the visibility predicate, so rows that
// changed visibility after id retrieval are simply not returned.
type HydrateRepository interface {
	Communities(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.CommunityHit, error)
	Posts(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.PostHit, error)
	Comments(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.CommentHit, error)
	Accounts(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.AccountHit, error)

	// Aggregates
	CommentCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error)
	ReactionTallies(ctx context.Context, postIDs []int64) (map[int64]domain.ReactionTally, error)
	CommunityImageRefs(ctx context.Context, communityIDs []int64) (map[int64]string, error)
}

type hydrateRepository struct {
	db *gorm.DB
}

// NewHydrateRepository creates a new HydrateRepository
func NewHydrateRepository(db *gorm.DB) HydrateRepository {
	return &hydrateRepository{db: db}
}

func (r *hydrateRepository) Communities(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.CommunityHit, error) {
	hits := []domain.CommunityHit{}
	if len(ids) == 0 {
		return hits, nil
	}

	q := r.db.WithContext(ctx).
		Table("communities AS c").
		Select("c.id, c.name, c.slug, c.description, c.visibility, c.created_at").
		Where("c.id IN ?", ids)
	if err := VisibilityPredicate(domain.KindCommunity, ac).Apply(q).Scan(&hits).Error; err != nil {
		return nil, fmt.Errorf("hydrate communities: %w", err)
	}
	return hits, nil
}

func (r *hydrateRepository) Posts(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.PostHit, error) {
	hits := []domain.PostHit{}
	if len(ids) == 0 {
		return hits, nil
	}

	q := r.db.WithContext(ctx).
		Table("posts AS p").
		Select(`p.id, p.community_id, c.slug AS community_slug, c.name AS community_name,
			p.author_id, COALESCE(a.display_name, '') AS author_display_name,
			p.title, p.view_count, p.is_pinned, p.created_at`).
		Joins("JOIN communities AS c ON c.id = p.community_id").
		Joins("LEFT JOIN accounts AS a ON a.id = p.author_id").
		Where("p.id IN ?", ids)
	if err := VisibilityPredicate(domain.KindPost, ac).Apply(q).Scan(&hits).Error; err != nil {
		return nil, fmt.Errorf("hydrate posts: %w", err)
	}
	return hits, nil
}

func (r *hydrateRepository) Comments(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.CommentHit, error) {
	hits := []domain.CommentHit{}
	if len(ids) == 0 {
		return hits, nil
	}

	q := r.db.WithContext(ctx).
		Table("comments AS cm").
		Select(`cm.id, cm.post_id, p.title AS post_title,
			c.id AS community_id, c.slug AS community_slug, c.name AS community_name,
			cm.author_id, COALESCE(a.display_name, '') AS author_display_name,
			cm.content AS body_text, cm.created_at`).
		Joins("JOIN posts AS p ON p.id = cm.post_id").
		Joins("JOIN communities AS c ON c.id = p.community_id").
		Joins("LEFT JOIN accounts AS a ON a.id = cm.author_id").
		Where("cm.id IN ?", ids)
	if err := VisibilityPredicate(domain.KindComment, ac).Apply(q).Scan(&hits).Error; err != nil {
		return nil, fmt.Errorf("hydrate comments: %w", err)
	}
	return hits, nil
}

func (r *hydrateRepository) Accounts(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.AccountHit, error) {
	hits := []domain.AccountHit{}
	if len(ids) == 0 {
		return hits, nil
	}

	q := r.db.WithContext(ctx).
		Table("accounts AS a").
		Select("a.id, a.handle, a.display_name, a.created_at").
		Where("a.id IN ?", ids)
	if err := VisibilityPredicate(domain.KindAccount, ac).Apply(q).Scan(&hits).Error; err != nil {
		return nil, fmt.Errorf("hydrate accounts: %w", err)
	}
	return hits, nil
}

// CommentCounts live comment count per post; posts without comments are absent
func (r *hydrateRepository) CommentCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID int64
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ? AND deleted_at IS NULL", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// ReactionTallies like/dislike counts per post; posts without reactions are absent
func (r *hydrateRepository) ReactionTallies(ctx context.Context, postIDs []int64) (map[int64]domain.ReactionTally, error) {
	tallies := make(map[int64]domain.ReactionTally, len(postIDs))
	if len(postIDs) == 0 {
		return tallies, nil
	}

	var rows []domain.ReactionTally
	err := r.db.WithContext(ctx).
		Table("post_reactions").
		Select(
			"post_id, SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) AS likes, SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) AS dislikes",
			string(domain.ReactionLike), string(domain.ReactionDislike),
		).
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("tally reactions: %w", err)
	}
	for _, row := range rows {
		tallies[row.PostID] = row
	}
	return tallies, nil
}

// CommunityImageRefs object key per community; communities without an image are absent
func (r *hydrateRepository) CommunityImageRefs(ctx context.Context, communityIDs []int64) (map[int64]string, error) {
	refs := make(map[int64]string, len(communityIDs))
	if len(communityIDs) == 0 {
		return refs, nil
	}

	var rows []domain.CommunityImage
	err := r.db.WithContext(ctx).
		Where("community_id IN ?", communityIDs).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load community images: %w", err)
	}
	for _, row := range rows {
		if row.ObjectKey != "" {
			refs[row.CommunityID] = row.ObjectKey
		}
	}
	return refs, nil
}
