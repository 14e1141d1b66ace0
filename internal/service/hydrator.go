package service

import (
	"context"
	"time"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/damoang/angple-search/internal/repository"
	"github.com/damoang/angple-search/pkg/cache"
	pkglogger "github.com/damoang/angple-search/pkg/logger"
)

// Hydrator turns assembled ids into ordered result projections
type Hydrator struct {
	cache    cache.Service
	imageTTL time.Duration
}

// NewHydrator creates a Hydrator. cacheSvc may be nil.
func NewHydrator(cacheSvc cache.Service, imageTTL time.Duration) *Hydrator {
	return &Hydrator{cache: cacheSvc, imageTTL: imageTTL}
}

// Communities loads community hits with their image references
func (h *Hydrator) Communities(ctx context.Context, repo repository.HydrateRepository, ids []int64, ac domain.AccessContext) ([]domain.CommunityHit, error) {
	rows, err := repo.Communities(ctx, ids, ac)
	if err != nil {
		return nil, err
	}
	hits := orderByIDs(domain.KindCommunity, ids, rows)
	if len(hits) == 0 {
		return hits, nil
	}

	communityIDs := make([]int64, len(hits))
	for i, hit := range hits {
		communityIDs[i] = hit.ID
	}
	refs, err := h.imageRefs(ctx, repo, communityIDs)
	if err != nil {
		return nil, err
	}
	for i := range hits {
		if ref, ok := refs[hits[i].ID]; ok && ref != "" {
			ref := ref
			hits[i].ImageRef = &ref
		}
	}
	return hits, nil
}

// Posts loads post hits with comment counts and reaction tallies
func (h *Hydrator) Posts(ctx context.Context, repo repository.HydrateRepository, ids []int64, ac domain.AccessContext) ([]domain.PostHit, error) {
	rows, err := repo.Posts(ctx, ids, ac)
	if err != nil {
		return nil, err
	}
	hits := orderByIDs(domain.KindPost, ids, rows)
	if len(hits) == 0 {
		return hits, nil
	}

	postIDs := make([]int64, len(hits))
	for i, hit := range hits {
		postIDs[i] = hit.ID
	}
	counts, err := repo.CommentCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	tallies, err := repo.ReactionTallies(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	for i := range hits {
		hits[i].CommentCount = counts[hits[i].ID]
		tally := tallies[hits[i].ID]
		hits[i].LikeCount = tally.Likes
		hits[i].DislikeCount = tally.Dislikes
	}
	return hits, nil
}

// Comments loads comment hits
func (h *Hydrator) Comments(ctx context.Context, repo repository.HydrateRepository, ids []int64, ac domain.AccessContext) ([]domain.CommentHit, error) {
	rows, err := repo.Comments(ctx, ids, ac)
	if err != nil {
		return nil, err
	}
	return orderByIDs(domain.KindComment, ids, rows), nil
}

// Accounts loads account hits
func (h *Hydrator) Accounts(ctx context.Context, repo repository.HydrateRepository, ids []int64, ac domain.AccessContext) ([]domain.AccountHit, error) {
	rows, err := repo.Accounts(ctx, ids, ac)
	if err != nil {
		return nil, err
	}
	return orderByIDs(domain.KindAccount, ids, rows), nil
}

// imageRefs reads through the Redis cache. Cache failures fall back to the
// store; communities without an image are cached as empty values.
func (h *Hydrator) imageRefs(ctx context.Context, repo repository.HydrateRepository, ids []int64) (map[int64]string, error) {
	if h.cache == nil || !h.cache.IsAvailable() {
		return repo.CommunityImageRefs(ctx, ids)
	}

	refs, misses, err := h.cache.GetImageRefs(ctx, ids)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("image ref cache read failed")
		refs, misses = map[int64]string{}, ids
	}
	if len(misses) == 0 {
		return refs, nil
	}

	loaded, err := repo.CommunityImageRefs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, ref := range loaded {
		refs[id] = ref
	}
	if err := h.cache.SetImageRefs(ctx, misses, loaded, h.imageTTL); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("image ref cache write failed")
	}
	return refs, nil
}

// orderByIDs returns rows in ids order. Ids without a row (deleted or hidden
// since retrieval) are dropped silently and counted.
func orderByIDs[T domain.Identifiable](kind domain.SearchKind, ids []int64, rows []T) []T {
	byID := make(map[int64]T, len(rows))
	for _, row := range rows {
		byID[row.HitID()] = row
	}

	ordered := make([]T, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}

	if dropped := len(ids) - len(ordered); dropped > 0 {
		searchHydrationDropped.WithLabelValues(kindLabel(kind)).Add(float64(dropped))
		pkglogger.GetLogger().Debug().
			Str("kind", kindLabel(kind)).
			Int("dropped", dropped).
			Msg("hydration skipped rows no longer visible")
	}
	return ordered
}
