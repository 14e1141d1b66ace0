package service

import (
	"context"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/damoang/angple-search/internal/repository"
)

// Tier one id retrieval strategy. Tiers run in order; a later tier only runs
// while the page still has room and no earlier tier reported more rows.
type Tier interface {
	Name() string
	// Fetch returns up to req.Limit ids. req.Offset is the page offset and
	// req.Exclude the ids already chosen by earlier tiers on this page.
	Fetch(ctx context.Context, repo repository.SearchRepository, req repository.TierRequest) (repository.IDPage, error)
}

// DefaultTiers ranked full-text first, fuzzy fallback second
func DefaultTiers() []Tier {
	return []Tier{rankedTier{}, fuzzyTier{}}
}

type rankedTier struct{}

func (rankedTier) Name() string { return "ranked" }

func (rankedTier) Fetch(ctx context.Context, repo repository.SearchRepository, req repository.TierRequest) (repository.IDPage, error) {
	return repo.Ranked(ctx, req)
}

type fuzzyTier struct{}

func (fuzzyTier) Name() string { return "fuzzy" }

// Fetch continues the fallback sequence across pages. When the ranked tier
// filled part of this page the fallback starts from its first row; when the
// ranked rows ran out on an earlier page it skips the fallback rows those
// pages already showed.
func (fuzzyTier) Fetch(ctx context.Context, repo repository.SearchRepository, req repository.TierRequest) (repository.IDPage, error) {
	pageOffset := req.Offset
	req.Offset = 0
	if len(req.Exclude) == 0 && pageOffset > 0 {
		rankedTotal, err := repo.CountRanked(ctx, req, pageOffset)
		if err != nil {
			return repository.IDPage{}, err
		}
		req.Offset = pageOffset - rankedTotal
	}
	return repo.Fuzzy(ctx, req)
}

// runTiers executes the tier chain for one kind and assembles the page
func runTiers(ctx context.Context, repo repository.SearchRepository, tiers []Tier, base repository.TierRequest) (domain.RankedIDSet, error) {
	pageSize := base.Limit
	pages := make([]repository.IDPage, 0, len(tiers))
	var chosen []int64
	hasMore := false
	kind := kindLabel(base.Kind)

	for i, tier := range tiers {
		if i > 0 && (len(chosen) >= pageSize || hasMore) {
			break
		}

		req := base
		req.Limit = pageSize - len(chosen)
		req.Exclude = append([]int64(nil), chosen...)

		searchTierInvocations.WithLabelValues(kind, tier.Name()).Inc()
		page, err := tier.Fetch(ctx, repo, req)
		if err != nil {
			return domain.RankedIDSet{}, err
		}
		pages = append(pages, page)
		chosen = append(chosen, page.IDs...)
		hasMore = hasMore || page.HasMore
	}

	return assemble(pageSize, pages...), nil
}

// assemble concatenates tier pages keeping first occurrences in order, caps
// the result at pageSize and ORs the tier lookahead flags. Ids cut by the cap
// also mean more rows exist.
func assemble(pageSize int, pages ...repository.IDPage) domain.RankedIDSet {
	ids := make([]int64, 0, pageSize)
	seen := make(map[int64]struct{}, pageSize)
	hasMore := false

	for _, page := range pages {
		hasMore = hasMore || page.HasMore
		for _, id := range page.IDs {
			if _, dup := seen[id]; dup {
				continue
			}
			if len(ids) >= pageSize {
				hasMore = true
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return domain.RankedIDSet{IDs: ids, HasMore: hasMore}
}
