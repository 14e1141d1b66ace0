package service

import (
	"context"
	"time"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/damoang/angple-search/internal/repository"
	pkglogger "github.com/damoang/angple-search/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SearchService keyword search across communities, posts, comments and accounts
type SearchService struct {
	store           repository.SnapshotRunner
	hydrator        *Hydrator
	tiers           []Tier
	defaultPageSize int
	tracer          trace.Tracer
}

// NewSearchService creates a new SearchService
func NewSearchService(store repository.SnapshotRunner, hydrator *Hydrator, defaultPageSize int) *SearchService {
	return &SearchService{
		store:           store,
		hydrator:        hydrator,
		tiers:           DefaultTiers(),
		defaultPageSize: defaultPageSize,
		tracer:          otel.Tracer("angple-search/internal/service"),
	}
}

// Search validates params, then runs every requested kind inside one read snapshot.
// callerID nil means anonymous. Any failure aborts the whole call.
func (s *SearchService) Search(ctx context.Context, params domain.SearchParams, callerID *int64) (*domain.SearchResponse, error) {
	q, err := domain.NewSearchQuery(params, s.defaultPageSize)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "SearchService.Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.kind", string(q.Kind)),
		attribute.Int("search.page", q.Page),
		attribute.Int("search.page_size", q.PageSize),
	)
	start := time.Now()
	defer func() { searchDuration.Observe(time.Since(start).Seconds()) }()

	resp := &domain.SearchResponse{
		Communities: domain.EmptyResultSlice[domain.CommunityHit](q.Page, q.PageSize),
		Posts:       domain.EmptyResultSlice[domain.PostHit](q.Page, q.PageSize),
		Comments:    domain.EmptyResultSlice[domain.CommentHit](q.Page, q.PageSize),
		Accounts:    domain.EmptyResultSlice[domain.AccountHit](q.Page, q.PageSize),
	}

	err = s.store.ReadSnapshot(ctx, func(repos repository.Repositories) error {
		ac, err := ResolveAccess(ctx, repos.Accounts, callerID)
		if err != nil {
			return err
		}

		for _, kind := range domain.ContentKinds {
			if !q.Kind.Includes(kind) {
				continue
			}
			switch kind {
			case domain.KindCommunity:
				resp.Communities, err = searchKind(ctx, s, repos, q, ac, kind, s.hydrator.Communities)
			case domain.KindPost:
				resp.Posts, err = searchKind(ctx, s, repos, q, ac, kind, s.hydrator.Posts)
			case domain.KindComment:
				resp.Comments, err = searchKind(ctx, s, repos, q, ac, kind, s.hydrator.Comments)
			case domain.KindAccount:
				resp.Accounts, err = searchKind(ctx, s, repos, q, ac, kind, s.hydrator.Accounts)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

// searchKind tier chain, assembly and hydration for one kind
func searchKind[T domain.Identifiable](
	ctx context.Context,
	s *SearchService,
	repos repository.Repositories,
	q domain.SearchQuery,
	ac domain.AccessContext,
	kind domain.SearchKind,
	hydrate func(context.Context, repository.HydrateRepository, []int64, domain.AccessContext) ([]T, error),
) (domain.ResultSlice[T], error) {
	ctx, span := s.tracer.Start(ctx, "SearchService.searchKind")
	defer span.End()
	span.SetAttributes(attribute.String("search.kind", kindLabel(kind)))
	searchRequestsTotal.WithLabelValues(kindLabel(kind)).Inc()

	set, err := runTiers(ctx, repos.Search, s.tiers, repository.TierRequest{
		Kind:      kind,
		Keyword:   q.Keyword,
		Access:    ac,
		ScopeSlug: q.ScopeSlug,
		Order:     q.Order,
		Offset:    q.Offset(),
		Limit:     q.PageSize,
	})
	if err != nil {
		span.RecordError(err)
		return domain.ResultSlice[T]{}, err
	}

	items, err := hydrate(ctx, repos.Hydrate, set.IDs, ac)
	if err != nil {
		span.RecordError(err)
		return domain.ResultSlice[T]{}, err
	}

	span.SetAttributes(attribute.Int("search.ids", len(set.IDs)), attribute.Int("search.items", len(items)))
	pkglogger.GetLogger().Debug().
		Str("kind", kindLabel(kind)).
		Int("ids", len(set.IDs)).
		Int("items", len(items)).
		Bool("has_next", set.HasMore).
		Msg("search kind done")

	return domain.NewResultSlice(items, q.Page, q.PageSize, set.HasMore), nil
}
