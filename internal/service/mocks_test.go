package service

import (
	"context"
	"time"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/damoang/angple-search/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockSearchRepository is a mock implementation of SearchRepository
type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Ranked(ctx context.Context, req repository.TierRequest) (repository.IDPage, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(repository.IDPage), args.Error(1)
}

func (m *MockSearchRepository) Fuzzy(ctx context.Context, req repository.TierRequest) (repository.IDPage, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(repository.IDPage), args.Error(1)
}

func (m *MockSearchRepository) CountRanked(ctx context.Context, req repository.TierRequest, upTo int) (int, error) {
	args := m.Called(ctx, req, upTo)
	return args.Int(0), args.Error(1)
}

// MockHydrateRepository is a mock implementation of HydrateRepository
type MockHydrateRepository struct {
	mock.Mock
}

func (m *MockHydrateRepository) Communities(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.CommunityHit, error) {
	args := m.Called(ctx, ids, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommunityHit), args.Error(1)
}

func (m *MockHydrateRepository) Posts(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.PostHit, error) {
	args := m.Called(ctx, ids, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostHit), args.Error(1)
}

func (m *MockHydrateRepository) Comments(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.CommentHit, error) {
	args := m.Called(ctx, ids, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommentHit), args.Error(1)
}

func (m *MockHydrateRepository) Accounts(ctx context.Context, ids []int64, ac domain.AccessContext) ([]domain.AccountHit, error) {
	args := m.Called(ctx, ids, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountHit), args.Error(1)
}

func (m *MockHydrateRepository) CommentCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockHydrateRepository) ReactionTallies(ctx context.Context, postIDs []int64) (map[int64]domain.ReactionTally, error) {
	args := m.Called(ctx, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.ReactionTally), args.Error(1)
}

func (m *MockHydrateRepository) CommunityImageRefs(ctx context.Context, communityIDs []int64) (map[int64]string, error) {
	args := m.Called(ctx, communityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockCacheService is a mock implementation of cache.Service
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetImageRefs(ctx context.Context, communityIDs []int64) (map[int64]string, []int64, error) {
	args := m.Called(ctx, communityIDs)
	var hits map[int64]string
	if v := args.Get(0); v != nil {
		hits = v.(map[int64]string)
	}
	var misses []int64
	if v := args.Get(1); v != nil {
		misses = v.([]int64)
	}
	return hits, misses, args.Error(2)
}

func (m *MockCacheService) SetImageRefs(ctx context.Context, communityIDs []int64, refs map[int64]string, ttl time.Duration) error {
	return m.Called(ctx, communityIDs, refs, ttl).Error(0)
}

func (m *MockCacheService) IsAvailable() bool {
	return m.Called().Bool(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// fakeStore runs fn directly against fixed repositories
type fakeStore struct {
	repos repository.Repositories
	calls int
}

func (f *fakeStore) ReadSnapshot(_ context.Context, fn func(repos repository.Repositories) error) error {
	f.calls++
	return fn(f.repos)
}

func newFakeStore() (*fakeStore, *MockSearchRepository, *MockHydrateRepository, *MockAccountRepository) {
	search := new(MockSearchRepository)
	hydrate := new(MockHydrateRepository)
	accounts := new(MockAccountRepository)
	return &fakeStore{repos: repository.Repositories{
		Accounts: accounts,
		Search:   search,
		Hydrate:  hydrate,
	}}, search, hydrate, accounts
}

// tierReq matches a TierRequest on kind, offset, limit and exclusions
func tierReq(kind domain.SearchKind, offset, limit int, exclude ...int64) interface{} {
	return mock.MatchedBy(func(req repository.TierRequest) bool {
		if req.Kind != kind || req.Offset != offset || req.Limit != limit {
			return false
		}
		if len(req.Exclude) != len(exclude) {
			return false
		}
		for i := range exclude {
			if req.Exclude[i] != exclude[i] {
				return false
			}
		}
		return true
	})
}

func seq(from, n int64) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = from + int64(i)
	}
	return ids
}
