package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLImageRef 커뮤니티 이미지 참조 기본 TTL (변경 빈도 낮음)
const TTLImageRef = 10 * time.Minute

// 캐시 키 접두사
const (
	PrefixImageRef = "search:community_image:"
)

// ErrUnavailable Redis 미설정
var ErrUnavailable = errors.New("redis not available")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 커뮤니티 이미지 참조 캐시
	// GetImageRefs 캐시된 참조를 반환. 빈 문자열은 "이미지 없음"으로 캐시된 항목
	GetImageRefs(ctx context.Context, communityIDs []int64) (hits map[int64]string, misses []int64, err error)
	// SetImageRefs ids 전체를 저장. refs 에 없는 id 는 빈 값으로 저장
	SetImageRefs(ctx context.Context, communityIDs []int64, refs map[int64]string, ttl time.Duration) error

	// 유틸리티 (헬스 체크에서 사용)
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성. client 가 nil 이면 모든 쓰기는 무시됨
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping Redis 연결 테스트
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

// ========================================
// 커뮤니티 이미지 참조 캐시
// ========================================

// ImageRefKey 커뮤니티 이미지 참조 키
func ImageRefKey(communityID int64) string {
	return PrefixImageRef + strconv.FormatInt(communityID, 10)
}

func (c *redisCache) GetImageRefs(ctx context.Context, communityIDs []int64) (map[int64]string, []int64, error) {
	if c.client == nil {
		return nil, communityIDs, ErrUnavailable
	}
	if len(communityIDs) == 0 {
		return map[int64]string{}, nil, nil
	}

	keys := make([]string, len(communityIDs))
	for i, id := range communityIDs {
		keys[i] = ImageRefKey(id)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, communityIDs, fmt.Errorf("mget image refs: %w", err)
	}

	hits := make(map[int64]string, len(communityIDs))
	var misses []int64
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			misses = append(misses, communityIDs[i])
			continue
		}
		hits[communityIDs[i]] = s
	}
	return hits, misses, nil
}

func (c *redisCache) SetImageRefs(ctx context.Context, communityIDs []int64, refs map[int64]string, ttl time.Duration) error {
	if c.client == nil || len(communityIDs) == 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = TTLImageRef
	}

	pipe := c.client.Pipeline()
	for _, id := range communityIDs {
		pipe.Set(ctx, ImageRefKey(id), refs[id], ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}
