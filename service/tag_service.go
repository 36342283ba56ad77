package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"conduit/database"
)

const (
	tagCacheKey = "tags:all"
	tagCacheTTL = 5 * time.Minute
)

// TagService 标签列表，带可选的 redis 缓存。
// redis 不可用时直接查库（降级模式）。
type TagService interface {
	List(ctx context.Context) ([]string, error)
}

type tagService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewTagService(db *gorm.DB, cache *redis.Client) (TagService, error) {
	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}
	return &tagService{db: db, cache: cache}, nil
}

func (s *tagService) List(ctx context.Context) ([]string, error) {
	if tags, ok := s.fromCache(ctx); ok {
		return tags, nil
	}

	var tags []string
	err := s.db.Model(&database.Tag{}).
		Order("name ASC").
		Pluck("name", &tags).Error
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}

	s.toCache(ctx, tags)
	return tags, nil
}

func (s *tagService) fromCache(ctx context.Context) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, tagCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, false
	}
	return tags, true
}

func (s *tagService) toCache(ctx context.Context, tags []string) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(tags)
	if err != nil {
		return
	}
	// 缓存写失败不影响响应
	_ = s.cache.Set(ctx, tagCacheKey, data, tagCacheTTL).Err()
}
