package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/domain/repository"
	"github.com/realworld-go/conduit/pkg/helpers"
)

const (
	tagCacheKey = "tags:all"
	tagCacheTTL = 5 * time.Minute
)

// TagService lists tags with a small Redis cache in front of the
// repository; the tag cloud changes far less often than it is read.
// Article writes drop the cache key, so the TTL is just a backstop.
type TagService struct {
	Tags   repository.TagRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewTagService(tags repository.TagRepository, rdb *redis.Client, logger *logrus.Logger) *TagService {
	return &TagService{Tags: tags, Redis: rdb, Logger: logger}
}

func (s *TagService) List(ctx context.Context) ([]string, error) {
	if s.Redis != nil {
		var cached []string
		hit, err := helpers.LookupJSON(ctx, s.Redis, tagCacheKey, &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("tag cache read failed")
		}
		if err == nil && hit {
			return cached, nil
		}
	}

	tags, err := s.Tags.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.CacheJSON(ctx, s.Redis, tagCacheKey, tags, tagCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("tag cache write failed")
		}
	}
	return tags, nil
}
