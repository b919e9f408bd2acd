package store

import (
	"context"
	"time"

	"github.com/learnsphere/assessment-engine/internal/cache"
	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/learnsphere/assessment-engine/internal/utils"
)

const cacheKeyPrefix = "question_set:"

// cachedStore layers a read-through cache over another store. Cache failures
// degrade to the inner store; they never fail a request.
type cachedStore struct {
	inner  QuestionSetStore
	cache  cache.CacheService
	ttl    time.Duration
	logger utils.Logger
}

func NewCachedStore(inner QuestionSetStore, cacheService cache.CacheService, ttl time.Duration, logger utils.Logger) QuestionSetStore {
	return &cachedStore{
		inner:  inner,
		cache:  cacheService,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *cachedStore) Save(ctx context.Context, set models.QuestionSet) error {
	if err := s.inner.Save(ctx, set); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, cacheKeyPrefix+set.ID, set, s.ttl); err != nil {
		s.logger.Warn("Failed to cache question set", "question_set_id", set.ID, "error", err)
	}
	return nil
}

func (s *cachedStore) Get(ctx context.Context, id string) (models.QuestionSet, error) {
	var set models.QuestionSet
	if err := s.cache.Get(ctx, cacheKeyPrefix+id, &set); err == nil {
		return set, nil
	}

	set, err := s.inner.Get(ctx, id)
	if err != nil {
		return models.QuestionSet{}, err
	}
	if err := s.cache.Set(ctx, cacheKeyPrefix+id, set, s.ttl); err != nil {
		s.logger.Warn("Failed to cache question set", "question_set_id", id, "error", err)
	}
	return set, nil
}

func (s *cachedStore) List(ctx context.Context) ([]models.QuestionSet, error) {
	return s.inner.List(ctx)
}

func (s *cachedStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, cacheKeyPrefix+id); err != nil {
		s.logger.Warn("Failed to evict question set", "question_set_id", id, "error", err)
	}
	return s.inner.Delete(ctx, id)
}
