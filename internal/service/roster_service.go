package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

const classCacheKey = "cache:classes"

type rosterFetcher interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListWeeks(ctx context.Context, semester int, quarter int) ([]models.Week, error)
}

type payloadCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type cacheObserver interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// RosterService serves classes and teaching weeks. The class list changes
// rarely and is cached; weeks are always fetched fresh because the active
// quarter shifts during the term.
type RosterService struct {
	upstream rosterFetcher
	cache    payloadCache
	cacheTTL time.Duration
	metrics  cacheObserver
	logger   *zap.Logger
}

// NewRosterService constructs RosterService.
func NewRosterService(upstream rosterFetcher, cache payloadCache, cacheTTL time.Duration, metrics cacheObserver, logger *zap.Logger) *RosterService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{upstream: upstream, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

func (s *RosterService) recordCache(hit bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
}

// Classes returns the class roster, from cache when fresh.
func (s *RosterService) Classes(ctx context.Context) ([]models.Class, error) {
	if s.cache != nil {
		start := time.Now()
		var cached []models.Class
		err := s.cache.Get(ctx, classCacheKey, &cached)
		if err == nil {
			s.recordCache(true, start)
			return cached, nil
		}
		s.recordCache(false, start)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("class cache read failed", zap.Error(err))
		}
	}

	classes, err := s.upstream.ListClasses(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, classCacheKey, classes, s.cacheTTL); err != nil {
			s.logger.Warn("class cache write failed", zap.Error(err))
		}
	}
	return classes, nil
}

// Weeks returns the teaching weeks for a semester, optionally narrowed to a
// quarter.
func (s *RosterService) Weeks(ctx context.Context, semester, quarter int) ([]models.Week, error) {
	if semester != 1 && semester != 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
	}
	return s.upstream.ListWeeks(ctx, semester, quarter)
}
