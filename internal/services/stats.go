package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/courseview-backend/internal/data/repos"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
)

const (
	statsCacheKey = "courseview:site_stats"
	statsCacheTTL = 60 * time.Second
)

// SiteStats is the derived site-wide snapshot served to the frontend.
type SiteStats struct {
	UserCount             int64              `json:"user_count"`
	CourseCount           int64              `json:"course_count"`
	CourseWithReviewCount int64              `json:"course_with_review_count"`
	ReviewCount           int64              `json:"review_count"`
	UserJoinedPerDay      []repos.DateCount  `json:"user_joined_per_day"`
	ReviewCreatedPerDay   []repos.DateCount  `json:"review_created_per_day"`
	ReviewRatingDist      []repos.ValueCount `json:"review_rating_dist"`
	CourseReviewCountDist []repos.ValueCount `json:"course_review_count_dist"`
	CourseReviewAvgDist   []repos.ValueCount `json:"course_review_avg_dist"`
	GeneratedAt           time.Time          `json:"generated_at"`
}

type StatsService interface {
	// GetSiteStats returns the current snapshot, served from the cache when a
	// fresh entry exists.
	GetSiteStats(ctx context.Context) (*SiteStats, error)
}

type statsService struct {
	db    *gorm.DB
	log   *logger.Logger
	cache *redis.Client

	users   repos.UserRepo
	courses repos.CourseRepo
	reviews repos.ReviewRepo
}

// NewStatsService wires the snapshot queries behind a short redis cache. A nil
// cache client disables caching and every call recomputes.
func NewStatsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cache *redis.Client,
	users repos.UserRepo,
	courses repos.CourseRepo,
	reviews repos.ReviewRepo,
) StatsService {
	return &statsService{
		db:      db,
		log:     baseLog.With("service", "StatsService"),
		cache:   cache,
		users:   users,
		courses: courses,
		reviews: reviews,
	}
}

func (s *statsService) GetSiteStats(ctx context.Context) (*SiteStats, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var cached SiteStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			// A corrupt entry falls through to recompute.
		} else if err != redis.Nil {
			s.log.Warn("stats cache read failed", "error", err)
		}
	}

	stats, err := s.computeSiteStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
				s.log.Warn("stats cache write failed", "error", err)
			}
		}
	}
	return stats, nil
}

func (s *statsService) computeSiteStats(ctx context.Context) (*SiteStats, error) {
	stats := &SiteStats{GeneratedAt: time.Now().UTC()}

	var err error
	if stats.UserCount, err = s.users.CountAll(ctx, nil); err != nil {
		return nil, err
	}
	if stats.CourseCount, err = s.courses.CountAll(ctx, nil); err != nil {
		return nil, err
	}
	if stats.CourseWithReviewCount, err = s.courses.CountWithReviews(ctx, nil); err != nil {
		return nil, err
	}
	if stats.ReviewCount, err = s.reviews.CountAll(ctx, nil); err != nil {
		return nil, err
	}
	if stats.UserJoinedPerDay, err = s.users.JoinedPerDay(ctx, nil); err != nil {
		return nil, err
	}
	if stats.ReviewCreatedPerDay, err = s.reviews.CreatedPerDay(ctx, nil); err != nil {
		return nil, err
	}
	if stats.ReviewRatingDist, err = s.reviews.RatingDistribution(ctx, nil); err != nil {
		return nil, err
	}
	if stats.CourseReviewCountDist, err = s.courses.ReviewCountDistribution(ctx, nil); err != nil {
		return nil, err
	}
	if stats.CourseReviewAvgDist, err = s.courses.ReviewAvgDistribution(ctx, nil); err != nil {
		return nil, err
	}
	return stats, nil
}
