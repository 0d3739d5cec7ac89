package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"nysc-services/internal/domain"
	"nysc-services/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute
)

type Service interface {
	GetStats(ctx context.Context) (*domain.RequestStats, error)
	InvalidateStats(ctx context.Context)
}

type service struct {
	requestRepo repository.ServiceRequestRepository
	redis       *redis.Client
}

func NewService(requestRepo repository.ServiceRequestRepository, redis *redis.Client) Service {
	return &service{
		requestRepo: requestRepo,
		redis:       redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*domain.RequestStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.RequestStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.requestRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, statsJSON, statsCacheTTL).Err()
		}
	}

	return stats, nil
}

// InvalidateStats drops the cache after a disposition so counts and revenue
// reflect the decision without waiting out the TTL.
func (s *service) InvalidateStats(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, statsCacheKey).Err()
	}
}
