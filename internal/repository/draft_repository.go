package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"nysc-services/internal/domain"
)

// ErrDraftNotFound signals an absent or expired draft. Handlers translate it
// into a redirect back to service selection (fail-closed, not fail-open).
var ErrDraftNotFound = errors.New("no draft for session")

// DraftRepository holds at most one in-flight draft per client session,
// keyed by session ID. Redis keeps the draft across page reloads and process
// restarts between the form step and the payment step.
type DraftRepository interface {
	Save(ctx context.Context, sessionID string, draft *domain.Draft) error
	Load(ctx context.Context, sessionID string) (*domain.Draft, error)
	Clear(ctx context.Context, sessionID string) error
}

type draftRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewDraftRepository(redisClient *redis.Client, ttl time.Duration) DraftRepository {
	return &draftRepository{redis: redisClient, ttl: ttl}
}

func draftKey(sessionID string) string {
	return "draft:" + sessionID
}

func (r *draftRepository) Save(ctx context.Context, sessionID string, draft *domain.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return r.redis.Set(ctx, draftKey(sessionID), payload, r.ttl).Err()
}

func (r *draftRepository) Load(ctx context.Context, sessionID string) (*domain.Draft, error) {
	payload, err := r.redis.Get(ctx, draftKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var draft domain.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) Clear(ctx context.Context, sessionID string) error {
	return r.redis.Del(ctx, draftKey(sessionID)).Err()
}
