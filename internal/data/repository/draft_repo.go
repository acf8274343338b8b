package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barber-booking/internal/wizard"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DraftRepository keeps wizard drafts in Redis, each with its own TTL.
type DraftRepository interface {
	Save(ctx context.Context, id string, draft wizard.Draft, ttl time.Duration) error
	// Find returns nil, nil when the draft is missing or expired.
	Find(ctx context.Context, id string) (*wizard.Draft, error)
	Delete(ctx context.Context, id string) error
}

type draftRepository struct {
	cache *redis.Client
	log   *zap.Logger
}

func NewDraftRepository(cache *redis.Client, log *zap.Logger) DraftRepository {
	return &draftRepository{
		cache: cache,
		log:   log.With(zap.String("repository", "draft")),
	}
}

func draftKey(id string) string {
	return "wizard:draft:" + id
}

func (r *draftRepository) Save(ctx context.Context, id string, draft wizard.Draft, ttl time.Duration) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", id, err)
	}

	if err := r.cache.Set(ctx, draftKey(id), data, ttl).Err(); err != nil {
		r.log.Error("Failed to save draft", zap.Error(err), zap.String("draft_id", id))
		return fmt.Errorf("save draft %s: %w", id, err)
	}

	return nil
}

func (r *draftRepository) Find(ctx context.Context, id string) (*wizard.Draft, error) {
	data, err := r.cache.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load draft", zap.Error(err), zap.String("draft_id", id))
		return nil, fmt.Errorf("load draft %s: %w", id, err)
	}

	var draft wizard.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		r.log.Warn("Discarding unreadable draft", zap.Error(err), zap.String("draft_id", id))
		return nil, nil
	}

	return &draft, nil
}

func (r *draftRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Del(ctx, draftKey(id)).Err(); err != nil {
		r.log.Error("Failed to delete draft", zap.Error(err), zap.String("draft_id", id))
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	return nil
}
