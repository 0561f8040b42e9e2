package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
)

// RewardRepository persists the reward-flag map as one JSON blob under a
// fixed key. Entries whose flags are all false are pruned: a missing key
// means "no rewards", not "rewards explicitly cleared".
type RewardRepository struct {
	client     *redis.Client
	storageKey string
	logger     *zap.Logger
}

// NewRewardRepository constructs a reward repository.
func NewRewardRepository(client *redis.Client, storageKey string, logger *zap.Logger) *RewardRepository {
	if storageKey == "" {
		storageKey = "alanjal_student_rewards"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RewardRepository{client: client, storageKey: storageKey, logger: logger}
}

// All reads the full persisted map. A missing or corrupt blob is an empty
// map, never an error surfaced to views.
func (r *RewardRepository) All(ctx context.Context) (map[string]models.RewardFlags, error) {
	raw, err := r.client.Get(ctx, r.storageKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return map[string]models.RewardFlags{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", r.storageKey, err)
	}

	flags := make(map[string]models.RewardFlags)
	if err := json.Unmarshal(raw, &flags); err != nil {
		r.logger.Warn("discarding corrupt reward map", zap.Error(err))
		return map[string]models.RewardFlags{}, nil
	}
	return flags, nil
}

// Save writes the full map back, pruned of empty entries.
func (r *RewardRepository) Save(ctx context.Context, flags map[string]models.RewardFlags) error {
	pruned := make(map[string]models.RewardFlags, len(flags))
	for id, entry := range flags {
		if entry.Empty() {
			continue
		}
		pruned[id] = entry
	}

	payload, err := json.Marshal(pruned)
	if err != nil {
		return fmt.Errorf("marshal reward map: %w", err)
	}
	if err := r.client.Set(ctx, r.storageKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.storageKey, err)
	}
	return nil
}
