package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
)

// PreferenceRepository remembers each user's last-selected week and class per
// semester+quarter, so the weekly and assessment views open on the same
// scope. Entries are session-scoped via TTL.
type PreferenceRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreferenceRepository constructs a preference repository.
func NewPreferenceRepository(client *redis.Client, ttl time.Duration) *PreferenceRepository {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &PreferenceRepository{client: client, ttl: ttl}
}

func preferenceKey(userID string, semester, quarter int) string {
	return fmt.Sprintf("prefs:%s:s%d_q%d", userID, semester, quarter)
}

// Get loads the saved selection; absent keys yield an empty preference.
func (r *PreferenceRepository) Get(ctx context.Context, userID string, semester, quarter int) (models.ViewPreference, error) {
	var pref models.ViewPreference
	raw, err := r.client.Get(ctx, preferenceKey(userID, semester, quarter)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return pref, nil
		}
		return pref, fmt.Errorf("redis get preference: %w", err)
	}
	if err := json.Unmarshal(raw, &pref); err != nil {
		return models.ViewPreference{}, nil
	}
	return pref, nil
}

// Set stores the selection, refreshing the TTL.
func (r *PreferenceRepository) Set(ctx context.Context, userID string, semester, quarter int, pref models.ViewPreference) error {
	payload, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("marshal preference: %w", err)
	}
	if err := r.client.Set(ctx, preferenceKey(userID, semester, quarter), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set preference: %w", err)
	}
	return nil
}
