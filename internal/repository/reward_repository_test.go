package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRewardRepositoryRoundTrip(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewRewardRepository(client, "test_rewards", zap.NewNop())
	ctx := context.Background()

	flags := map[string]models.RewardFlags{
		"stu-1": {Badge: true},
		"stu-2": {Certificate: true, Comment: true},
	}
	require.NoError(t, repo.Save(ctx, flags))

	loaded, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, flags, loaded)
}

func TestRewardRepositoryPrunesEmptyEntries(t *testing.T) {
	client, mr := newTestRedis(t)
	repo := NewRewardRepository(client, "test_rewards", zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, map[string]models.RewardFlags{
		"stu-1": {Badge: true},
		"stu-2": {},
	}))

	raw, err := mr.Get("test_rewards")
	require.NoError(t, err)

	var persisted map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Contains(t, persisted, "stu-1")
	assert.NotContains(t, persisted, "stu-2", "all-false entries are pruned from storage")
}

func TestRewardRepositoryMissingKeyIsEmptyMap(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewRewardRepository(client, "test_rewards", zap.NewNop())

	loaded, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRewardRepositoryCorruptBlobIsEmptyMap(t *testing.T) {
	client, mr := newTestRedis(t)
	repo := NewRewardRepository(client, "test_rewards", zap.NewNop())

	mr.Set("test_rewards", "{not json") //nolint:errcheck

	loaded, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
