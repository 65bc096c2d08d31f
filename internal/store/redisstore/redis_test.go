package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentscout/screener/internal/store"
)

func newTestRepo(t *testing.T) *SessionRepo {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	prefix := "talentscout:test:" + uuid.NewString() + ":"
	repo, err := New(context.Background(), client, prefix, time.Minute)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})
	return repo
}

func TestNew_NilClient(t *testing.T) {
	_, err := New(context.Background(), nil, "", 0)
	assert.Error(t, err)
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	row := &store.SessionRow{ID: "a", Stage: "COLLECTING_INFO", Data: []byte(`{"x":1}`)}
	require.NoError(t, repo.Put(ctx, row))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "COLLECTING_INFO", got.Stage)
	assert.Equal(t, `{"x":1}`, string(got.Data))

	require.NoError(t, repo.Put(ctx, &store.SessionRow{ID: "b", Stage: "CONCLUDED", Ended: true, Data: []byte("{}")}))

	list, err := repo.List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
