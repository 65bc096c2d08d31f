// Package redisstore keeps interview sessions in Redis so several server
// replicas can share them.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talentscout/screener/internal/store"
)

const defaultPrefix = "talentscout:session:"

// SessionRepo implements store.SessionRepo on Redis. Each session is one
// JSON value; a sorted set scored by update time backs List.
type SessionRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a SessionRepo and pings the server. A zero ttl keeps
// sessions until they are deleted.
func New(ctx context.Context, client *redis.Client, prefix string, ttl time.Duration) (*SessionRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &SessionRepo{client: client, prefix: prefix, ttl: ttl}, nil
}

func (r *SessionRepo) key(id string) string {
	return r.prefix + id
}

func (r *SessionRepo) indexKey() string {
	return r.prefix + "index"
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*store.SessionRow, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var row store.SessionRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &row, nil
}

func (r *SessionRepo) Put(ctx context.Context, row *store.SessionRow) error {
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		if prev, err := r.Get(ctx, row.ID); err == nil {
			row.CreatedAt = prev.CreatedAt
		} else {
			row.CreatedAt = now
		}
	}
	row.UpdatedAt = now

	raw, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", row.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(row.ID), raw, r.ttl)
	pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(now.UnixMilli()), Member: row.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put session %s: %w", row.ID, err)
	}
	return nil
}

// List walks the index newest first. Index entries whose value has expired
// are dropped from the index as they are found.
func (r *SessionRepo) List(ctx context.Context, opts store.QueryOpts) ([]store.SessionRow, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var out []store.SessionRow
	for _, id := range ids {
		row, err := r.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			r.client.ZRem(ctx, r.indexKey(), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if opts.Ended != nil && row.Ended != *opts.Ended {
			continue
		}
		if opts.Filter != "" && row.Stage != opts.Filter {
			continue
		}
		if !opts.From.IsZero() && row.UpdatedAt.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && row.UpdatedAt.After(opts.To) {
			continue
		}
		out = append(out, *row)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	pipe.ZRem(ctx, r.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
