package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flow-chat/frontend/internal/model"
)

// ConversationCacheTTL bounds how long a cached list survives without a refresh.
const ConversationCacheTTL = 7 * 24 * time.Hour

type redisConversationCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisConversationCache stores entries as JSON values indexed by a
// sorted set whose scores are list positions. prefix separates users or
// deployments sharing one redis.
func NewRedisConversationCache(rdb *redis.Client, prefix string) ConversationCache {
	if prefix == "" {
		prefix = "flowchat"
	}
	return &redisConversationCache{rdb: rdb, prefix: prefix}
}

// Key Generation Helpers
func (r *redisConversationCache) indexKey() string { return r.prefix + ":conversations" }
func (r *redisConversationCache) entryKey(id int64) string {
	return fmt.Sprintf("%s:conversation:%d", r.prefix, id)
}

func (r *redisConversationCache) ReplaceAll(ctx context.Context, convs []model.ConversationSummary) error {
	oldIDs, err := r.rdb.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("could not read cached conversation ids: %w", err)
	}

	now := time.Now().UTC()
	pipe := r.rdb.TxPipeline()
	for _, id := range oldIDs {
		pipe.Del(ctx, r.prefix+":conversation:"+id)
	}
	pipe.Del(ctx, r.indexKey())
	for i, c := range convs {
		c.CachedAt = now
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("could not encode conversation %d: %w", c.ID, err)
		}
		pipe.Set(ctx, r.entryKey(c.ID), data, ConversationCacheTTL)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(i), Member: c.ID})
	}
	pipe.Expire(ctx, r.indexKey(), ConversationCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute cache replace pipeline: %w", err)
	}
	return nil
}

func (r *redisConversationCache) List(ctx context.Context) ([]model.ConversationSummary, error) {
	ids, err := r.rdb.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.ConversationSummary{}, nil
		}
		return nil, err
	}
	if len(ids) == 0 {
		return []model.ConversationSummary{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + ":conversation:" + id
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("could not read cached conversations: %w", err)
	}

	convs := make([]model.ConversationSummary, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// Expired entry still listed in the index.
			continue
		}
		var c model.ConversationSummary
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			continue
		}
		convs = append(convs, c)
	}
	return convs, nil
}

func (r *redisConversationCache) Upsert(ctx context.Context, c model.ConversationSummary) error {
	c.CachedAt = time.Now().UTC()
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not encode conversation %d: %w", c.ID, err)
	}

	top := 0.0
	first, err := r.rdb.ZRangeWithScores(ctx, r.indexKey(), 0, 0).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("could not read cache index: %w", err)
	}
	if len(first) > 0 {
		top = first[0].Score
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.entryKey(c.ID), data, ConversationCacheTTL)
	pipe.ZAddNX(ctx, r.indexKey(), redis.Z{Score: top - 1, Member: c.ID})
	pipe.Expire(ctx, r.indexKey(), ConversationCacheTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisConversationCache) Delete(ctx context.Context, conversationID int64) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.entryKey(conversationID))
	pipe.ZRem(ctx, r.indexKey(), conversationID)
	_, err := pipe.Exec(ctx)
	return err
}
