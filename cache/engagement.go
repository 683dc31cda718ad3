package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// EngagementCounts is the cached aggregate for a single post.
type EngagementCounts struct {
	LikeCount    int64 `json:"likeCount"`
	DislikeCount int64 `json:"dislikeCount"`
	CommentCount int64 `json:"commentCount"`
}

// EngagementCache is an invalidate-on-write side cache keyed by post id.
// Writes to votes or comments must call Invalidate for that post; reads fall
// back to SQL aggregates on a miss. A nil cache (or nil client) is a no-op,
// so callers never have to branch on whether Redis is configured.
type EngagementCache struct {
	rdb *redis.Client
}

func NewEngagementCache(rdb *redis.Client) *EngagementCache {
	if rdb == nil {
		return nil
	}
	return &EngagementCache{rdb: rdb}
}

func engagementKey(postID uint) string {
	return fmt.Sprintf("post:engagement:%d", postID)
}

func (c *EngagementCache) Get(ctx context.Context, postID uint) (*EngagementCounts, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, engagementKey(postID)).Result()
	if err != nil {
		return nil, false
	}

	var counts EngagementCounts
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, false
	}
	return &counts, true
}

func (c *EngagementCache) Set(ctx context.Context, postID uint, counts EngagementCounts) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, engagementKey(postID), raw, 0).Err(); err != nil {
		log.Printf("engagement cache set failed for post %d: %v", postID, err)
	}
}

func (c *EngagementCache) Invalidate(ctx context.Context, postID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, engagementKey(postID)).Err(); err != nil {
		log.Printf("engagement cache invalidate failed for post %d: %v", postID, err)
	}
}
