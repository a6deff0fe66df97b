package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// queueTTL is how long an idle play queue survives in Redis.
const queueTTL = 24 * time.Hour

// QueueItem is one entry in a user's transient play queue.
type QueueItem struct {
	SongID   int64  `json:"songId"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"`
	Position int    `json:"position"`
	AddedAt  int64  `json:"addedAt,omitempty"`
}

// QueueCache stores each user's play queue in a Redis sorted set scored
// by position. The queue is deliberately ephemeral: it expires after a
// day of inactivity and is never written to MySQL.
type QueueCache struct {
	client *redis.Client
}

// NewQueueCache creates a QueueCache on the given Redis client.
func NewQueueCache(client *redis.Client) *QueueCache {
	return &QueueCache{client: client}
}

func queueKey(userID int64) string {
	return fmt.Sprintf("queue:%d", userID)
}

// Get returns the user's queue in position order. An empty or expired
// queue returns an empty slice.
func (q *QueueCache) Get(ctx context.Context, userID int64) ([]QueueItem, error) {
	members, err := q.client.ZRangeByScore(ctx, queueKey(userID), &redis.ZRangeBy{
		Min: "-inf",
		Max: "+inf",
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return []QueueItem{}, nil
		}
		return nil, fmt.Errorf("failed to get play queue: %w", err)
	}

	items := make([]QueueItem, 0, len(members))
	for _, member := range members {
		var item QueueItem
		if err := json.Unmarshal([]byte(member), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal queue item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Add appends an item at the end of the queue and refreshes its expiry.
func (q *QueueCache) Add(ctx context.Context, userID int64, item QueueItem) error {
	items, err := q.Get(ctx, userID)
	if err != nil {
		return err
	}

	item.Position = 0
	for _, existing := range items {
		if existing.Position >= item.Position {
			item.Position = existing.Position + 1
		}
	}
	item.AddedAt = time.Now().Unix()

	itemJSON, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal queue item: %w", err)
	}

	key := queueKey(userID)
	if err := q.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(item.Position),
		Member: itemJSON,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add item to play queue: %w", err)
	}

	if err := q.client.Expire(ctx, key, queueTTL).Err(); err != nil {
		return fmt.Errorf("failed to set play queue expiration: %w", err)
	}
	return nil
}

// Remove drops the entry for the given song. Removing an absent song is
// a no-op.
func (q *QueueCache) Remove(ctx context.Context, userID, songID int64) error {
	items, err := q.Get(ctx, userID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.SongID != songID {
			continue
		}
		itemJSON, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal queue item: %w", err)
		}
		if err := q.client.ZRem(ctx, queueKey(userID), itemJSON).Err(); err != nil {
			return fmt.Errorf("failed to remove item from play queue: %w", err)
		}
	}
	return nil
}

// Clear empties the user's queue.
func (q *QueueCache) Clear(ctx context.Context, userID int64) error {
	if err := q.client.Del(ctx, queueKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear play queue: %w", err)
	}
	return nil
}
