package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"taskkeeper/internal/model"
)

// TodoListCache keeps a per-owner snapshot of the todo listing in redis.
// A short-lived dirty marker bridges the gap between a write and the
// asynchronous effects settling, so stale snapshots are not re-cached
// right after a mutation.
type TodoListCache struct {
	client         *redisv9.Client
	listTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

func NewTodoListCache(client *redisv9.Client, listTTL, dirtyMarkerTTL time.Duration) *TodoListCache {
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &TodoListCache{
		client:         client,
		listTTL:        listTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *TodoListCache) GetList(ctx context.Context, ownerID uint) ([]model.Todo, bool, error) {
	key := c.listKey(ownerID)
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get todo list failed: %w", err)
	}

	var todos []model.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached todo list failed: %w", err)
	}
	return todos, true, nil
}

func (c *TodoListCache) SetList(ctx context.Context, ownerID uint, todos []model.Todo) error {
	key := c.listKey(ownerID)
	payload, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("marshal todo list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.listTTL).Err(); err != nil {
		return fmt.Errorf("redis set todo list failed: %w", err)
	}
	return nil
}

func (c *TodoListCache) Invalidate(ctx context.Context, ownerID uint) error {
	key := c.listKey(ownerID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete todo list failed: %w", err)
	}
	return nil
}

func (c *TodoListCache) MarkDirty(ctx context.Context, ownerID uint) error {
	key := c.dirtyKey(ownerID)
	if err := c.client.Set(ctx, key, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *TodoListCache) IsDirty(ctx context.Context, ownerID uint) (bool, error) {
	key := c.dirtyKey(ownerID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *TodoListCache) listKey(ownerID uint) string {
	return fmt.Sprintf("todo:list:%d", ownerID)
}

func (c *TodoListCache) dirtyKey(ownerID uint) string {
	return fmt.Sprintf("todo:list:dirty:%d", ownerID)
}
