package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryPresence keeps typing indicators in-process. Suitable for a single
// API node and for tests.
type MemoryPresence struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryPresence() *MemoryPresence {
	return &MemoryPresence{entries: make(map[string]time.Time)}
}

func (p *MemoryPresence) SetTyping(_ context.Context, conversationID, userID int64, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[presenceKey(conversationID, userID)] = time.Now().Add(ttl)
	return nil
}

func (p *MemoryPresence) IsTyping(_ context.Context, conversationID, userID int64) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := presenceKey(conversationID, userID)
	deadline, ok := p.entries[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(p.entries, key)
		return false, nil
	}
	return true, nil
}

// RedisPresence shares typing indicators across API nodes via keys with a
// TTL.
type RedisPresence struct {
	client *redis.Client
}

func NewRedisPresence(client *redis.Client) *RedisPresence {
	return &RedisPresence{client: client}
}

func (p *RedisPresence) SetTyping(ctx context.Context, conversationID, userID int64, ttl time.Duration) error {
	return p.client.Set(ctx, presenceKey(conversationID, userID), "1", ttl).Err()
}

func (p *RedisPresence) IsTyping(ctx context.Context, conversationID, userID int64) (bool, error) {
	n, err := p.client.Exists(ctx, presenceKey(conversationID, userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func presenceKey(conversationID, userID int64) string {
	return fmt.Sprintf("typing:%d:%d", conversationID, userID)
}
