package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stormboard/internal/model"
)

// SessionCache keeps sessions keyed by short code so the join path avoids a
// store round-trip. Entries are invalidated on every session mutation.
type SessionCache interface {
	GetByShortCode(ctx context.Context, code string) (*model.Session, error)
	Set(ctx context.Context, session *model.Session) error
	Invalidate(ctx context.Context, code string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache.
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *sessionCache) key(code string) string {
	return fmt.Sprintf("session:code:%s", code)
}

func (c *sessionCache) GetByShortCode(ctx context.Context, code string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.key(code)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	if session.ShortCode == "" {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ShortCode), data, c.ttl).Err()
}

func (c *sessionCache) Invalidate(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	return c.client.Del(ctx, c.key(code)).Err()
}
