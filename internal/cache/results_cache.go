package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stormboard/internal/model"
)

// ResultsCache keeps aggregated round results keyed by round and mode.
// Every vote submission for a round invalidates all three mode keys, so a
// cache hit always reflects the surviving votes.
type ResultsCache interface {
	GetDot(ctx context.Context, roundID string) ([]model.DotVoteResult, error)
	SetDot(ctx context.Context, roundID string, results []model.DotVoteResult) error
	GetStockRank(ctx context.Context, roundID string) ([]model.StockRankResult, error)
	SetStockRank(ctx context.Context, roundID string, results []model.StockRankResult) error
	GetMatrix(ctx context.Context, roundID string) ([]model.MatrixResult, error)
	SetMatrix(ctx context.Context, roundID string, results []model.MatrixResult) error
	Invalidate(ctx context.Context, roundID string) error
}

type resultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultsCache creates a results cache.
func NewResultsCache(client *redis.Client) ResultsCache {
	return &resultsCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *resultsCache) key(roundID string, mode model.VoteMode) string {
	return fmt.Sprintf("round:%s:results:%s", roundID, mode)
}

func (c *resultsCache) get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *resultsCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *resultsCache) GetDot(ctx context.Context, roundID string) ([]model.DotVoteResult, error) {
	var results []model.DotVoteResult
	ok, err := c.get(ctx, c.key(roundID, model.ModeDotVoting), &results)
	if err != nil || !ok {
		return nil, err
	}
	return results, nil
}

func (c *resultsCache) SetDot(ctx context.Context, roundID string, results []model.DotVoteResult) error {
	return c.set(ctx, c.key(roundID, model.ModeDotVoting), results)
}

func (c *resultsCache) GetStockRank(ctx context.Context, roundID string) ([]model.StockRankResult, error) {
	var results []model.StockRankResult
	ok, err := c.get(ctx, c.key(roundID, model.ModeStockRank), &results)
	if err != nil || !ok {
		return nil, err
	}
	return results, nil
}

func (c *resultsCache) SetStockRank(ctx context.Context, roundID string, results []model.StockRankResult) error {
	return c.set(ctx, c.key(roundID, model.ModeStockRank), results)
}

func (c *resultsCache) GetMatrix(ctx context.Context, roundID string) ([]model.MatrixResult, error) {
	var results []model.MatrixResult
	ok, err := c.get(ctx, c.key(roundID, model.ModeMatrix2x2), &results)
	if err != nil || !ok {
		return nil, err
	}
	return results, nil
}

func (c *resultsCache) SetMatrix(ctx context.Context, roundID string, results []model.MatrixResult) error {
	return c.set(ctx, c.key(roundID, model.ModeMatrix2x2), results)
}

func (c *resultsCache) Invalidate(ctx context.Context, roundID string) error {
	return c.client.Del(ctx,
		c.key(roundID, model.ModeDotVoting),
		c.key(roundID, model.ModeStockRank),
		c.key(roundID, model.ModeMatrix2x2)).Err()
}
