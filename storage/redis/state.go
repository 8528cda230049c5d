// Package redisstore keeps pending login state in Redis so callbacks can
// land on any instance behind a load balancer.
package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wooyeon-app/wy-backend/oauth"
)

const keyPrefix = "oauth:state:"

// StateCache is a Redis-backed oauth.StateCache.
type StateCache struct {
	rdb *redis.Client
}

func NewStateCache(rdb *redis.Client) *StateCache {
	return &StateCache{rdb: rdb}
}

func (c *StateCache) Put(ctx context.Context, state string, data oauth.StateData, ttl time.Duration) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+state, b, ttl).Err()
}

func (c *StateCache) Take(ctx context.Context, state string) (oauth.StateData, bool, error) {
	b, err := c.rdb.GetDel(ctx, keyPrefix+state).Bytes()
	if err == redis.Nil {
		return oauth.StateData{}, false, nil
	}
	if err != nil {
		return oauth.StateData{}, false, err
	}
	var data oauth.StateData
	if err := json.Unmarshal(b, &data); err != nil {
		return oauth.StateData{}, false, err
	}
	return data, true, nil
}
