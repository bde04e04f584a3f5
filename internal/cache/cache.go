// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the shared Redis client. It stays nil when Redis is not
// configured; callers must check before publishing.
var Rdb *redis.Client

// actionQueueKey is the list the historian consumes game actions from.
const actionQueueKey = "game_actions"

// InitRedis connects the shared client. An empty addr leaves Rdb nil and
// action logging disabled.
func InitRedis(ctx context.Context, addr string) error {
	if addr == "" {
		logrus.Info("cache: no Redis address configured, action history disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: ping %s: %w", addr, err)
	}
	Rdb = client
	logrus.Infof("cache: connected to Redis at %s", addr)
	return nil
}

// GameActionRecord is one entry of a table's action history.
type GameActionRecord struct {
	TableID       uuid.UUID              `json:"tableId"`
	ActionIndex   int                    `json:"actionIndex"`
	Seat          int                    `json:"seat"` // -1 for table-level events
	ActionType    string                 `json:"actionType"`
	ActionPayload map[string]interface{} `json:"actionPayload,omitempty"`
	Timestamp     int64                  `json:"timestamp"`
}

// PublishGameAction pushes a record onto the action queue.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return fmt.Errorf("cache: redis client not initialized")
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: marshal action record: %w", err)
	}
	if err := Rdb.LPush(ctx, actionQueueKey, raw).Err(); err != nil {
		return fmt.Errorf("cache: push action record: %w", err)
	}
	return nil
}
