package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis server shared by every scenario.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

var (
	redisOnce sync.Once
	shared    *Redis
)

// NewRedis starts the shared server on first use.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		shared = &Redis{
			Server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return shared
}

// Clear drops every key.
func (r *Redis) Clear(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}

// Keys lists the stored keys.
func (r *Redis) Keys() []string {
	return r.Server.Keys()
}
