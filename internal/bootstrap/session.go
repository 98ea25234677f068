package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// sessionSweepSpec is how often expired in-memory sessions are dropped.
const sessionSweepSpec = "@every 1m"

// OpenSessionStore returns the configured session store and a func that
// releases it.
func OpenSessionStore(ctx context.Context, cfg *config.SessionConfig) (session.Store, func() error, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}

		return session.NewRedisStore(client, cfg.TTL), client.Close, nil
	case config.SessionStoreMemory, "":
		store := session.NewMemoryStore(cfg.TTL)
		c, err := StartSessionSweeper(store, sessionSweepSpec)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error {
			<-c.Stop().Done()
			return nil
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// StartSessionSweeper schedules store.Sweep on the given cron spec.
func StartSessionSweeper(store *session.MemoryStore, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		if n := store.Sweep(); n > 0 {
			log.Printf("[info] session sweep removed=%d remaining=%d", n, store.Len())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session sweep job: %w", err)
	}

	c.Start()
	return c, nil
}
