package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/handik/pkg/adapters/file"
	"github.com/aretw0/handik/pkg/adapters/memory"
	"github.com/aretw0/handik/pkg/adapters/redis"
	"github.com/aretw0/handik/pkg/config"
	"github.com/aretw0/handik/pkg/ports"
)

// OpenStore creates the snapshot store named by cfg.Driver. The returned
// close function is nil when there is nothing to release.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (ports.SnapshotStore, func() error, error) {
	switch cfg.Driver {
	case config.StoreMemory, "":
		return memory.NewStore(), nil, nil
	case config.StoreFile:
		return file.New(cfg.Path), nil, nil
	case config.StoreRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("connect redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
