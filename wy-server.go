// Command wy-server runs the federated-login gateway: provider OAuth flows,
// first-party token issuance, and the user pass-through API.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	authgin "github.com/wooyeon-app/wy-backend/adapters/gin"
	"github.com/wooyeon-app/wy-backend/core"
	"github.com/wooyeon-app/wy-backend/oauth"
	memorystore "github.com/wooyeon-app/wy-backend/storage/memory"
	pgstore "github.com/wooyeon-app/wy-backend/storage/postgres"
	redisstore "github.com/wooyeon-app/wy-backend/storage/redis"
)

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("postgres connect failed")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("postgres ping failed")
	}

	var states oauth.StateCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("redis ping failed")
		}
		states = redisstore.NewStateCache(rdb)
		log.WithField("addr", cfg.RedisAddr).Info("using redis state cache")
	} else {
		states = memorystore.NewStateCache()
		log.Info("using in-memory state cache")
	}

	store := pgstore.New(pool)
	svc := core.NewService(cfg, store, store, states, nil)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           authgin.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.WithField("addr", cfg.ListenAddr).Info("wy-server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
}
