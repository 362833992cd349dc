package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fitsync/fitsync-backend/api/routes"
	"github.com/fitsync/fitsync-backend/internal/cacheadmin"
	"github.com/fitsync/fitsync-backend/internal/ml"
	"github.com/fitsync/fitsync-backend/internal/recommendations"
	"github.com/fitsync/fitsync-backend/internal/trends"
	"github.com/fitsync/fitsync-backend/internal/tryon"
	"github.com/fitsync/fitsync-backend/internal/wardrobe"
	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/config"
	"github.com/fitsync/fitsync-backend/pkg/db"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/fitsync/fitsync-backend/pkg/metrics"
	"github.com/fitsync/fitsync-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := db.MaybeAutoMigrate(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	cacheMetrics := metrics.NewCacheMetrics(promRegistry)
	tryonMetrics := metrics.NewTryOnMetrics(promRegistry)

	var redisClient *redis.Client
	var cacheStore cache.Store
	backend := "memory"
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cacheStore = cache.NewRedisStore(redisClient.Raw())
		backend = "redis"
	} else {
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		cacheStore = memStore
		logg.Info(context.Background(), "redis not configured, using in-process cache")
	}
	cacheLayer := cache.NewLayer(cacheStore, backend, logg, cacheMetrics)

	registry := ml.NewRegistry(cfg.ML, logg)
	registry.Initialize(context.Background())

	wardrobeRepo := wardrobe.NewRepository(dbClient.DB())
	tryonSvc := tryon.NewService(tryon.NewRepository(dbClient.DB()), registry, cacheLayer, logg, tryonMetrics)
	trendsSvc := trends.NewService(trends.NewRepository(dbClient.DB()), cacheLayer, logg)
	recsSvc := recommendations.NewService(wardrobeRepo, registry, cacheLayer, logg)
	adminSvc := cacheadmin.NewService(cacheLayer, trendsSvc, func(ctx context.Context) int {
		return len(tryonSvc.ListFeatures(ctx))
	}, logg)

	if err := tryonSvc.EnsureSeedFeatures(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed try-on features", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"cache_backend": backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			Registry:     registry,
			TryOn:        tryonSvc,
			Trends:       trendsSvc,
			Recs:         recsSvc,
			CacheAdmin:   adminSvc,
			PromGatherer: promRegistry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
