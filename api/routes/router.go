package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitsync/fitsync-backend/api/controllers"
	"github.com/fitsync/fitsync-backend/api/middleware"
	"github.com/fitsync/fitsync-backend/internal/cacheadmin"
	"github.com/fitsync/fitsync-backend/internal/ml"
	"github.com/fitsync/fitsync-backend/internal/recommendations"
	"github.com/fitsync/fitsync-backend/internal/trends"
	"github.com/fitsync/fitsync-backend/internal/tryon"
	"github.com/fitsync/fitsync-backend/pkg/config"
	"github.com/fitsync/fitsync-backend/pkg/db"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/fitsync/fitsync-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	Registry     *ml.Registry
	TryOn        *tryon.Service
	Trends       *trends.Service
	Recs         *recommendations.Service
	CacheAdmin   *cacheadmin.Service
	PromGatherer prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger(deps.Redis), deps.Registry))
	})

	if deps.PromGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tryon/device/capabilities", controllers.CheckDeviceCapabilities(logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			if deps.Redis != nil {
				r.Use(middleware.RateLimit(cfg.RateLimit, deps.Redis, logg))
			}

			r.Route("/tryon", func(r chi.Router) {
				r.Route("/sessions", func(r chi.Router) {
					r.Post("/", controllers.CreateTryOnSession(deps.TryOn, logg))
					r.Get("/", controllers.ListTryOnSessions(deps.TryOn, logg))
					r.Route("/{sessionId}", func(r chi.Router) {
						r.Get("/", controllers.GetTryOnSession(deps.TryOn, logg))
						r.Post("/outfits", controllers.AddTryOnOutfit(deps.TryOn, logg))
						r.Route("/outfits/{attemptId}", func(r chi.Router) {
							r.Post("/process", controllers.ProcessTryOnOutfit(deps.TryOn, logg))
							r.Get("/status", controllers.TryOnOutfitStatus(deps.TryOn, logg))
							r.Post("/rate", controllers.RateTryOnOutfit(deps.TryOn, logg))
						})
					})
				})
				r.Get("/preferences", controllers.GetTryOnPreferences(deps.TryOn, logg))
				r.Put("/preferences", controllers.UpdateTryOnPreferences(deps.TryOn, logg))
				r.Get("/features", controllers.ListTryOnFeatures(deps.TryOn, logg))
			})

			r.Route("/ml", func(r chi.Router) {
				r.Get("/recommendations/outfits", controllers.OutfitRecommendations(deps.Recs, logg))

				r.Route("/explore", func(r chi.Router) {
					r.Get("/items", controllers.ExploreItems(deps.Trends, logg))
					r.Get("/trending-styles", controllers.TrendingStyles(deps.Trends, logg))
					r.Get("/categories", controllers.ExploreCategories(deps.Trends, logg))
				})

				r.Route("/trends", func(r chi.Router) {
					r.Get("/trending-now", controllers.TrendingNow(deps.Trends, logg))
					r.Get("/fashion-insights", controllers.FashionInsights(deps.Trends, logg))
					r.Get("/influencer-spotlight", controllers.InfluencerSpotlight(deps.Trends, logg))
				})

				r.Route("/nearby", func(r chi.Router) {
					r.Get("/people", controllers.NearbyPeople(deps.Trends, logg))
					r.Get("/events", controllers.NearbyEvents(deps.Trends, logg))
					r.Get("/hotspots", controllers.NearbyHotspots(deps.Trends, logg))
					r.Get("/map", controllers.NearbyMap(deps.Trends, logg))
				})
			})

			r.Route("/cache", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
				r.Get("/stats", controllers.CacheStats(deps.CacheAdmin, logg))
				r.Post("/clear", controllers.CacheClear(deps.CacheAdmin, logg))
				r.Post("/invalidate/user/{userId}", controllers.CacheInvalidateUser(deps.CacheAdmin, logg))
				r.Post("/invalidate/location", controllers.CacheInvalidateLocation(deps.CacheAdmin, logg))
				r.Get("/health", controllers.CacheHealth(deps.CacheAdmin, logg))
				r.Post("/warm-up", controllers.CacheWarmUp(deps.CacheAdmin, logg))
			})
		})
	})

	return r
}

// redisPinger narrows the optional client so a nil *redis.Client does not
// masquerade as a live pinger behind a non-nil interface.
func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
