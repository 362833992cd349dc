package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fitsync/fitsync-backend/api/responses"
	"github.com/fitsync/fitsync-backend/pkg/config"
	pkgerrors "github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/google/uuid"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// RateLimit applies the global per-caller request budget backed by Redis
// counters. Counters key on the authenticated user when available, the
// client IP otherwise. With no Redis the limiter is a no-op.
func RateLimit(cfg config.RateLimitConfig, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := limitKey(ctx, r)
			count, err := store.IncrWithTTL(ctx, key, cfg.Period)
			if err != nil {
				// a broken counter backend must not take the API down
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", err.Error()), "rate_limit.counter_unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(cfg.Requests) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"attempts":       count,
						"limit":          cfg.Requests,
						"window_seconds": int(cfg.Period.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimited, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func limitKey(ctx context.Context, r *http.Request) string {
	if userID, ok := UserIDFromContext(ctx); ok && userID != uuid.Nil {
		return fmt.Sprintf("rl:user:%s", userID)
	}
	return fmt.Sprintf("rl:ip:%s", clientIP(r))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
