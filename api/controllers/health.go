package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/fitsync/fitsync-backend/api/responses"
	"github.com/fitsync/fitsync-backend/internal/ml"
	"github.com/fitsync/fitsync-backend/pkg/config"
	pkgerrors "github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FitSync-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the database, the optional Redis backend, and reports
// the model registry status. Redis being down degrades to the in-process
// cache so it is reported but does not fail readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pinger, redisP pinger, registry *ml.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FitSync-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["database"] = "down"
				ready = false
			} else {
				checks["database"] = "ok"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = "disabled"
		}

		models := map[string]string{}
		if registry != nil {
			for name, info := range registry.Status() {
				models[name] = string(info.Status)
			}
		}

		payload := map[string]any{"status": "ready", "checks": checks, "models": models}
		if !ready {
			responses.WriteError(ctx, logg,
				w, pkgerrors.New(pkgerrors.CodeDependency, "not ready").WithDetails(payload))
			return
		}
		responses.WriteSuccess(w, payload)
	}
}
