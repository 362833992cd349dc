package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitsync/fitsync-backend/api/responses"
	"github.com/fitsync/fitsync-backend/api/validators"
	"github.com/fitsync/fitsync-backend/internal/cacheadmin"
	pkgerrors "github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/google/uuid"
)

// CacheStats reports backend, entry count, and hit/miss counters.
func CacheStats(svc *cacheadmin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Stats(r.Context()))
	}
}

// CacheClear flushes every namespace.
func CacheClear(svc *cacheadmin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CacheInvalidateUser drops every cached entry scoped to one user.
func CacheInvalidateUser(svc *cacheadmin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}
		removed := svc.InvalidateUser(r.Context(), userID.String())
		responses.WriteSuccess(w, map[string]any{"removed": removed})
	}
}

// CacheInvalidateLocation drops nearby entries in one coordinate bucket.
func CacheInvalidateLocation(svc *cacheadmin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, err := validators.ParseQueryFloat(r, "lat", true, 0, -90, 90)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lng, err := validators.ParseQueryFloat(r, "lng", true, 0, -180, 180)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		removed := svc.InvalidateLocation(r.Context(), lat, lng)
		responses.WriteSuccess(w, map[string]any{"removed": removed})
	}
}

// CacheHealth probes the backend with a round trip.
func CacheHealth(svc *cacheadmin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := svc.Health(r.Context())
		if !report.Healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "cache backend unreachable").WithDetails(report))
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// CacheWarmUp primes the hottest read namespaces.
func CacheWarmUp(svc *cacheadmin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.WarmUp(r.Context()))
	}
}
