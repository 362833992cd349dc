package controllers

import (
	"net/http"

	"github.com/fitsync/fitsync-backend/api/responses"
	"github.com/fitsync/fitsync-backend/api/validators"
	"github.com/fitsync/fitsync-backend/internal/trends"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

type nearbyQuery struct {
	lat      float64
	lng      float64
	radiusKM float64
	limit    int
}

func parseNearbyQuery(r *http.Request) (nearbyQuery, error) {
	var q nearbyQuery
	var err error
	if q.lat, err = validators.ParseQueryFloat(r, "lat", true, 0, -90, 90); err != nil {
		return q, err
	}
	if q.lng, err = validators.ParseQueryFloat(r, "lng", true, 0, -180, 180); err != nil {
		return q, err
	}
	if q.radiusKM, err = validators.ParseQueryFloat(r, "radius_km", false, 10, 0.1, 100); err != nil {
		return q, err
	}
	if q.limit, err = validators.ParseQueryInt(r, "limit", 20, 1, 100); err != nil {
		return q, err
	}
	return q, nil
}

// NearbyPeople returns fashion-active people around a coordinate.
func NearbyPeople(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseNearbyQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetNearbyPeople(r.Context(), q.lat, q.lng, q.radiusKM, q.limit))
	}
}

// NearbyEvents returns fashion events around a coordinate.
func NearbyEvents(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseNearbyQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetNearbyEvents(r.Context(), q.lat, q.lng, q.radiusKM, q.limit))
	}
}

// NearbyHotspots returns shopping and style hotspots around a coordinate.
func NearbyHotspots(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseNearbyQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetNearbyHotspots(r.Context(), q.lat, q.lng, q.radiusKM, q.limit))
	}
}

// NearbyMap returns mixed map pins around a coordinate.
func NearbyMap(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseNearbyQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetNearbyMap(r.Context(), q.lat, q.lng, q.radiusKM, q.limit))
	}
}
