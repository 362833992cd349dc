package controllers

import (
	"net/http"
	"strings"

	"github.com/fitsync/fitsync-backend/api/responses"
	"github.com/fitsync/fitsync-backend/api/validators"
	"github.com/fitsync/fitsync-backend/internal/trends"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	pkgerrors "github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

// ExploreItems returns the explore feed, optionally filtered by category
// and trending flag.
func ExploreItems(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		trending, err := validators.ParseQueryBool(r, "trending")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var category *string
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			if _, parseErr := enums.ParseClothingCategory(raw); parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid category"))
				return
			}
			category = &raw
		}

		responses.WriteSuccess(w, svc.GetExploreItems(r.Context(), category, trending, limit, offset))
	}
}

// TrendingStyles returns the ranked trending style list.
func TrendingStyles(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetTrendingStyles(r.Context(), limit))
	}
}

// ExploreCategories returns the static category catalog.
func ExploreCategories(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.GetCategories(r.Context()))
	}
}

func parseTrendScope(r *http.Request) (enums.TrendScope, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("scope"))
	if raw == "" {
		return enums.TrendScopeGlobal, nil
	}
	scope, err := enums.ParseTrendScope(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid scope")
	}
	return scope, nil
}

func parseTimeframe(r *http.Request) (enums.Timeframe, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("timeframe"))
	if raw == "" {
		return enums.TimeframeWeek, nil
	}
	timeframe, err := enums.ParseTimeframe(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timeframe")
	}
	return timeframe, nil
}

// TrendingNow returns what is trending within the scope and timeframe.
func TrendingNow(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := parseTrendScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		timeframe, err := parseTimeframe(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetTrendingNow(r.Context(), scope, timeframe, limit))
	}
}

// FashionInsights returns editorial trend insights.
func FashionInsights(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := parseTrendScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		timeframe, err := parseTimeframe(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetFashionInsights(r.Context(), scope, timeframe))
	}
}

// InfluencerSpotlight returns the ranked influencer list.
func InfluencerSpotlight(svc *trends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := parseTrendScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetInfluencerSpotlight(r.Context(), scope, limit))
	}
}
