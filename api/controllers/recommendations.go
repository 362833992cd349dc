package controllers

import (
	"net/http"
	"strings"

	"github.com/fitsync/fitsync-backend/api/middleware"
	"github.com/fitsync/fitsync-backend/api/responses"
	"github.com/fitsync/fitsync-backend/api/validators"
	"github.com/fitsync/fitsync-backend/internal/recommendations"
	pkgerrors "github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

// OutfitRecommendations returns wardrobe-based outfit suggestions. The
// optional occasion/weather query parameters feed the request context.
func OutfitRecommendations(svc *recommendations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "missing credentials"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 3, 1, 10)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reqContext := map[string]string{}
		for _, key := range []string{"occasion", "weather"} {
			if value := strings.TrimSpace(r.URL.Query().Get(key)); value != "" {
				reqContext[key] = value
			}
		}

		resp, err := svc.GetOutfitRecommendations(r.Context(), userID, reqContext, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
