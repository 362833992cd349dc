package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fitsync/fitsync-backend/internal/cacheadmin"
	"github.com/fitsync/fitsync-backend/internal/ml"
	"github.com/fitsync/fitsync-backend/internal/recommendations"
	"github.com/fitsync/fitsync-backend/internal/trends"
	"github.com/fitsync/fitsync-backend/internal/tryon"
	"github.com/fitsync/fitsync-backend/internal/wardrobe"
	pkgAuth "github.com/fitsync/fitsync-backend/pkg/auth"
	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/config"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

var testJWT = config.JWTConfig{
	Secret:            "router-test-secret",
	Issuer:            "fitsync",
	ExpirationMinutes: 60,
}

// newTestRouter wires the full router over an empty in-memory database.
// Read surfaces that hit missing tables exercise their deterministic
// fallbacks, which is exactly what the router contract cares about here.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)
	layer := cache.NewLayer(store, "memory", logg, nil)

	registry := ml.NewRegistry(config.MLConfig{}, logg)
	trendsSvc := trends.NewService(trends.NewRepository(gormDB), layer, logg)
	tryonSvc := tryon.NewService(tryon.NewRepository(gormDB), registry, layer, logg, nil)
	recsSvc := recommendations.NewService(wardrobe.NewRepository(gormDB), registry, layer, logg)
	adminSvc := cacheadmin.NewService(layer, trendsSvc, func(context.Context) int { return 0 }, logg)

	cfg := &config.Config{JWT: testJWT}
	cfg.App.Env = "test"
	cfg.CORS.Origins = []string{"http://localhost:3000"}

	return NewRouter(Deps{
		Config:     cfg,
		Logger:     logg,
		Registry:   registry,
		TryOn:      tryonSvc,
		Trends:     trendsSvc,
		Recs:       recsSvc,
		CacheAdmin: adminSvc,
	})
}

func mintToken(t *testing.T, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testJWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	require.NoError(t, err)
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-FitSync-Env"))
}

func TestHealthReadyReportsModels(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Models map[string]string `json:"models"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Models, 5)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)
	for _, path := range []string{
		"/api/v1/tryon/sessions",
		"/api/v1/ml/explore/trending-styles",
		"/api/v1/cache/stats",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestTrendingStylesFallsBackOnEmptyDatabase(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ml/explore/trending-styles?limit=3", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.UserRoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []trends.TrendingStyle `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data)
}

func TestCacheAdminRequiresAdminRole(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.UserRoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.UserRoleAdmin))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeviceCapabilitiesIsPublic(t *testing.T) {
	router := newTestRouter(t)

	body := `{"platform":"ios","os_version":"17.2","has_gpu":false,"memory_mb":4096,"has_camera":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tryon/device/capabilities", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	bad := `{"platform":"windows","os_version":"11","memory_mb":4096}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/tryon/device/capabilities", strings.NewReader(bad))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearbyValidatesCoordinates(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ml/nearby/people?lat=120&lng=0", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.UserRoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/ml/nearby/people?lat=37.775&lng=-122.419", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.UserRoleUser))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
