package routes_test

import (
	"encoding/json"
	"net/http"
	"testing"

	_ "tenant-admin-backend/docs"
	"tenant-admin-backend/internal/api/routes"
	"tenant-admin-backend/internal/auth"
	"tenant-admin-backend/internal/config"
	"tenant-admin-backend/internal/metrics"
	"tenant-admin-backend/internal/store"
	"tenant-admin-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *testutils.HTTPTestSuite {
	authService, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: "routes-test-secret"})
	require.NoError(t, err)

	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router = routes.SetupRoutes(routes.Dependencies{
		Config:      &config.Config{AllowedOrigins: []string{"http://localhost:3000"}},
		TenantStore: store.NewTenantStore(nil, nil, nil),
		Metrics:     metrics.New(),
		Auth:        authService,
	})
	return httpSuite
}

func TestPublicRoutes(t *testing.T) {
	httpSuite := newRouter(t)

	assert.Equal(t, http.StatusOK, httpSuite.MakeRequest(http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, httpSuite.MakeRequest(http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, httpSuite.MakeRequest(http.MethodGet, "/health", nil).Code)

	recorder := httpSuite.MakeRequest(http.MethodGet, "/no/such/route", nil)
	testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "route not found")
}

func TestSwaggerDocument(t *testing.T) {
	httpSuite := newRouter(t)

	recorder := httpSuite.MakeRequest(http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)
	for _, path := range []string{
		"/admin/tenants",
		"/me/access/{tenantId}",
		"/tenants/{tenantId}/stats",
		"/tenants/{tenantId}/tickets",
		"/tenants/{tenantId}/tickets/trash",
		"/tenants/{tenantId}/tickets/{id}",
		"/tenants/{tenantId}/tickets/{id}/restore",
		"/tenants/{tenantId}/team",
	} {
		assert.Contains(t, doc.Paths, path)
	}
}

func TestAPIRequiresBearerToken(t *testing.T) {
	httpSuite := newRouter(t)

	for _, url := range []string{
		"/api/v1/admin/tenants",
		"/api/v1/me/access/11111111-1111-1111-1111-111111111111",
		"/api/v1/tenants/11111111-1111-1111-1111-111111111111/stats",
		"/api/v1/tenants/11111111-1111-1111-1111-111111111111/tickets",
	} {
		recorder := httpSuite.MakeRequest(http.MethodGet, url, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, url)
	}

	recorder := httpSuite.MakeAuthorizedRequest(http.MethodGet, "/api/v1/admin/tenants", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
