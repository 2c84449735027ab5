package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/aether-gateway/config"
	"github.com/pavelc4/aether-gateway/internal/middleware"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                  "0",
		PrimaryEndpoint:       config.DefaultPrimaryEndpoint,
		FallbackEndpoint:      config.DefaultFallbackEndpoint,
		RequestTimeoutMs:      1000,
		MetadataTimeoutMs:     1000,
		StreamHeaderTimeoutMs: 1000,
		ShutdownTimeoutMs:     1000,
		StreamChunkSize:       config.DefaultStreamChunkSize,
		AllowOrigins:          []string{"*"},
	}
}

func TestNew_RoutesRoot(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API is running")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, int64(1), a.Stats.Snapshot().Requests["/"])
}

func TestNew_MissingTranslateParams(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/translate", nil)
	w := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing parameters"}`, w.Body.String())
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestRouter_CORS(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/translate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig_Origins(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"https://a.example", "https://b.example"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
}
