package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/config"
)

func TestSetupHTTP_MemoryBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		AppPort:    "0",
		SessionTTL: time.Hour,
		ExportDir:  t.TempDir(),
	}

	router, cleanup, err := setupHTTP(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup(context.Background()) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-keys", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login")
}
