package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware())
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})
	router.GET("/panic", func(c *gin.Context) {
		panic(assert.AnError)
	})
	return router
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	router := setupRouter(zap.NewNop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery_NonStringPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	router := setupRouter(zap.New(core))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal", body["error"])
	assert.Equal(t, "Something went wrong", body["message"])
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())

	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	assert.Equal(t, 1, logs.FilterMessage("Request failed").Len())
}

func TestCORS_Preflight(t *testing.T) {
	router := setupRouter(zap.NewNop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogging_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := setupRouter(zap.New(core))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 1, logs.FilterMessage("Request handled").Len())
	assert.Equal(t, 1, logs.FilterMessage("Request rejected").Len())
}
