package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gstbill/internal/logger"
	"gstbill/internal/middleware"
)

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestLogger_AttachesRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(zap.New(core)))
	r.GET("/invoices", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req, _ := http.NewRequest(http.MethodGet, "/invoices", http.NoBody)
	req.Header.Set("X-Request-ID", "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "inside handler", entries[0].Message)
	assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "request", entries[1].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusOK, entries[1].ContextMap()["status"])

	req, _ = http.NewRequest(http.MethodGet, "/missing", http.NoBody)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[2].Level)
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(middleware.Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
