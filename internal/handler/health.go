package handler

import (
	"context"
	"net/http"
	"time"

	"currency-converter/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "currency-converter"
	serviceVersion = "v3.0.0"
	pingTimeout    = 2 * time.Second
)

// Pinger - проверка зависимости для /health
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	sessions Pinger
	logger   *zap.Logger
}

func NewHealthHandler(sessions Pinger, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{sessions: sessions, logger: logger}
}

// Check - GET /health: 503, если хранилище сессий формы не отвечает
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status, sessions, code := "healthy", "ok", http.StatusOK
	if err := h.sessions.Ping(ctx); err != nil {
		h.logger.Warn("Session store health check failed",
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
		status, sessions, code = "degraded", "unavailable", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":        status,
		"service":       serviceName,
		"version":       serviceVersion,
		"session_store": sessions,
	})
}
