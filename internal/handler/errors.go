package handler

import (
	"net/http"

	"currency-converter/internal/apperr"
	"currency-converter/internal/middleware"
	"currency-converter/internal/model"
	"currency-converter/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInternal = "Something went wrong"

// StatusFor сопоставляет тип ошибки с HTTP статусом
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindUpstream:
		return http.StatusBadGateway
	case apperr.KindNetwork:
		if service.IsTimeout(err) {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError пишет причину в лог, а клиенту отдает только нормализованное сообщение
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := StatusFor(err)
	kind := apperr.KindOf(err)
	message := apperr.MessageOf(err)
	if kind == apperr.KindInternal || kind == apperr.KindConfiguration {
		message = msgInternal
	}

	_ = c.Error(err)
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.Int("status", status),
		zap.String("request_id", middleware.RequestID(c)),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Conversion failed", fields...)
	} else {
		logger.Warn("Conversion failed", fields...)
	}

	c.JSON(status, model.ErrorResponse{
		Error:   string(kind),
		Message: message,
	})
}
