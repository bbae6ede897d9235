package middleware

import (
	"fmt"
	"net/http"

	"currency-converter/internal/apperr"
	"currency-converter/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware создает middleware для перехвата паник
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.String("panic", fmt.Sprint(recovered)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", RequestID(c)),
			zap.Stack("stack"),
		)

		// Клиенту только нормализованное сообщение
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   string(apperr.KindInternal),
			Message: "Something went wrong",
		})
	})
}
