package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware создает middleware для CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Разрешаем запросы с любого источника
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

		// API только читает, формы шлют POST
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Origin, Content-Type, Accept, "+RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		// Разрешаем кеширование preflight запросов (OPTIONS)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		// Если это OPTIONS запрос (preflight), сразу отвечаем
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
