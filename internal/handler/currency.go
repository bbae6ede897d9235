package handler

import (
	"net/http"

	"currency-converter/internal/apperr"
	"currency-converter/internal/model"
	"currency-converter/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInvalidParameters = "Invalid conversion parameters"

type CurrencyHandler struct {
	converter service.Converter
	logger    *zap.Logger
}

func NewCurrencyHandler(converter service.Converter, logger *zap.Logger) *CurrencyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurrencyHandler{
		converter: converter,
		logger:    logger,
	}
}

// Convert - GET /api/v1/convert?from=USD&to=EUR&amount=100
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req model.ConversionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, h.logger, &apperr.Error{
			Kind:    apperr.KindInvalidArgument,
			Message: msgInvalidParameters,
			Err:     err,
		})
		return
	}
	result, err := h.converter.Convert(c.Request.Context(), req.From, req.To, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Currencies - GET /api/v1/currencies
func (h *CurrencyHandler) Currencies(c *gin.Context) {
	c.JSON(http.StatusOK, model.Currencies())
}
