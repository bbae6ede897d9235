package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"currency-converter/internal/apperr"
	"currency-converter/internal/config"
	"currency-converter/internal/model"

	"go.uber.org/zap"
)

const (
	msgProviderUnreachable = "exchange-rate provider is unreachable"
	msgProviderBadResponse = "invalid response from exchange-rate provider"
)

// Converter - интерфейс для тестирования (шлюз, HTTP-клиент, моки)
type Converter interface {
	Convert(ctx context.Context, from, to string, amount float64) (*model.ConversionResult, error)
}

// Gateway проксирует запрос конвертации к провайдеру курсов.
// Состояния между вызовами нет, безопасен для конкурентного использования.
type Gateway struct {
	config     config.APIConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// NewGateway падает сразу, если ключ API не задан
func NewGateway(cfg config.APIConfig, logger *zap.Logger) (*Gateway, error) {
	if cfg.Key == "" {
		return nil, apperr.Configuration("API key is not defined")
	}
	if cfg.URL == "" {
		cfg.URL = config.DefaultAPIURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &http.Client{
		Timeout: cfg.Timeout,
	}
	return &Gateway{
		config:     cfg,
		logger:     logger,
		httpClient: client,
	}, nil
}

// Validate проверяет параметры до любого сетевого вызова
func Validate(from, to string, amount float64) error {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return apperr.InvalidArgument("currency codes must not be empty")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return apperr.InvalidArgument("amount must be a finite number greater than zero")
	}
	return nil
}

func (g *Gateway) Convert(ctx context.Context, from, to string, amount float64) (*model.ConversionResult, error) {
	if err := Validate(from, to, amount); err != nil {
		return nil, err
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	resp, err := g.fetch(ctx, from, to, amount)
	if err != nil {
		return nil, err
	}

	result := &model.ConversionResult{
		From:   from,
		To:     to,
		Amount: amount,
		Result: resp.Result,
		Rate:   resp.Info.Rate,
		Date:   resp.Date,
	}
	g.logger.Debug("Currency conversion completed",
		zap.String("from", from),
		zap.String("to", to),
		zap.Float64("amount", amount),
		zap.Float64("result", result.Result),
	)
	return result, nil
}

func (g *Gateway) requestURL(from, to string, amount float64) (string, error) {
	u, err := url.Parse(g.config.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", model.FormatAmount(amount))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (g *Gateway) fetch(ctx context.Context, from, to string, amount float64) (*model.ProviderResponse, error) {
	apiURL, err := g.requestURL(from, to, amount)
	if err != nil {
		g.logger.Error("Invalid provider URL", zap.String("url", g.config.URL), zap.Error(err))
		return nil, apperr.Network(msgProviderUnreachable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		g.logger.Error("Failed to create HTTP request",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		)
		return nil, apperr.Network(msgProviderUnreachable, err)
	}
	req.Header.Set("apikey", g.config.Key)
	req.Header.Set("Accept", "application/json")
	// курсы всегда живые, ничего не переиспользуем
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("API request failed",
			zap.String("from", from),
			zap.String("to", to),
			zap.Bool("timeout", IsTimeout(err)),
			zap.Error(err),
		)
		return nil, apperr.Network(msgProviderUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Error("Failed to read API response",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		)
		return nil, apperr.Network(msgProviderBadResponse, err)
	}

	var apiResponse *model.ProviderResponse
	err = json.Unmarshal(data, &apiResponse)
	if err == nil && apiResponse == nil {
		err = errors.New("empty response body")
	}
	if err != nil {
		g.logger.Error("Invalid JSON from exchange-rate provider",
			zap.String("from", from),
			zap.String("to", to),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", truncate(string(data), 512)),
			zap.Error(err),
		)
		return nil, apperr.Network(msgProviderBadResponse, err)
	}

	if !apiResponse.Success {
		g.logger.Error("Exchange-rate provider returned error",
			zap.String("from", from),
			zap.String("to", to),
			zap.Int("status_code", resp.StatusCode),
			zap.String("code", apiResponse.ErrorCode()),
			zap.String("message", apiResponse.ErrorMessage()),
		)
		return nil, apperr.Upstream(apiResponse.ErrorCode(), apiResponse.ErrorMessage())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Error("API returned error status",
			zap.String("from", from),
			zap.String("to", to),
			zap.Int("status_code", resp.StatusCode),
			zap.String("status", resp.Status),
		)
		return nil, apperr.Network(msgProviderBadResponse, errors.New("unexpected status "+resp.Status))
	}

	return apiResponse, nil
}

// IsTimeout - сработал таймаут клиента или контекста
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Converter = (*Gateway)(nil)
