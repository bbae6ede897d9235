// Package client - HTTP клиент к /api/v1 сервиса конвертации.
// Ошибки сервера восстанавливаются в apperr.Error того же типа.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"currency-converter/internal/apperr"
	"currency-converter/internal/model"

	"go.uber.org/zap"
)

const msgServerUnreachable = "currency converter service is unreachable"

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (*model.ConversionResult, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", model.FormatAmount(amount))

	var result model.ConversionResult
	if err := c.get(ctx, "/api/v1/convert?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Currencies(ctx context.Context) (*model.CurrenciesResponse, error) {
	var resp model.CurrenciesResponse
	if err := c.get(ctx, "/api/v1/currencies", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperr.Network(msgServerUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Request", zap.String("url", req.URL.String()))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Request failed", zap.Error(err))
		return apperr.Network(msgServerUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Network(msgServerUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Network("invalid response from currency converter service", err)
	}
	return nil
}

// decodeError восстанавливает типизированную ошибку из ErrorResponse
func decodeError(status int, data []byte) error {
	var errResp model.ErrorResponse
	if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error == "" {
		return apperr.Network("invalid response from currency converter service",
			fmt.Errorf("unexpected status %d", status))
	}
	kind := apperr.Kind(errResp.Error)
	switch kind {
	case apperr.KindInvalidArgument, apperr.KindUpstream, apperr.KindNetwork, apperr.KindConfiguration:
	default:
		kind = apperr.KindInternal
	}
	return apperr.New(kind, errResp.Message)
}
