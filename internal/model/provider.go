package model

import (
	"encoding/json"
	"strconv"
)

// ProviderResponse - ответ exchangerates_data/convert
type ProviderResponse struct {
	Success bool `json:"success"`
	Query   struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
	} `json:"query"`
	Info struct {
		Timestamp int64   `json:"timestamp"`
		Rate      float64 `json:"rate"`
	} `json:"info"`
	Date   string         `json:"date"`
	Result float64        `json:"result"`
	Error  *ProviderError `json:"error,omitempty"`
	// Message приходит от шлюза apilayer (например, при неверном ключе)
	Message string `json:"message,omitempty"`
}

type ProviderError struct {
	Code    ProviderCode `json:"code"`
	Message string       `json:"message"`
	Info    string       `json:"info,omitempty"`
}

// ProviderCode принимает и числовые, и строковые коды ошибок
type ProviderCode string

func (c *ProviderCode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ProviderCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = ProviderCode(n.String())
	return nil
}

// ErrorMessage выбирает сообщение провайдера: error.message, затем message, затем error.info
func (r *ProviderResponse) ErrorMessage() string {
	if r.Error != nil && r.Error.Message != "" {
		return r.Error.Message
	}
	if r.Message != "" {
		return r.Message
	}
	if r.Error != nil {
		return r.Error.Info
	}
	return ""
}

func (r *ProviderResponse) ErrorCode() string {
	if r.Error == nil {
		return ""
	}
	return string(r.Error.Code)
}

// FormatAmount - сумма для query-параметра без потери точности
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
