package model

// ConversionRequest - запрос на конвертацию
type ConversionRequest struct {
	From   string  `form:"from" json:"from" binding:"required"` // form для query-параметров
	To     string  `form:"to" json:"to" binding:"required"`
	Amount float64 `form:"amount" json:"amount" binding:"required"`
}

// ConversionResult - ответ на конвертацию.
// Result возвращается в том виде, в каком его прислал провайдер.
type ConversionResult struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Result float64 `json:"result"`
	Rate   float64 `json:"rate,omitempty"`
	Date   string  `json:"date,omitempty"`
}

// ErrorResponse - структура для ошибок
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CurrenciesResponse - списки валют для выбора
type CurrenciesResponse struct {
	Fiat   []Currency `json:"fiat"`
	Crypto []Currency `json:"crypto"`
}
