// Package form держит состояние формы конвертации: ввод, флаг загрузки,
// последний результат или ошибку. Используется веб-формой и TUI.
package form

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"currency-converter/internal/apperr"
	"currency-converter/internal/model"

	"github.com/shopspring/decimal"
)

const (
	DefaultAmount = "100"
	DefaultFrom   = "USD"
	DefaultTo     = "EUR"

	msgInvalidAmount = "Please enter a valid amount greater than zero"
)

// ErrInFlight - предыдущая конвертация ещё не завершилась
var ErrInFlight = errors.New("conversion already in progress")

// Converter - всё, что форме нужно от шлюза
type Converter interface {
	Convert(ctx context.Context, from, to string, amount float64) (*model.ConversionResult, error)
}

type Form struct {
	Amount  string                  `json:"amount"`
	From    string                  `json:"from"`
	To      string                  `json:"to"`
	Loading bool                    `json:"loading"`
	Result  *model.ConversionResult `json:"result,omitempty"`
	Message string                  `json:"message,omitempty"`
}

func New() *Form {
	return &Form{
		Amount: DefaultAmount,
		From:   DefaultFrom,
		To:     DefaultTo,
	}
}

func (f *Form) SetAmount(amount string) {
	f.Amount = amount
}

// SetFrom принимает только коды из фиксированных списков
func (f *Form) SetFrom(code string) error {
	c, ok := model.LookupCurrency(code)
	if !ok {
		return apperr.InvalidArgument("unsupported currency " + strconv.Quote(code))
	}
	f.From = c.Code
	return nil
}

func (f *Form) SetTo(code string) error {
	c, ok := model.LookupCurrency(code)
	if !ok {
		return apperr.InvalidArgument("unsupported currency " + strconv.Quote(code))
	}
	f.To = c.Code
	return nil
}

// ParseAmount - локальная проверка суммы, чтобы не ходить в шлюз зря
func (f *Form) ParseAmount() (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, apperr.InvalidArgument(msgInvalidAmount)
	}
	return amount, nil
}

// Begin проверяет ввод и переводит форму в состояние загрузки.
// При ошибке валидации сообщение сразу попадает в Message.
func (f *Form) Begin() (model.ConversionRequest, error) {
	if f.Loading {
		return model.ConversionRequest{}, ErrInFlight
	}
	amount, err := f.ParseAmount()
	if err != nil {
		f.Result = nil
		f.Message = apperr.MessageOf(err)
		return model.ConversionRequest{}, err
	}
	f.Loading = true
	f.Message = ""
	return model.ConversionRequest{From: f.From, To: f.To, Amount: amount}, nil
}

// Finish снимает флаг загрузки и показывает результат или ошибку как есть
func (f *Form) Finish(result *model.ConversionResult, err error) {
	f.Loading = false
	if err != nil {
		f.Result = nil
		f.Message = apperr.MessageOf(err)
		return
	}
	f.Result = result
	f.Message = ""
}

// Convert - синхронный вариант для веб-формы: Begin, вызов шлюза, Finish
func (f *Form) Convert(ctx context.Context, conv Converter) error {
	req, err := f.Begin()
	if err != nil {
		return err
	}
	result, err := conv.Convert(ctx, req.From, req.To, req.Amount)
	f.Finish(result, err)
	return err
}

// Swap меняет валюты местами; старый результат к новому направлению не относится
func (f *Form) Swap() {
	f.From, f.To = f.To, f.From
	f.Result = nil
	f.Message = ""
}

// Summary - "100 USD = 92.50 EUR", пусто если результата нет
func (f *Form) Summary() string {
	if f.Result == nil {
		return ""
	}
	return FormatResult(f.Result)
}

func FormatResult(r *model.ConversionResult) string {
	return FormatAmount(r.Amount) + " " + r.From + " = " + FormatValue(r.Result) + " " + r.To
}

// FormatAmount печатает введённую сумму без лишних нулей
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).String()
}

// FormatValue - результат с двумя знаками после запятой
func FormatValue(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
