package model

import "strings"

type CurrencyKind string

const (
	KindFiat   CurrencyKind = "fiat"
	KindCrypto CurrencyKind = "crypto"
)

type Currency struct {
	Code string       `json:"code"`
	Name string       `json:"name"`
	Kind CurrencyKind `json:"kind"`
}

// Label - строка для выпадающего списка: "USD - US Dollar"
func (c Currency) Label() string {
	return c.Code + " - " + c.Name
}

var fiatCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Kind: KindFiat},
	{Code: "EUR", Name: "Euro", Kind: KindFiat},
	{Code: "GBP", Name: "British Pound", Kind: KindFiat},
	{Code: "JPY", Name: "Japanese Yen", Kind: KindFiat},
	{Code: "INR", Name: "Indian Rupee", Kind: KindFiat},
}

var cryptoCurrencies = []Currency{
	{Code: "BTC", Name: "Bitcoin", Kind: KindCrypto},
	{Code: "ETH", Name: "Ethereum", Kind: KindCrypto},
	{Code: "XRP", Name: "Ripple", Kind: KindCrypto},
	{Code: "LTC", Name: "Litecoin", Kind: KindCrypto},
	{Code: "BNB", Name: "Binance Coin", Kind: KindCrypto},
}

// FiatCurrencies возвращает копию списка, чтобы его нельзя было изменить снаружи
func FiatCurrencies() []Currency {
	return append([]Currency(nil), fiatCurrencies...)
}

func CryptoCurrencies() []Currency {
	return append([]Currency(nil), cryptoCurrencies...)
}

// AllCurrencies - сначала фиат, потом крипта (порядок как в форме)
func AllCurrencies() []Currency {
	all := make([]Currency, 0, len(fiatCurrencies)+len(cryptoCurrencies))
	all = append(all, fiatCurrencies...)
	return append(all, cryptoCurrencies...)
}

func LookupCurrency(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range AllCurrencies() {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

func Currencies() CurrenciesResponse {
	return CurrenciesResponse{
		Fiat:   FiatCurrencies(),
		Crypto: CryptoCurrencies(),
	}
}
