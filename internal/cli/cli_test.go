package cli

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"currency-converter/internal/apperr"
	"currency-converter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestConvertCmd_PrintsSummary(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"from":"USD","to":"EUR","amount":100,"result":92.5}`)

	out, err := execute(t, "convert", "--server", srv.URL, "--amount", "100", "--from", "usd", "--to", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "100 USD = 92.50 EUR\n", out)
	assert.Equal(t, int32(1), calls.Load())
}

func TestConvertCmd_ServerFromEnv(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"from":"USD","to":"EUR","amount":100,"result":92.5}`)
	t.Setenv("CONVERTER_SERVER", srv.URL)

	out, err := execute(t, "convert")
	require.NoError(t, err)
	assert.Contains(t, out, "100 USD = 92.50 EUR")
	assert.Equal(t, int32(1), calls.Load())
}

func TestConvertCmd_LocalValidation(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{}`)

	_, err := execute(t, "convert", "--server", srv.URL, "--amount", "-5")
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
	assert.Equal(t, "Please enter a valid amount greater than zero", apperr.MessageOf(err))

	_, err = execute(t, "convert", "--server", srv.URL, "--from", "DOGE")
	require.Error(t, err)
	assert.Equal(t, `unsupported currency "DOGE"`, apperr.MessageOf(err))

	assert.Equal(t, int32(0), calls.Load())
}

func TestConvertCmd_ServerError(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `{"error":"upstream","message":"You have exceeded your daily/monthly API rate limit."}`)

	out, err := execute(t, "convert", "--server", srv.URL)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, apperr.IsUpstream(err))
	assert.Equal(t, "You have exceeded your daily/monthly API rate limit.", apperr.MessageOf(err))
}

func TestConvertCmd_ServerUnreachable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	addr := srv.URL
	srv.Close()

	_, err := execute(t, "convert", "--server", addr, "--timeout", "1s")
	require.Error(t, err)
	assert.True(t, apperr.IsNetwork(err))
}

func TestCurrenciesCmd(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK,
		`{"fiat":[{"code":"USD","name":"US Dollar","kind":"fiat"}],"crypto":[{"code":"BTC","name":"Bitcoin","kind":"crypto"}]}`)

	out, err := execute(t, "currencies", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Currencies")
	assert.Contains(t, out, "  USD - US Dollar")
	assert.Contains(t, out, "Cryptocurrencies")
	assert.Contains(t, out, "  BTC - Bitcoin")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCurrenciesCmd_Local(t *testing.T) {
	out, err := execute(t, "currencies", "--local", "--server", "http://127.0.0.1:1")
	require.NoError(t, err)
	assert.Contains(t, out, "GBP - British Pound")
	assert.Contains(t, out, "BNB - Binance Coin")
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after == 0 {
		return 0, errors.New("write failed")
	}
	w.after--
	return len(p), nil
}

func TestPrintCurrencies_WriteErrors(t *testing.T) {
	resp := model.Currencies()
	// header, строки фиата, пустая строка, второй header
	for _, after := range []int{0, 1, len(resp.Fiat) + 1, len(resp.Fiat) + 2} {
		err := printCurrencies(&failingWriter{after: after}, resp)
		assert.Error(t, err, "after %d writes", after)
	}
	assert.NoError(t, printCurrencies(&bytes.Buffer{}, resp))
}
