package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstream_FallbackMessage(t *testing.T) {
	err := Upstream("", "")
	assert.Equal(t, DefaultUpstreamMessage, err.Message)
	assert.Equal(t, KindUpstream, err.Kind)

	err = Upstream("invalid_to_currency", "You have entered an invalid \"to\" property.")
	assert.Equal(t, "You have entered an invalid \"to\" property.", err.Message)
	assert.Equal(t, "invalid_to_currency", err.Code)
}

func TestKindOf_Wrapped(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("convert: %w", Network("exchange-rate provider is unreachable", cause))

	assert.Equal(t, KindNetwork, KindOf(err))
	assert.True(t, IsNetwork(err))
	assert.False(t, IsUpstream(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "exchange-rate provider is unreachable", MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindOf_Foreign(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "boom", MessageOf(err))
	assert.Equal(t, "", MessageOf(nil))
}
