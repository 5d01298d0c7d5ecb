package sns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber_BareNumberGetsPrefix(t *testing.T) {
	assert.Equal(t, "+919876543210", formatNumber("+91", "9876543210"))
}

func TestFormatNumber_E164PassedThrough(t *testing.T) {
	assert.Equal(t, "+14155550100", formatNumber("+91", "+14155550100"))
}

func TestDisabled_DispatchFails(t *testing.T) {
	err := Disabled().SendSMS(context.Background(), "9876543210", "hello")
	assert.Error(t, err)
}
