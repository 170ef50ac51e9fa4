package bridge

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100", 100_000_000},
		{"0.000001", 1},
		{"1.5", 1_500_000},
		{"12.340000", 12_340_000},
	}
	for _, tc := range tests {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, big.NewInt(tc.want), got, tc.in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-5", "0.0000001"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.5", FormatAmount(big.NewInt(1_500_000)))
	assert.Equal(t, "0", FormatAmount(big.NewInt(0)))
	assert.Equal(t, "0", FormatAmount(nil))
}

func TestEncodeBytes32String(t *testing.T) {
	out, err := EncodeBytes32String("stacks")
	require.NoError(t, err)
	assert.Equal(t, []byte("stacks"), out[:6])
	for _, b := range out[6:] {
		assert.Zero(t, b)
	}

	_, err = EncodeBytes32String("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	assert.Error(t, err, "41 byte principal does not fit")
}
