package bridge

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

// TokenDecimals is the fixed precision of USDC and USDCx.
const TokenDecimals = 6

// ParseAmount validates a human-readable amount such as "100.5" and returns
// it scaled to TokenDecimals base units.
func ParseAmount(amount string) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, amount)
	}
	if !d.IsPositive() {
		return nil, fmt.Errorf("%w: %q must be positive", domain.ErrInvalidAmount, amount)
	}

	scaled := d.Shift(TokenDecimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", domain.ErrInvalidAmount, amount, TokenDecimals)
	}
	return scaled.BigInt(), nil
}

// FormatAmount renders base units as a decimal string with TokenDecimals precision.
func FormatAmount(units *big.Int) string {
	if units == nil {
		return "0"
	}
	return decimal.NewFromBigInt(units, -TokenDecimals).String()
}

// EncodeBytes32String encodes s the way the bridge contract expects its
// bytes32 chain and address arguments: UTF-8 bytes, zero padded on the right,
// at most 31 bytes so the value stays null terminated.
func EncodeBytes32String(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) > 31 {
		return out, fmt.Errorf("bytes32 string must be less than 32 bytes: %q", s)
	}
	copy(out[:], s)
	return out, nil
}
