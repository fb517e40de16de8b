package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// NormalizeBigInt converts a raw on-chain integer into its human
// readable decimal value by shifting it down by the token's decimals.
// Example: raw=1500000000000000000, decimals=18 => 1.5
func NormalizeBigInt(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// ProportionalShare computes reserve * balance / totalSupply as an exact
// decimal, used for decomposing an LP share into its underlying assets.
// A zero or nil total supply yields zero rather than a division error.
func ProportionalShare(reserve, balance, totalSupply *big.Int, reserveDecimals uint8) decimal.Decimal {
	if reserve == nil || balance == nil || totalSupply == nil || totalSupply.Sign() == 0 {
		return decimal.Zero
	}
	r := decimal.NewFromBigInt(reserve, -int32(reserveDecimals))
	share := decimal.NewFromBigInt(balance, 0).Div(decimal.NewFromBigInt(totalSupply, 0))
	return r.Mul(share)
}
