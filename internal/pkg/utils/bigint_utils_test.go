package utils

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeBigInt(t *testing.T) {
	tests := []struct {
		name     string
		raw      *big.Int
		decimals uint8
		expected string
	}{
		{"eighteen decimals", mustBig("1500000000000000000"), 18, "1.5"},
		{"six decimals", big.NewInt(2500000), 6, "2.5"},
		{"zero decimals", big.NewInt(42), 0, "42"},
		{"sub-unit amount", big.NewInt(1), 18, "0.000000000000000001"},
		{"zero balance", big.NewInt(0), 18, "0"},
		{"nil balance", nil, 18, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBigInt(tt.raw, tt.decimals)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("NormalizeBigInt(%v, %d) = %s, expected %s", tt.raw, tt.decimals, got, tt.expected)
			}
		})
	}
}

func TestProportionalShare(t *testing.T) {
	tests := []struct {
		name        string
		reserve     *big.Int
		balance     *big.Int
		totalSupply *big.Int
		decimals    uint8
		expected    string
	}{
		{"ten percent share", big.NewInt(1000), big.NewInt(10), big.NewInt(100), 0, "100"},
		{"full share equals reserve", big.NewInt(2000), big.NewInt(100), big.NewInt(100), 0, "2000"},
		{"normalized reserve", mustBig("4000000000000000000"), big.NewInt(1), big.NewInt(2), 18, "2"},
		{"zero supply", big.NewInt(1000), big.NewInt(10), big.NewInt(0), 0, "0"},
		{"nil supply", big.NewInt(1000), big.NewInt(10), nil, 0, "0"},
		{"zero balance", big.NewInt(1000), big.NewInt(0), big.NewInt(100), 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProportionalShare(tt.reserve, tt.balance, tt.totalSupply, tt.decimals)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("ProportionalShare = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func mustBig(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad big integer literal: " + s)
	}
	return b
}
