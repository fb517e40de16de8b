package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceOracle converts a token into a currency price. A lookup failure
// is reported as ok=false, never as an error: holding construction must
// degrade the price field to absent instead of failing.
type PriceOracle interface {
	GetPrice(ctx context.Context, chain, address string, decimals uint8) (decimal.Decimal, bool)
}

// PriceCache is an explicit TTL cache for oracle results, passed by
// reference to its consumers rather than accessed as global state.
type PriceCache interface {
	Get(chain, address string) (decimal.Decimal, bool)
	Set(chain, address string, price decimal.Decimal)
	Invalidate(chain, address string)
}
