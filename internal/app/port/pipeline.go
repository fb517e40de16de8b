package port

import (
	"context"
	"math/big"

	"wallet_scanner/internal/domain/entity"
)

// HoldingBuilder turns raw on-chain integers into typed, decimal
// normalized holding records. One constructor per record variant.
type HoldingBuilder interface {
	BuildNativeHolding(ctx context.Context, chain entity.Chain,
		owner, location, status string, raw *big.Int) (entity.NativeHolding, error)

	BuildFungibleHolding(ctx context.Context, chain entity.Chain,
		owner, location, status, token string, raw *big.Int) (entity.FungibleHolding, error)

	BuildLPHolding(ctx context.Context, chain entity.Chain,
		owner, location, status, pool string, raw *big.Int) (entity.LPHolding, error)

	// BuildDebtHolding follows the fungible path with status fixed to
	// "borrowed".
	BuildDebtHolding(ctx context.Context, chain entity.Chain,
		owner, location, token string, raw *big.Int) (entity.DebtHolding, error)

	// BuildDerivativeHolding takes the redeemable underlying quantity as
	// an already-computed raw amount; the conversion ratio is protocol
	// specific and stays with the adapter.
	BuildDerivativeHolding(ctx context.Context, chain entity.Chain,
		owner, location, status, token, underlying string, raw, underlyingRaw *big.Int) (entity.DerivativeHolding, error)
}
