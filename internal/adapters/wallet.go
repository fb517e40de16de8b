package adapters

import (
	"context"
	"math/big"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"
	"wallet_scanner/internal/pkg/utils"
	"wallet_scanner/internal/query"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// WalletAdapter discovers the balances sitting directly in the wallet:
// the native currency plus every tracked token of the chain, swept with
// one-method-many-contracts balanceOf batches.
type WalletAdapter struct {
	chain        entity.Chain
	executor     port.QueryExecutor
	batch        port.BatchCaller
	builder      port.HoldingBuilder
	catalog      port.TokenCatalog
	maxBatchSize int
	logger       *zap.Logger
}

// NewWalletAdapter creates the wallet adapter for one chain.
func NewWalletAdapter(chain entity.Chain, executor port.QueryExecutor, batch port.BatchCaller,
	builder port.HoldingBuilder, catalog port.TokenCatalog, maxBatchSize int, logger *zap.Logger) *WalletAdapter {
	return &WalletAdapter{
		chain:        chain,
		executor:     executor,
		batch:        batch,
		builder:      builder,
		catalog:      catalog,
		maxBatchSize: maxBatchSize,
		logger:       logger.Named("WalletAdapter").With(zap.String("chain", chain.Identifier)),
	}
}

func (a *WalletAdapter) Chain() string   { return a.chain.Identifier }
func (a *WalletAdapter) Project() string { return entity.LocationWallet }

// DiscoverHoldings fetches native and tracked token balances. Tokens
// with a zero balance produce no record; tokens missing from a batch
// result are treated as no data, not as zero.
func (a *WalletAdapter) DiscoverHoldings(ctx context.Context, wallet string) ([]entity.Holding, error) {
	owner := common.HexToAddress(wallet)
	var holdings []entity.Holding

	nativeRaw, err := a.executor.NativeBalance(ctx, a.chain, owner)
	if err != nil {
		return nil, err
	}
	if nativeRaw != nil && nativeRaw.Sign() > 0 {
		native, err := a.builder.BuildNativeHolding(ctx, a.chain, wallet, entity.LocationWallet, entity.StatusNone, nativeRaw)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, native)
	}

	tracked := a.catalog.TokensByChain(a.chain.Identifier)
	if len(tracked) == 0 {
		return holdings, nil
	}

	addresses := make([]common.Address, 0, len(tracked))
	for _, token := range tracked {
		addresses = append(addresses, common.HexToAddress(token.Address))
	}

	for _, chunk := range utils.ChunkSlice(addresses, a.maxBatchSize) {
		balances, err := a.batch.CallOneMethodManyContracts(ctx, a.chain, query.ERC20ABI(),
			"balanceOf", []interface{}{owner}, chunk)
		if err != nil {
			return holdings, err
		}

		for _, token := range chunk {
			values, ok := balances[token]
			if !ok {
				continue
			}
			raw, ok := firstBigInt(values)
			if !ok || raw.Sign() == 0 {
				continue
			}
			fungible, err := a.builder.BuildFungibleHolding(ctx, a.chain, wallet,
				entity.LocationWallet, entity.StatusNone, token.Hex(), raw)
			if err != nil {
				a.logger.Warn("Failed to build fungible holding, skipping token",
					zap.String("token", token.Hex()), zap.Error(err))
				continue
			}
			holdings = append(holdings, fungible)
		}
	}

	return holdings, nil
}

func firstBigInt(values []interface{}) (*big.Int, bool) {
	if len(values) == 0 {
		return nil, false
	}
	b, ok := values[0].(*big.Int)
	if !ok || b == nil {
		return nil, false
	}
	return b, true
}
