package adapters

import (
	"context"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"
	"wallet_scanner/internal/query"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// UniswapV2Adapter discovers LP positions in a fixed set of V2-style
// pair contracts: one balanceOf sweep over the pools, then a full LP
// decomposition for every non-zero share.
type UniswapV2Adapter struct {
	chain   entity.Chain
	project string
	pools   []common.Address
	batch   port.BatchCaller
	builder port.HoldingBuilder
	logger  *zap.Logger
}

// NewUniswapV2Adapter creates the LP adapter for one project on one chain.
func NewUniswapV2Adapter(chain entity.Chain, project string, pools []string,
	batch port.BatchCaller, builder port.HoldingBuilder, logger *zap.Logger) *UniswapV2Adapter {

	addrs := make([]common.Address, 0, len(pools))
	for _, p := range pools {
		addrs = append(addrs, common.HexToAddress(p))
	}
	return &UniswapV2Adapter{
		chain:   chain,
		project: project,
		pools:   addrs,
		batch:   batch,
		builder: builder,
		logger:  logger.Named("UniswapV2Adapter").With(zap.String("chain", chain.Identifier), zap.String("project", project)),
	}
}

func (a *UniswapV2Adapter) Chain() string   { return a.chain.Identifier }
func (a *UniswapV2Adapter) Project() string { return a.project }

func (a *UniswapV2Adapter) DiscoverHoldings(ctx context.Context, wallet string) ([]entity.Holding, error) {
	if len(a.pools) == 0 {
		return nil, nil
	}
	owner := common.HexToAddress(wallet)

	balances, err := a.batch.CallOneMethodManyContracts(ctx, a.chain, query.PairABI(),
		"balanceOf", []interface{}{owner}, a.pools)
	if err != nil {
		return nil, err
	}

	var holdings []entity.Holding
	for _, pool := range a.pools {
		values, ok := balances[pool]
		if !ok {
			continue
		}
		raw, ok := firstBigInt(values)
		if !ok || raw.Sign() == 0 {
			continue
		}
		lp, err := a.builder.BuildLPHolding(ctx, a.chain, wallet, a.project, entity.StatusNone, pool.Hex(), raw)
		if err != nil {
			a.logger.Warn("Failed to decompose LP position, skipping pool",
				zap.String("pool", pool.Hex()), zap.Error(err))
			continue
		}
		holdings = append(holdings, lp)
	}
	return holdings, nil
}
