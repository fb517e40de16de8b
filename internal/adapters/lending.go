package adapters

import (
	"context"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/config"
	"wallet_scanner/internal/domain/entity"
	"wallet_scanner/internal/query"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// LendingAdapter discovers positions in an Aave-style lending protocol:
// interest-bearing supply tokens become derivative holdings redeemable
// for their underlying one-to-one, variable debt token balances become
// debt holdings against the underlying asset.
type LendingAdapter struct {
	chain   entity.Chain
	project string
	markets []config.LendingPair
	batch   port.BatchCaller
	builder port.HoldingBuilder
	logger  *zap.Logger
}

// NewLendingAdapter creates the lending adapter for one project on one chain.
func NewLendingAdapter(chain entity.Chain, project string, markets []config.LendingPair,
	batch port.BatchCaller, builder port.HoldingBuilder, logger *zap.Logger) *LendingAdapter {
	return &LendingAdapter{
		chain:   chain,
		project: project,
		markets: markets,
		batch:   batch,
		builder: builder,
		logger:  logger.Named("LendingAdapter").With(zap.String("chain", chain.Identifier), zap.String("project", project)),
	}
}

func (a *LendingAdapter) Chain() string   { return a.chain.Identifier }
func (a *LendingAdapter) Project() string { return a.project }

func (a *LendingAdapter) DiscoverHoldings(ctx context.Context, wallet string) ([]entity.Holding, error) {
	if len(a.markets) == 0 {
		return nil, nil
	}
	owner := common.HexToAddress(wallet)

	targets := make([]common.Address, 0, len(a.markets)*2)
	for _, market := range a.markets {
		targets = append(targets, common.HexToAddress(market.SupplyToken), common.HexToAddress(market.DebtToken))
	}

	balances, err := a.batch.CallOneMethodManyContracts(ctx, a.chain, query.ERC20ABI(),
		"balanceOf", []interface{}{owner}, targets)
	if err != nil {
		return nil, err
	}

	var holdings []entity.Holding
	for _, market := range a.markets {
		supplyAddr := common.HexToAddress(market.SupplyToken)
		if values, ok := balances[supplyAddr]; ok {
			if raw, ok := firstBigInt(values); ok && raw.Sign() > 0 {
				// Supply tokens track their underlying one-to-one; the
				// redeemable amount equals the token balance.
				derivative, err := a.builder.BuildDerivativeHolding(ctx, a.chain, wallet, a.project,
					entity.StatusLent, market.SupplyToken, market.Underlying, raw, raw)
				if err != nil {
					a.logger.Warn("Failed to build derivative holding, skipping market",
						zap.String("supplyToken", market.SupplyToken), zap.Error(err))
				} else {
					holdings = append(holdings, derivative)
				}
			}
		}

		debtAddr := common.HexToAddress(market.DebtToken)
		if values, ok := balances[debtAddr]; ok {
			if raw, ok := firstBigInt(values); ok && raw.Sign() > 0 {
				debt, err := a.builder.BuildDebtHolding(ctx, a.chain, wallet, a.project, market.Underlying, raw)
				if err != nil {
					a.logger.Warn("Failed to build debt holding, skipping market",
						zap.String("debtToken", market.DebtToken), zap.Error(err))
				} else {
					holdings = append(holdings, debt)
				}
			}
		}
	}
	return holdings, nil
}
