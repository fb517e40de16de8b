package pipeline

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"
	"wallet_scanner/internal/pkg/utils"
	"wallet_scanner/internal/query"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultDecimals = 18

// Pipeline implements port.HoldingBuilder. It resolves token metadata
// with catalog-first precedence, normalizes raw integers into decimals
// and attaches oracle prices, degrading the price to absent on lookup
// failure rather than failing construction.
type Pipeline struct {
	catalog port.TokenCatalog
	oracle  port.PriceOracle
	batch   port.BatchCaller
	logger  *zap.Logger
}

// NewPipeline creates the token normalization pipeline.
func NewPipeline(catalog port.TokenCatalog, oracle port.PriceOracle, batch port.BatchCaller, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		catalog: catalog,
		oracle:  oracle,
		batch:   batch,
		logger:  logger.Named("Pipeline"),
	}
}

// tokenMeta is resolved metadata for one token.
type tokenMeta struct {
	symbol   string
	decimals uint8
	logo     string
}

func isNativeAddress(address string) bool {
	return strings.EqualFold(address, entity.NativeAddress)
}

// resolveToken resolves symbol/decimals/logo for a token address.
// Precedence: native sentinel short-circuits to the chain's static
// native metadata; then the tracked token catalog; only on a catalog
// miss is a live batch call for symbol/decimals issued. Unresolved
// decimals default to 18.
func (p *Pipeline) resolveToken(ctx context.Context, chain entity.Chain, address string) tokenMeta {
	if isNativeAddress(address) {
		return tokenMeta{
			symbol:   chain.NativeSymbol,
			decimals: chain.NativeDecimals,
			logo:     p.catalog.LogoBySymbol(chain.Identifier, chain.NativeSymbol),
		}
	}

	if info, ok := p.catalog.Lookup(chain.Identifier, address); ok {
		logo := info.Logo
		if logo == "" {
			logo = p.catalog.LogoBySymbol(chain.Identifier, info.Symbol)
		}
		return tokenMeta{symbol: info.Symbol, decimals: info.Decimals, logo: logo}
	}

	meta := tokenMeta{decimals: defaultDecimals}
	result, err := p.batch.CallManyMethodsOneContract(ctx, chain, common.HexToAddress(address), query.ERC20ABI(),
		[]entity.MethodCall{
			{Ref: "symbol", Method: "symbol"},
			{Ref: "decimals", Method: "decimals"},
		})
	if err != nil {
		p.logger.Warn("On-chain metadata lookup failed, falling back to defaults",
			zap.String("chain", chain.Identifier),
			zap.String("token", address),
			zap.Error(err))
		return meta
	}
	if symbol, ok := decodeString(result["symbol"]); ok {
		meta.symbol = symbol
	}
	if decimals, ok := decodeUint8(result["decimals"]); ok {
		meta.decimals = decimals
	}
	meta.logo = p.catalog.LogoBySymbol(chain.Identifier, meta.symbol)
	return meta
}

// lookupPrice returns the oracle price or nil when unavailable.
func (p *Pipeline) lookupPrice(ctx context.Context, chain entity.Chain, address string, decimals uint8) *decimal.Decimal {
	price, ok := p.oracle.GetPrice(ctx, chain.Identifier, address, decimals)
	if !ok {
		return nil
	}
	return &price
}

// BuildNativeHolding builds a record for the chain's native currency.
// Symbol and decimals come from the static per-chain table, never from
// a contract; the price is looked up at the native sentinel address.
func (p *Pipeline) BuildNativeHolding(ctx context.Context, chain entity.Chain,
	owner, location, status string, raw *big.Int) (entity.NativeHolding, error) {

	return entity.NativeHolding{
		HoldingBase: entity.HoldingBase{
			Kind:     entity.KindNative,
			Chain:    chain.Identifier,
			Location: location,
			Status:   status,
			Owner:    owner,
			Symbol:   chain.NativeSymbol,
			Address:  entity.NativeAddress,
			Balance:  utils.NormalizeBigInt(raw, chain.NativeDecimals),
			Logo:     p.catalog.LogoBySymbol(chain.Identifier, chain.NativeSymbol),
		},
		Price: p.lookupPrice(ctx, chain, entity.NativeAddress, chain.NativeDecimals),
	}, nil
}

// BuildFungibleHolding builds a record for a fungible token balance.
func (p *Pipeline) BuildFungibleHolding(ctx context.Context, chain entity.Chain,
	owner, location, status, token string, raw *big.Int) (entity.FungibleHolding, error) {

	meta := p.resolveToken(ctx, chain, token)
	return entity.FungibleHolding{
		HoldingBase: entity.HoldingBase{
			Kind:     entity.KindFungible,
			Chain:    chain.Identifier,
			Location: location,
			Status:   status,
			Owner:    owner,
			Symbol:   meta.symbol,
			Address:  token,
			Balance:  utils.NormalizeBigInt(raw, meta.decimals),
			Logo:     meta.logo,
		},
		Price: p.lookupPrice(ctx, chain, token, meta.decimals),
	}, nil
}

// BuildLPHolding builds a record for a liquidity-pool share, decomposed
// into its two underlying reserve assets. Each underlying share is
// reserve_i * lpBalance / totalSupply.
func (p *Pipeline) BuildLPHolding(ctx context.Context, chain entity.Chain,
	owner, location, status, pool string, raw *big.Int) (entity.LPHolding, error) {

	poolAddr := common.HexToAddress(pool)
	result, err := p.batch.CallManyMethodsOneContract(ctx, chain, poolAddr, query.PairABI(),
		[]entity.MethodCall{
			{Ref: "symbol", Method: "symbol"},
			{Ref: "decimals", Method: "decimals"},
			{Ref: "reserves", Method: "getReserves"},
			{Ref: "totalSupply", Method: "totalSupply"},
			{Ref: "token0", Method: "token0"},
			{Ref: "token1", Method: "token1"},
		})
	if err != nil {
		return entity.LPHolding{}, err
	}

	reserves, okReserves := decodeReserves(result["reserves"])
	totalSupply, okSupply := decodeBigInt(result["totalSupply"])
	token0, okToken0 := decodeAddress(result["token0"])
	token1, okToken1 := decodeAddress(result["token1"])
	if !okReserves || !okSupply || !okToken0 || !okToken1 {
		return entity.LPHolding{}, fmt.Errorf("pool %s on %s did not return reserves/supply/token pair", pool, chain.Identifier)
	}

	poolSymbol, _ := decodeString(result["symbol"])
	poolDecimals, ok := decodeUint8(result["decimals"])
	if !ok {
		poolDecimals = defaultDecimals
	}

	underlying := [2]entity.PricedUnderlying{}
	for i, side := range []struct {
		token   string
		reserve *big.Int
	}{
		{token0, reserves.Reserve0},
		{token1, reserves.Reserve1},
	} {
		meta := p.resolveToken(ctx, chain, side.token)
		underlying[i] = entity.PricedUnderlying{
			Symbol:  meta.symbol,
			Address: side.token,
			Balance: utils.ProportionalShare(side.reserve, raw, totalSupply, meta.decimals),
			Price:   p.lookupPrice(ctx, chain, side.token, meta.decimals),
			Logo:    meta.logo,
		}
	}

	return entity.LPHolding{
		HoldingBase: entity.HoldingBase{
			Kind:     entity.KindLP,
			Chain:    chain.Identifier,
			Location: location,
			Status:   status,
			Owner:    owner,
			Symbol:   poolSymbol,
			Address:  pool,
			Balance:  utils.NormalizeBigInt(raw, poolDecimals),
			Logo:     p.catalog.LogoBySymbol(chain.Identifier, poolSymbol),
		},
		Underlying: underlying,
	}, nil
}

// BuildDebtHolding builds a record for an outstanding borrow. The
// metadata resolution path matches the fungible one; status is fixed
// to "borrowed".
func (p *Pipeline) BuildDebtHolding(ctx context.Context, chain entity.Chain,
	owner, location, token string, raw *big.Int) (entity.DebtHolding, error) {

	meta := p.resolveToken(ctx, chain, token)
	return entity.DebtHolding{
		HoldingBase: entity.HoldingBase{
			Kind:     entity.KindDebt,
			Chain:    chain.Identifier,
			Location: location,
			Status:   entity.StatusBorrowed,
			Owner:    owner,
			Symbol:   meta.symbol,
			Address:  token,
			Balance:  utils.NormalizeBigInt(raw, meta.decimals),
			Logo:     meta.logo,
		},
		Price: p.lookupPrice(ctx, chain, token, meta.decimals),
	}, nil
}

// BuildDerivativeHolding builds a record for a wrapped or interest
// bearing token. The underlying's raw quantity is supplied by the
// caller; the derivative-to-underlying conversion ratio is protocol
// specific and stays with the adapter.
func (p *Pipeline) BuildDerivativeHolding(ctx context.Context, chain entity.Chain,
	owner, location, status, token, underlying string, raw, underlyingRaw *big.Int) (entity.DerivativeHolding, error) {

	meta := p.resolveToken(ctx, chain, token)
	underlyingMeta := p.resolveToken(ctx, chain, underlying)

	return entity.DerivativeHolding{
		HoldingBase: entity.HoldingBase{
			Kind:     entity.KindDerivative,
			Chain:    chain.Identifier,
			Location: location,
			Status:   status,
			Owner:    owner,
			Symbol:   meta.symbol,
			Address:  token,
			Balance:  utils.NormalizeBigInt(raw, meta.decimals),
			Logo:     meta.logo,
		},
		Underlying: entity.PricedUnderlying{
			Symbol:  underlyingMeta.symbol,
			Address: underlying,
			Balance: utils.NormalizeBigInt(underlyingRaw, underlyingMeta.decimals),
			Price:   p.lookupPrice(ctx, chain, underlying, underlyingMeta.decimals),
			Logo:    underlyingMeta.logo,
		},
	}, nil
}
