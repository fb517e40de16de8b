package oracle

import (
	"context"
	"strings"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/config"
	"wallet_scanner/internal/domain/entity"
	"wallet_scanner/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// dexScreenerOracle implements port.PriceOracle on the DEX Screener
// API with a TTL cache in front. Lookup failures are reported as
// absent, never as errors: price failure must not fail holding
// construction.
type dexScreenerOracle struct {
	client        DEXScreenerClient
	cache         port.PriceCache
	dexChainIDs   map[string]string // chain identifier -> DEX Screener chain id
	wrappedNative map[string]string // chain identifier -> wrapped native token address
	logger        *zap.Logger
}

// NewPriceOracle builds the oracle from the chain configuration. The
// native sentinel address is priced through the chain's wrapped native
// token when one is configured.
func NewPriceOracle(client DEXScreenerClient, priceCache port.PriceCache, cfg *config.Config, logger *zap.Logger) port.PriceOracle {
	dexChainIDs := make(map[string]string, len(cfg.Chains))
	wrappedNative := make(map[string]string, len(cfg.Chains))
	for _, node := range cfg.Chains {
		key := strings.ToLower(node.Identifier)
		if node.DEXScreenerID != "" {
			dexChainIDs[key] = node.DEXScreenerID
		}
		if node.WrappedNative != "" {
			wrappedNative[key] = node.WrappedNative
		}
	}
	return &dexScreenerOracle{
		client:        client,
		cache:         priceCache,
		dexChainIDs:   dexChainIDs,
		wrappedNative: wrappedNative,
		logger:        logger.Named("PriceOracle"),
	}
}

func (o *dexScreenerOracle) GetPrice(ctx context.Context, chain, address string, decimals uint8) (decimal.Decimal, bool) {
	lookupAddress := address
	if strings.EqualFold(address, entity.NativeAddress) {
		wrapped, ok := o.wrappedNative[strings.ToLower(chain)]
		if !ok {
			return decimal.Zero, false
		}
		lookupAddress = wrapped
	}

	if price, ok := o.cache.Get(chain, lookupAddress); ok {
		metrics.PriceCacheHits.Inc()
		return price, true
	}
	metrics.PriceCacheMisses.Inc()

	dexChainID, ok := o.dexChainIDs[strings.ToLower(chain)]
	if !ok {
		o.logger.Debug("No DEX Screener chain id configured, price unavailable", zap.String("chain", chain))
		return decimal.Zero, false
	}

	pairs, err := o.client.GetTokenPairsByAddresses(ctx, dexChainID, []string{lookupAddress})
	if err != nil {
		o.logger.Warn("Price lookup failed, degrading to absent",
			zap.String("chain", chain),
			zap.String("token", lookupAddress),
			zap.Error(err))
		return decimal.Zero, false
	}

	for _, pair := range pairs {
		if !strings.EqualFold(pair.BaseToken.Address, lookupAddress) || pair.PriceUsd == "" {
			continue
		}
		price, err := decimal.NewFromString(pair.PriceUsd)
		if err != nil {
			o.logger.Warn("Unparseable price from DEX Screener",
				zap.String("token", lookupAddress),
				zap.String("priceUsd", pair.PriceUsd))
			continue
		}
		o.cache.Set(chain, lookupAddress, price)
		return price, true
	}

	return decimal.Zero, false
}
