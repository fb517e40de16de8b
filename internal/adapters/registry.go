package adapters

import (
	"strings"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/config"

	"go.uber.org/zap"
)

// StaticRegistry implements port.AdapterRegistry as a plain map built
// at start. Adapters are registered by value here; nothing is resolved
// by string path or reflection at runtime.
type StaticRegistry struct {
	byChain map[string][]port.Adapter
}

// NewStaticRegistry registers the given adapters.
func NewStaticRegistry(adapters ...port.Adapter) *StaticRegistry {
	r := &StaticRegistry{byChain: make(map[string][]port.Adapter)}
	for _, a := range adapters {
		key := strings.ToLower(a.Chain())
		r.byChain[key] = append(r.byChain[key], a)
	}
	return r
}

// AdaptersForChain returns the adapters registered for a chain.
func (r *StaticRegistry) AdaptersForChain(chain string) []port.Adapter {
	return r.byChain[strings.ToLower(chain)]
}

// NewFromConfig builds the full adapter set declared in the config:
// one wallet adapter per chain, plus the LP and lending integrations.
func NewFromConfig(cfg *config.Config, chains port.ChainRegistry, executor port.QueryExecutor,
	batch port.BatchCaller, builder port.HoldingBuilder, catalog port.TokenCatalog, logger *zap.Logger) *StaticRegistry {

	var all []port.Adapter

	for _, chain := range chains.Chains() {
		all = append(all, NewWalletAdapter(chain, executor, batch, builder, catalog,
			cfg.Scanner.MaxAddressesPerBatchCall, logger))
	}

	for _, node := range cfg.Adapters.LPPools {
		chain, ok := chains.ChainByIdentifier(node.Chain)
		if !ok {
			logger.Warn("LP pools configured for unknown chain, skipping",
				zap.String("chain", node.Chain), zap.String("project", node.Project))
			continue
		}
		all = append(all, NewUniswapV2Adapter(chain, node.Project, node.Pools, batch, builder, logger))
	}

	for _, node := range cfg.Adapters.LendingMarkets {
		chain, ok := chains.ChainByIdentifier(node.Chain)
		if !ok {
			logger.Warn("Lending markets configured for unknown chain, skipping",
				zap.String("chain", node.Chain), zap.String("project", node.Project))
			continue
		}
		all = append(all, NewLendingAdapter(chain, node.Project, node.Markets, batch, builder, logger))
	}

	return NewStaticRegistry(all...)
}
