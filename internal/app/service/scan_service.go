package service

import (
	"context"
	"strings"
	"sync"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ScanServiceImpl implements port.ScanService: it fans out every
// registered (chain, adapter) discovery branch for a wallet and joins
// the results into one unordered collection. Branches are isolated: a
// failing branch is caught, logged and recorded, and never cancels or
// corrupts its siblings.
type ScanServiceImpl struct {
	registry      port.ChainRegistry
	adapters      port.AdapterRegistry
	maxConcurrent int
	logger        *zap.Logger
}

// NewScanService creates the scan service.
func NewScanService(registry port.ChainRegistry, adapters port.AdapterRegistry, maxConcurrent int, logger *zap.Logger) port.ScanService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &ScanServiceImpl{
		registry:      registry,
		adapters:      adapters,
		maxConcurrent: maxConcurrent,
		logger:        logger.Named("ScanService"),
	}
}

// ScanWallet runs every discovery branch for the wallet. When chains is
// empty, all configured chains are scanned.
func (s *ScanServiceImpl) ScanWallet(ctx context.Context, wallet string, chains []string) entity.WalletHoldings {
	targetChains := s.resolveChains(chains)

	result := entity.WalletHoldings{WalletAddress: wallet}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, chain := range targetChains {
		for _, adapter := range s.adapters.AdaptersForChain(chain.Identifier) {
			adapter := adapter
			g.Go(func() error {
				holdings, err := adapter.DiscoverHoldings(gctx, wallet)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					// The branch contributes nothing; siblings keep going.
					s.logger.Warn("Discovery branch failed",
						zap.String("wallet", wallet),
						zap.String("chain", adapter.Chain()),
						zap.String("project", adapter.Project()),
						zap.Error(err))
					result.Errors = append(result.Errors, entity.ScanError{
						Wallet:  wallet,
						Chain:   adapter.Chain(),
						Project: adapter.Project(),
						Message: err.Error(),
					})
					return nil
				}
				result.Holdings = append(result.Holdings, holdings...)
				return nil
			})
		}
	}

	// Branches never return errors, so this only waits for completion.
	_ = g.Wait()

	s.logger.Info("Wallet scan complete",
		zap.String("wallet", wallet),
		zap.Int("chains", len(targetChains)),
		zap.Int("holdings", len(result.Holdings)),
		zap.Int("errors", len(result.Errors)))
	return result
}

func (s *ScanServiceImpl) resolveChains(requested []string) []entity.Chain {
	if len(requested) == 0 {
		return s.registry.Chains()
	}
	seen := make(map[string]struct{}, len(requested))
	chains := make([]entity.Chain, 0, len(requested))
	for _, identifier := range requested {
		key := strings.ToLower(identifier)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		chain, ok := s.registry.ChainByIdentifier(identifier)
		if !ok {
			s.logger.Warn("Requested chain is not configured, skipping", zap.String("chain", identifier))
			continue
		}
		chains = append(chains, chain)
	}
	return chains
}
