package registry

import (
	"strings"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/config"
	"wallet_scanner/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// chainRegistry implements port.ChainRegistry on top of the static
// chain section of the YAML config. Everything is resolved at build
// time; lookups after that are read-only map hits.
type chainRegistry struct {
	chains     map[string]entity.Chain
	ordered    []entity.Chain
	multicall  map[string]common.Address
	suppressed map[string]map[string]struct{}
}

// NewChainRegistry builds the registry from the loaded configuration.
func NewChainRegistry(cfg *config.Config, logger *zap.Logger) port.ChainRegistry {
	log := logger.Named("ChainRegistry")

	r := &chainRegistry{
		chains:     make(map[string]entity.Chain, len(cfg.Chains)),
		ordered:    make([]entity.Chain, 0, len(cfg.Chains)),
		multicall:  make(map[string]common.Address, len(cfg.Chains)),
		suppressed: make(map[string]map[string]struct{}),
	}

	for _, node := range cfg.Chains {
		chain := node.ChainEntity()
		key := strings.ToLower(chain.Identifier)
		r.chains[key] = chain
		r.ordered = append(r.ordered, chain)

		if node.MulticallAddress != "" {
			r.multicall[key] = common.HexToAddress(node.MulticallAddress)
		}

		if len(node.SuppressedAddresses) > 0 {
			set := make(map[string]struct{}, len(node.SuppressedAddresses))
			for _, addr := range node.SuppressedAddresses {
				set[strings.ToLower(addr)] = struct{}{}
			}
			r.suppressed[key] = set
		}

		log.Info("Registered chain",
			zap.String("identifier", chain.Identifier),
			zap.Uint64("chainId", chain.ChainID),
			zap.Int("endpoints", len(chain.Endpoints)),
			zap.Int("suppressedAddresses", len(node.SuppressedAddresses)))
	}

	return r
}

func (r *chainRegistry) Chains() []entity.Chain {
	out := make([]entity.Chain, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func (r *chainRegistry) ChainByIdentifier(identifier string) (entity.Chain, bool) {
	chain, ok := r.chains[strings.ToLower(identifier)]
	return chain, ok
}

func (r *chainRegistry) MulticallAddress(chain string) (common.Address, bool) {
	addr, ok := r.multicall[strings.ToLower(chain)]
	return addr, ok
}

func (r *chainRegistry) IsSuppressed(chain, address string) bool {
	set, ok := r.suppressed[strings.ToLower(chain)]
	if !ok {
		return false
	}
	_, suppressed := set[strings.ToLower(address)]
	return suppressed
}
