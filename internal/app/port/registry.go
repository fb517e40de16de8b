package port

import (
	"wallet_scanner/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// ChainRegistry provides the static per-chain configuration: ordered
// endpoint pools, multicall helper addresses and the suppression list.
// Read-only, loaded once at process start.
type ChainRegistry interface {
	// Chains returns all configured chains.
	Chains() []entity.Chain

	// ChainByIdentifier returns the chain definition for an identifier
	// (for example "ethereum", "poly") and true if it is configured.
	ChainByIdentifier(identifier string) (entity.Chain, bool)

	// MulticallAddress returns the batching helper contract of a chain.
	MulticallAddress(chain string) (common.Address, bool)

	// IsSuppressed reports whether the (chain, address) pair is on the
	// suppression list: a contract whose permanent query failure is
	// expected and must resolve to absent instead of an error.
	// Address comparison is case-insensitive.
	IsSuppressed(chain, address string) bool
}
