package port

import "wallet_scanner/internal/domain/entity"

// TokenCatalog is the static registry of well-known token metadata.
// A catalog hit always wins over a live on-chain metadata query.
type TokenCatalog interface {
	// Lookup returns the tracked metadata for (chain, address) and true
	// on a hit. Address comparison is case-insensitive.
	Lookup(chain, address string) (entity.TokenInfo, bool)

	// LogoBySymbol returns the logo reference for a symbol on a chain,
	// or the empty default when the symbol is unknown.
	LogoBySymbol(chain, symbol string) string

	// TokensByChain returns every tracked token of a chain.
	TokensByChain(chain string) []entity.TokenInfo
}
