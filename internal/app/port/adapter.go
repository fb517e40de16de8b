package port

import (
	"context"

	"wallet_scanner/internal/domain/entity"
)

// Adapter is one protocol integration: it knows which contracts and
// methods to call for a project on a chain and turns the results into
// holding records through the HoldingBuilder. Adapters are the recovery
// boundary: a returned error is logged and recorded by the scan service,
// it never aborts the sibling branches of a wallet scan.
type Adapter interface {
	Chain() string
	Project() string
	DiscoverHoldings(ctx context.Context, wallet string) ([]entity.Holding, error)
}

// AdapterRegistry resolves the adapters registered for a chain. The
// mapping is static, built at start; adapters are never loaded by name
// at runtime.
type AdapterRegistry interface {
	AdaptersForChain(chain string) []Adapter
}
