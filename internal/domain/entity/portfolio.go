package entity

// WalletHoldings is the aggregated result of one wallet scan: every
// holding the registered adapters discovered, plus the errors of the
// branches that failed. Holdings carry no ordering guarantee.
type WalletHoldings struct {
	WalletAddress string      `json:"walletAddress"`
	Holdings      []Holding   `json:"holdings"`
	Errors        []ScanError `json:"errors,omitempty"`
}
