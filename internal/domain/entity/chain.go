package entity

// NativeAddress is the reserved sentinel address that denotes a chain's
// native currency. Calls against it never hit a contract.
const NativeAddress = "0x0000000000000000000000000000000000000000"

// Chain holds the static definition of a blockchain network: its ordered
// RPC endpoint pool, the multicall helper contract used for batching and
// the metadata of the native currency. Loaded once at process start and
// never mutated afterwards.
type Chain struct {
	Identifier       string   `json:"identifier" yaml:"identifier"`
	Name             string   `json:"name" yaml:"name"`
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Endpoints        []string `json:"-" yaml:"endpoints"`
	MulticallAddress string   `json:"-" yaml:"multicallAddress"`
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeDecimals   uint8    `json:"nativeDecimals" yaml:"nativeDecimals"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
