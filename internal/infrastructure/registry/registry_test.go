package registry

import (
	"testing"

	"wallet_scanner/internal/config"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

func newTestRegistry() *chainRegistry {
	cfg := &config.Config{Chains: []config.ChainNode{
		{
			Identifier:          "Ethereum",
			Name:                "Ethereum Mainnet",
			ChainID:             1,
			Endpoints:           []string{"https://rpc-a.invalid", "https://rpc-b.invalid"},
			MulticallAddress:    "0x5BA1e12693Dc8F9c48aAD8770482f4739bEeD696",
			NativeSymbol:        "ETH",
			SuppressedAddresses: []string{"0x8AAA5e259F74C8114e0a471d9f2ADFc66Bfe09ed"},
		},
		{
			Identifier:   "poly",
			Name:         "Polygon",
			ChainID:      137,
			Endpoints:    []string{"https://rpc-c.invalid"},
			NativeSymbol: "MATIC",
		},
	}}
	return NewChainRegistry(cfg, zap.NewNop()).(*chainRegistry)
}

func TestChainByIdentifierIsCaseInsensitive(t *testing.T) {
	r := newTestRegistry()

	for _, identifier := range []string{"ethereum", "Ethereum", "ETHEREUM"} {
		chain, ok := r.ChainByIdentifier(identifier)
		if !ok {
			t.Fatalf("expected lookup %q to resolve", identifier)
		}
		if chain.ChainID != 1 {
			t.Fatalf("lookup %q resolved wrong chain: %+v", identifier, chain)
		}
	}

	if _, ok := r.ChainByIdentifier("unknown"); ok {
		t.Fatal("unknown identifier must not resolve")
	}
}

func TestChainsPreservesConfigOrder(t *testing.T) {
	r := newTestRegistry()

	chains := r.Chains()
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}
	if chains[0].ChainID != 1 || chains[1].ChainID != 137 {
		t.Fatalf("config order not preserved: %+v", chains)
	}
	if chains[1].NativeDecimals != 18 {
		t.Fatalf("unset native decimals must default to 18, got %d", chains[1].NativeDecimals)
	}
}

func TestMulticallAddress(t *testing.T) {
	r := newTestRegistry()

	addr, ok := r.MulticallAddress("ethereum")
	if !ok {
		t.Fatal("expected a multicall address for ethereum")
	}
	if addr != common.HexToAddress("0x5BA1e12693Dc8F9c48aAD8770482f4739bEeD696") {
		t.Fatalf("unexpected multicall address %s", addr.Hex())
	}

	if _, ok := r.MulticallAddress("poly"); ok {
		t.Fatal("chain without a configured helper must report absence")
	}
}

func TestIsSuppressedIgnoresCase(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		chain    string
		address  string
		expected bool
	}{
		{"ethereum", "0x8aaa5e259f74c8114e0a471d9f2adfc66bfe09ed", true},
		{"ETHEREUM", "0x8AAA5E259F74C8114E0A471D9F2ADFC66BFE09ED", true},
		{"ethereum", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", false},
		{"poly", "0x8aaa5e259f74c8114e0a471d9f2adfc66bfe09ed", false},
	}
	for _, tt := range tests {
		if got := r.IsSuppressed(tt.chain, tt.address); got != tt.expected {
			t.Errorf("IsSuppressed(%q, %q) = %v, expected %v", tt.chain, tt.address, got, tt.expected)
		}
	}
}
