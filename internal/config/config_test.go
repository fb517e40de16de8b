package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
chains:
  - identifier: ethereum
    name: Ethereum Mainnet
    chainId: 1
    endpoints:
      - https://rpc-a.invalid
    multicallAddress: "0x5BA1e12693Dc8F9c48aAD8770482f4739bEeD696"
    nativeSymbol: ETH
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Scanner.RetryLimit != 3 {
		t.Errorf("expected default retryLimit 3, got %d", cfg.Scanner.RetryLimit)
	}
	if cfg.Scanner.RPCCallTimeoutMs != 10000 {
		t.Errorf("expected default rpcCallTimeoutMs 10000, got %d", cfg.Scanner.RPCCallTimeoutMs)
	}
	if cfg.Scanner.MaxConcurrentBranches != 8 {
		t.Errorf("expected default maxConcurrentBranches 8, got %d", cfg.Scanner.MaxConcurrentBranches)
	}
	if cfg.DEXScreener.BaseURL != "https://api.dexscreener.com" {
		t.Errorf("expected default DEX Screener base URL, got %q", cfg.DEXScreener.BaseURL)
	}
	if cfg.PriceCache.TTLMinutes != 15 {
		t.Errorf("expected default price cache TTL 15 minutes, got %d", cfg.PriceCache.TTLMinutes)
	}
}

func TestLoadConfigParsesChainSection(t *testing.T) {
	path := writeConfig(t, `
scanner:
  retryLimit: 5
chains:
  - identifier: poly
    name: Polygon
    chainId: 137
    endpoints:
      - https://rpc-a.invalid
      - https://rpc-b.invalid
    multicallAddress: "0x275617327c958bD06b5D6b871E7f491D76113dd8"
    nativeSymbol: MATIC
    wrappedNativeAddress: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"
    limiterRate: 10
    limiterBurst: 5
    suppressedAddresses:
      - "0x8aaa5e259f74c8114e0a471d9f2adfc66bfe09ed"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Scanner.RetryLimit != 5 {
		t.Errorf("explicit retryLimit not honored, got %d", cfg.Scanner.RetryLimit)
	}
	if len(cfg.Chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(cfg.Chains))
	}
	node := cfg.Chains[0]
	if len(node.Endpoints) != 2 {
		t.Errorf("expected 2 endpoints, got %d", len(node.Endpoints))
	}
	if node.WrappedNative != "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270" {
		t.Errorf("wrapped native address not parsed, got %q", node.WrappedNative)
	}
	if node.LimiterRate != 10 || node.LimiterBurst != 5 {
		t.Errorf("rate limiter settings not parsed: rate=%v burst=%d", node.LimiterRate, node.LimiterBurst)
	}
	if len(node.SuppressedAddresses) != 1 {
		t.Errorf("suppression list not parsed: %v", node.SuppressedAddresses)
	}

	chain := node.ChainEntity()
	if chain.NativeDecimals != 18 {
		t.Errorf("unset native decimals must default to 18, got %d", chain.NativeDecimals)
	}
}

func TestLoadConfigRejectsChainWithoutEndpoints(t *testing.T) {
	path := writeConfig(t, `
chains:
  - identifier: ethereum
    chainId: 1
    nativeSymbol: ETH
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for a chain with no endpoints")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
