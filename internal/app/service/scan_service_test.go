package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type stubRegistry struct {
	chains []entity.Chain
}

func (r *stubRegistry) Chains() []entity.Chain { return r.chains }

func (r *stubRegistry) ChainByIdentifier(identifier string) (entity.Chain, bool) {
	for _, chain := range r.chains {
		if strings.EqualFold(chain.Identifier, identifier) {
			return chain, true
		}
	}
	return entity.Chain{}, false
}

func (r *stubRegistry) MulticallAddress(string) (common.Address, bool) {
	return common.Address{}, false
}

func (r *stubRegistry) IsSuppressed(string, string) bool { return false }

type stubAdapter struct {
	chain    string
	project  string
	holdings []entity.Holding
	err      error
}

func (a *stubAdapter) Chain() string   { return a.chain }
func (a *stubAdapter) Project() string { return a.project }

func (a *stubAdapter) DiscoverHoldings(context.Context, string) ([]entity.Holding, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.holdings, nil
}

type stubAdapterRegistry struct {
	byChain map[string][]port.Adapter
}

func (r *stubAdapterRegistry) AdaptersForChain(chain string) []port.Adapter {
	return r.byChain[strings.ToLower(chain)]
}

func fungible(chain, symbol string) entity.FungibleHolding {
	return entity.FungibleHolding{HoldingBase: entity.HoldingBase{
		Kind:     entity.KindFungible,
		Chain:    chain,
		Location: entity.LocationWallet,
		Status:   entity.StatusNone,
		Symbol:   symbol,
		Balance:  decimal.NewFromInt(1),
	}}
}

func symbolSet(holdings []entity.Holding) map[string]bool {
	set := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		set[h.Base().Symbol] = true
	}
	return set
}

func TestScanWalletIsolatesFailingBranch(t *testing.T) {
	registry := &stubRegistry{chains: []entity.Chain{
		{Identifier: "ethereum", Name: "Ethereum Mainnet"},
		{Identifier: "poly", Name: "Polygon"},
	}}
	adapters := &stubAdapterRegistry{byChain: map[string][]port.Adapter{
		"ethereum": {
			&stubAdapter{chain: "ethereum", project: "wallet",
				holdings: []entity.Holding{fungible("ethereum", "USDC"), fungible("ethereum", "WETH")}},
			&stubAdapter{chain: "ethereum", project: "uniswap-v2",
				err: errors.New("rpc endpoints exhausted")},
		},
		"poly": {
			&stubAdapter{chain: "poly", project: "wallet",
				holdings: []entity.Holding{fungible("poly", "WMATIC")}},
		},
	}}

	svc := NewScanService(registry, adapters, 4, zap.NewNop())
	result := svc.ScanWallet(context.Background(), "0xabc", nil)

	symbols := symbolSet(result.Holdings)
	for _, want := range []string{"USDC", "WETH", "WMATIC"} {
		if !symbols[want] {
			t.Fatalf("healthy branch result %q missing from joined holdings: %v", want, symbols)
		}
	}
	if len(result.Holdings) != 3 {
		t.Fatalf("expected 3 holdings from healthy branches, got %d", len(result.Holdings))
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one recorded scan error, got %d", len(result.Errors))
	}
	scanErr := result.Errors[0]
	if scanErr.Chain != "ethereum" || scanErr.Project != "uniswap-v2" {
		t.Fatalf("scan error attributed to wrong branch: %+v", scanErr)
	}
	if scanErr.Message == "" {
		t.Fatal("scan error must carry the branch failure message")
	}
}

func TestScanWalletFiltersToRequestedChains(t *testing.T) {
	registry := &stubRegistry{chains: []entity.Chain{
		{Identifier: "ethereum"},
		{Identifier: "poly"},
	}}
	adapters := &stubAdapterRegistry{byChain: map[string][]port.Adapter{
		"ethereum": {&stubAdapter{chain: "ethereum", project: "wallet",
			holdings: []entity.Holding{fungible("ethereum", "USDC")}}},
		"poly": {&stubAdapter{chain: "poly", project: "wallet",
			holdings: []entity.Holding{fungible("poly", "WMATIC")}}},
	}}

	svc := NewScanService(registry, adapters, 4, zap.NewNop())
	result := svc.ScanWallet(context.Background(), "0xabc", []string{"poly", "POLY", "unknown"})

	if len(result.Holdings) != 1 {
		t.Fatalf("expected only the poly branch to run, got %d holdings", len(result.Holdings))
	}
	if got := result.Holdings[0].Base().Chain; got != "poly" {
		t.Fatalf("expected poly holding, got chain %q", got)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unknown chains are skipped, not errors: %+v", result.Errors)
	}
}

func TestScanWalletAllBranchesFailing(t *testing.T) {
	registry := &stubRegistry{chains: []entity.Chain{{Identifier: "ethereum"}}}
	adapters := &stubAdapterRegistry{byChain: map[string][]port.Adapter{
		"ethereum": {
			&stubAdapter{chain: "ethereum", project: "wallet", err: errors.New("boom")},
			&stubAdapter{chain: "ethereum", project: "aave-v2", err: errors.New("boom")},
		},
	}}

	svc := NewScanService(registry, adapters, 4, zap.NewNop())
	result := svc.ScanWallet(context.Background(), "0xabc", nil)

	if len(result.Holdings) != 0 {
		t.Fatalf("expected no holdings, got %d", len(result.Holdings))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected both branch failures recorded, got %d", len(result.Errors))
	}
	if result.WalletAddress != "0xabc" {
		t.Fatalf("wallet address must be echoed, got %q", result.WalletAddress)
	}
}
