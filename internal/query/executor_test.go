package query

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"wallet_scanner/internal/config"
	"wallet_scanner/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type fakeRegistry struct {
	chains     []entity.Chain
	multicall  map[string]common.Address
	suppressed map[string]bool
}

func (r *fakeRegistry) Chains() []entity.Chain { return r.chains }

func (r *fakeRegistry) ChainByIdentifier(identifier string) (entity.Chain, bool) {
	for _, c := range r.chains {
		if strings.EqualFold(c.Identifier, identifier) {
			return c, true
		}
	}
	return entity.Chain{}, false
}

func (r *fakeRegistry) MulticallAddress(chain string) (common.Address, bool) {
	addr, ok := r.multicall[strings.ToLower(chain)]
	return addr, ok
}

func (r *fakeRegistry) IsSuppressed(chain, address string) bool {
	return r.suppressed[strings.ToLower(chain)+"/"+strings.ToLower(address)]
}

// scriptedTransport counts attempts and answers each one through the
// respond callback.
type scriptedTransport struct {
	attempts  int
	endpoints []string
	respond   func(attempt int, endpoint string) ([]byte, error)
}

func (t *scriptedTransport) Call(_ context.Context, endpoint string, _ common.Address, _ []byte) ([]byte, error) {
	t.attempts++
	t.endpoints = append(t.endpoints, endpoint)
	return t.respond(t.attempts, endpoint)
}

func (t *scriptedTransport) BalanceAt(_ context.Context, endpoint string, _ common.Address) (*big.Int, error) {
	t.attempts++
	t.endpoints = append(t.endpoints, endpoint)
	raw, err := t.respond(t.attempts, endpoint)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

func testChain(identifier string, endpoints ...string) entity.Chain {
	return entity.Chain{
		Identifier:     identifier,
		Name:           identifier,
		Endpoints:      endpoints,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	}
}

func newTestExecutor(transport *scriptedTransport, registry *fakeRegistry, retryLimit int) *Executor {
	cfg := &config.Config{}
	cfg.Scanner.RetryLimit = retryLimit
	return NewExecutor(transport, registry, cfg, zap.NewNop())
}

func packDecimals(t *testing.T, value uint8) []byte {
	t.Helper()
	out, err := ERC20ABI().Methods["decimals"].Outputs.Pack(value)
	if err != nil {
		t.Fatalf("failed to pack decimals output: %v", err)
	}
	return out
}

func TestQueryFailsOverToNextEndpoint(t *testing.T) {
	chain := testChain("ethereum", "ep0", "ep1", "ep2")
	transport := &scriptedTransport{respond: func(attempt int, _ string) ([]byte, error) {
		if attempt < 3 {
			return nil, errors.New("connection refused")
		}
		return packDecimals(t, 18), nil
	}}
	exec := newTestExecutor(transport, &fakeRegistry{}, 3)

	values, err := exec.Query(context.Background(), chain, common.HexToAddress("0x1"), ERC20ABI(), "decimals")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if transport.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", transport.attempts)
	}
	if got := transport.endpoints; got[0] != "ep0" || got[1] != "ep1" || got[2] != "ep2" {
		t.Fatalf("unexpected endpoint order: %v", got)
	}
	if decimals, ok := values[0].(uint8); !ok || decimals != 18 {
		t.Fatalf("expected decimals 18, got %v", values[0])
	}
}

func TestQueryExhaustsEndpointsTimesRetryLimit(t *testing.T) {
	chain := testChain("ethereum", "ep0", "ep1")
	transport := &scriptedTransport{respond: func(int, string) ([]byte, error) {
		return nil, errors.New("always down")
	}}
	exec := newTestExecutor(transport, &fakeRegistry{}, 3)

	_, err := exec.Query(context.Background(), chain, common.HexToAddress("0x1"), ERC20ABI(), "decimals")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var chainErr *entity.ChainQueryError
	if !errors.As(err, &chainErr) {
		t.Fatalf("expected ChainQueryError, got %T", err)
	}
	if transport.attempts != 6 {
		t.Fatalf("expected 2x3=6 attempts, got %d", transport.attempts)
	}
	if chainErr.Attempts != 6 {
		t.Fatalf("expected Attempts=6 in error, got %d", chainErr.Attempts)
	}
	if chainErr.Chain != "ethereum" || chainErr.Method != "decimals" {
		t.Fatalf("error missing context: %+v", chainErr)
	}
}

func TestQuerySuppressedContractResolvesToAbsent(t *testing.T) {
	const suppressedAddr = "0x8aaa5e259f74c8114e0a471d9f2adfc66bfe09ed"
	chain := testChain("poly", "ep0", "ep1")
	transport := &scriptedTransport{respond: func(int, string) ([]byte, error) {
		return nil, errors.New("execution reverted")
	}}
	registry := &fakeRegistry{suppressed: map[string]bool{"poly/" + suppressedAddr: true}}
	exec := newTestExecutor(transport, registry, 3)

	values, err := exec.Query(context.Background(), chain, common.HexToAddress(suppressedAddr), ERC20ABI(), "decimals")
	if err != nil {
		t.Fatalf("suppressed contract must not raise, got: %v", err)
	}
	if values != nil {
		t.Fatalf("suppressed contract must resolve to absent, got %v", values)
	}
	if transport.attempts != 6 {
		t.Fatalf("suppression must not short-circuit attempts, expected 6, got %d", transport.attempts)
	}
}

func TestQueryRetriesAreSequentialWithinOnePass(t *testing.T) {
	chain := testChain("ethereum", "ep0", "ep1", "ep2")
	transport := &scriptedTransport{respond: func(int, string) ([]byte, error) {
		return nil, errors.New("down")
	}}
	exec := newTestExecutor(transport, &fakeRegistry{}, 2)

	_, _ = exec.Query(context.Background(), chain, common.HexToAddress("0x1"), ERC20ABI(), "decimals")

	want := []string{"ep0", "ep1", "ep2", "ep0", "ep1", "ep2"}
	if len(transport.endpoints) != len(want) {
		t.Fatalf("expected %d attempts, got %d", len(want), len(transport.endpoints))
	}
	for i, ep := range want {
		if transport.endpoints[i] != ep {
			t.Fatalf("attempt %d hit %s, want %s (full order %v)", i, transport.endpoints[i], ep, transport.endpoints)
		}
	}
}

func TestNativeBalanceUsesFailoverLoop(t *testing.T) {
	chain := testChain("ethereum", "ep0", "ep1")
	balance := big.NewInt(1500000000000000000)
	transport := &scriptedTransport{respond: func(attempt int, _ string) ([]byte, error) {
		if attempt == 1 {
			return nil, errors.New("timeout")
		}
		return balance.Bytes(), nil
	}}
	exec := newTestExecutor(transport, &fakeRegistry{}, 3)

	got, err := exec.NativeBalance(context.Background(), chain, common.HexToAddress("0xabc"))
	if err != nil {
		t.Fatalf("NativeBalance returned error: %v", err)
	}
	if got.Cmp(balance) != 0 {
		t.Fatalf("expected balance %s, got %s", balance, got)
	}
	if transport.attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", transport.attempts)
	}
}
