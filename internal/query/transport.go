package query

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"wallet_scanner/internal/app/port"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"go.uber.org/zap"
)

// gethTransport implements port.RPCTransport on go-ethereum's rpc
// client. Clients are cached per endpoint URL to avoid re-dialing; each
// request itself is stateless.
type gethTransport struct {
	mu          sync.Mutex
	clients     map[string]*rpc.Client
	callTimeout time.Duration
	logger      *zap.Logger
}

// NewGethTransport creates the production RPC transport. callTimeout
// bounds every individual request.
func NewGethTransport(callTimeout time.Duration, logger *zap.Logger) port.RPCTransport {
	return &gethTransport{
		clients:     make(map[string]*rpc.Client),
		callTimeout: callTimeout,
		logger:      logger.Named("RPCTransport"),
	}
}

func (t *gethTransport) client(endpoint string) (*rpc.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.clients[endpoint]; ok {
		return c, nil
	}
	c, err := rpc.Dial(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC endpoint %s: %w", endpoint, err)
	}
	t.clients[endpoint] = c
	return c, nil
}

// Call performs a single eth_call against one endpoint.
func (t *gethTransport) Call(ctx context.Context, endpoint string, to common.Address, data []byte) ([]byte, error) {
	c, err := t.client(endpoint)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, t.callTimeout)
	defer cancel()

	callArgs := map[string]interface{}{
		"to":   to,
		"data": hexutil.Bytes(data),
	}
	var out hexutil.Bytes
	if err := c.CallContext(callCtx, &out, "eth_call", callArgs, "latest"); err != nil {
		t.logger.Debug("eth_call failed",
			zap.String("endpoint", endpoint),
			zap.String("to", to.Hex()),
			zap.Error(err))
		return nil, err
	}
	return out, nil
}

// BalanceAt performs a single eth_getBalance against one endpoint.
func (t *gethTransport) BalanceAt(ctx context.Context, endpoint string, account common.Address) (*big.Int, error) {
	c, err := t.client(endpoint)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, t.callTimeout)
	defer cancel()

	var out hexutil.Big
	if err := c.CallContext(callCtx, &out, "eth_getBalance", account, "latest"); err != nil {
		t.logger.Debug("eth_getBalance failed",
			zap.String("endpoint", endpoint),
			zap.String("account", account.Hex()),
			zap.Error(err))
		return nil, err
	}
	return (*big.Int)(&out), nil
}
