package query

import (
	"context"
	"fmt"
	"math/big"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/config"
	"wallet_scanner/internal/domain/entity"
	"wallet_scanner/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultRetryLimit = 3

// callState is the retry cursor of one logical call in progress.
// It is owned by that call alone; no retry state is shared across
// concurrent calls.
type callState struct {
	endpointIndex int
	passCount     int
}

// advance moves the cursor to the next endpoint, counting a pass when
// it wraps past the end of the pool.
func (s *callState) advance(numEndpoints int) {
	s.endpointIndex++
	if s.endpointIndex >= numEndpoints {
		s.endpointIndex = 0
		s.passCount++
	}
}

// Executor implements port.QueryExecutor: one logical contract call,
// retried sequentially across the chain's endpoint pool. Retries are
// never concurrent within a call; each attempt observes the failure of
// the previous one before choosing the next endpoint.
type Executor struct {
	transport  port.RPCTransport
	registry   port.ChainRegistry
	retryLimit int
	limiters   map[string]*rate.Limiter
	logger     *zap.Logger
}

// NewExecutor builds the executor with per-chain rate limiters from the
// configuration. A chain without a configured rate runs unthrottled.
func NewExecutor(transport port.RPCTransport, registry port.ChainRegistry, cfg *config.Config, logger *zap.Logger) *Executor {
	retryLimit := cfg.Scanner.RetryLimit
	if retryLimit <= 0 {
		retryLimit = defaultRetryLimit
	}

	limiters := make(map[string]*rate.Limiter)
	for _, node := range cfg.Chains {
		if node.LimiterRate > 0 {
			burst := node.LimiterBurst
			if burst <= 0 {
				burst = 1
			}
			limiters[node.Identifier] = rate.NewLimiter(rate.Limit(node.LimiterRate), burst)
		}
	}

	return &Executor{
		transport:  transport,
		registry:   registry,
		retryLimit: retryLimit,
		limiters:   limiters,
		logger:     logger.Named("QueryExecutor"),
	}
}

// Query issues one logical contract call. On exhaustion of all
// endpoints across all passes it returns a ChainQueryError, unless the
// (chain, contract) pair is suppressed, in which case it resolves to
// (nil, nil) silently.
func (e *Executor) Query(ctx context.Context, chain entity.Chain, contract common.Address,
	contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call data: %w", method, err)
	}

	raw, attempts, err := e.run(ctx, chain, func(endpoint string) ([]byte, error) {
		return e.transport.Call(ctx, endpoint, contract, data)
	})
	if err != nil {
		if e.registry.IsSuppressed(chain.Identifier, contract.Hex()) {
			metrics.QueriesSuppressed.WithLabelValues(chain.Identifier).Inc()
			e.logger.Debug("Suppressed contract exhausted retries, resolving to absent",
				zap.String("chain", chain.Identifier),
				zap.String("contract", contract.Hex()),
				zap.String("method", method))
			return nil, nil
		}
		return nil, &entity.ChainQueryError{
			Chain:    chain.Identifier,
			Address:  contract.Hex(),
			Method:   method,
			Args:     args,
			Attempts: attempts,
			Cause:    err,
		}
	}

	values, err := contractABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result from %s on %s: %w",
			method, contract.Hex(), chain.Identifier, err)
	}
	return values, nil
}

// NativeBalance fetches the native currency balance of an account
// through the same failover loop.
func (e *Executor) NativeBalance(ctx context.Context, chain entity.Chain, account common.Address) (*big.Int, error) {
	var balance *big.Int
	_, attempts, err := e.run(ctx, chain, func(endpoint string) ([]byte, error) {
		b, err := e.transport.BalanceAt(ctx, endpoint, account)
		if err != nil {
			return nil, err
		}
		balance = b
		return nil, nil
	})
	if err != nil {
		return nil, &entity.ChainQueryError{
			Chain:    chain.Identifier,
			Address:  account.Hex(),
			Method:   "eth_getBalance",
			Attempts: attempts,
			Cause:    err,
		}
	}
	return balance, nil
}

// run drives the retry loop: attempt at the cursor, advance on failure,
// stop on first success or once passCount reaches the retry limit.
// Worst case attempts = len(endpoints) * retryLimit.
func (e *Executor) run(ctx context.Context, chain entity.Chain, attempt func(endpoint string) ([]byte, error)) ([]byte, int, error) {
	limiter := e.limiters[chain.Identifier]
	state := callState{}
	attempts := 0
	var lastErr error

	for state.passCount < e.retryLimit {
		if err := ctx.Err(); err != nil {
			return nil, attempts, err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, attempts, err
			}
		}

		endpoint := chain.Endpoints[state.endpointIndex]
		attempts++
		raw, err := attempt(endpoint)
		if err == nil {
			metrics.QueryAttempts.WithLabelValues(chain.Identifier, "ok").Inc()
			return raw, attempts, nil
		}

		metrics.QueryAttempts.WithLabelValues(chain.Identifier, "error").Inc()
		e.logger.Debug("Endpoint attempt failed, advancing cursor",
			zap.String("chain", chain.Identifier),
			zap.String("endpoint", endpoint),
			zap.Int("pass", state.passCount),
			zap.Error(err))
		lastErr = err
		state.advance(len(chain.Endpoints))
	}

	metrics.QueriesExhausted.WithLabelValues(chain.Identifier).Inc()
	return nil, attempts, lastErr
}
