package port

import (
	"context"
	"math/big"

	"wallet_scanner/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// RPCTransport issues one stateless read-only request against one
// endpoint. Transport-level timeouts live here, not in the executor.
type RPCTransport interface {
	// Call performs eth_call of data against the contract at to.
	Call(ctx context.Context, endpoint string, to common.Address, data []byte) ([]byte, error)

	// BalanceAt returns the native currency balance of an account.
	BalanceAt(ctx context.Context, endpoint string, account common.Address) (*big.Int, error)
}

// QueryExecutor issues one logical contract call with sequential
// failover across the chain's endpoint pool. A suppressed target that
// exhausts its retries resolves to (nil, nil) instead of an error.
type QueryExecutor interface {
	Query(ctx context.Context, chain entity.Chain, contract common.Address,
		contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error)

	// NativeBalance runs eth_getBalance through the same failover loop.
	NativeBalance(ctx context.Context, chain entity.Chain, account common.Address) (*big.Int, error)
}

// BatchCaller folds many logical calls into one multicall round trip
// and demultiplexes the per-call results. A reference missing from a
// returned mapping means that call failed; it is never a zero value.
type BatchCaller interface {
	CallOneMethodManyContracts(ctx context.Context, chain entity.Chain, contractABI abi.ABI,
		method string, args []interface{}, targets []common.Address) (map[common.Address][]interface{}, error)

	CallManyMethodsOneContract(ctx context.Context, chain entity.Chain, target common.Address,
		contractABI abi.ABI, calls []entity.MethodCall) (entity.CallResult, error)

	CallManyMethodsManyContracts(ctx context.Context, chain entity.Chain, contractABI abi.ABI,
		calls []entity.MethodCall, targets []common.Address) (map[common.Address]entity.CallResult, error)
}
