package query

import (
	"context"
	"errors"
	"fmt"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"
	"wallet_scanner/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// BatchClient implements port.BatchCaller on the chain's multicall
// helper contract. The whole call set travels in one eth_call against
// the FIRST endpoint of the pool: a batch failure is structural, not
// transient, so there is no failover at this layer.
type BatchClient struct {
	transport port.RPCTransport
	registry  port.ChainRegistry
	logger    *zap.Logger
}

// NewBatchClient creates the batch builder and demultiplexer.
func NewBatchClient(transport port.RPCTransport, registry port.ChainRegistry, logger *zap.Logger) *BatchClient {
	return &BatchClient{
		transport: transport,
		registry:  registry,
		logger:    logger.Named("BatchClient"),
	}
}

// multicallUnit is one packed call inside a batch, paired with the
// bookkeeping needed to demultiplex its outcome.
type multicallUnit struct {
	target common.Address
	ref    string
	method string
	data   []byte
}

// multicallOutcome mirrors the helper contract's per-call return tuple.
type multicallOutcome struct {
	Success    bool   `json:"success"`
	ReturnData []byte `json:"returnData"`
}

// CallOneMethodManyContracts applies the same method and arguments to
// every target. The result maps each address whose call succeeded to
// its decoded values; failed targets are absent, never zeroed.
func (b *BatchClient) CallOneMethodManyContracts(ctx context.Context, chain entity.Chain, contractABI abi.ABI,
	method string, args []interface{}, targets []common.Address) (map[common.Address][]interface{}, error) {

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, &entity.BatchQueryError{
			Chain: chain.Identifier,
			Calls: len(targets),
			Cause: fmt.Errorf("failed to pack %s call data: %w", method, err),
		}
	}

	units := make([]multicallUnit, 0, len(targets))
	for _, target := range targets {
		units = append(units, multicallUnit{target: target, ref: target.Hex(), method: method, data: data})
	}

	outcomes, err := b.tryAggregate(ctx, chain, units)
	if err != nil {
		return nil, err
	}

	result := make(map[common.Address][]interface{}, len(targets))
	for i, outcome := range outcomes {
		values, ok := b.decodeOutcome(chain, contractABI, units[i], outcome)
		if !ok {
			continue
		}
		result[units[i].target] = values
	}
	return result, nil
}

// CallManyMethodsOneContract issues the given calls against one
// contract and maps each caller reference to its decoded values.
func (b *BatchClient) CallManyMethodsOneContract(ctx context.Context, chain entity.Chain, target common.Address,
	contractABI abi.ABI, calls []entity.MethodCall) (entity.CallResult, error) {

	units := make([]multicallUnit, 0, len(calls))
	for _, call := range calls {
		data, err := contractABI.Pack(call.Method, call.Args...)
		if err != nil {
			return nil, &entity.BatchQueryError{
				Chain: chain.Identifier,
				Calls: len(calls),
				Cause: fmt.Errorf("failed to pack %s call data: %w", call.Method, err),
			}
		}
		units = append(units, multicallUnit{target: target, ref: call.Ref, method: call.Method, data: data})
	}

	outcomes, err := b.tryAggregate(ctx, chain, units)
	if err != nil {
		return nil, err
	}

	result := make(entity.CallResult, len(calls))
	for i, outcome := range outcomes {
		values, ok := b.decodeOutcome(chain, contractABI, units[i], outcome)
		if !ok {
			continue
		}
		result[units[i].ref] = values
	}
	return result, nil
}

// CallManyMethodsManyContracts issues every call against every target
// and returns a two-level mapping address -> reference -> values.
func (b *BatchClient) CallManyMethodsManyContracts(ctx context.Context, chain entity.Chain, contractABI abi.ABI,
	calls []entity.MethodCall, targets []common.Address) (map[common.Address]entity.CallResult, error) {

	units := make([]multicallUnit, 0, len(calls)*len(targets))
	for _, call := range calls {
		data, err := contractABI.Pack(call.Method, call.Args...)
		if err != nil {
			return nil, &entity.BatchQueryError{
				Chain: chain.Identifier,
				Calls: len(calls) * len(targets),
				Cause: fmt.Errorf("failed to pack %s call data: %w", call.Method, err),
			}
		}
		for _, target := range targets {
			units = append(units, multicallUnit{target: target, ref: call.Ref, method: call.Method, data: data})
		}
	}

	outcomes, err := b.tryAggregate(ctx, chain, units)
	if err != nil {
		return nil, err
	}

	result := make(map[common.Address]entity.CallResult, len(targets))
	for i, outcome := range outcomes {
		values, ok := b.decodeOutcome(chain, contractABI, units[i], outcome)
		if !ok {
			continue
		}
		perContract, exists := result[units[i].target]
		if !exists {
			perContract = make(entity.CallResult, len(calls))
			result[units[i].target] = perContract
		}
		perContract[units[i].ref] = values
	}
	return result, nil
}

// tryAggregate executes the packed call set in one round trip through
// the helper contract. It fails as a whole only when the helper
// invocation itself fails.
func (b *BatchClient) tryAggregate(ctx context.Context, chain entity.Chain, units []multicallUnit) ([]multicallOutcome, error) {
	if len(units) == 0 {
		return nil, nil
	}

	helper, ok := b.registry.MulticallAddress(chain.Identifier)
	if !ok {
		return nil, &entity.BatchQueryError{
			Chain: chain.Identifier,
			Calls: len(units),
			Cause: errors.New("no multicall helper contract configured"),
		}
	}

	type multicallCall struct {
		Target   common.Address
		CallData []byte
	}
	callSet := make([]multicallCall, len(units))
	for i, unit := range units {
		callSet[i] = multicallCall{Target: unit.target, CallData: unit.data}
	}

	mcABI := parsedMulticallABI()
	data, err := mcABI.Pack("tryAggregate", false, callSet)
	if err != nil {
		return nil, &entity.BatchQueryError{
			Chain: chain.Identifier,
			Calls: len(units),
			Cause: fmt.Errorf("failed to pack tryAggregate call: %w", err),
		}
	}

	metrics.BatchCallSize.WithLabelValues(chain.Identifier).Observe(float64(len(units)))

	raw, err := b.transport.Call(ctx, chain.Endpoints[0], helper, data)
	if err != nil {
		return nil, &entity.BatchQueryError{Chain: chain.Identifier, Calls: len(units), Cause: err}
	}

	unpacked, err := mcABI.Unpack("tryAggregate", raw)
	if err != nil {
		return nil, &entity.BatchQueryError{
			Chain: chain.Identifier,
			Calls: len(units),
			Cause: fmt.Errorf("failed to unpack tryAggregate result: %w", err),
		}
	}
	if len(unpacked) != 1 {
		return nil, &entity.BatchQueryError{
			Chain: chain.Identifier,
			Calls: len(units),
			Cause: fmt.Errorf("unexpected tryAggregate output arity %d", len(unpacked)),
		}
	}

	tuples, ok := unpacked[0].([]struct {
		Success    bool   `json:"success"`
		ReturnData []byte `json:"returnData"`
	})
	if !ok {
		return nil, &entity.BatchQueryError{
			Chain: chain.Identifier,
			Calls: len(units),
			Cause: fmt.Errorf("unexpected tryAggregate output type %T", unpacked[0]),
		}
	}
	if len(tuples) != len(units) {
		return nil, &entity.BatchQueryError{
			Chain: chain.Identifier,
			Calls: len(units),
			Cause: fmt.Errorf("helper returned %d outcomes for %d calls", len(tuples), len(units)),
		}
	}

	outcomes := make([]multicallOutcome, len(tuples))
	for i, t := range tuples {
		outcomes[i] = multicallOutcome{Success: t.Success, ReturnData: t.ReturnData}
	}
	return outcomes, nil
}

// decodeOutcome turns one per-call outcome into decoded values. Any
// per-call failure, including an undecodable return, drops the call
// from the result mapping; absence is the only failure signal here.
func (b *BatchClient) decodeOutcome(chain entity.Chain, contractABI abi.ABI, unit multicallUnit, outcome multicallOutcome) ([]interface{}, bool) {
	if !outcome.Success || len(outcome.ReturnData) == 0 {
		metrics.BatchPartialFailures.WithLabelValues(chain.Identifier).Inc()
		b.logger.Debug("Call failed inside batch, omitting reference",
			zap.String("chain", chain.Identifier),
			zap.String("target", unit.target.Hex()),
			zap.String("method", unit.method),
			zap.String("ref", unit.ref))
		return nil, false
	}
	values, err := contractABI.Unpack(unit.method, outcome.ReturnData)
	if err != nil {
		metrics.BatchPartialFailures.WithLabelValues(chain.Identifier).Inc()
		b.logger.Debug("Failed to decode batched call return, omitting reference",
			zap.String("chain", chain.Identifier),
			zap.String("target", unit.target.Hex()),
			zap.String("method", unit.method),
			zap.String("ref", unit.ref),
			zap.Error(err))
		return nil, false
	}
	return values, true
}
