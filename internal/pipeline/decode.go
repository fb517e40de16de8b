package pipeline

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Typed decode helpers for the ABI return shapes the pipeline consumes.
// Decoded batch values arrive as []interface{}; each helper narrows one
// method's return to its static type and reports failure instead of
// trusting the dynamic shape.

func decodeString(values []interface{}) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	s, ok := values[0].(string)
	return s, ok
}

func decodeUint8(values []interface{}) (uint8, bool) {
	if len(values) == 0 {
		return 0, false
	}
	u, ok := values[0].(uint8)
	return u, ok
}

func decodeBigInt(values []interface{}) (*big.Int, bool) {
	if len(values) == 0 {
		return nil, false
	}
	b, ok := values[0].(*big.Int)
	if !ok || b == nil {
		return nil, false
	}
	return b, true
}

func decodeAddress(values []interface{}) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	a, ok := values[0].(common.Address)
	if !ok {
		return "", false
	}
	return a.Hex(), true
}

// pairReserves is the statically-typed view of getReserves().
type pairReserves struct {
	Reserve0 *big.Int
	Reserve1 *big.Int
}

func decodeReserves(values []interface{}) (pairReserves, bool) {
	if len(values) < 2 {
		return pairReserves{}, false
	}
	r0, ok0 := values[0].(*big.Int)
	r1, ok1 := values[1].(*big.Int)
	if !ok0 || !ok1 || r0 == nil || r1 == nil {
		return pairReserves{}, false
	}
	return pairReserves{Reserve0: r0, Reserve1: r1}, true
}
