package entity

import "github.com/ethereum/go-ethereum/common"

// MethodCall describes one logical contract call inside a batch:
// a method with its arguments plus the caller-supplied reference used
// to find the decoded values again in the demultiplexed result.
// Constructed per request, never mutated after creation.
type MethodCall struct {
	Ref    string
	Method string
	Args   []interface{}
}

// LogicalCall is a fully addressed contract call: target plus method.
type LogicalCall struct {
	Target common.Address
	MethodCall
}

// CallResult maps a caller-supplied reference to the decoded return
// values of the corresponding call. A missing reference means that call
// failed inside the batch and was excluded, not that it returned zero.
type CallResult map[string][]interface{}
