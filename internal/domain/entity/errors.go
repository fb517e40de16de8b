package entity

import "fmt"

// ChainQueryError is raised when a logical call failed on every endpoint
// of a chain across all retry passes.
type ChainQueryError struct {
	Chain    string
	Address  string
	Method   string
	Args     []interface{}
	Attempts int
	Cause    error
}

func (e *ChainQueryError) Error() string {
	return fmt.Sprintf("chain query %s.%s on %s failed after %d attempts (args %v): %v",
		e.Address, e.Method, e.Chain, e.Attempts, e.Args, e.Cause)
}

func (e *ChainQueryError) Unwrap() error { return e.Cause }

// BatchQueryError is raised when the multicall helper invocation itself
// failed. This is structural (bad call shape, unreachable helper) and is
// never retried; the whole batch aborts.
type BatchQueryError struct {
	Chain string
	Calls int
	Cause error
}

func (e *BatchQueryError) Error() string {
	return fmt.Sprintf("batch query of %d calls on %s failed: %v", e.Calls, e.Chain, e.Cause)
}

func (e *BatchQueryError) Unwrap() error { return e.Cause }

// ScanError records a failure inside one holdings-discovery branch.
// Branches never abort the scan; their errors are collected here.
type ScanError struct {
	Wallet  string `json:"wallet"`
	Chain   string `json:"chain"`
	Project string `json:"project"`
	Message string `json:"message"`
}
