package domain

import "github.com/ethereum/go-ethereum/common"

// Result is what a traced execution reports after the host has finished.
type Result struct {
	// Steps and Calls are the inspector counters read after execution.
	Steps uint64 `json:"steps"`
	Calls uint64 `json:"calls"`

	// ReturnData is the output of the top-level frame.
	ReturnData []byte `json:"return_data,omitempty"`

	// GasUsed is the gas consumed by the top-level frame, when the host reports it.
	GasUsed uint64 `json:"gas_used,omitempty"`

	// Contract is the created address for deployments.
	Contract *common.Address `json:"contract,omitempty"`

	// Err is the execution failure (revert, out of gas, ...). A failed
	// execution is still a traced execution: the counters stay valid.
	Err error `json:"-"`
}

// Failed reports whether the host rejected or reverted the execution.
func (r *Result) Failed() bool {
	return r != nil && r.Err != nil
}
