package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// CallInputs describes a message call the host is about to perform.
type CallInputs struct {
	// Kind is CALL, CALLCODE, DELEGATECALL or STATICCALL.
	Kind vm.OpCode

	Depth  int
	Caller common.Address
	Target common.Address
	Input  []byte
	Gas    uint64

	// Value is the transferred amount in wei. Nil means zero.
	Value *uint256.Int
}

// InstructionResult is the way a call or creation finished.
type InstructionResult struct {
	// Err is the execution error, nil on success.
	Err error

	// Reverted is true when the frame ended with REVERT (Err is then non-nil too).
	Reverted bool
}

// IsOk reports whether the frame finished without error.
func (r InstructionResult) IsOk() bool {
	return r.Err == nil
}

// CallOutcome is the result of a message call, either produced by the host
// or substituted by an inspector.
type CallOutcome struct {
	Result  InstructionResult
	Output  []byte
	GasUsed uint64
}

// Success reports whether the call succeeded.
func (o CallOutcome) Success() bool {
	return o.Result.IsOk()
}
