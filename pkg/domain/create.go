package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// CreateInputs describes a contract creation the host is about to perform.
type CreateInputs struct {
	// Kind is CREATE or CREATE2.
	Kind vm.OpCode

	Depth    int
	Caller   common.Address
	InitCode []byte
	Gas      uint64

	// Value is the endowment in wei. Nil means zero.
	Value *uint256.Int
}

// CreateOutcome is the result of a contract creation.
type CreateOutcome struct {
	Result InstructionResult

	// Address is the address of the new contract. It is set even when the
	// creation failed, since the host derives it before running the init code.
	Address common.Address

	// Output is the deployed runtime code on success, or the revert data.
	Output  []byte
	GasUsed uint64
}

// Success reports whether the creation succeeded.
func (o CreateOutcome) Success() bool {
	return o.Result.IsOk()
}
