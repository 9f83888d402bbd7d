package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

// Frame is the view of the running interpreter handed to the per-instruction hooks.
// Hooks must treat it as read-only and must not retain it past the call.
type Frame struct {
	// Depth is the call depth of the executing code (0 for the transaction's own frame).
	Depth int

	// PC is the program counter of the current instruction.
	PC uint64

	// Op is the instruction about to run (OnStep) or that just ran (OnStepEnd).
	Op vm.OpCode

	// Gas is the gas remaining before the instruction is charged.
	Gas uint64

	// Cost is the static gas cost of the instruction, when the host knows it.
	Cost uint64

	// Address is the account whose code is executing.
	Address common.Address

	// Caller is the account that invoked the executing code.
	Caller common.Address
}

// CurrentOpcode returns the instruction of the frame.
// A nil frame reports STOP.
func (f *Frame) CurrentOpcode() vm.OpCode {
	if f == nil {
		return vm.STOP
	}
	return f.Op
}
