package ports

import (
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// Inspector is the callback surface an EVM host drives while it executes a transaction.
// Hooks run synchronously on the host's execution goroutine, in execution order.
// Implementations must not retain the pointers they receive past the call and must
// not panic: a failing inspector would abort the host.
type Inspector interface {
	// OnInterpreterInit is called before a frame starts executing code.
	OnInterpreterInit(frame *domain.Frame)

	// OnStep is called before each instruction.
	OnStep(frame *domain.Frame)

	// OnStepEnd is called after each instruction.
	OnStepEnd(frame *domain.Frame)

	// OnLog is called when the executing code emits a log record.
	OnLog(frame *domain.Frame, log *types.Log)

	// OnCall is called before a message call. Returning nil lets the host run the
	// call; a non-nil outcome asks the host to skip it and use the outcome instead.
	OnCall(inputs *domain.CallInputs) *domain.CallOutcome

	// OnCallEnd is called after a message call. The returned outcome replaces the
	// host's; pure observers return it unchanged.
	OnCallEnd(inputs *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome

	// OnCreate is called before a contract creation, with the same override rule as OnCall.
	OnCreate(inputs *domain.CreateInputs) *domain.CreateOutcome

	// OnCreateEnd is called after a contract creation, with the same rule as OnCallEnd.
	OnCreateEnd(inputs *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome

	// OnSelfDestruct is called when contract self-destructs in favour of beneficiary.
	OnSelfDestruct(contract, beneficiary common.Address, value *uint256.Int)
}

// InspectorFactory builds a fresh Inspector for one execution.
type InspectorFactory func() Inspector
