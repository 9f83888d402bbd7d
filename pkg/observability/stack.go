package observability

import (
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// Stack combines multiple inspectors into a single one.
// Inspectors are driven in the order they were added.
type Stack struct {
	inspectors []ports.Inspector
}

var _ ports.Inspector = (*Stack)(nil)

// NewStack creates a stack over the given inspectors. Nil entries are skipped.
func NewStack(inspectors ...ports.Inspector) *Stack {
	s := &Stack{inspectors: make([]ports.Inspector, 0, len(inspectors))}
	for _, insp := range inspectors {
		s.Add(insp)
	}
	return s
}

// Add appends an inspector to the stack.
func (s *Stack) Add(insp ports.Inspector) {
	if insp == nil {
		return
	}
	s.inspectors = append(s.inspectors, insp)
}

// Len returns the number of stacked inspectors.
func (s *Stack) Len() int {
	return len(s.inspectors)
}

func (s *Stack) OnInterpreterInit(frame *domain.Frame) {
	for _, insp := range s.inspectors {
		insp.OnInterpreterInit(frame)
	}
}

func (s *Stack) OnStep(frame *domain.Frame) {
	for _, insp := range s.inspectors {
		insp.OnStep(frame)
	}
}

func (s *Stack) OnStepEnd(frame *domain.Frame) {
	for _, insp := range s.inspectors {
		insp.OnStepEnd(frame)
	}
}

func (s *Stack) OnLog(frame *domain.Frame, log *types.Log) {
	for _, insp := range s.inspectors {
		insp.OnLog(frame, log)
	}
}

// OnCall reaches every inspector, so each one sees the matching OnCallEnd.
// The first non-nil override is returned.
func (s *Stack) OnCall(inputs *domain.CallInputs) *domain.CallOutcome {
	var override *domain.CallOutcome
	for _, insp := range s.inspectors {
		if outcome := insp.OnCall(inputs); outcome != nil && override == nil {
			override = outcome
		}
	}
	return override
}

// OnCallEnd threads the outcome through every inspector in order.
func (s *Stack) OnCallEnd(inputs *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome {
	for _, insp := range s.inspectors {
		outcome = insp.OnCallEnd(inputs, outcome)
	}
	return outcome
}

func (s *Stack) OnCreate(inputs *domain.CreateInputs) *domain.CreateOutcome {
	var override *domain.CreateOutcome
	for _, insp := range s.inspectors {
		if outcome := insp.OnCreate(inputs); outcome != nil && override == nil {
			override = outcome
		}
	}
	return override
}

func (s *Stack) OnCreateEnd(inputs *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome {
	for _, insp := range s.inspectors {
		outcome = insp.OnCreateEnd(inputs, outcome)
	}
	return outcome
}

func (s *Stack) OnSelfDestruct(contract, beneficiary common.Address, value *uint256.Int) {
	for _, insp := range s.inspectors {
		insp.OnSelfDestruct(contract, beneficiary, value)
	}
}
