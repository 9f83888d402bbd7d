package tracehook

import (
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// topLevel keeps the gas used by the outermost frame. It sits last in the stack.
type topLevel struct {
	gasUsed uint64
}

func (t *topLevel) OnInterpreterInit(*domain.Frame) {}
func (t *topLevel) OnStep(*domain.Frame)            {}
func (t *topLevel) OnStepEnd(*domain.Frame)         {}
func (t *topLevel) OnLog(*domain.Frame, *types.Log) {}

func (t *topLevel) OnCall(*domain.CallInputs) *domain.CallOutcome { return nil }

func (t *topLevel) OnCallEnd(inputs *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome {
	if inputs != nil && inputs.Depth == 0 {
		t.gasUsed = outcome.GasUsed
	}
	return outcome
}

func (t *topLevel) OnCreate(*domain.CreateInputs) *domain.CreateOutcome { return nil }

func (t *topLevel) OnCreateEnd(inputs *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome {
	if inputs != nil && inputs.Depth == 0 {
		t.gasUsed = outcome.GasUsed
	}
	return outcome
}

func (t *topLevel) OnSelfDestruct(common.Address, common.Address, *uint256.Int) {}
