package observability_test

import (
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// recorder appends "<name>:<hook>" to a shared journal and can be told to override.
type recorder struct {
	name    string
	journal *[]string

	callOverride   *domain.CallOutcome
	createOverride *domain.CreateOutcome
	gasBump        uint64
}

func (r *recorder) note(hook domain.Hook) {
	*r.journal = append(*r.journal, r.name+":"+string(hook))
}

func (r *recorder) OnInterpreterInit(*domain.Frame) { r.note(domain.HookInterpreterInit) }
func (r *recorder) OnStep(*domain.Frame)            { r.note(domain.HookStep) }
func (r *recorder) OnStepEnd(*domain.Frame)         { r.note(domain.HookStepEnd) }
func (r *recorder) OnLog(*domain.Frame, *types.Log) { r.note(domain.HookLog) }

func (r *recorder) OnCall(*domain.CallInputs) *domain.CallOutcome {
	r.note(domain.HookCall)
	return r.callOverride
}

func (r *recorder) OnCallEnd(_ *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome {
	r.note(domain.HookCallEnd)
	outcome.GasUsed += r.gasBump
	return outcome
}

func (r *recorder) OnCreate(*domain.CreateInputs) *domain.CreateOutcome {
	r.note(domain.HookCreate)
	return r.createOverride
}

func (r *recorder) OnCreateEnd(_ *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome {
	r.note(domain.HookCreateEnd)
	outcome.GasUsed += r.gasBump
	return outcome
}

func (r *recorder) OnSelfDestruct(common.Address, common.Address, *uint256.Int) {
	r.note(domain.HookSelfDestruct)
}
