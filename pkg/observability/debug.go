package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// DebugInspector logs every hook at debug level. Stack it next to the real
// inspector to follow an execution in the application log.
type DebugInspector struct {
	logger *slog.Logger
}

var _ ports.Inspector = (*DebugInspector)(nil)

// NewDebugInspector creates a debug inspector writing to logger.
func NewDebugInspector(logger *slog.Logger) *DebugInspector {
	return &DebugInspector{logger: logger}
}

func (d *DebugInspector) enabled() bool {
	return d.logger != nil && d.logger.Enabled(context.Background(), slog.LevelDebug)
}

func (d *DebugInspector) OnInterpreterInit(frame *domain.Frame) {
	if !d.enabled() || frame == nil {
		return
	}
	d.logger.Debug("Interpreter Init", "depth", frame.Depth, "address", frame.Address.Hex())
}

func (d *DebugInspector) OnStep(frame *domain.Frame) {
	if !d.enabled() || frame == nil {
		return
	}
	d.logger.Debug("Step", "pc", frame.PC, "op", frame.Op.String(), "gas", frame.Gas, "depth", frame.Depth)
}

// OnStepEnd is not logged: OnStep already carries the same frame.
func (d *DebugInspector) OnStepEnd(_ *domain.Frame) {}

func (d *DebugInspector) OnLog(_ *domain.Frame, log *types.Log) {
	if !d.enabled() || log == nil {
		return
	}
	d.logger.Debug("Log", "address", log.Address.Hex(), "topics", len(log.Topics), "size", len(log.Data))
}

func (d *DebugInspector) OnCall(inputs *domain.CallInputs) *domain.CallOutcome {
	if d.enabled() && inputs != nil {
		d.logger.Debug("Call", "type", inputs.Kind.String(), "from", inputs.Caller.Hex(), "to", inputs.Target.Hex(), "gas", inputs.Gas, "depth", inputs.Depth)
	}
	return nil
}

func (d *DebugInspector) OnCallEnd(_ *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome {
	if d.enabled() {
		if outcome.Success() {
			d.logger.Debug("Call End (Success)", "gas_used", outcome.GasUsed)
		} else {
			d.logger.Debug("Call End (Error)", "gas_used", outcome.GasUsed, "reverted", outcome.Result.Reverted, "err", outcome.Result.Err)
		}
	}
	return outcome
}

func (d *DebugInspector) OnCreate(inputs *domain.CreateInputs) *domain.CreateOutcome {
	if d.enabled() && inputs != nil {
		d.logger.Debug("Create", "type", inputs.Kind.String(), "from", inputs.Caller.Hex(), "code_size", len(inputs.InitCode), "depth", inputs.Depth)
	}
	return nil
}

func (d *DebugInspector) OnCreateEnd(_ *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome {
	if d.enabled() {
		if outcome.Success() {
			d.logger.Debug("Create End (Success)", "address", outcome.Address.Hex(), "gas_used", outcome.GasUsed)
		} else {
			d.logger.Debug("Create End (Error)", "address", outcome.Address.Hex(), "err", outcome.Result.Err)
		}
	}
	return outcome
}

func (d *DebugInspector) OnSelfDestruct(contract, beneficiary common.Address, value *uint256.Int) {
	if !d.enabled() {
		return
	}
	amount := "0"
	if value != nil {
		amount = value.Dec()
	}
	d.logger.Debug("Self Destruct", "contract", contract.Hex(), "beneficiary", beneficiary.Hex(), "value", amount)
}
