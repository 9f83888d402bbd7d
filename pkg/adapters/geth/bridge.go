// Package geth drives a ports.Inspector from go-ethereum's live tracing hooks.
package geth

import (
	"io"
	"log/slog"
	"math/big"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// frame is the bridge's record of one OnEnter that has not exited yet.
type frame struct {
	kind  vm.OpCode
	depth int

	call   *domain.CallInputs
	create *domain.CreateInputs

	// created is the address go-ethereum derived for a creation.
	created common.Address

	// started is set once the frame ran its first instruction.
	started bool

	// pending is the last instruction reported through OnStep, awaiting OnStepEnd.
	pending *domain.Frame
}

// Bridge translates go-ethereum tracing hooks into Inspector calls.
// A Bridge follows one transaction at a time and is not safe for concurrent use,
// the same as the go-ethereum interpreter driving it.
type Bridge struct {
	inspector ports.Inspector
	logger    *slog.Logger
	frames    []*frame
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used for dropped overrides.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a Bridge feeding insp.
func New(insp ports.Inspector, opts ...Option) *Bridge {
	b := &Bridge{
		inspector: insp,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Hooks returns the go-ethereum hook set to install as vm.Config.Tracer.
func (b *Bridge) Hooks() *tracing.Hooks {
	return &tracing.Hooks{
		OnTxStart: b.onTxStart,
		OnEnter:   b.onEnter,
		OnExit:    b.onExit,
		OnOpcode:  b.onOpcode,
		OnLog:     b.onLog,
	}
}

// Depth reports how many frames are open.
func (b *Bridge) Depth() int {
	return len(b.frames)
}

func (b *Bridge) current() *frame {
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

func (b *Bridge) onTxStart(_ *tracing.VMContext, _ *types.Transaction, _ common.Address) {
	b.frames = b.frames[:0]
}

func (b *Bridge) onEnter(depth int, typ byte, from common.Address, to common.Address, input []byte, gas uint64, value *big.Int) {
	kind := vm.OpCode(typ)
	f := &frame{kind: kind, depth: depth}
	b.frames = append(b.frames, f)

	switch kind {
	case vm.SELFDESTRUCT:
		b.inspector.OnSelfDestruct(from, to, toUint256(value))
	case vm.CREATE, vm.CREATE2:
		f.created = to
		f.create = &domain.CreateInputs{
			Kind:     kind,
			Depth:    depth,
			Caller:   from,
			InitCode: input,
			Gas:      gas,
			Value:    toUint256(value),
		}
		if override := b.inspector.OnCreate(f.create); override != nil {
			b.logger.Warn("create override dropped, host cannot substitute outcomes", "depth", depth, "address", to.Hex())
		}
	default:
		f.call = &domain.CallInputs{
			Kind:   kind,
			Depth:  depth,
			Caller: from,
			Target: to,
			Input:  input,
			Gas:    gas,
			Value:  toUint256(value),
		}
		if override := b.inspector.OnCall(f.call); override != nil {
			b.logger.Warn("call override dropped, host cannot substitute outcomes", "depth", depth, "to", to.Hex())
		}
	}
}

func (b *Bridge) onOpcode(pc uint64, op byte, gas, cost uint64, scope tracing.OpContext, _ []byte, _ int, _ error) {
	f := b.current()
	if f == nil {
		return
	}

	step := &domain.Frame{
		Depth: f.depth,
		PC:    pc,
		Op:    vm.OpCode(op),
		Gas:   gas,
		Cost:  cost,
	}
	if scope != nil {
		step.Address = scope.Address()
		step.Caller = scope.Caller()
	}

	if !f.started {
		f.started = true
		b.inspector.OnInterpreterInit(step)
	}
	if f.pending != nil {
		b.inspector.OnStepEnd(f.pending)
	}
	f.pending = step
	b.inspector.OnStep(step)
}

func (b *Bridge) onExit(_ int, output []byte, gasUsed uint64, err error, reverted bool) {
	f := b.current()
	if f == nil {
		return
	}
	b.frames = b.frames[:len(b.frames)-1]

	if f.pending != nil {
		b.inspector.OnStepEnd(f.pending)
		f.pending = nil
	}

	result := domain.InstructionResult{Err: err, Reverted: reverted}
	switch {
	case f.call != nil:
		b.inspector.OnCallEnd(f.call, domain.CallOutcome{
			Result:  result,
			Output:  output,
			GasUsed: gasUsed,
		})
	case f.create != nil:
		b.inspector.OnCreateEnd(f.create, domain.CreateOutcome{
			Result:  result,
			Address: f.created,
			Output:  output,
			GasUsed: gasUsed,
		})
	}
}

func (b *Bridge) onLog(log *types.Log) {
	var view *domain.Frame
	if f := b.current(); f != nil {
		view = f.pending
	}
	b.inspector.OnLog(view, log)
}

func toUint256(v *big.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil
	}
	return u
}
