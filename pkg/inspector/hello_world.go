package inspector

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// StepReportInterval is the number of steps between two step trace lines.
const StepReportInterval = 100

// HelloWorld prints a greeting on execution events and counts steps and calls.
// The zero value is ready to use and writes to os.Stdout.
type HelloWorld struct {
	steps uint64
	calls uint64

	out      io.Writer
	announce bool
}

var _ ports.Inspector = (*HelloWorld)(nil)

// Option defines a functional option for configuring the inspector.
type Option func(*HelloWorld)

// WithWriter sets the sink trace lines are written to.
func WithWriter(w io.Writer) Option {
	return func(h *HelloWorld) {
		h.out = w
	}
}

// WithAnnounce controls the one-time "initialized" line written by New (default: true).
func WithAnnounce(announce bool) Option {
	return func(h *HelloWorld) {
		h.announce = announce
	}
}

// New creates an inspector with zeroed counters.
// Unless disabled with WithAnnounce(false), it writes a single initialization line.
func New(opts ...Option) *HelloWorld {
	h := &HelloWorld{announce: true}
	for _, opt := range opts {
		opt(h)
	}
	if h.announce {
		h.printf("Hello, world! Inspector initialized.\n")
	}
	return h
}

// Steps returns the number of OnStep invocations since construction.
func (h *HelloWorld) Steps() uint64 {
	return h.steps
}

// Calls returns the number of OnCall invocations since construction.
func (h *HelloWorld) Calls() uint64 {
	return h.calls
}

func (h *HelloWorld) OnInterpreterInit(_ *domain.Frame) {
	h.printf("Hello, world! Interpreter initializing...\n")
}

func (h *HelloWorld) OnStep(frame *domain.Frame) {
	h.steps++

	// Only every StepReportInterval-th step, to keep the output readable.
	if h.steps%StepReportInterval == 0 {
		h.printf("Hello, world! Step #%d - Opcode: %s\n", h.steps, frame.CurrentOpcode())
	}
}

// OnStepEnd is a no-op.
func (h *HelloWorld) OnStepEnd(_ *domain.Frame) {}

func (h *HelloWorld) OnLog(_ *domain.Frame, log *types.Log) {
	var topics, size int
	if log != nil {
		topics, size = len(log.Topics), len(log.Data)
	}
	h.printf("Hello, world! Log emitted with %d topics and %d bytes of data\n", topics, size)
}

func (h *HelloWorld) OnCall(inputs *domain.CallInputs) *domain.CallOutcome {
	h.calls++

	var target common.Address
	if inputs != nil {
		target = inputs.Target
	}
	h.printf("Hello, world! Call #%d to address: %s\n", h.calls, target.Hex())
	return nil
}

func (h *HelloWorld) OnCallEnd(_ *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome {
	h.printf("Hello, world! Call ended with success: %t\n", outcome.Success())
	return outcome
}

func (h *HelloWorld) OnCreate(inputs *domain.CreateInputs) *domain.CreateOutcome {
	var size int
	if inputs != nil {
		size = len(inputs.InitCode)
	}
	h.printf("Hello, world! Contract creation with %d bytes of code\n", size)
	return nil
}

func (h *HelloWorld) OnCreateEnd(_ *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome {
	h.printf("Hello, world! Contract creation ended with success: %t\n", outcome.Success())
	return outcome
}

func (h *HelloWorld) OnSelfDestruct(contract, beneficiary common.Address, value *uint256.Int) {
	amount := "0"
	if value != nil {
		amount = value.Dec()
	}
	h.printf("Hello, world! Contract %s self-destructed, sending %s wei to %s\n", contract.Hex(), amount, beneficiary.Hex())
}

// printf writes a trace line. Write errors are dropped: tracing must never fail the host.
func (h *HelloWorld) printf(format string, args ...any) {
	w := h.out
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, format, args...)
}
