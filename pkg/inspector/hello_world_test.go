package inspector_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/inspector"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func newQuiet(buf *bytes.Buffer) *inspector.HelloWorld {
	return inspector.New(inspector.WithWriter(buf), inspector.WithAnnounce(false))
}

func TestNew_ZeroCounters(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := inspector.New(inspector.WithWriter(buf))

	assert.Equal(t, uint64(0), insp.Steps())
	assert.Equal(t, uint64(0), insp.Calls())
	assert.Equal(t, []string{"Hello, world! Inspector initialized."}, lines(buf))
}

func TestNew_Silent(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	assert.Equal(t, uint64(0), insp.Steps())
	assert.Equal(t, uint64(0), insp.Calls())
	assert.Empty(t, buf.String())
}

func TestZeroValue(t *testing.T) {
	var insp inspector.HelloWorld
	assert.Equal(t, uint64(0), insp.Steps())
	assert.Equal(t, uint64(0), insp.Calls())
}

func TestOnStep_Counts(t *testing.T) {
	for _, n := range []int{0, 1, 99, 100, 101, 1000} {
		buf := &bytes.Buffer{}
		insp := newQuiet(buf)
		for i := 0; i < n; i++ {
			insp.OnStep(&domain.Frame{Op: vm.ADD})
		}
		assert.Equal(t, uint64(n), insp.Steps(), "after %d steps", n)
		assert.Len(t, lines(buf), n/inspector.StepReportInterval, "trace lines after %d steps", n)
	}
}

func TestOnStep_ReportsEveryHundredth(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	for i := 1; i <= 250; i++ {
		insp.OnStep(&domain.Frame{Op: vm.PUSH1})

		emitted := len(lines(buf))
		assert.Equal(t, i/100, emitted, "step %d", i)
	}

	assert.Equal(t, uint64(250), insp.Steps())
	assert.Equal(t, []string{
		"Hello, world! Step #100 - Opcode: PUSH1",
		"Hello, world! Step #200 - Opcode: PUSH1",
	}, lines(buf))
}

func TestOnStepEnd_NoOp(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	for i := 0; i < 300; i++ {
		insp.OnStepEnd(&domain.Frame{Op: vm.STOP})
	}

	assert.Equal(t, uint64(0), insp.Steps())
	assert.Empty(t, buf.String())
}

func TestOnCall_CountsAndNeverOverrides(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	targets := []common.Address{
		common.HexToAddress("0x0000000000000000000000000000000000000001"),
		common.HexToAddress("0x0000000000000000000000000000000000000002"),
		common.HexToAddress("0x0000000000000000000000000000000000000003"),
	}
	for _, target := range targets {
		override := insp.OnCall(&domain.CallInputs{Kind: vm.CALL, Target: target})
		assert.Nil(t, override)
	}

	assert.Equal(t, uint64(3), insp.Calls())
	assert.Equal(t, []string{
		"Hello, world! Call #1 to address: 0x0000000000000000000000000000000000000001",
		"Hello, world! Call #2 to address: 0x0000000000000000000000000000000000000002",
		"Hello, world! Call #3 to address: 0x0000000000000000000000000000000000000003",
	}, lines(buf))
}

func TestOnCallEnd_PassThrough(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.CallOutcome
		want    string
	}{
		{
			name:    "success",
			outcome: domain.CallOutcome{Output: []byte{0x2a}, GasUsed: 100},
			want:    "Hello, world! Call ended with success: true",
		},
		{
			name: "reverted",
			outcome: domain.CallOutcome{
				Result: domain.InstructionResult{Err: errors.New("execution reverted"), Reverted: true},
				Output: []byte{0x08, 0xc3, 0x79, 0xa0},
			},
			want: "Hello, world! Call ended with success: false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			insp := newQuiet(buf)

			got := insp.OnCallEnd(&domain.CallInputs{Kind: vm.CALL}, tt.outcome)
			assert.Equal(t, tt.outcome, got)
			assert.Equal(t, []string{tt.want}, lines(buf))
		})
	}
}

func TestOnCreate(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	override := insp.OnCreate(&domain.CreateInputs{Kind: vm.CREATE, InitCode: []byte{0x60, 0x00, 0x60, 0x00, 0xf3}})
	assert.Nil(t, override)

	created := domain.CreateOutcome{Address: common.HexToAddress("0xbeef")}
	assert.Equal(t, created, insp.OnCreateEnd(nil, created))

	failed := domain.CreateOutcome{Result: domain.InstructionResult{Err: vm.ErrOutOfGas}}
	assert.Equal(t, failed, insp.OnCreateEnd(nil, failed))

	assert.Equal(t, []string{
		"Hello, world! Contract creation with 5 bytes of code",
		"Hello, world! Contract creation ended with success: true",
		"Hello, world! Contract creation ended with success: false",
	}, lines(buf))
	assert.Equal(t, uint64(0), insp.Calls(), "creations are not calls")
}

func TestOnLog(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	insp.OnLog(&domain.Frame{Op: vm.LOG2}, &types.Log{
		Topics: []common.Hash{{0x01}, {0x02}},
		Data:   make([]byte, 64),
	})

	assert.Equal(t, []string{"Hello, world! Log emitted with 2 topics and 64 bytes of data"}, lines(buf))
}

func TestOnSelfDestruct(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	contract := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	beneficiary := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	insp.OnSelfDestruct(contract, beneficiary, uint256.NewInt(1_000_000_000))
	insp.OnSelfDestruct(contract, beneficiary, nil)

	assert.Equal(t, []string{
		fmt.Sprintf("Hello, world! Contract %s self-destructed, sending 1000000000 wei to %s", contract.Hex(), beneficiary.Hex()),
		fmt.Sprintf("Hello, world! Contract %s self-destructed, sending 0 wei to %s", contract.Hex(), beneficiary.Hex()),
	}, lines(buf))
}

func TestOnInterpreterInit(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	insp.OnInterpreterInit(&domain.Frame{})
	assert.Equal(t, []string{"Hello, world! Interpreter initializing..."}, lines(buf))
}

func TestScenario(t *testing.T) {
	buf := &bytes.Buffer{}
	insp := newQuiet(buf)

	for i := 0; i < 250; i++ {
		insp.OnStep(&domain.Frame{Op: vm.JUMPDEST})
	}
	require.Equal(t, uint64(250), insp.Steps())
	require.Len(t, lines(buf), 2)

	buf.Reset()
	callee := common.HexToAddress("0x00000000000000000000000000000000000000c0")
	for i := 0; i < 3; i++ {
		insp.OnCall(&domain.CallInputs{Kind: vm.CALL, Target: callee})
	}
	require.Equal(t, uint64(3), insp.Calls())

	out := lines(buf)
	require.Len(t, out, 3)
	for i, line := range out {
		assert.Contains(t, line, fmt.Sprintf("Call #%d to address: %s", i+1, callee.Hex()))
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriteErrorsAreIgnored(t *testing.T) {
	insp := inspector.New(inspector.WithWriter(failingWriter{}))

	assert.NotPanics(t, func() {
		insp.OnCall(&domain.CallInputs{})
		for i := 0; i < 100; i++ {
			insp.OnStep(nil)
		}
	})
	assert.Equal(t, uint64(100), insp.Steps())
	assert.Equal(t, uint64(1), insp.Calls())
}

func TestObserverContract(t *testing.T) {
	ports.RunObserverContract(t, newQuiet(&bytes.Buffer{}))
}
