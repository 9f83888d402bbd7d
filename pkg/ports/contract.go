package ports

import (
	"errors"
	"testing"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

// RunObserverContract runs a suite of tests verifying that an Inspector behaves as a
// pure observer: it tolerates empty inputs, never asks the host for an override and
// hands every outcome back unchanged.
func RunObserverContract(t *testing.T, insp Inspector) {
	t.Helper()

	callee := common.HexToAddress("0x00000000000000000000000000000000000000c0")

	t.Run("Nil Inputs", func(t *testing.T) {
		assert.NotPanics(t, func() {
			insp.OnInterpreterInit(nil)
			insp.OnStep(nil)
			insp.OnStepEnd(nil)
			insp.OnLog(nil, nil)
			insp.OnCall(nil)
			insp.OnCallEnd(nil, domain.CallOutcome{})
			insp.OnCreate(nil)
			insp.OnCreateEnd(nil, domain.CreateOutcome{})
			insp.OnSelfDestruct(common.Address{}, common.Address{}, nil)
		})
	})

	t.Run("Frame Hooks", func(t *testing.T) {
		frame := &domain.Frame{Op: vm.PUSH1, Address: callee}
		assert.NotPanics(t, func() {
			insp.OnInterpreterInit(frame)
			insp.OnStep(frame)
			insp.OnStepEnd(frame)
			insp.OnLog(frame, &types.Log{Address: callee, Topics: []common.Hash{{1}}, Data: []byte{1, 2}})
		})
	})

	t.Run("No Override", func(t *testing.T) {
		call := &domain.CallInputs{Kind: vm.CALL, Target: callee, Value: uint256.NewInt(1)}
		assert.Nil(t, insp.OnCall(call))

		create := &domain.CreateInputs{Kind: vm.CREATE, InitCode: []byte{0x60, 0x00}}
		assert.Nil(t, insp.OnCreate(create))
	})

	t.Run("Outcome Pass-Through", func(t *testing.T) {
		call := &domain.CallInputs{Kind: vm.CALL, Target: callee}
		failed := domain.CallOutcome{
			Result:  domain.InstructionResult{Err: errors.New("execution reverted"), Reverted: true},
			Output:  []byte{0xde, 0xad},
			GasUsed: 21,
		}
		assert.Equal(t, failed, insp.OnCallEnd(call, failed))

		ok := domain.CallOutcome{Output: []byte{0x01}, GasUsed: 3}
		assert.Equal(t, ok, insp.OnCallEnd(call, ok))

		create := &domain.CreateInputs{Kind: vm.CREATE2}
		created := domain.CreateOutcome{Address: callee, Output: []byte{0x00}, GasUsed: 7}
		assert.Equal(t, created, insp.OnCreateEnd(create, created))
	})
}
