package geth_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tracehook/pkg/adapters/geth"
	"github.com/aretw0/tracehook/pkg/inspector"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/core/vm/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// returns 42 as a 32 byte word: PUSH1 0x2a PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
var returnFortyTwo = common.FromHex("602a60005260206000f3")

func TestBridge_RuntimeExecute(t *testing.T) {
	out := &bytes.Buffer{}
	hello := inspector.New(inspector.WithWriter(out), inspector.WithAnnounce(false))
	j := &journal{}

	ret, _, err := runtime.Execute(returnFortyTwo, nil, &runtime.Config{
		GasLimit:  1_000_000,
		EVMConfig: vm.Config{Tracer: geth.New(hello).Hooks()},
	})
	require.NoError(t, err)
	require.Len(t, ret, 32)
	assert.Equal(t, byte(0x2a), ret[31])

	assert.Equal(t, uint64(6), hello.Steps())
	assert.Equal(t, uint64(1), hello.Calls())
	assert.True(t, strings.HasSuffix(out.String(), "Hello, world! Call ended with success: true\n"))

	_, _, err = runtime.Execute(returnFortyTwo, nil, &runtime.Config{
		GasLimit:  1_000_000,
		EVMConfig: vm.Config{Tracer: geth.New(j).Hooks()},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"call:CALL",
		"init:" + j.calls[0].Target.Hex(),
		"step:PUSH1", "step_end:PUSH1",
		"step:PUSH1", "step_end:PUSH1",
		"step:MSTORE", "step_end:MSTORE",
		"step:PUSH1", "step_end:PUSH1",
		"step:PUSH1", "step_end:PUSH1",
		"step:RETURN", "step_end:RETURN",
		"call_end",
	}, j.events)
}

func TestBridge_RuntimeRevert(t *testing.T) {
	j := &journal{}

	// PUSH1 0 PUSH1 0 REVERT
	_, _, err := runtime.Execute(common.FromHex("60006000fd"), nil, &runtime.Config{
		GasLimit:  100_000,
		EVMConfig: vm.Config{Tracer: geth.New(j).Hooks()},
	})
	require.ErrorIs(t, err, vm.ErrExecutionReverted)

	require.Len(t, j.callEnds, 1)
	assert.False(t, j.callEnds[0].Success())
	assert.True(t, j.callEnds[0].Result.Reverted)
}
