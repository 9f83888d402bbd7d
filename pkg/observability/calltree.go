package observability

import (
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// CallNode is one call, creation or self-destruct of an execution.
type CallNode struct {
	Kind    vm.OpCode
	Depth   int
	From    common.Address
	To      common.Address
	GasUsed uint64
	Steps   uint64
	Logs    int

	// Failed and Reverted are known once the frame has ended.
	Failed   bool
	Reverted bool

	Children []*CallNode
}

// CallTree is an inspector recording the frames of an execution as a tree.
// Like any inspector, it follows one execution at a time.
type CallTree struct {
	roots []*CallNode
	open  []*CallNode
}

var _ ports.Inspector = (*CallTree)(nil)

// NewCallTree creates an empty call tree.
func NewCallTree() *CallTree {
	return &CallTree{}
}

// Roots returns the top-level frames, in execution order.
func (c *CallTree) Roots() []*CallNode {
	return c.roots
}

func (c *CallTree) push(node *CallNode) {
	if parent := c.current(); parent != nil {
		parent.Children = append(parent.Children, node)
	} else {
		c.roots = append(c.roots, node)
	}
	c.open = append(c.open, node)
}

func (c *CallTree) pop() *CallNode {
	if len(c.open) == 0 {
		return nil
	}
	node := c.open[len(c.open)-1]
	c.open = c.open[:len(c.open)-1]
	return node
}

func (c *CallTree) current() *CallNode {
	if len(c.open) == 0 {
		return nil
	}
	return c.open[len(c.open)-1]
}

func (c *CallTree) OnInterpreterInit(_ *domain.Frame) {}

func (c *CallTree) OnStep(_ *domain.Frame) {
	if node := c.current(); node != nil {
		node.Steps++
	}
}

func (c *CallTree) OnStepEnd(_ *domain.Frame) {}

func (c *CallTree) OnLog(_ *domain.Frame, _ *types.Log) {
	if node := c.current(); node != nil {
		node.Logs++
	}
}

func (c *CallTree) OnCall(inputs *domain.CallInputs) *domain.CallOutcome {
	if inputs != nil {
		c.push(&CallNode{Kind: inputs.Kind, Depth: inputs.Depth, From: inputs.Caller, To: inputs.Target})
	}
	return nil
}

func (c *CallTree) OnCallEnd(inputs *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome {
	if inputs == nil {
		return outcome
	}
	if node := c.pop(); node != nil {
		node.GasUsed = outcome.GasUsed
		node.Failed = !outcome.Success()
		node.Reverted = outcome.Result.Reverted
	}
	return outcome
}

func (c *CallTree) OnCreate(inputs *domain.CreateInputs) *domain.CreateOutcome {
	if inputs != nil {
		c.push(&CallNode{Kind: inputs.Kind, Depth: inputs.Depth, From: inputs.Caller})
	}
	return nil
}

func (c *CallTree) OnCreateEnd(inputs *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome {
	if inputs == nil {
		return outcome
	}
	if node := c.pop(); node != nil {
		node.To = outcome.Address
		node.GasUsed = outcome.GasUsed
		node.Failed = !outcome.Success()
		node.Reverted = outcome.Result.Reverted
	}
	return outcome
}

// OnSelfDestruct records a leaf under the frame that self-destructed.
func (c *CallTree) OnSelfDestruct(contract, beneficiary common.Address, _ *uint256.Int) {
	node := &CallNode{Kind: vm.SELFDESTRUCT, From: contract, To: beneficiary}
	if parent := c.current(); parent != nil {
		node.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, node)
		return
	}
	c.roots = append(c.roots, node)
}
