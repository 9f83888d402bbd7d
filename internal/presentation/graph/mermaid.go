package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracehook/pkg/observability"
	"github.com/ethereum/go-ethereum/core/vm"
)

// GenerateMermaid produces a Mermaid flowchart of a call tree.
// It applies semantic styling:
// - CALL family: [Rectangle]
// - CREATE/CREATE2: [[Subroutine]]
// - SELFDESTRUCT: ((Circle))
// Failed frames get the "failed" class.
func GenerateMermaid(roots []*observability.CallNode) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var failed []string
	next := 0
	var walk func(node *observability.CallNode, parentID string)
	walk = func(node *observability.CallNode, parentID string) {
		id := fmt.Sprintf("f%d", next)
		next++

		opener, closer := "[", "]"
		switch node.Kind {
		case vm.CREATE, vm.CREATE2:
			opener, closer = "[[", "]]"
		case vm.SELFDESTRUCT:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label(node), closer))

		if parentID != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", parentID, id))
		}
		if node.Failed {
			failed = append(failed, id)
		}
		for _, child := range node.Children {
			walk(child, id)
		}
	}
	for _, root := range roots {
		walk(root, "")
	}

	if len(failed) > 0 {
		sb.WriteString("\n    %% Outcome Styles\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
		for _, id := range failed {
			sb.WriteString(fmt.Sprintf("    class %s failed;\n", id))
		}
	}

	return sb.String()
}

func label(node *observability.CallNode) string {
	if node.Kind == vm.SELFDESTRUCT {
		return fmt.Sprintf("SELFDESTRUCT <br/> to %s", shortAddress(node.To.Hex()))
	}
	return fmt.Sprintf("%s %s <br/> steps: %d, gas: %d", node.Kind, shortAddress(node.To.Hex()), node.Steps, node.GasUsed)
}

// shortAddress keeps the head and tail of a hex address.
func shortAddress(hex string) string {
	if len(hex) <= 12 {
		return hex
	}
	return hex[:6] + "…" + hex[len(hex)-4:]
}
