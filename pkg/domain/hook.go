package domain

// Hook names a callback point of the inspector contract.
type Hook string

const (
	HookInterpreterInit Hook = "interpreter_init"
	HookStep            Hook = "step"
	HookStepEnd         Hook = "step_end"
	HookLog             Hook = "log"
	HookCall            Hook = "call"
	HookCallEnd         Hook = "call_end"
	HookCreate          Hook = "create"
	HookCreateEnd       Hook = "create_end"
	HookSelfDestruct    Hook = "selfdestruct"
)

// Hooks lists every hook in the order the contract declares them.
var Hooks = []Hook{
	HookInterpreterInit,
	HookStep,
	HookStepEnd,
	HookLog,
	HookCall,
	HookCallEnd,
	HookCreate,
	HookCreateEnd,
	HookSelfDestruct,
}
