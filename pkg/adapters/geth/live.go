package geth

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/eth/tracers"
)

// InspectorConstructor builds an inspector from the raw tracer config a geth node
// passes with --vmtrace.jsonconfig.
type InspectorConstructor func(config json.RawMessage) (ports.Inspector, error)

// RegisterLive makes ctor available to go-ethereum's live tracer directory under name.
// Every transaction traced by the node shares the bridge of one constructed inspector.
func RegisterLive(name string, ctor InspectorConstructor, opts ...Option) {
	tracers.LiveDirectory.Register(name, LiveConstructor(ctor, opts...))
}

// LiveConstructor adapts ctor to the constructor signature of the live tracer directory.
func LiveConstructor(ctor InspectorConstructor, opts ...Option) func(json.RawMessage) (*tracing.Hooks, error) {
	return func(config json.RawMessage) (*tracing.Hooks, error) {
		insp, err := ctor(config)
		if err != nil {
			return nil, fmt.Errorf("failed to construct inspector: %w", err)
		}
		return New(insp, opts...).Hooks(), nil
	}
}
