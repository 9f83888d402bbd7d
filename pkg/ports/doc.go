/*
Package ports defines the contracts between an EVM host and the inspectors it drives.

These interfaces decouple the observers from any particular execution engine: the
go-ethereum bridge, the inspector stack and the tests all speak ports.Inspector.

# Key Interfaces

  - Inspector: the fixed callback surface the host invokes during execution.
  - InspectorFactory: builds a fresh Inspector for one execution.
  - Registry: register-by-name contract of a host plugin registry.
*/
package ports
