/*
Package domain contains the data exchanged between an EVM host and the inspectors it drives.

Everything here is plain data: the host builds these values while it executes a
transaction and hands them to the hooks of a ports.Inspector. The package is kept
free of I/O so that inspectors, adapters and tests can share it without pulling
in the host itself.

# Key Entities

  - Frame: the read-only view of the interpreter at a hook (opcode, pc, addresses).
  - CallInputs / CallOutcome: the arguments and result of a message call.
  - CreateInputs / CreateOutcome: the arguments and result of a contract creation.
  - Result: what a finished execution reports back to the caller (counters included).
  - Hook: the names of the callback points, used for metrics and debug logs.
*/
package domain
