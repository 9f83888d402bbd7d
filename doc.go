/*
Package tracehook attaches a hello-world execution trace observer to an EVM.

The observer counts the instructions and message calls of an execution and prints
a line for the events it sees: interpreter start, every hundredth instruction,
logs, calls, contract creations and self-destructs. It is packaged as a plugin
that registers with a host under the name "hello-world-inspector".

# Architecture

The inspector (pkg/inspector) only implements the callback contract of
pkg/ports. Hosts drive it: go-ethereum through the bridge in pkg/adapters/geth,
which translates the live tracing hooks, or any other interpreter calling the
hooks directly. pkg/observability stacks several inspectors and counts hook
invocations with Prometheus.

A Session wires all of this to go-ethereum's in-memory runtime so bytecode can
be traced without a node.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/tracehook"
		"github.com/ethereum/go-ethereum/common"
	)

	func main() {
		session, err := tracehook.New()
		if err != nil {
			log.Fatal(err)
		}

		res, err := session.Execute(context.Background(), common.FromHex("602a60005260206000f3"), nil)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("steps:", res.Steps, "calls:", res.Calls)
	}

To trace a node instead, call RegisterLiveTracer before geth starts and run it
with --vmtrace=hello-world-inspector.
*/
package tracehook
