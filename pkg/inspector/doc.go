/*
Package inspector implements the hello-world Execution Trace Observer.

HelloWorld satisfies ports.Inspector. It counts executed instructions and message
calls, and writes one human-readable line per notable event to an injected writer
(stdout by default). It never overrides the host: pre-hooks return nil and
post-hooks hand the outcome back untouched.

# Usage

	insp := inspector.New(inspector.WithWriter(os.Stderr))
	hooks := geth.New(insp).Hooks()
	// ... run the transaction with hooks attached ...
	fmt.Println(insp.Steps(), insp.Calls())

A HelloWorld belongs to a single execution. Its counters are plain fields and
must not be shared between concurrently running transactions.
*/
package inspector
