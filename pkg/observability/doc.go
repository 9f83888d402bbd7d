/*
Package observability provides tools for monitoring inspectors while a host executes.

It includes a Stack that drives several inspectors as one, a Prometheus decorator
counting hook invocations, a debug inspector that mirrors every hook to a
structured logger, and a CallTree recording the frames of an execution.
None of them change what the wrapped inspectors see or return.
*/
package observability
