// Package cli wires configuration, logging, metrics and the producer,
// consumer and pipeline packages into the three executables.
//
// Each entry point takes its streams explicitly and returns an exit code, so
// the cmd packages reduce to signal setup and os.Exit:
//
//	os.Exit(cli.Sender(ctx, os.Args[1:], os.Stdout, os.Stderr))
//
// Exit codes: 0 on success, 1 on any stream or process failure, 130 when
// interrupted.
package cli
