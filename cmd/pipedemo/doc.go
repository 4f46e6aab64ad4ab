// Package main runs the sender and the receiver as child processes joined
// by a pipe, like `sender | receiver` without a shell.
//
// Usage:
//
//	pipedemo [count] [interval_ms] [delay_ms]
//
// Both executables are looked up next to pipedemo first, then on $PATH.
// The exit code is non-zero if either child fails.
package main
