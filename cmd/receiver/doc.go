// Package main is the receiver: it reads lines from stdin until end of
// stream and writes each one uppercased, prefixed with "PROCESSED: ", to
// stdout.
//
// Usage:
//
//	receiver [delay_ms]
//
// The delay defaults to 1000ms when missing or malformed.
package main
