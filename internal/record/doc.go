// Package record defines the line-oriented contract between the sender and
// the receiver.
//
// The sender writes one Record per line:
//
//	Item #<n>: Generated at timestamp <local-datetime>
//
// The receiver answers every line it reads with:
//
//	PROCESSED: <line uppercased>
//
// Lines never contain embedded newlines. The timestamp is local wall-clock
// time and should be treated as opaque text by anything downstream.
package record
