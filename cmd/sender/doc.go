// Package main is the sender: it writes numbered, timestamped records to
// stdout, one line each, at a fixed pace.
//
// Usage:
//
//	sender [count] [interval_ms]
//
//	# 3 records, no pause, piped into the receiver
//	./sender 3 0 | ./receiver 0
//
// Arguments default to 10 records and 500ms when missing or malformed.
// Progress is logged to stderr only.
//
// Environment (diagnostics only):
//   - PIPEDEMO_LOG_LEVEL, PIPEDEMO_LOG_FORMAT, PIPEDEMO_METRICS_FILE
//
// Signals:
//   - SIGINT, SIGTERM: stop after the current record, exit 130
//   - SIGPIPE: ignored; a closed downstream fails the next write, exit 1
package main
