// Package config provides configuration for the sender, receiver and
// pipeline binaries.
//
// Two independent sources exist:
//   - Positional arguments: the only knobs that shape the data stream
//     (record count, emission interval, processing delay). Each argument is
//     parsed on its own and silently replaced by its default when it is
//     missing or does not parse.
//   - Environment variables: ambient settings for the diagnostic channel and
//     metrics export, loaded with envconfig under the PIPEDEMO prefix.
//
// Example Usage:
//
//	args := config.ParseSenderArgs(os.Args[1:])
//	cfg := config.LoadOrDefault()
//
// Environment Variables:
//   - PIPEDEMO_LOG_LEVEL, PIPEDEMO_LOG_FORMAT, PIPEDEMO_LOG_OUTPUT
//   - PIPEDEMO_METRICS_FILE
package config
