// Package logging provides the diagnostic channel using uber/zap.
//
// Every entry goes to stderr (or an injected writer). Stdout belongs to the
// record stream and is refused as a sink.
//
// Formats:
//   - console: human readable, the default for the CLIs
//   - json: one object per line for machine parsing
//
// Example Usage:
//
//	logger, err := logging.NewWithWriter(logging.DefaultConfig(), os.Stderr)
//	logger.Info("Producer starting", zap.Uint32("count", 10))
//	logger.Error("write failed", zap.Error(err))
package logging
