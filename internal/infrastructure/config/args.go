package config

import (
	"strconv"
	"strings"
	"time"
)

// Positional defaults.
const (
	DefaultCount         uint32 = 10
	DefaultIntervalMs    uint64 = 500
	DefaultReceiverDelay uint64 = 1000
)

// SenderArgs are the positional parameters of the sender.
type SenderArgs struct {
	Count      uint32
	IntervalMs uint64
}

// Interval returns the pause between records.
func (a SenderArgs) Interval() time.Duration {
	return millis(a.IntervalMs)
}

// ReceiverArgs are the positional parameters of the receiver.
type ReceiverArgs struct {
	DelayMs uint64
}

// Delay returns the pause after each processed record.
func (a ReceiverArgs) Delay() time.Duration {
	return millis(a.DelayMs)
}

// PipelineArgs are the positional parameters of the pipeline runner:
// the sender's two followed by the receiver's one.
type PipelineArgs struct {
	Sender   SenderArgs
	Receiver ReceiverArgs
}

// ParseSenderArgs parses `[count] [interval_ms]`. Missing or malformed
// values are replaced by their defaults without error.
func ParseSenderArgs(args []string) SenderArgs {
	return SenderArgs{
		Count:      uint32(positional(args, 0, 32, uint64(DefaultCount))),
		IntervalMs: positional(args, 1, 64, DefaultIntervalMs),
	}
}

// ParseReceiverArgs parses `[delay_ms]`.
func ParseReceiverArgs(args []string) ReceiverArgs {
	return ReceiverArgs{
		DelayMs: positional(args, 0, 64, DefaultReceiverDelay),
	}
}

// ParsePipelineArgs parses `[count] [interval_ms] [delay_ms]`.
func ParsePipelineArgs(args []string) PipelineArgs {
	var rest []string
	if len(args) > 2 {
		rest = args[2:]
	}
	return PipelineArgs{
		Sender:   ParseSenderArgs(args),
		Receiver: ParseReceiverArgs(rest),
	}
}

func positional(args []string, idx int, bits int, def uint64) uint64 {
	if idx >= len(args) {
		return def
	}
	// A single leading plus sign is accepted, a minus sign never is.
	v, err := strconv.ParseUint(strings.TrimPrefix(args[idx], "+"), 10, bits)
	if err != nil {
		return def
	}
	return v
}

// millis converts milliseconds to a Duration, saturating instead of
// overflowing for values beyond what a Duration can hold.
func millis(ms uint64) time.Duration {
	const maxMs = uint64(1<<63-1) / uint64(time.Millisecond)
	if ms > maxMs {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(ms) * time.Millisecond
}
