// Package pipeline runs a sender and a receiver as two child processes
// joined by an OS pipe, the equivalent of `sender | receiver` in a shell.
//
// The runner never touches records. It owns the pipe, starts both
// children, closes its own copies of the pipe ends so that end of stream and
// broken pipes propagate between them, and waits for both to exit.
//
//	sender --(os.Pipe)--> receiver --> stdout
//	   \______ stderr ______/
//
// Example Usage:
//
//	runner := pipeline.NewRunner(logger, metrics)
//	res, err := runner.Run(ctx,
//		pipeline.Stage{Name: "sender", Path: senderPath, Args: []string{"3", "0"}},
//		pipeline.Stage{Name: "receiver", Path: receiverPath, Args: []string{"0"}},
//		os.Stdout, os.Stderr,
//	)
package pipeline
