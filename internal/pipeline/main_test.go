package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"testing"
	"time"
)

const roleEnv = "PIPELINE_TEST_ROLE"

// TestMain lets the test binary act as a pipeline stage.
func TestMain(m *testing.M) {
	switch os.Getenv(roleEnv) {
	case "":
		os.Exit(m.Run())
	case "emit":
		for _, arg := range os.Args[1:] {
			fmt.Fprintln(os.Stdout, arg)
		}
		fmt.Fprintln(os.Stderr, "emit done")
	case "cat":
		_, _ = io.Copy(os.Stdout, bufio.NewReader(os.Stdin))
		fmt.Fprintln(os.Stderr, "cat done")
	case "fail":
		os.Exit(3)
	case "hang":
		time.Sleep(time.Hour)
	case "graceful":
		// Exits cleanly on interrupt once it has announced itself.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		fmt.Fprintln(os.Stderr, "ready")
		<-ctx.Done()
	}
	os.Exit(0)
}

func stage(name, role string, args ...string) Stage {
	return Stage{
		Name: name,
		Path: os.Args[0],
		Args: args,
		Env:  append(os.Environ(), roleEnv+"="+role),
	}
}
