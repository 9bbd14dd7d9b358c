package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/learnzverse/internal/session"
	"github.com/urfave/cli/v3"
)

// interruptGrace bounds how long an interrupted chat waits for the loop to
// finish its current step before the store and transcript are closed.
const interruptGrace = 500 * time.Millisecond

func chatAction(opts *options) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		a, err := opts.open(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		orch := session.New(session.NewInput{
			Repo:       a.repo,
			Tutor:      a.tutor,
			Prefs:      a.prefs,
			Transcript: a.transcript,
			Logger:     a.logger,
			In:         os.Stdin,
			Out:        os.Stdout,
		})

		return runInterruptible(ctx, orch.Run, os.Stdout, interruptGrace)
	}
}

// runInterruptible runs fn aside because a read from stdin cannot be
// interrupted. When ctx ends first it waits up to grace for fn to return, so a
// save already in flight completes before the caller's deferred closes run.
// A loop still blocked on input after grace is abandoned.
func runInterruptible(ctx context.Context, fn func(context.Context) error, out io.Writer, grace time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(out, "\nInterrupted. Goodbye! 👋")

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	}
	return nil
}
