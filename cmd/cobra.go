package cmd

import (
	"context"
	"os/signal"

	"github.com/spf13/cobra"
)

// Mainify wraps a context-aware, error-returning Cobra entry point in a
// standard Cobra Run function. The context passed to entry is canceled when
// the process receives one of TerminationSignals, so a long-running install
// can react to an interrupt by unwinding through its own defers — releasing
// its advisory lock and discarding its staged directory — instead of being
// killed mid-write. Returning an error from entry still runs those defers
// before the process exits, which a bare os.Exit in entry would skip.
func Mainify(entry func(context.Context, *cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		ctx, stop := signal.NotifyContext(context.Background(), TerminationSignals...)
		defer stop()

		if err := entry(ctx, command, arguments); err != nil {
			Fatal(err)
		}
	}
}
