// Package must wraps operations whose errors are expected to be rare and
// non-actionable (closing a file we only ever read, unlocking a lock we're
// about to drop anyway) so that failures are logged instead of silently
// swallowed or forced onto a caller who has no useful recovery to perform.
package must

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
)

func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn(fmt.Errorf("unable to close: %w", err))
	}
}

func Unlock(locker interface{ Unlock() error }, logger *logging.Logger) {
	if err := locker.Unlock(); err != nil {
		logger.Warn(fmt.Errorf("unable to unlock locker: %w", err))
	}
}

func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warn(fmt.Errorf("unable to remove '%s': %w", name, err))
	}
}

func OSRemoveAll(name string, logger *logging.Logger) {
	if err := os.RemoveAll(name); err != nil {
		logger.Warn(fmt.Errorf("unable to remove '%s': %w", name, err))
	}
}

func CommandHelp(c *cobra.Command, logger *logging.Logger) {
	if err := c.Help(); err != nil {
		logger.Warn(fmt.Errorf("unable to print help: %w", err))
	}
}
