package cmd

import (
	"os"

	"github.com/Jack-the-Pro101/manderrow/pkg/logging"
)

// Warning logs a warning through logging.RootLogger, so it is subject to
// the same level gate and prefixing as every other log line rather than
// bypassing it with a direct stderr write.
func Warning(message string) {
	logging.RootLogger.Warn(errorString(message))
}

// Error logs err through logging.RootLogger at error severity.
func Error(err error) {
	logging.RootLogger.Error(err)
}

// Fatal logs err and terminates the process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}

// errorString adapts a plain message to the error interface Warn expects,
// without pulling in errors.New at every Warning call site.
type errorString string

func (e errorString) Error() string { return string(e) }
