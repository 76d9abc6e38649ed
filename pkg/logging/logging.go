// Package logging implements manderrow's hierarchical, level-gated logger.
// Every Logger in a process shares one mutable threshold (see Level and
// SetLevel), so raising or lowering verbosity at runtime — e.g. in response
// to a --verbose flag parsed after RootLogger has already been handed to a
// dozen subloggers — takes effect everywhere at once.
package logging

import (
	"log"
	"os"
)

func init() {
	// The standard log package defaults to writing to stderr with a
	// timestamp prefix; Logger supplies its own prefixing (see
	// Logger.emit), and status output belongs on stdout so it interleaves
	// correctly with StatusLinePrinter's carriage-return-driven progress
	// lines.
	log.SetFlags(0)
	log.SetOutput(os.Stdout)
}
