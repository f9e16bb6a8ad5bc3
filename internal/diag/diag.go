// Package diag is the process-wide diagnostic sink used for the one
// allowed side effect in the pipeline: the `number`-identifier
// deprecation warning emitted by the preprocessor. It is a thin
// writer-backed log so tests can redirect or silence it instead of
// asserting against stderr.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr

	warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// SetOutput redirects the sink. Tests use this to capture warnings into
// a buffer instead of writing to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Reset restores the sink to stderr.
func Reset() {
	SetOutput(os.Stderr)
}

// Warnf writes a formatted warning line prefixed with a colored
// "warning:" label.
func Warnf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s\n", warningLabel("warning:"), fmt.Sprintf(format, args...))
}
