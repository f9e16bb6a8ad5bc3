package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWarnfWritesToRedirectedSink(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Reset()

	Warnf("identifier %q is deprecated, use %q", "number", "int32")

	require.Contains(t, buf.String(), "warning:")
	require.Contains(t, buf.String(), `identifier "number" is deprecated`)
}

func TestWarnfFormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Reset()

	Warnf("line %d: %s", 12, "boom")

	require.Contains(t, buf.String(), "line 12: boom")
}
