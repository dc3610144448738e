package printer

import (
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/storacha/go-sha256/core/ipld/block"
	"github.com/storacha/go-sha256/core/sha256/trace"
	"github.com/stretchr/testify/require"
)

func withIndent(t *testing.T, level int) func(format string, args ...any) {
	indent := strings.Repeat("  ", level)
	return func(format string, args ...any) {
		t.Logf(indent+format, args...)
	}
}

func PrintBlocks(t *testing.T, blks iter.Seq2[block.Block, error], level int) {
	t.Helper()
	log := withIndent(t, level)
	for b, err := range blks {
		require.NoError(t, err)
		log("%s (%s)", b.Link(), SprintBytes(t, len(b.Bytes())))
	}
}

// PrintTrace logs the selected rounds of every recorded block.
func PrintTrace(t *testing.T, rec *trace.Recorder, rounds ...int) {
	t.Helper()
	for _, bt := range rec.Blocks() {
		var sb strings.Builder
		require.NoError(t, trace.Fprint(&sb, bt, rounds...))
		for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
			t.Log(line)
		}
	}
}

func SprintBytes(t *testing.T, b int) string {
	t.Helper()
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
