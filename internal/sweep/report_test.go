package sweep

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dbsmedya/amplisearch/internal/logger"
	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withoutColor(t *testing.T) {
	prev := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = prev })
}

func TestWriteDiscoveryReports(t *testing.T) {
	withoutColor(t)
	runs, err := NewRunner(testConfig(2), oracle.Analytic{}, logger.NewNop()).Discovery(context.Background())
	require.NoError(t, err)

	var lines bytes.Buffer
	WriteDiscoveryLines(&lines, runs)
	out := strings.Split(strings.TrimSpace(lines.String()), "\n")
	require.Len(t, out, 8)
	assert.True(t, strings.HasPrefix(out[0], "N=8, M=0: terminated with 0/0 solutions found, performed 28 measurements"))
	assert.True(t, strings.HasPrefix(out[7], "N=16, M=4: terminated with"))

	var table bytes.Buffer
	WriteDiscoveryTable(&table, runs)
	text := table.String()
	assert.Contains(t, text, "Discovery sweep:")
	assert.Contains(t, text, "measurements")
	rows := strings.Split(strings.TrimSpace(text), "\n")
	// three header lines, column titles, rules, eight runs
	require.Len(t, rows, 3+2+8)
	assert.Equal(t, len(rows[3]), len(rows[4]))

	var chart bytes.Buffer
	require.NoError(t, WriteDiscoveryChart(&chart, runs))
	assert.Contains(t, chart.String(), "<html")
	assert.Contains(t, chart.String(), "n=3")
	assert.Contains(t, chart.String(), "n=4")
}

func TestWriteCountingReports(t *testing.T) {
	withoutColor(t)
	cfg := testConfig(2)
	cfg.Counting.Trials = 3
	runs, err := NewRunner(cfg, oracle.Analytic{}, logger.NewNop()).Counting(context.Background())
	require.NoError(t, err)

	var lines bytes.Buffer
	WriteCountingLines(&lines, runs)
	assert.Contains(t, lines.String(), "N=8, M=0: avg. error = 0.0000 with 2 counting qubits")
	assert.Contains(t, lines.String(), "N=16, M=4: avg. error =")

	var table bytes.Buffer
	WriteCountingTable(&table, runs)
	assert.Contains(t, table.String(), "Counting sweep: 8 points")
	assert.Contains(t, table.String(), "3/3")

	var chart bytes.Buffer
	require.NoError(t, WriteCountingChart(&chart, runs))
	assert.Contains(t, chart.String(), "Phase counting mean absolute error")
}

func TestTableAlignment(t *testing.T) {
	tb := newTable("a", "long header")
	tb.addRow("wide cell", "1")
	tb.addRow("x", "22")

	var buf bytes.Buffer
	tb.write(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "        a  long header", lines[0])
	assert.Equal(t, "---------  -----------", lines[1])
	assert.Equal(t, "wide cell            1", lines[2])
	assert.Equal(t, "        x           22", lines[3])
}
