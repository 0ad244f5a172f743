package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scheduler"
)

func TestProfiler_ReportsCoalescing(t *testing.T) {
	now := time.Unix(0, 0)
	stats := scheduler.Stats{}
	var lines []string

	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(func() time.Time { return now }),
		WithRenderStats(func() scheduler.Stats { return stats }),
		WithOutput(func(s string) { lines = append(lines, s) }),
	)

	now = now.Add(500 * time.Millisecond)
	assert.False(t, p.Tick())

	stats = scheduler.Stats{Requested: 20, Drawn: 4}
	now = now.Add(500 * time.Millisecond)
	require.True(t, p.Tick())
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[Profiler] Draws/s: 2.00")
	assert.Contains(t, lines[0], "Requests: 20 | Drawn: 4 | Req/Draw: 5.00")

	stats = scheduler.Stats{Requested: 23, Drawn: 7}
	now = now.Add(time.Second)
	require.True(t, p.Tick())
	assert.Contains(t, lines[1], "Requests: 3 | Drawn: 3 | Req/Draw: 1.00")
}

func TestProfiler_WithoutRenderStats(t *testing.T) {
	now := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithOutput(func(s string) { lines = append(lines, s) }),
	)

	now = now.Add(2 * time.Second)
	require.True(t, p.Tick())
	assert.NotContains(t, lines[0], "Requests")
	assert.Contains(t, lines[0], "Heap:")
}
