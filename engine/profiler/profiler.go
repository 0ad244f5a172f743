package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-pcv/engine/scheduler"
)

// Profiler reports draw rate, render-request coalescing and memory statistics.
// A viewer only draws when something changed, so the rate it reports is frames drawn
// per second rather than a steady refresh rate.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64

	renderStats func() scheduler.Stats
	lastStats   scheduler.Stats

	now    func() time.Time
	output func(string)
}

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are reported. Defaults to 1 second.
//
// Parameters:
//   - interval: the report interval
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the interval
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithRenderStats attaches a source of scheduler counters so reports include how many
// render requests were folded into each drawn frame.
//
// Parameters:
//   - source: returns the current scheduler counters
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the stats source
func WithRenderStats(source func() scheduler.Stats) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.renderStats = source
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithOutput replaces the log sink. Defaults to log.Println.
func WithOutput(output func(string)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.output = output
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		output:         func(s string) { log.Println(s) },
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per drawn frame.
// When the update interval has elapsed it logs frames per second, requests per frame,
// heap usage and allocation rate.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	p.output(p.report(elapsed))

	p.frameCount = 0
	p.lastTime = current
	return true
}

// report formats one statistics line and advances the memory and scheduler baselines.
func (p *Profiler) report(elapsed time.Duration) string {
	seconds := elapsed.Seconds()
	line := fmt.Sprintf("[Profiler] Draws/s: %.2f", float64(p.frameCount)/seconds)

	if p.renderStats != nil {
		stats := p.renderStats()
		requested := stats.Requested - p.lastStats.Requested
		drawn := stats.Drawn - p.lastStats.Drawn
		ratio := 0.0
		if drawn > 0 {
			ratio = float64(requested) / float64(drawn)
		}
		line += fmt.Sprintf(" | Requests: %d | Drawn: %d | Req/Draw: %.2f", requested, drawn, ratio)
		p.lastStats = stats
	}

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds
	p.lastTotalAlloc = p.memStats.TotalAlloc

	return line + fmt.Sprintf(" | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d", heapMB, allocRateMB, p.memStats.NumGC)
}
