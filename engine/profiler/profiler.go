package profiler

import (
	"log"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

// scopeStats accumulates the timings of one named scope between reports.
type scopeStats struct {
	calls int
	total time.Duration
	max   time.Duration
}

// Profiler tracks frame rate, memory statistics and named scope timings.
// Outputs stats to the log at a configurable interval.
//
// A nil *Profiler is valid and records nothing, so callers can wrap work in
// scopes unconditionally.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	scopes map[string]*scopeStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: time.Second,
		scopes:         make(map[string]*scopeStats),
	}
}

// SetUpdateInterval changes how often Tick reports.
func (p *Profiler) SetUpdateInterval(d time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateInterval = d
}

// Scope starts timing a named section of work and returns the function that ends it.
// Intended use is `defer p.Scope("SortVisibleLights")()`.
//
// Parameters:
//   - name: the scope name
//
// Returns:
//   - func(): ends the scope and records its duration
func (p *Profiler) Scope(name string) func() {
	if p == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.record(name, time.Since(start))
	}
}

func (p *Profiler) record(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.scopes[name]
	if !ok {
		s = &scopeStats{}
		p.scopes[name] = s
	}
	s.calls++
	s.total += d
	s.max = max(s.max, d)
}

// ScopeStats returns how many times a scope ran and its total duration since the last report.
//
// Parameters:
//   - name: the scope name
//
// Returns:
//   - int: number of completed scopes
//   - time.Duration: accumulated duration
func (p *Profiler) ScopeStats(name string) (int, time.Duration) {
	if p == nil {
		return 0, 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.scopes[name]
	if !ok {
		return 0, 0
	}
	return s.calls, s.total
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times,
// total memory, and the average and worst time of every scope.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
	if line := p.scopeSummary(); line != "" {
		log.Printf("[Profiler] %s", line)
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	clear(p.scopes)
	return true
}

// scopeSummary formats every scope as "name: avg (max worst)". Caller holds p.mu.
func (p *Profiler) scopeSummary() string {
	if len(p.scopes) == 0 {
		return ""
	}
	names := make([]string, 0, len(p.scopes))
	for name := range p.scopes {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for i, name := range names {
		s := p.scopes[name]
		if i > 0 {
			b.WriteString(" | ")
		}
		avg := s.total / time.Duration(s.calls)
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(formatMicros(avg))
		b.WriteString(" (max ")
		b.WriteString(formatMicros(s.max))
		b.WriteString(")")
	}
	return b.String()
}

func formatMicros(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
