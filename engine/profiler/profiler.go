package profiler

import (
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
)

// Profiler tracks frame rate, per-phase frame timings and memory statistics.
// Outputs stats to its logger at a configurable interval.
type Profiler struct {
	mu             sync.Mutex
	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	frameTime  time.Duration
	frameTotal time.Duration
	phases     map[string]time.Duration

	logger *slog.Logger
	now    func() time.Time
}

// Stats is one reporting window of the Profiler.
type Stats struct {
	FPS           float64
	FrameTime     time.Duration
	MeanFrameTime time.Duration
	// Phases holds the mean duration of each recorded phase over the window.
	Phases map[string]time.Duration

	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// LogValue flattens the stats into slog attributes.
func (s Stats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("fps", formatFloat(s.FPS)),
		slog.Duration("frame", s.FrameTime),
		slog.Duration("mean", s.MeanFrameTime),
	}
	for _, name := range sortedKeys(s.Phases) {
		attrs = append(attrs, slog.Duration(name, s.Phases[name]))
	}
	attrs = append(attrs,
		slog.String("heap_mb", formatFloat(s.HeapMB)),
		slog.String("alloc_mb_s", formatFloat(s.AllocRateMB)),
		slog.Uint64("gc", uint64(s.GCCount)),
		slog.Uint64("gc_last_us", s.LastPauseUs),
		slog.Uint64("gc_max_us", s.MaxPauseUs),
		slog.String("sys_mb", formatFloat(s.SysMB)),
	)
	return slog.GroupValue(attrs...)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		phases:         make(map[string]time.Duration),
		logger:         logx.Nop(),
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p
}

// RecordPhase adds the duration of one frame phase to the current window.
//
// Parameters:
//   - phase: the phase name, e.g. "update"
//   - d: how long the phase took
func (p *Profiler) RecordPhase(phase string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phases[phase] += d
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, frame time, mean frame time, mean phase times, heap usage,
// allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	stats, ok := p.tick()
	if ok {
		p.logger.Info("profiler", "stats", stats)
	}
	return ok
}

func (p *Profiler) tick() (Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	p.frameTime = currentTime.Sub(p.lastFrame)
	p.frameTotal += p.frameTime
	p.lastFrame = currentTime

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	stats := Stats{
		FPS:           float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:     p.frameTime,
		MeanFrameTime: p.frameTotal / time.Duration(p.frameCount),
		Phases:        make(map[string]time.Duration, len(p.phases)),
	}
	for name, total := range p.phases {
		stats.Phases[name] = total / time.Duration(p.frameCount)
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	stats.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	stats.SysMB = float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	stats.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	stats.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > stats.MaxPauseUs {
				stats.MaxPauseUs = pause
			}
		}
	}

	p.frameCount = 0
	p.frameTotal = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	clear(p.phases)
	return stats, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func sortedKeys(m map[string]time.Duration) []string {
	return slices.Sorted(maps.Keys(m))
}
