package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// RuntimeStats is a point-in-time view of the Go runtime
type RuntimeStats struct {
	Goroutines   int64         `json:"goroutines"`
	HeapAlloc    uint64        `json:"heap_alloc_bytes"`
	SystemMemory uint64        `json:"system_memory_bytes"`
	GCCount      uint32        `json:"gc_count"`
	LastGCPause  time.Duration `json:"last_gc_pause_ns"`
	CPUCount     int           `json:"cpu_count"`
	Uptime       time.Duration `json:"uptime_ns"`
	Timestamp    time.Time     `json:"timestamp"`
}

// ReadRuntimeStats samples the runtime. startTime anchors Uptime.
func ReadRuntimeStats(startTime time.Time) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		Goroutines:   int64(runtime.NumGoroutine()),
		HeapAlloc:    mem.HeapAlloc,
		SystemMemory: mem.Sys,
		GCCount:      mem.NumGC,
		LastGCPause:  time.Duration(mem.PauseNs[(mem.NumGC+255)%256]),
		CPUCount:     runtime.NumCPU(),
		Uptime:       time.Since(startTime),
		Timestamp:    time.Now(),
	}
}

// RuntimeCollector periodically records RuntimeStats as gauges
type RuntimeCollector struct {
	goroutines metric.Int64Gauge
	heapAlloc  metric.Int64Gauge
	uptime     metric.Float64Gauge

	startTime time.Time
	interval  time.Duration

	mu   sync.RWMutex
	last RuntimeStats

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRuntimeCollector creates the gauges on meter. A nil meter yields no-op gauges.
func NewRuntimeCollector(meter metric.Meter, interval time.Duration) (*RuntimeCollector, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(MeterName)
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}

	goroutines, err1 := meter.Int64Gauge("shell_goroutines",
		metric.WithDescription("Number of goroutines"))
	heapAlloc, err2 := meter.Int64Gauge("shell_heap_alloc_bytes",
		metric.WithDescription("Heap bytes allocated"), metric.WithUnit("By"))
	uptime, err3 := meter.Float64Gauge("shell_uptime_seconds",
		metric.WithDescription("Process uptime"), metric.WithUnit("s"))
	if err := errors.Join(err1, err2, err3); err != nil {
		return nil, fmt.Errorf("failed to create runtime metrics: %w", err)
	}

	c := &RuntimeCollector{
		goroutines: goroutines,
		heapAlloc:  heapAlloc,
		uptime:     uptime,
		startTime:  time.Now(),
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
	c.collect(context.Background())
	return c, nil
}

// Start collects until ctx is done or Stop is called
func (c *RuntimeCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect(ctx)
		case <-c.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends collection. It is safe to call more than once.
func (c *RuntimeCollector) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Latest returns the most recent sample
func (c *RuntimeCollector) Latest() RuntimeStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// StartTime returns when the collector was created
func (c *RuntimeCollector) StartTime() time.Time {
	return c.startTime
}

func (c *RuntimeCollector) collect(ctx context.Context) {
	stats := ReadRuntimeStats(c.startTime)

	c.goroutines.Record(ctx, stats.Goroutines)
	c.heapAlloc.Record(ctx, int64(stats.HeapAlloc))
	c.uptime.Record(ctx, stats.Uptime.Seconds())

	c.mu.Lock()
	c.last = stats
	c.mu.Unlock()
}
