// Package monitoring tracks frame, raycast and sprite pass timings plus
// sampled memory statistics for the HUD and the periodic perf log.
package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const bytesPerMB = 1024 * 1024

// PerformanceMonitor tracks per-frame performance metrics
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Rendering metrics
	raycastTime    atomic.Uint64
	raycastCount   atomic.Uint64
	spriteTime     atomic.Uint64
	minimapTime    atomic.Uint64
	spritesDrawn   atomic.Int32
	spritesRemoved atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	memory         MemoryStats
	memorySampled  time.Time
	startTime      time.Time

	// Configuration
	enableDetailed bool
	sampleInterval time.Duration
}

// MemoryStats is a heap snapshot in megabytes
type MemoryStats struct {
	UsedMB  float64 // Live heap objects
	TotalMB float64 // Heap obtained from the OS
	SysMB   float64 // Everything the runtime obtained from the OS
	NumGC   uint32
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
		sampleInterval: time.Second,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.RecordFrame(time.Since(ft.startTime))
}

// RecordFrame stores a frame duration measured by the host
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	count := pm.frameCount.Add(1)

	if !pm.detailed() {
		return
	}
	// Running mean over all frames since the last reset
	pm.mutex.Lock()
	pm.avgFrameTime += (float64(d.Nanoseconds()) - pm.avgFrameTime) / float64(count)
	pm.mutex.Unlock()
}

// RecordSprites stores the sprite pass outcome for the current frame
func (pm *PerformanceMonitor) RecordSprites(drawn int, removed int) {
	pm.spritesDrawn.Store(int32(drawn))
	pm.spritesRemoved.Add(uint64(removed))
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	// Store timing based on function name
	switch name {
	case "raycast":
		pm.recordRaycast(duration)
	case "sprite_render":
		pm.spriteTime.Store(uint64(duration.Nanoseconds()))
	case "minimap":
		pm.minimapTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

// recordRaycast stores the latest sweep time and folds it into the running mean
func (pm *PerformanceMonitor) recordRaycast(d time.Duration) {
	pm.raycastTime.Store(uint64(d.Nanoseconds()))
	count := pm.raycastCount.Add(1)

	if !pm.detailed() {
		return
	}
	pm.mutex.Lock()
	pm.avgRaycastTime += (float64(d.Nanoseconds()) - pm.avgRaycastTime) / float64(count)
	pm.mutex.Unlock()
}

// Memory returns heap statistics. runtime.ReadMemStats stops the world, so
// the snapshot is refreshed at most once per sample interval.
func (pm *PerformanceMonitor) Memory() MemoryStats {
	now := time.Now()

	pm.mutex.RLock()
	fresh := !pm.memorySampled.IsZero() && now.Sub(pm.memorySampled) < pm.sampleInterval
	cached := pm.memory
	pm.mutex.RUnlock()
	if fresh {
		return cached
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats := MemoryStats{
		UsedMB:  float64(memStats.HeapAlloc) / bytesPerMB,
		TotalMB: float64(memStats.HeapSys) / bytesPerMB,
		SysMB:   float64(memStats.Sys) / bytesPerMB,
		NumGC:   memStats.NumGC,
	}

	pm.mutex.Lock()
	pm.memory = stats
	pm.memorySampled = now
	pm.mutex.Unlock()
	return stats
}

// FrameMetrics is a snapshot of the latest frame
type FrameMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	SpriteTime      time.Duration
	SpritesDrawn    int32
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	frameTime := pm.frameTime.Load()
	return FrameMetrics{
		FramesPerSecond: fpsFromNanos(frameTime),
		FrameTime:       time.Duration(frameTime),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		SpriteTime:      time.Duration(pm.spriteTime.Load()),
		SpritesDrawn:    pm.spritesDrawn.Load(),
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	mem := pm.Memory()

	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	uptime := time.Since(pm.startTime)

	return map[string]interface{}{
		"uptime_seconds":      uptime.Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1000000, // Convert to milliseconds
		"avg_raycast_time_ms": pm.avgRaycastTime / 1000000,
		"sprite_time_ms":      float64(pm.spriteTime.Load()) / 1000000,
		"minimap_time_ms":     float64(pm.minimapTime.Load()) / 1000000,
		"current_fps":         fpsFromNanos(pm.frameTime.Load()),
		"sprites_drawn":       pm.spritesDrawn.Load(),
		"sprites_removed":     pm.spritesRemoved.Load(),
		"memory_used_mb":      mem.UsedMB,
		"memory_total_mb":     mem.TotalMB,
		"memory_sys_mb":       mem.SysMB,
		"gc_cycles":           mem.NumGC,
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	// Check frame rate
	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := fpsFromNanos(frameTime)
		if fps < 30 { // Alert if FPS drops below 30
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: currentTime,
			})
		}
	}

	// Check memory usage
	if mem := pm.Memory(); mem.UsedMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     mem.UsedMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// SetSampleInterval changes how long a memory snapshot stays valid
func (pm *PerformanceMonitor) SetSampleInterval(d time.Duration) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.sampleInterval = d
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.raycastCount.Store(0)
	pm.spriteTime.Store(0)
	pm.minimapTime.Store(0)
	pm.spritesDrawn.Store(0)
	pm.spritesRemoved.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.memorySampled = time.Time{}
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

func (pm *PerformanceMonitor) detailed() bool {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return pm.enableDetailed
}

func fpsFromNanos(frameTime uint64) float64 {
	if frameTime == 0 {
		return 0
	}
	return 1000000000.0 / float64(frameTime) // Convert nanoseconds to FPS
}
