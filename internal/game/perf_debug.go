package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsThreshold = 30.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	g := gl.game
	if !g.perfDebugEnabled {
		return
	}
	fps := ebiten.ActualFPS()
	if g.shouldLogPerf(time.Now(), fps) {
		gl.logPerfSnapshot(fps)
	}
}

// shouldLogPerf reports whether the frame rate has stayed low long enough to
// log, at most once per perfLogInterval
func (g *RaycastGame) shouldLogPerf(now time.Time, fps float64) bool {
	if fps >= perfLowFpsThreshold {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return false
	}

	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return false
	}

	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return false
	}

	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return false
	}

	g.perfLastPerfLog = now
	return true
}

func (gl *GameLoop) logPerfSnapshot(fps float64) {
	g := gl.game
	stats := g.room.Monitor().GetDetailedStats()

	causes := make([]string, 0, 3)
	if g.debug {
		causes = append(causes, "debug ray fan")
	}
	if n := len(g.room.Sprites()); n > 50 {
		causes = append(causes, fmt.Sprintf("sprites (%d)", n))
	}
	if view := g.room.View(); view != nil {
		if w, h := view.Size(); w*h > 1920*1080 {
			causes = append(causes, fmt.Sprintf("large view (%dx%d)", w, h))
		}
	}

	causeText := "none obvious"
	if len(causes) > 0 {
		causeText = strings.Join(causes, ", ")
	}

	p := g.room.Player()
	fmt.Printf(
		"[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f causes=%s\n",
		perfLowFpsThreshold,
		perfLowFpsDuration,
		fps,
		ebiten.ActualTPS(),
		causeText,
	)
	fmt.Printf(
		"[PERF] map=%dx%d sprites=%d drawn=%d removed=%d player=(%.2f, %.2f) paused=%v\n",
		g.room.Grid().Width,
		g.room.Grid().Height,
		len(g.room.Sprites()),
		getPerfInt(stats, "sprites_drawn"),
		getPerfInt(stats, "sprites_removed"),
		p.X,
		p.Y,
		g.paused,
	)
	fmt.Printf(
		"[PERF] update=%.2fms draw=%.2fms budget=%.2fms idle=%.2fms avg_frame=%.2fms raycast=%.2fms sprites=%.2fms minimap=%.2fms vsync=%v target_tps=%d\n",
		float64(gl.lastUpdateDuration.Microseconds())/1000.0,
		float64(gl.lastDrawDuration.Microseconds())/1000.0,
		frameBudgetMs(fps),
		idleBudgetMs(fps, gl.lastUpdateDuration, gl.lastDrawDuration),
		getPerfFloat(stats, "avg_frame_time_ms"),
		getPerfFloat(stats, "avg_raycast_time_ms"),
		getPerfFloat(stats, "sprite_time_ms"),
		getPerfFloat(stats, "minimap_time_ms"),
		ebiten.IsVsyncEnabled(),
		g.config.GetTPS(),
	)
	fmt.Printf(
		"[PERF] mem_used=%.2fMB mem_total=%.2fMB mem_sys=%.2fMB gc_cycles=%d goroutines=%d\n",
		getPerfFloat(stats, "memory_used_mb"),
		getPerfFloat(stats, "memory_total_mb"),
		getPerfFloat(stats, "memory_sys_mb"),
		getPerfInt(stats, "gc_cycles"),
		getPerfInt(stats, "goroutines"),
	)

	last := g.room.Monitor().GetCurrentMetrics()
	fmt.Printf(
		"[PERF] last_frame=%.2fms last_raycast=%.2fms last_sprites=%.2fms frame_fps=%.1f\n",
		durationMs(last.FrameTime),
		durationMs(last.RaycastTime),
		durationMs(last.SpriteTime),
		last.FramesPerSecond,
	)

	for _, alert := range g.room.Monitor().CheckPerformanceAlerts() {
		fmt.Printf("[PERF] alert %s: %s (%.1f, threshold %.0f)\n", alert.Type, alert.Message, alert.Value, alert.Threshold)
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int32:
			return float64(v)
		case uint32:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int32:
			return int(v)
		case uint32:
			return int(v)
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}
