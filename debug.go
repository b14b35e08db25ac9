package evergreen

import (
	"time"
)

// debugLogInterval is how much simulated time passes between stat lines.
const debugLogInterval = 1.0

// debugStats accumulates per-frame update timings between log lines.
// Only populated when Scene.debug is true.
type debugStats struct {
	frames int
	total  time.Duration
	worst  time.Duration
	window float64
}

// SetDebugMode enables frame timing logs at debug level.
func (s *Scene) SetDebugMode(on bool) {
	s.debug = on
	s.debugStats = debugStats{}
}

// recordFrame adds one frame's update time and logs once per interval.
func (s *Scene) recordFrame(d time.Duration, dt float64) {
	st := &s.debugStats
	st.frames++
	st.total += d
	if d > st.worst {
		st.worst = d
	}
	st.window += dt
	if st.window < debugLogInterval {
		return
	}
	s.debugLog(*st)
	*st = debugStats{}
}

// debugLog writes one line of frame stats.
func (s *Scene) debugLog(st debugStats) {
	if !s.debug || st.frames == 0 {
		return
	}
	s.log.Debug("frame stats",
		"frames", st.frames,
		"avg", st.total/time.Duration(st.frames),
		"worst", st.worst,
		"mode", s.ctrl.mode,
		"photos", len(s.photoBuf),
		"angle", s.rotator.Angle(),
	)
}
