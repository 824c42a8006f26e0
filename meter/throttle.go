package meter

import "time"

// dynamicFloor is the implied render interval used to back the count gate
// off when no MinInterval is configured but dynamic tuning is on.
const dynamicFloor = 10 * time.Millisecond

// throttle gates renders on a count threshold first and a time threshold
// second. Between renders the only cost per increment is one integer
// compare against gate; the clock is read only once the count gate passes.
type throttle struct {
	minInterval time.Duration
	maxInterval time.Duration
	dynamic     bool
	alpha       float64

	miniters float64
	gate     int64

	skips    int64
	nextPoll int64
}

func newThrottle(minInterval, maxInterval time.Duration, minIters int64, dynamic bool, alpha float64) throttle {
	return throttle{
		minInterval: minInterval,
		maxInterval: maxInterval,
		dynamic:     dynamic,
		alpha:       alpha,
		miniters:    float64(minIters),
		gate:        minIters,
		nextPoll:    1,
	}
}

// tune moves the count gate toward the point where it passes about once per
// minInterval, so the time gate rarely needs consulting. A forced render
// (maxInterval exceeded) resets the gate outright so a stalled producer
// recovers in one step instead of several blends.
func (t *throttle) tune(done int64, elapsed time.Duration, forced bool) {
	if !t.dynamic || elapsed <= 0 {
		return
	}

	switch {
	case forced && t.minInterval > 0:
		t.miniters = float64(done) * t.minInterval.Seconds() / elapsed.Seconds()
	case t.minInterval > 0:
		target := float64(done) * t.minInterval.Seconds() / elapsed.Seconds()
		t.miniters = t.alpha*target + (1-t.alpha)*t.miniters
	case elapsed < dynamicFloor:
		// no time target to aim for; back off geometrically while renders
		// arrive faster than the floor
		t.miniters *= 2
	default:
		t.miniters = t.alpha*float64(done) + (1-t.alpha)*t.miniters
	}

	if t.miniters < 1 {
		t.miniters = 1
	}
	t.gate = int64(t.miniters)
}

// pollClock reports whether an increment held back by the count gate should
// still sample the clock for the max-interval force. Polls follow a doubling
// schedule, so a producer that slowed down after tuning the gate high costs
// O(log) clock reads between renders instead of one per increment.
func (t *throttle) pollClock() bool {
	if t.maxInterval <= 0 {
		return false
	}
	t.skips++
	if t.skips < t.nextPoll {
		return false
	}
	t.nextPoll <<= 1
	return true
}

func (t *throttle) resetPoll() {
	t.skips = 0
	t.nextPoll = 1
}

// backoff widens the gate while the time gate keeps failing, so a burst
// samples the clock geometrically instead of once per increment before its
// first render.
func (t *throttle) backoff(done int64) {
	if !t.dynamic {
		return
	}
	if g := done * 2; g > t.gate {
		t.gate = g
		if f := float64(g); f > t.miniters {
			t.miniters = f
		}
	}
}
