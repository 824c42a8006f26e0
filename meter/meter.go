// Package meter implements an adaptive-rate progress meter. Each increment
// runs a cheap render-or-skip decision so that metering a tight loop costs
// little more than the loop itself; the count threshold between renders
// retunes itself from observed timing.
package meter

import (
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
)

// Renderer turns a progress snapshot into a single line of text. The meter
// never inspects the result beyond writing it to the sink.
type Renderer interface {
	Render(Snapshot) string
}

// Snapshot is the state handed to a Renderer on each render.
type Snapshot struct {
	Description string
	N           int64
	Total       int64 // 0 when unknown
	Elapsed     time.Duration
	Rate        float64 // units per second, meaningful only when RateOK
	RateOK      bool
	Percent     float64 // -1 when Total unknown
}

// Meter tracks progress applied through Update and renders it to the sink
// whenever the throttle decides a render is due.
//
// A Meter is single-writer: concurrent Update calls need external locking.
// The sink is never closed by the meter; ownership stays with the caller.
type Meter struct {
	desc  string
	total int64
	leave bool

	clock    clock.Clock
	renderer Renderer
	sink     io.Writer

	rate     RateEstimator
	throttle throttle

	n             int64
	start         time.Time
	lastRenderAt  time.Time
	lastRenderN   int64
	finalRendered bool
	closed        bool
	err           error
}

// Update applies delta to the progress count and renders if the throttle
// allows it. Negative deltas are accepted to correct overcounting. A sink
// write failure is returned from the call that triggered it; the delta is
// still counted, so the caller may continue after handling the error.
func (m *Meter) Update(delta int64) error {
	m.n += delta
	if m.closed {
		return nil
	}

	if m.total > 0 && m.n >= m.total {
		// terminal step renders exactly once
		if m.finalRendered {
			return nil
		}
		m.finalRendered = true
		return m.render(m.clock.Now())
	}

	// hot path: one integer compare, usually no clock read. The max-interval
	// force still applies while the count gate holds, checked on a geometric
	// poll schedule so a producer that slowed down after a fast phase cannot
	// leave the display stale.
	if m.n-m.lastRenderN < m.throttle.gate {
		if m.throttle.pollClock() {
			now := m.clock.Now()
			if elapsed := now.Sub(m.lastRenderAt); elapsed >= m.throttle.maxInterval {
				m.throttle.tune(m.n-m.lastRenderN, elapsed, true)
				return m.render(now)
			}
		}
		return nil
	}

	now := m.clock.Now()
	elapsed := now.Sub(m.lastRenderAt)
	forced := m.throttle.maxInterval > 0 && elapsed >= m.throttle.maxInterval
	if !forced && elapsed < m.throttle.minInterval {
		m.throttle.backoff(m.n - m.lastRenderN)
		return nil
	}

	m.throttle.tune(m.n-m.lastRenderN, elapsed, forced)
	return m.render(now)
}

// Close renders the final state once. With leave enabled the rendered line
// persists followed by a newline; otherwise the line is cleared. A second
// Close is a no-op.
func (m *Meter) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	if !m.leave {
		if _, err := io.WriteString(m.sink, "\033[2K\033[1G"); err != nil {
			return m.fail(fmt.Errorf("clear at %d/%d: %w", m.n, m.total, err))
		}
		return nil
	}

	if err := m.render(m.clock.Now()); err != nil {
		return err
	}
	if _, err := io.WriteString(m.sink, "\n"); err != nil {
		return m.fail(fmt.Errorf("render at %d/%d: %w", m.n, m.total, err))
	}
	return nil
}

// fail latches the first write failure for Err and passes it through.
func (m *Meter) fail(err error) error {
	if m.err == nil {
		m.err = err
	}
	return err
}

// N returns the accumulated progress count.
func (m *Meter) N() int64 {
	return m.n
}

// Err returns the first render failure. The iteration adapters have no way
// to surface a write error mid-loop, so they latch it here instead.
func (m *Meter) Err() error {
	return m.err
}

// SetTotal replaces the expected total. Non-positive values mark the total
// as unknown. Raising the total above the current count re-arms the terminal
// render, so reaching the new total renders again.
func (m *Meter) SetTotal(total int64) {
	if total < 0 {
		total = 0
	}
	if total > m.n {
		m.finalRendered = false
	}
	m.total = total
}

// SetDescription replaces the description shown by the renderer.
func (m *Meter) SetDescription(desc string) {
	m.desc = desc
}

func (m *Meter) render(now time.Time) error {
	if done, interval := m.n-m.lastRenderN, now.Sub(m.lastRenderAt); done > 0 && interval > 0 {
		m.rate.Observe(done, interval)
	}
	m.lastRenderAt = now
	m.lastRenderN = m.n
	m.throttle.resetPoll()

	if _, err := fmt.Fprintf(m.sink, "\r%s\033[K", m.renderer.Render(m.snapshot(now))); err != nil {
		return m.fail(fmt.Errorf("render at %d/%d: %w", m.n, m.total, err))
	}
	return nil
}

func (m *Meter) snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Description: m.desc,
		N:           m.n,
		Total:       m.total,
		Elapsed:     now.Sub(m.start),
		Percent:     -1,
	}
	s.Rate, s.RateOK = m.rate.Rate()
	if m.total > 0 {
		s.Percent = float64(m.n) / float64(m.total) * 100
	}
	return s
}
