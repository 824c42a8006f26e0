package meter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/pace-tools/pace/envconfig"
)

// ErrInvalidConfig wraps every configuration error returned by New.
var ErrInvalidConfig = errors.New("invalid meter config")

// Options configures a Meter. Pointer fields distinguish "unset, use the
// default" from an explicit zero; Bool, Int64 and Duration build them from
// literals. Unset fields fall back to the PACE_* environment defaults
// loaded by the envconfig package.
type Options struct {
	// Description is passed through to the renderer.
	Description string

	// Total is the expected final count, or 0 when unknown.
	Total int64

	// MinInterval is the minimum time between renders. Zero disables the
	// time gate. Default: 100ms (PACE_MININTERVAL).
	MinInterval *time.Duration

	// MaxInterval forces a render whenever this much time passed since the
	// last one, regardless of the count gate. Zero disables the force.
	// Default: 10s (PACE_MAXINTERVAL).
	MaxInterval *time.Duration

	// MinIters is the starting count threshold between renders.
	// Default: 1 (PACE_MINITERS).
	MinIters *int64

	// DynamicMinIters retunes the count threshold from observed timing
	// after each render. Default: enabled when MinInterval > 0.
	DynamicMinIters *bool

	// Smoothing is the EMA factor in (0, 1] for the rate estimate and the
	// dynamic threshold. Default: 0.3 (PACE_SMOOTHING).
	Smoothing float64

	// Leave keeps the final render visible after Close instead of clearing
	// it. Default: true.
	Leave *bool

	// Renderer formats snapshots. Default: Text.
	Renderer Renderer

	// Sink receives rendered lines. Default: os.Stderr.
	Sink io.Writer

	// Clock supplies time. Default: the wall clock, which carries a
	// monotonic reading in Go.
	Clock clock.Clock
}

// Bool returns a pointer to v, for use in Options literals.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v, for use in Options literals.
func Int64(v int64) *int64 { return &v }

// Duration returns a pointer to d, for use in Options literals.
func Duration(d time.Duration) *time.Duration { return &d }

// New validates opts and returns a ready Meter. Configuration problems are
// reported here and never during metering.
func New(opts Options) (*Meter, error) {
	if opts.Total < 0 {
		return nil, fmt.Errorf("%w: total %d is negative", ErrInvalidConfig, opts.Total)
	}

	minInterval := envconfig.MinInterval
	if opts.MinInterval != nil {
		minInterval = *opts.MinInterval
	}
	if minInterval < 0 {
		return nil, fmt.Errorf("%w: min interval %s is negative", ErrInvalidConfig, minInterval)
	}

	maxInterval := envconfig.MaxInterval
	if opts.MaxInterval != nil {
		maxInterval = *opts.MaxInterval
	}
	if maxInterval < 0 {
		return nil, fmt.Errorf("%w: max interval %s is negative", ErrInvalidConfig, maxInterval)
	}

	minIters := envconfig.MinIters
	if opts.MinIters != nil {
		minIters = *opts.MinIters
	}
	if minIters < 0 {
		return nil, fmt.Errorf("%w: min iters %d is negative", ErrInvalidConfig, minIters)
	}
	if minIters == 0 {
		minIters = 1
	}

	smoothing := opts.Smoothing
	if smoothing == 0 {
		smoothing = envconfig.Smoothing
	}
	if smoothing <= 0 || smoothing > 1 {
		return nil, fmt.Errorf("%w: smoothing %g is outside (0, 1]", ErrInvalidConfig, smoothing)
	}

	dynamic := minInterval > 0
	if opts.DynamicMinIters != nil {
		dynamic = *opts.DynamicMinIters
	}

	leave := true
	if opts.Leave != nil {
		leave = *opts.Leave
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	sink := opts.Sink
	if sink == nil {
		sink = os.Stderr
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = Text{}
	}

	now := clk.Now()
	return &Meter{
		desc:         opts.Description,
		total:        opts.Total,
		leave:        leave,
		clock:        clk,
		renderer:     renderer,
		sink:         sink,
		rate:         RateEstimator{alpha: smoothing},
		throttle:     newThrottle(minInterval, maxInterval, minIters, dynamic, smoothing),
		start:        now,
		lastRenderAt: now,
	}, nil
}
