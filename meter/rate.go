package meter

import "time"

// RateEstimator smooths instantaneous throughput observations with an
// exponential moving average. The first observation seeds the average
// directly; later observations blend in with weight alpha.
type RateEstimator struct {
	alpha  float64
	ema    float64
	seeded bool
}

// NewRateEstimator returns an estimator with the given smoothing factor.
// alpha must be in (0, 1]; the meter validates it at construction.
func NewRateEstimator(alpha float64) *RateEstimator {
	return &RateEstimator{alpha: alpha}
}

// Observe feeds one interval into the estimator and returns the smoothed
// rate in units per second. Callers must discard intervals with no progress
// or no duration before calling.
func (e *RateEstimator) Observe(deltaN int64, deltaT time.Duration) float64 {
	inst := float64(deltaN) / deltaT.Seconds()
	if !e.seeded {
		e.ema = inst
		e.seeded = true
	} else {
		e.ema = e.alpha*inst + (1-e.alpha)*e.ema
	}
	return e.ema
}

// Rate returns the smoothed rate and whether any observation defined it yet.
func (e *RateEstimator) Rate() (float64, bool) {
	return e.ema, e.seeded
}
