package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	// Set via PACE_MININTERVAL in the environment
	MinInterval time.Duration
	// Set via PACE_MAXINTERVAL in the environment
	MaxInterval time.Duration
	// Set via PACE_MINITERS in the environment
	MinIters int64
	// Set via PACE_SMOOTHING in the environment
	Smoothing float64
	// Set via PACE_NOPROGRESS in the environment
	NoProgress bool
	// Set via PACE_DEBUG in the environment
	Debug bool
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"PACE_MININTERVAL": {"PACE_MININTERVAL", MinInterval, "Minimum time between renders (default \"100ms\")"},
		"PACE_MAXINTERVAL": {"PACE_MAXINTERVAL", MaxInterval, "Time after which a render is forced (default \"10s\", 0 disables)"},
		"PACE_MINITERS":    {"PACE_MINITERS", MinIters, "Starting count threshold between renders (default 1)"},
		"PACE_SMOOTHING":   {"PACE_SMOOTHING", Smoothing, "EMA smoothing factor in (0,1] (default 0.3)"},
		"PACE_NOPROGRESS":  {"PACE_NOPROGRESS", NoProgress, "Suppress the progress display (e.g. PACE_NOPROGRESS=1)"},
		"PACE_DEBUG":       {"PACE_DEBUG", Debug, "Show additional debug information (e.g. PACE_DEBUG=1)"},
	}
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

// LoadConfig resets the defaults and applies any PACE_* overrides from the
// environment. Malformed values are logged and ignored.
func LoadConfig() {
	MinInterval = 100 * time.Millisecond
	MaxInterval = 10 * time.Second
	MinIters = 1
	Smoothing = 0.3
	NoProgress = false
	Debug = false

	if v := clean("PACE_MININTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			slog.Error("invalid PACE_MININTERVAL", "value", v)
		} else {
			MinInterval = d
		}
	}

	if v := clean("PACE_MAXINTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			slog.Error("invalid PACE_MAXINTERVAL", "value", v)
		} else {
			MaxInterval = d
		}
	}

	if v := clean("PACE_MINITERS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			slog.Error("invalid PACE_MINITERS", "value", v)
		} else {
			MinIters = n
		}
	}

	if v := clean("PACE_SMOOTHING"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 1 {
			slog.Error("invalid PACE_SMOOTHING", "value", v)
		} else {
			Smoothing = f
		}
	}

	if v := clean("PACE_NOPROGRESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			NoProgress = true
		} else {
			NoProgress = b
		}
	}

	if v := clean("PACE_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			Debug = true
		} else {
			Debug = b
		}
	}
}
