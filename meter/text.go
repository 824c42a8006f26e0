package meter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pace-tools/pace/format"
)

// Text is the default renderer: a plain single-line summary with no
// terminal control, suitable for any sink.
type Text struct{}

func (Text) Render(s Snapshot) string {
	var sb strings.Builder

	if s.Description != "" {
		sb.WriteString(s.Description)
		sb.WriteString(" ")
	}

	if s.Total > 0 {
		fmt.Fprintf(&sb, "%3.0f%% (%s/%s", math.Floor(s.Percent), humanCount(s.N), humanCount(s.Total))
		if s.RateOK {
			fmt.Fprintf(&sb, ", %s/s", humanCount(int64(math.Round(s.Rate))))
		}
		sb.WriteString(")")
	} else {
		sb.WriteString(humanCount(s.N))
		if s.RateOK {
			fmt.Fprintf(&sb, " (%s/s)", humanCount(int64(math.Round(s.Rate))))
		}
	}

	fmt.Fprintf(&sb, " [%s", format.ShortDuration(s.Elapsed))
	if remaining, ok := remainingTime(s); ok {
		fmt.Fprintf(&sb, ":%s", format.ShortDuration(remaining))
	}
	sb.WriteString("]")

	return sb.String()
}

func humanCount(n int64) string {
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}
	return format.HumanNumber(uint64(n))
}

func remainingTime(s Snapshot) (time.Duration, bool) {
	if s.Total <= 0 || !s.RateOK || s.Rate <= 0 || s.N >= s.Total {
		return 0, false
	}
	return time.Duration(float64(s.Total-s.N) / s.Rate * float64(time.Second)), true
}
