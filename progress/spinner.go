package progress

import (
	"fmt"
	"math"
	"strings"

	"github.com/pace-tools/pace/format"
	"github.com/pace-tools/pace/meter"
)

// Spinner renders snapshots with an unknown total. The frame advances one
// step per render call; the meter's throttle sets the animation pace.
type Spinner struct {
	parts []string
	value int
	bytes bool
}

func NewSpinner() *Spinner {
	return &Spinner{
		parts: []string{
			"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏",
		},
	}
}

// NewBytesSpinner returns a spinner that formats counts as byte sizes.
func NewBytesSpinner() *Spinner {
	s := NewSpinner()
	s.bytes = true
	return s
}

func (s *Spinner) Render(snap meter.Snapshot) string {
	var sb strings.Builder

	if snap.Description != "" {
		sb.WriteString(strings.TrimSpace(snap.Description))
		sb.WriteString(" ")
	}

	sb.WriteString(s.parts[s.value])
	s.value = (s.value + 1) % len(s.parts)

	fmt.Fprintf(&sb, " %s", s.count(snap.N))
	if snap.RateOK {
		fmt.Fprintf(&sb, " (%s/s)", s.count(int64(math.Round(snap.Rate))))
	}
	fmt.Fprintf(&sb, " [%s]", format.ShortDuration(snap.Elapsed))

	return sb.String()
}

func (s *Spinner) count(n int64) string {
	if s.bytes {
		return format.HumanBytes(n)
	}
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}
	return format.HumanNumber(uint64(n))
}
