package format

import (
	"fmt"
	"time"
)

// ShortDuration limits the rendering of a time.Duration to 2 units
func ShortDuration(d time.Duration) string {
	if d >= 100*time.Hour {
		return "99h+"
	}

	if d >= time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}

	return d.Round(time.Second).String()
}
