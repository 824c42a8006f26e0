// Package progress provides terminal renderers for meter snapshots: a
// block-glyph bar for known totals and a spinner for unbounded work.
package progress

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/colorstring"
	"golang.org/x/term"

	"github.com/pace-tools/pace/format"
	"github.com/pace-tools/pace/meter"
)

const defaultTermWidth = 80

// statsWidth is the column budget for the stats on the right of the bar.
const statsWidth = 44

// Bar renders a snapshot as a progress bar sized to the terminal width.
type Bar struct {
	messageWidth int
	color        string
	bytes        bool
}

func NewBar() *Bar {
	return &Bar{messageWidth: -1}
}

// NewBytesBar returns a bar that formats counts as byte sizes.
func NewBytesBar() *Bar {
	return &Bar{messageWidth: -1, bytes: true}
}

// SetColor sets a colorstring color name for the bar fill, e.g. "green".
func (b *Bar) SetColor(name string) {
	b.color = name
}

// SetMessageWidth fixes the description column to w display cells.
func (b *Bar) SetMessageWidth(w int) {
	b.messageWidth = w
}

func (b *Bar) Render(s meter.Snapshot) string {
	termWidth, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil {
		termWidth = defaultTermWidth
	}

	var pre, mid, suf strings.Builder

	if s.Description != "" {
		message := strings.TrimSpace(s.Description)
		if b.messageWidth > 0 && runewidth.StringWidth(message) > b.messageWidth {
			message = runewidth.Truncate(message, b.messageWidth, "")
		}
		pre.WriteString(message)
		if padding := b.messageWidth - runewidth.StringWidth(message); padding > 0 {
			pre.WriteString(strings.Repeat(" ", padding))
		}
		pre.WriteString(" ")
	}

	percent := math.Floor(s.Percent)
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	fmt.Fprintf(&pre, "%3.0f%% ", percent)

	fmt.Fprintf(&suf, "(%s/%s", b.count(s.N), b.count(s.Total))
	if s.RateOK && s.N < s.Total {
		fmt.Fprintf(&suf, ", %s/s", b.count(int64(math.Round(s.Rate))))
	}
	suf.WriteString(")")

	var timing string
	if s.RateOK && s.Rate > 0 && s.N < s.Total {
		remaining := time.Duration(float64(s.Total-s.N) / s.Rate * float64(time.Second))
		timing = fmt.Sprintf("[%s:%s]", format.ShortDuration(s.Elapsed), format.ShortDuration(remaining))
	}

	if pad := statsWidth - suf.Len() - len(timing); pad > 0 {
		suf.WriteString(strings.Repeat(" ", pad))
	}
	suf.WriteString(timing)

	// 3 extra columns: 2 boundary characters and 1 trailing space
	f := termWidth - pre.Len() - suf.Len() - 3
	n := int(float64(f) * percent / 100)

	if f > 0 {
		mid.WriteString("▕")
		fill := strings.Repeat("█", n)
		if b.color != "" && n > 0 {
			fill = colorstring.Color("[" + b.color + "]" + fill + "[reset]")
		}
		mid.WriteString(fill)
		if f-n > 0 {
			mid.WriteString(strings.Repeat(" ", f-n))
		}
		mid.WriteString("▏")
	}

	return pre.String() + mid.String() + suf.String()
}

func (b *Bar) count(n int64) string {
	if b.bytes {
		return format.HumanBytes(n)
	}
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}
	return format.HumanNumber(uint64(n))
}
