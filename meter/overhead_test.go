//go:build unix

package meter

import (
	"io"
	"strconv"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// The overhead tests compare a metered loop against the same loop writing a
// counter to a no-op sink, in process CPU time so scheduler noise and wall
// clock jumps do not skew the ratio.

type nopSink struct{}

func (nopSink) Write(p []byte) (int, error) {
	return len(p), nil
}

func cpuTime(t *testing.T) time.Duration {
	t.Helper()

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		t.Fatalf("getrusage: %v", err)
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}

func benchLoop(t *testing.T, sink io.Writer, total int64) time.Duration {
	var a int64
	var buf []byte

	start := cpuTime(t)
	for i := int64(0); i < total; i++ {
		a += i
		buf = strconv.AppendInt(buf[:0], a, 10)
		sink.Write(buf)
	}
	spent := cpuTime(t) - start

	if a != total*(total-1)/2 {
		t.Fatalf("bench sum = %d", a)
	}
	return spent
}

func TestIterOverhead(t *testing.T) {
	if testing.Short() {
		t.Skip("overhead measurement")
	}
	const total = 1_000_000
	var sink io.Writer = nopSink{}

	seq, err := Count(total, Options{Sink: sink})
	if err != nil {
		t.Fatal(err)
	}

	var a int64
	start := cpuTime(t)
	for i := range seq {
		a += i
	}
	metered := cpuTime(t) - start

	if a != int64(total)*(total-1)/2 {
		t.Fatalf("metered sum = %d", a)
	}

	bench := benchLoop(t, sink, total)
	if metered > 3*bench {
		t.Errorf("iteration overhead: metered %v, bench %v", metered, bench)
	}
}

func TestManualOverhead(t *testing.T) {
	if testing.Short() {
		t.Skip("overhead measurement")
	}
	const total = 1_000_000
	var sink io.Writer = nopSink{}

	m, err := New(Options{Total: total * 10, Sink: sink})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	var a int64
	start := cpuTime(t)
	for i := int64(0); i < total; i++ {
		a += i
		m.Update(10)
	}
	metered := cpuTime(t) - start

	bench := benchLoop(t, sink, total)
	if metered > 10*bench {
		t.Errorf("manual overhead: metered %v, bench %v", metered, bench)
	}
}

// hardOptions renders on every single step: the deliberately pathological
// worst case for overhead.
func hardOptions(sink io.Writer, total int64) Options {
	return Options{
		Total:           total,
		Sink:            sink,
		MinIters:        Int64(1),
		MinInterval:     Duration(0),
		MaxInterval:     Duration(0),
		DynamicMinIters: Bool(false),
	}
}

func benchLoopHard(t *testing.T, sink io.Writer, total int64) time.Duration {
	var a int64

	start := cpuTime(t)
	for i := int64(0); i < total; i++ {
		a += i
		line := strconv.FormatInt(a, 10)
		out := make([]byte, 0, 40*len(line))
		for range 40 {
			out = append(out, line...)
		}
		sink.Write(out)
	}
	spent := cpuTime(t) - start

	if a != total*(total-1)/2 {
		t.Fatalf("bench sum = %d", a)
	}
	return spent
}

func TestIterOverheadHard(t *testing.T) {
	if testing.Short() {
		t.Skip("overhead measurement")
	}
	const total = 100_000
	var sink io.Writer = nopSink{}

	seq, err := Count(total, hardOptions(sink, total))
	if err != nil {
		t.Fatal(err)
	}

	var a int64
	start := cpuTime(t)
	for i := range seq {
		a += i
	}
	metered := cpuTime(t) - start

	bench := benchLoopHard(t, sink, total)
	if metered > 60*bench {
		t.Errorf("hard iteration overhead: metered %v, bench %v", metered, bench)
	}
}

func TestManualOverheadHard(t *testing.T) {
	if testing.Short() {
		t.Skip("overhead measurement")
	}
	const total = 100_000
	var sink io.Writer = nopSink{}

	m, err := New(hardOptions(sink, total*10))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	var a int64
	start := cpuTime(t)
	for i := int64(0); i < total; i++ {
		a += i
		m.Update(10)
	}
	metered := cpuTime(t) - start

	bench := benchLoopHard(t, sink, total)
	if metered > 100*bench {
		t.Errorf("hard manual overhead: metered %v, bench %v", metered, bench)
	}
}
