package meter

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountYieldsAll(t *testing.T) {
	sink := &countingSink{}
	seq, err := Count(10, Options{Sink: sink})
	require.NoError(t, err)

	var got []int64
	for i := range seq {
		got = append(got, i)
	}

	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.Greater(t, sink.writes, 0, "terminal step must render")
	assert.True(t, strings.HasSuffix(sink.String(), "\n"), "leave render persists")
}

func TestCountSinglePass(t *testing.T) {
	sink := &countingSink{}
	seq, err := Count(3, Options{Sink: sink})
	require.NoError(t, err)

	first := slices.Collect(seq)
	assert.Len(t, first, 3)

	// the meter behind the sequence is closed; a second pass still yields
	// but must not render again
	writes := sink.writes
	second := slices.Collect(seq)
	assert.Len(t, second, 3)
	assert.Equal(t, writes, sink.writes)
}

func TestAllEarlyBreak(t *testing.T) {
	sink := &countingSink{}
	seq, err := All(slices.Values([]string{"a", "b", "c", "d"}), Options{Sink: sink})
	require.NoError(t, err)

	var got []string
	for v := range seq {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Greater(t, sink.writes, 0, "breaking out still triggers the leave render")
}

func TestSliceDerivesTotal(t *testing.T) {
	sink := &countingSink{}
	seq, err := Slice(make([]int, 25), Options{Sink: sink})
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
	}

	assert.Equal(t, 25, n)
	assert.Contains(t, sink.String(), "100%", "derived total enables percentage")
}

func TestAdaptersRejectInvalidOptions(t *testing.T) {
	_, err := Count(10, Options{Total: -1})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = All(slices.Values([]int{1}), Options{Smoothing: 2})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Slice([]int{1}, Options{MinInterval: Duration(-1)})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
