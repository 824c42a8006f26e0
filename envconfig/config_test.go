package envconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Cleanup(LoadConfig)
	LoadConfig()

	assert.Equal(t, 100*time.Millisecond, MinInterval)
	assert.Equal(t, 10*time.Second, MaxInterval)
	assert.Equal(t, int64(1), MinIters)
	assert.Equal(t, 0.3, Smoothing)
	assert.False(t, NoProgress)
	assert.False(t, Debug)
}

func TestOverrides(t *testing.T) {
	t.Cleanup(LoadConfig)
	t.Setenv("PACE_MININTERVAL", "250ms")
	t.Setenv("PACE_MAXINTERVAL", "1m")
	t.Setenv("PACE_MINITERS", "100")
	t.Setenv("PACE_SMOOTHING", "0.5")
	t.Setenv("PACE_NOPROGRESS", "1")
	t.Setenv("PACE_DEBUG", "true")

	LoadConfig()

	assert.Equal(t, 250*time.Millisecond, MinInterval)
	assert.Equal(t, time.Minute, MaxInterval)
	assert.Equal(t, int64(100), MinIters)
	assert.Equal(t, 0.5, Smoothing)
	assert.True(t, NoProgress)
	assert.True(t, Debug)
}

func TestQuotedValues(t *testing.T) {
	t.Cleanup(LoadConfig)
	t.Setenv("PACE_MININTERVAL", "\"1s\"")

	LoadConfig()
	assert.Equal(t, time.Second, MinInterval)
}

func TestMalformedValuesKeepDefaults(t *testing.T) {
	t.Cleanup(LoadConfig)
	t.Setenv("PACE_MININTERVAL", "soon")
	t.Setenv("PACE_MAXINTERVAL", "-5s")
	t.Setenv("PACE_MINITERS", "many")
	t.Setenv("PACE_SMOOTHING", "2.0")

	LoadConfig()

	assert.Equal(t, 100*time.Millisecond, MinInterval)
	assert.Equal(t, 10*time.Second, MaxInterval)
	assert.Equal(t, int64(1), MinIters)
	assert.Equal(t, 0.3, Smoothing)
}

func TestAsMapDescribesEverything(t *testing.T) {
	for name, v := range AsMap() {
		assert.Equal(t, name, v.Name)
		assert.NotEmpty(t, v.Description)
	}
}
