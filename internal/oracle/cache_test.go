package oracle

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(probs ...float64) func() ([]float64, error) {
	return func() ([]float64, error) { return probs, nil }
}

func TestDistCache_StoresCumulative(t *testing.T) {
	c := newDistCache(4)
	cdf, err := c.get("a", constant(0.25, 0, 0.75))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 1}, cdf, 1e-12)
	assert.Equal(t, 1, c.Len())
}

func TestDistCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newDistCache(2)
	calls := map[string]int{}
	get := func(key string) {
		_, err := c.get(key, func() ([]float64, error) {
			calls[key]++
			return []float64{1}, nil
		})
		require.NoError(t, err)
	}

	get("a")
	get("b")
	get("a") // a is now most recent
	get("c") // evicts b
	get("a")
	get("b")

	assert.Equal(t, 1, calls["a"])
	assert.Equal(t, 2, calls["b"])
	assert.Equal(t, 1, calls["c"])
	assert.Equal(t, 2, c.Len())
}

func TestDistCache_ErrorsAreNotCached(t *testing.T) {
	c := newDistCache(2)
	boom := errors.New("boom")
	_, err := c.get("a", func() ([]float64, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	cdf, err := c.get("a", constant(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, cdf)
}

func TestDistCache_ConcurrentMissesComputeOnce(t *testing.T) {
	c := newDistCache(2)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cdf, err := c.get("shared", func() ([]float64, error) {
				calls.Add(1)
				<-release
				return []float64{0.5, 0.5}, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, []float64{0.5, 1}, cdf)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestDistCache_ComputeDoesNotBlockOtherKeys(t *testing.T) {
	c := newDistCache(4)
	_, err := c.get("ready", constant(1))
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.get("slow", func() ([]float64, error) {
			close(started)
			<-release
			return []float64{1}, nil
		})
		assert.NoError(t, err)
	}()
	<-started

	hit := make(chan error, 1)
	go func() {
		_, err := c.get("ready", constant(1))
		hit <- err
	}()
	select {
	case err := <-hit:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("cached key blocked behind a computation in flight")
	}

	close(release)
	<-done
	assert.Equal(t, 2, c.Len())
}

func TestSampleCDF(t *testing.T) {
	t.Run("skips zero-probability entries", func(t *testing.T) {
		cdf := cumulative([]float64{0, 0.5, 0, 0.5, 0})
		rng := NewRand(3)
		for i := 0; i < 2000; i++ {
			v := sampleCDF(cdf, rng)
			assert.True(t, v == 1 || v == 3, "drew %d", v)
		}
	})

	t.Run("follows the weights", func(t *testing.T) {
		cdf := cumulative([]float64{0.1, 0.6, 0.3})
		rng := NewRand(11)
		counts := make([]int, 3)
		const draws = 20000
		for i := 0; i < draws; i++ {
			counts[sampleCDF(cdf, rng)]++
		}
		for i, want := range []float64{0.1, 0.6, 0.3} {
			assert.InDelta(t, want, float64(counts[i])/draws, 0.02, fmt.Sprintf("index %d", i))
		}
	})

	t.Run("unnormalized totals", func(t *testing.T) {
		cdf := cumulative([]float64{0, 2})
		assert.Equal(t, 1, sampleCDF(cdf, NewRand(1)))
	})
}
