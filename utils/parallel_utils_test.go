package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Buckets tile the range in order
		for maxIndex := 10; maxIndex < 500; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			next := 0
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				assert.Equal(t, next, kMin)
				next = kMax
			}
			assert.Equal(t, maxIndex, next)
		}
	}
}

func TestParallelFor(t *testing.T) {
	for _, np := range []int{1, 3, 8} {
		var (
			K     = 1001
			pm    = NewPartitionMap(np, K)
			out   = make([]float64, K)
			calls int64
		)
		pm.ParallelFor(func(_, kMin, kMax int) {
			atomic.AddInt64(&calls, 1)
			for k := kMin; k < kMax; k++ {
				out[k] = float64(k)
			}
		})
		assert.Equal(t, int64(np), calls)
		for k := range out {
			assert.Equal(t, float64(k), out[k])
		}
	}
	pm := NewPartitionMapAuto(0, 1)
	assert.Equal(t, 1, pm.ParallelDegree)
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, 16., POW(2, 4))
	assert.Equal(t, 0.125, POW(2, -3))
	assert.InDelta(t, math.Pow(1.1, 10), POW(1.1, 10), 1e-12)
	assert.Equal(t, []float64{3, 3}, ConstArray(2, 3))
	assert.Equal(t, 1., Clamp(2, 0, 1))
	assert.Equal(t, 0., Clamp(-2, 0, 1))

	v := []float64{-1, 0.5, 2, math.NaN()}
	assert.Equal(t, 3, BoundRange(v, 0, 1))
	assert.Equal(t, []float64{0, 0.5, 1, 0}, v)
	w := []float64{-1, 4}
	assert.Equal(t, 1, BoundMin(w, 1e-10))
	assert.False(t, IsNan(w))
	assert.True(t, IsNan([]float64{1, math.NaN()}))
}
