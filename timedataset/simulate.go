package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

func GenerateT(n int, interval time.Duration, nowFunc func() time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	ct := time.Unix(nowFunc().Unix()/60*60, 0).Add(-time.Duration(n) * interval).UTC()
	for i := 0; i < n; i++ {
		t = append(t, ct.Add(interval*time.Duration(i)))
	}
	return t
}

// Signal is a mutable slice of values used to compose synthetic series
type Signal []float64

func (s Signal) Add(src Signal) Signal {
	floats.Add(s, src)
	return s
}

// SetConst overwrites the values in the index range [start, end) with val
func (s Signal) SetConst(val float64, start, end int) Signal {
	start = max(start, 0)
	end = min(end, len(s))
	for i := start; i < end; i++ {
		s[i] = val
	}
	return s
}

func GenerateConstY(n int, val float64) Signal {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Signal(y)
}

// GenerateLinearY generates a straight line starting at intercept and changing by slope
// every step
func GenerateLinearY(n int, intercept, slope float64) Signal {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, intercept+slope*float64(i))
	}
	return Signal(y)
}

// GenerateSeasonalY generates a sine wave repeating every period steps. offset shifts the
// wave by a number of steps.
func GenerateSeasonalY(n int, amp float64, period int, offset float64) Signal {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		val := amp * math.Sin(2.0*math.Pi/float64(period)*(float64(i)+offset))
		y = append(y, val)
	}
	return Signal(y)
}

// GeneratePulseY generates a repeating pattern of period steps where the first width steps
// of every cycle are set to amp and the rest are zero.
func GeneratePulseY(n int, amp float64, period, width int) Signal {
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%period < width {
			y[i] = amp
		}
	}
	return Signal(y)
}

// GenerateNoise generates normally distributed noise with the given standard deviation.
// The same seed always yields the same noise.
func GenerateNoise(n int, scale float64, seed uint64) Signal {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*scale)
	}
	return Signal(y)
}
