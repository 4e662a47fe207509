package invest

import (
	"math"
	"sort"

	"github.com/ywen250/finsim-backend/internal/engine"
)

// sampleNormal draws N(mean, sd) via Box-Muller on the shared source.
func sampleNormal(mean, sd float64, rng engine.RandomSource) float64 {
	u1 := rng.Float64()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + sd*z
}

// Summary condenses one distribution of outcomes.
type Summary struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// summarize computes mean, population variance, and percentiles.
func summarize(xs []float64) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	return Summary{
		Mean:   round2(mean),
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    round2(percentile(xs, 0.50)),
		P90:    round2(percentile(xs, 0.90)),
	}
}

// percentile is the linearly interpolated p-quantile of xs (0..1).
// Sorts a copy; the input slice is left untouched.
func percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	if n == 1 || p <= 0 {
		return cp[0]
	}
	if p >= 1 {
		return cp[n-1]
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	f := pos - float64(i)
	if i+1 >= n {
		return cp[i]
	}
	return cp[i]*(1-f) + cp[i+1]*f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
