package engine

import (
	"math"

	"github.com/ywen250/finsim-backend/internal/catalog"
)

// AmountContext carries the light state percent_of_pay sampling needs.
type AmountContext struct {
	LastPayAmount    float64
	DefaultPayAmount float64
}

// SampleAmount draws a positive monetary magnitude from the declared
// distribution. Sign conventions (outflow negative, income positive) are
// the caller's responsibility, not the sampler's.
func SampleAmount(spec catalog.AmountSpec, ctx AmountContext, rng RandomSource) float64 {
	if rng == nil {
		rng = DefaultRNG()
	}
	switch spec.Dist {
	case "fixed":
		return spec.Value
	case "uniform":
		return spec.Low + rng.Float64()*(spec.High-spec.Low)
	case "normal":
		v := spec.Mean + spec.SD*gaussian(rng)
		return math.Max(v, spec.Min)
	case "lognormal":
		return lognormalAmount(spec.Mean, spec.Sigma, spec.Min, spec.Max, rng)
	case "percent_of_pay":
		pay := ctx.LastPayAmount
		if pay == 0 {
			pay = ctx.DefaultPayAmount
		}
		if pay == 0 {
			pay = 2000
		}
		return math.Abs(pay) * spec.Pct
	case "choice":
		return weightedChoice(spec.Options, spec.Weights, rng)
	default:
		return spec.Value
	}
}

// gaussian draws a standard normal via the Box–Muller transform.
func gaussian(rng RandomSource) float64 {
	u1 := rng.Float64()
	for u1 <= 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// lognormalAmount moment-matches a log-normal to the requested mean/sigma
// and clips to [min, max].
func lognormalAmount(mean, sigma, min float64, max *float64, rng RandomSource) float64 {
	m := math.Max(mean, 1e-6)
	ratio := sigma / m
	mu := math.Log(m) - 0.5*math.Log(1+ratio*ratio)
	s := math.Sqrt(math.Max(math.Log(1+ratio*ratio), 1e-9))
	v := math.Exp(mu + s*gaussian(rng))
	if v < min {
		v = min
	}
	if max != nil && v > *max {
		v = *max
	}
	return v
}

// weightedChoice picks one option by weight; missing weights mean uniform.
func weightedChoice(options, weights []float64, rng RandomSource) float64 {
	if len(options) == 0 {
		return 0
	}
	if len(weights) != len(options) {
		return options[int(rng.Float64()*float64(len(options)))%len(options)]
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return options[int(rng.Float64()*float64(len(options)))%len(options)]
	}
	target := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return options[i]
		}
	}
	return options[len(options)-1]
}

// round2 rounds monetary values to cents before they are stored or reported.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds the health score for display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
