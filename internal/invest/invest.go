// Package invest implements a two-asset portfolio simulator: a single
// deterministic-seed path simulation with fees and annual rebalancing, and
// a Monte Carlo mode producing percentile bands and a goal success rate.
package invest

import (
	"fmt"
	"math"

	"github.com/ywen250/finsim-backend/internal/engine"
)

// Profile sets the stock/bond split and the monthly return model for each
// asset. Returns are sampled as normal monthly log-returns.
type Profile struct {
	Name        string
	StockWeight float64
	BondWeight  float64
}

// Monthly log-return model per asset class, derived from long-run annual
// figures (stocks ~7% mean / 15% vol, bonds ~3% mean / 5% vol).
const (
	stockMonthlyMean = 0.07 / 12
	stockMonthlyVol  = 0.15 / 3.4641016151377544 // sqrt(12)
	bondMonthlyMean  = 0.03 / 12
	bondMonthlyVol   = 0.05 / 3.4641016151377544
)

var profiles = map[string]Profile{
	"conservative": {Name: "conservative", StockWeight: 0.30, BondWeight: 0.70},
	"balanced":     {Name: "balanced", StockWeight: 0.60, BondWeight: 0.40},
	"aggressive":   {Name: "aggressive", StockWeight: 0.85, BondWeight: 0.15},
}

// LookupProfile resolves a risk-profile name.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown risk profile %q", name)
	}
	return p, nil
}

// SimParams describes one path simulation.
type SimParams struct {
	Profile        string  `json:"profile"`
	StartValue     float64 `json:"startValue"`
	Years          int     `json:"years"`
	ContribMonthly float64 `json:"contribMonthly"`
	FeesBps        float64 `json:"feesBps"`
	Rebalance      string  `json:"rebalance"` // "annual" or "none"
}

// PathPoint is one monthly snapshot of the simulated portfolio.
type PathPoint struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// Trade records one rebalancing move between the two sleeves.
type Trade struct {
	Month  int     `json:"month"`
	Asset  string  `json:"asset"`
	Amount float64 `json:"amount"` // positive = buy, negative = sell
}

// Stats summarizes a completed path.
type Stats struct {
	EndValue    float64 `json:"endValue"`
	CAGR        float64 `json:"cagr"`
	FeeTotal    float64 `json:"feeTotal"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// SimResult is the full outcome of Simulate.
type SimResult struct {
	Stats  Stats       `json:"stats"`
	Path   []PathPoint `json:"path"`
	Trades []Trade     `json:"trades"`
}

// Simulate runs one monthly-resolution portfolio path. Contributions land
// at the start of each month split by target weights; fees accrue monthly
// from the basis-point annual rate; annual rebalancing restores the target
// split at each year boundary.
func Simulate(params SimParams, rng engine.RandomSource) (*SimResult, error) {
	prof, err := LookupProfile(params.Profile)
	if err != nil {
		return nil, err
	}
	if params.Years <= 0 {
		return nil, fmt.Errorf("years must be positive, got %d", params.Years)
	}
	if params.StartValue < 0 || params.ContribMonthly < 0 || params.FeesBps < 0 {
		return nil, fmt.Errorf("startValue, contribMonthly, and feesBps must be non-negative")
	}
	if rng == nil {
		rng = engine.DefaultRNG()
	}

	months := params.Years * 12
	monthlyFee := params.FeesBps / 10000 / 12

	stocks := params.StartValue * prof.StockWeight
	bonds := params.StartValue * prof.BondWeight

	var feeTotal, peak, maxDD float64
	peak = params.StartValue
	path := make([]PathPoint, 0, months)
	var trades []Trade

	for m := 1; m <= months; m++ {
		stocks += params.ContribMonthly * prof.StockWeight
		bonds += params.ContribMonthly * prof.BondWeight

		stocks *= math.Exp(sampleNormal(stockMonthlyMean, stockMonthlyVol, rng))
		bonds *= math.Exp(sampleNormal(bondMonthlyMean, bondMonthlyVol, rng))

		fee := (stocks + bonds) * monthlyFee
		feeTotal += fee
		stocks -= fee * prof.StockWeight
		bonds -= fee * prof.BondWeight

		if params.Rebalance == "annual" && m%12 == 0 {
			total := stocks + bonds
			targetStocks := total * prof.StockWeight
			delta := targetStocks - stocks
			if math.Abs(delta) > 0.005 {
				trades = append(trades,
					Trade{Month: m, Asset: "stocks", Amount: round2(delta)},
					Trade{Month: m, Asset: "bonds", Amount: round2(-delta)},
				)
				stocks = targetStocks
				bonds = total - targetStocks
			}
		}

		value := stocks + bonds
		if value > peak {
			peak = value
		}
		if peak > 0 {
			dd := (peak - value) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
		path = append(path, PathPoint{Month: m, Value: round2(value)})
	}

	end := stocks + bonds
	invested := params.StartValue + params.ContribMonthly*float64(months)
	var cagr float64
	if invested > 0 && end > 0 {
		cagr = math.Pow(end/invested, 1/float64(params.Years)) - 1
	}

	return &SimResult{
		Stats: Stats{
			EndValue:    round2(end),
			CAGR:        cagr,
			FeeTotal:    round2(feeTotal),
			MaxDrawdown: maxDD,
		},
		Path:   path,
		Trades: trades,
	}, nil
}

// MCParams describes a Monte Carlo batch.
type MCParams struct {
	Profile        string  `json:"profile"`
	StartValue     float64 `json:"startValue"`
	Years          int     `json:"years"`
	Runs           int     `json:"runs"`
	TargetAmount   float64 `json:"targetAmount"`
	ContribMonthly float64 `json:"contribMonthly"`
}

// Band is the per-month spread of portfolio values across runs.
type Band struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// MCResult is the Monte Carlo outcome: the fraction of runs that reached
// the target by the horizon, monthly percentile bands, and a summary of
// the end-value distribution.
type MCResult struct {
	SuccessProb float64 `json:"successProb"`
	Bands       []Band  `json:"bands"`
	EndValues   Summary `json:"endValues"`
}

const maxMonteCarloRuns = 20000

// RunMonteCarlo repeats Simulate-equivalent paths without the per-path
// bookkeeping and aggregates them into bands and a success probability.
func RunMonteCarlo(params MCParams, rng engine.RandomSource) (*MCResult, error) {
	prof, err := LookupProfile(params.Profile)
	if err != nil {
		return nil, err
	}
	if params.Years <= 0 {
		return nil, fmt.Errorf("years must be positive, got %d", params.Years)
	}
	if params.Runs <= 0 || params.Runs > maxMonteCarloRuns {
		return nil, fmt.Errorf("runs must be in 1..%d, got %d", maxMonteCarloRuns, params.Runs)
	}
	if rng == nil {
		rng = engine.DefaultRNG()
	}

	months := params.Years * 12
	// values[m] collects every run's portfolio value at month m+1.
	values := make([][]float64, months)
	for m := range values {
		values[m] = make([]float64, 0, params.Runs)
	}

	successes := 0
	for run := 0; run < params.Runs; run++ {
		stocks := params.StartValue * prof.StockWeight
		bonds := params.StartValue * prof.BondWeight
		for m := 0; m < months; m++ {
			stocks += params.ContribMonthly * prof.StockWeight
			bonds += params.ContribMonthly * prof.BondWeight
			stocks *= math.Exp(sampleNormal(stockMonthlyMean, stockMonthlyVol, rng))
			bonds *= math.Exp(sampleNormal(bondMonthlyMean, bondMonthlyVol, rng))
			values[m] = append(values[m], stocks+bonds)
		}
		if params.TargetAmount <= 0 || stocks+bonds >= params.TargetAmount {
			successes++
		}
	}

	bands := make([]Band, months)
	for m := range values {
		bands[m] = Band{
			P10: round2(percentile(values[m], 0.10)),
			P50: round2(percentile(values[m], 0.50)),
			P90: round2(percentile(values[m], 0.90)),
		}
	}

	return &MCResult{
		SuccessProb: float64(successes) / float64(params.Runs),
		Bands:       bands,
		EndValues:   summarize(values[months-1]),
	}, nil
}
