package invest

import (
	"testing"

	"github.com/ywen250/finsim-backend/internal/engine"
)

func TestSimulateBalancedPath(t *testing.T) {
	params := SimParams{
		Profile:        "balanced",
		StartValue:     10000,
		Years:          5,
		ContribMonthly: 500,
		FeesBps:        50,
		Rebalance:      "annual",
	}
	res, err := Simulate(params, engine.NewSeededRNG(42))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Path) != 60 {
		t.Fatalf("5 years should yield 60 monthly snapshots, got %d", len(res.Path))
	}
	if res.Stats.EndValue <= 0 {
		t.Fatalf("end value: %v", res.Stats.EndValue)
	}
	if res.Stats.FeeTotal <= 0 {
		t.Fatalf("50bps over 5 years must accrue fees, got %v", res.Stats.FeeTotal)
	}
	if res.Stats.MaxDrawdown < 0 || res.Stats.MaxDrawdown >= 1 {
		t.Fatalf("drawdown out of range: %v", res.Stats.MaxDrawdown)
	}
	for i, p := range res.Path {
		if p.Month != i+1 {
			t.Fatalf("path months must be sequential, got %d at %d", p.Month, i)
		}
		if p.Value < 0 {
			t.Fatalf("negative portfolio value at month %d", p.Month)
		}
	}
	// Rebalancing trades come in offsetting pairs.
	if len(res.Trades)%2 != 0 {
		t.Fatalf("trades must pair up, got %d", len(res.Trades))
	}
	for i := 0; i+1 < len(res.Trades); i += 2 {
		if res.Trades[i].Amount+res.Trades[i+1].Amount != 0 {
			t.Fatalf("trade pair does not net to zero: %+v %+v", res.Trades[i], res.Trades[i+1])
		}
	}
}

func TestSimulateDeterministicForSeed(t *testing.T) {
	params := SimParams{Profile: "aggressive", StartValue: 5000, Years: 3}
	a, err := Simulate(params, engine.NewSeededRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(params, engine.NewSeededRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	if a.Stats.EndValue != b.Stats.EndValue {
		t.Fatalf("same seed diverged: %v vs %v", a.Stats.EndValue, b.Stats.EndValue)
	}
}

func TestSimulateRejectsBadParams(t *testing.T) {
	if _, err := Simulate(SimParams{Profile: "yolo", StartValue: 100, Years: 1}, nil); err == nil {
		t.Fatal("unknown profile must error")
	}
	if _, err := Simulate(SimParams{Profile: "balanced", StartValue: 100, Years: 0}, nil); err == nil {
		t.Fatal("zero years must error")
	}
	if _, err := Simulate(SimParams{Profile: "balanced", StartValue: -5, Years: 1}, nil); err == nil {
		t.Fatal("negative start value must error")
	}
}

func TestRunMonteCarloBands(t *testing.T) {
	params := MCParams{
		Profile:        "balanced",
		StartValue:     10000,
		Years:          10,
		Runs:           200,
		TargetAmount:   20000,
		ContribMonthly: 300,
	}
	res, err := RunMonteCarlo(params, engine.NewSeededRNG(11))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Bands) != 120 {
		t.Fatalf("10 years should yield 120 monthly bands, got %d", len(res.Bands))
	}
	if res.SuccessProb < 0 || res.SuccessProb > 1 {
		t.Fatalf("success probability out of range: %v", res.SuccessProb)
	}
	for i, b := range res.Bands {
		if b.P10 > b.P50 || b.P50 > b.P90 {
			t.Fatalf("band %d not ordered: %+v", i, b)
		}
	}
	if res.EndValues.Mean <= 0 || res.EndValues.StdDev < 0 {
		t.Fatalf("end value summary: %+v", res.EndValues)
	}
	if res.EndValues.P50 > res.EndValues.P90 {
		t.Fatalf("end value percentiles not ordered: %+v", res.EndValues)
	}
}

func TestRunMonteCarloNoTargetAlwaysSucceeds(t *testing.T) {
	params := MCParams{Profile: "conservative", StartValue: 1000, Years: 1, Runs: 50}
	res, err := RunMonteCarlo(params, engine.NewSeededRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	if res.SuccessProb != 1 {
		t.Fatalf("no target must be counted as success, got %v", res.SuccessProb)
	}
}

func TestRunMonteCarloRejectsRunCount(t *testing.T) {
	if _, err := RunMonteCarlo(MCParams{Profile: "balanced", Years: 1, Runs: 0}, nil); err == nil {
		t.Fatal("zero runs must error")
	}
	if _, err := RunMonteCarlo(MCParams{Profile: "balanced", Years: 1, Runs: maxMonteCarloRuns + 1}, nil); err == nil {
		t.Fatal("excessive runs must error")
	}
}

func TestPercentile(t *testing.T) {
	xs := []float64{4, 1, 3, 2, 5}
	if got := percentile(xs, 0.5); got != 3 {
		t.Fatalf("median: got %v", got)
	}
	if got := percentile(xs, 0); got != 1 {
		t.Fatalf("p0: got %v", got)
	}
	if got := percentile(xs, 1); got != 5 {
		t.Fatalf("p100: got %v", got)
	}
	if got := percentile(xs, 0.25); got != 2 {
		t.Fatalf("p25 with linear interpolation: got %v", got)
	}
	// Input order is preserved.
	if xs[0] != 4 {
		t.Fatal("percentile must not sort the caller's slice")
	}
}
