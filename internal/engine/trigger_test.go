package engine

import (
	"errors"
	"testing"

	"github.com/ywen250/finsim-backend/internal/catalog"
)

func TestScheduleTriggerProbability(t *testing.T) {
	scn := probScenario("scn_src", 0.1)
	s := NewSession(testCatalog(t, scn), plainProfile(1000), &seqRNG{vals: []float64{0.99}})

	// Prob 0.5 against a 0.99 draw: dropped.
	s.scheduleTrigger(3, catalog.TriggerTemplate{Spawn: "scn_src", AfterDays: 2, Prob: 0.5}, nil)
	if len(s.delayed) != 0 {
		t.Fatalf("trigger should have been dropped, queue=%v", s.delayed)
	}

	// Prob 1.0 always enqueues; AfterDays below 1 clamps to 1.
	s.rng = &seqRNG{vals: []float64{0.5}}
	s.scheduleTrigger(3, catalog.TriggerTemplate{Spawn: "scn_src", AfterDays: 0, Prob: 1.0}, nil)
	if got := len(s.delayed[4]); got != 1 {
		t.Fatalf("expected payload on day 4, queue=%v", s.delayed)
	}
}

func TestMaterializeDueUnknownScenario(t *testing.T) {
	s := NewSession(testCatalog(t, probScenario("scn_src", 0.1)), plainProfile(1000), NewSeededRNG(1))
	s.delayed[5] = []TriggerPayload{{Spawn: "scn_ghost"}}

	_, err := s.materializeDue(5)
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("want ErrUnknownScenario, got %v", err)
	}
}

func TestMaterializeDueOverride(t *testing.T) {
	s := NewSession(testCatalog(t, probScenario("scn_src", 0.1)), plainProfile(1000), NewSeededRNG(1))
	amt := -630.0
	s.delayed[4] = []TriggerPayload{{
		Spawn: catalog.IDDeferredPayment,
		Data:  catalog.TriggerData{OverrideAmount: &amt, ExtraDesc: "Deferred remainder +5%"},
	}}

	events, err := s.materializeDue(4)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	ev := events[0]
	if ev.Amount != -630 || ev.Day != 4 || ev.ScenarioID != catalog.IDDeferredPayment {
		t.Fatalf("materialized event: %+v", ev)
	}
	if _, still := s.delayed[4]; still {
		t.Fatal("queue entry must be consumed")
	}
}

func TestResolveLotteryTiers(t *testing.T) {
	cat := testCatalog(t, probScenario("scn_src", 0.1))
	profile := plainProfile(1000)

	// Tier draw below the no-win band: $0.
	s := NewSession(cat, profile, &seqRNG{vals: []float64{0.5}})
	if ev := s.resolveLottery(2); ev.Amount != 0 {
		t.Fatalf("no-win tier paid %v", ev.Amount)
	}

	// Tier draw inside the small-win band: uniform in [5, 50].
	s = NewSession(cat, profile, &seqRNG{vals: []float64{0.95, 0.5}})
	ev := s.resolveLottery(2)
	if ev.Amount < 5 || ev.Amount > 50 {
		t.Fatalf("small win out of range: %v", ev.Amount)
	}
	if ev.ScenarioID != catalog.IDLotteryResult || ev.Category != catalog.CategoryIncome {
		t.Fatalf("lottery result shape: %+v", ev)
	}
}

func TestLotteryBandsCoverUnitInterval(t *testing.T) {
	// The no-win and small-win bands exhaust [0,1); a uniform tier draw can
	// never land in the big-win branch.
	if lotteryNoWinBand+lotterySmallWinBand != 1.0 {
		t.Fatalf("bands sum to %v", lotteryNoWinBand+lotterySmallWinBand)
	}
}
