package catalog

import (
	"strings"
	"testing"
)

func validScenario() *ScenarioDefinition {
	return &ScenarioDefinition{
		ID:            "scn_ok",
		Name:          "OK",
		Category:      CategoryExpense,
		Amount:        AmountSpec{Dist: "fixed", Value: 10},
		BaseDailyProb: 0.1,
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate([]*ScenarioDefinition{validScenario()}); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScenarioDefinition)
		want   string
	}{
		{"missing id", func(s *ScenarioDefinition) { s.ID = "" }, "id is required"},
		{"missing name", func(s *ScenarioDefinition) { s.Name = "" }, "name is required"},
		{"bad category", func(s *ScenarioDefinition) { s.Category = "mystery" }, "unknown category"},
		{"prob too high", func(s *ScenarioDefinition) { s.BaseDailyProb = 1.5 }, "base_daily_prob"},
		{"negative cooldown", func(s *ScenarioDefinition) { s.CooldownDays = -1 }, "cooldown"},
		{"deterministic without schedule", func(s *ScenarioDefinition) { s.Deterministic = true }, "schedule"},
		{"uniform inverted bounds", func(s *ScenarioDefinition) {
			s.Amount = AmountSpec{Dist: "uniform", Low: 50, High: 10}
		}, "amount.high"},
		{"unknown trigger target", func(s *ScenarioDefinition) {
			s.Triggers = []TriggerTemplate{{Spawn: "scn_ghost", AfterDays: 1, Prob: 1}}
		}, "scn_ghost"},
		{"trigger fires same day", func(s *ScenarioDefinition) {
			s.Triggers = []TriggerTemplate{{Spawn: "scn_ok", AfterDays: 0, Prob: 1}}
		}, "after_days"},
	}

	for _, tc := range tests {
		scn := validScenario()
		tc.mutate(scn)
		err := Validate([]*ScenarioDefinition{scn})
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	a, b := validScenario(), validScenario()
	err := Validate([]*ScenarioDefinition{a, b})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("duplicate ids must be rejected, got %v", err)
	}
}

func TestValidateTriggerMaySpawnSynthetic(t *testing.T) {
	s := validScenario()
	s.Triggers = []TriggerTemplate{{Spawn: IDLotteryResult, AfterDays: 1, Prob: 1}}
	if err := Validate([]*ScenarioDefinition{s}); err != nil {
		t.Fatalf("synthetic trigger target rejected: %v", err)
	}
}
