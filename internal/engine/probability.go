package engine

import (
	"math"
	"strings"

	"github.com/ywen250/finsim-backend/internal/catalog"
)

// Probability caps and balance-throttle thresholds.
const (
	maxDailyProb        = 0.95
	lowBalanceThreshold = 200.0
	lowBalanceFactor    = 0.5
	negBalanceFactor    = 0.2
)

// computeProbability derives a probabilistic scenario's daily occurrence
// probability from base rate, segment/mood tag affinities, personal
// predispositions, balance throttling, and cooldown suppression.
// Deterministic scenarios always compute to 0; the schedule evaluator
// surfaces them instead.
func (s *Session) computeProbability(scn *catalog.ScenarioDefinition, day int) (float64, ProbBreakdown) {
	if scn.Deterministic {
		return 0, ProbBreakdown{Segment: 1, Mood: 1, Predisposition: 1, Balance: 1, Cooldown: 1}
	}

	base := scn.BaseDailyProb
	segment := tagFactor(scn.Tags, catalog.SegmentWeights(s.profile.SegmentKey))
	mood := tagFactor(scn.Tags, catalog.MoodWeights(s.profile.Mood))

	predisposition := 1.0
	normName := strings.ToLower(strings.ReplaceAll(scn.Name, " ", "_"))
	for k, v := range s.profile.Predispositions {
		if scn.HasTag(k) || strings.Contains(normName, strings.ToLower(k)) {
			predisposition *= v
		}
	}

	balance := 1.0
	if discretionary(scn) {
		if s.ledger.Checking < 0 {
			balance = negBalanceFactor
		} else if s.ledger.Checking < lowBalanceThreshold {
			balance = lowBalanceFactor
		}
	}

	cooldown := 1.0
	if s.occurredWithin(scn.Name, scn.CooldownDays, day) {
		cooldown = 0
	}

	p := base * segment * mood * predisposition * balance * cooldown
	p = math.Min(math.Max(p, 0), maxDailyProb)
	return p, ProbBreakdown{
		Base:           base,
		Segment:        segment,
		Mood:           mood,
		Predisposition: predisposition,
		Balance:        balance,
		Cooldown:       cooldown,
	}
}

// occurredWithin scans history backward for a same-named event inside the
// cooldown window. History is day-ordered, so the scan stops at the first
// event older than the window.
func (s *Session) occurredWithin(name string, days, today int) bool {
	if days <= 0 {
		return false
	}
	for i := len(s.history) - 1; i >= 0; i-- {
		ev := s.history[i]
		if today-ev.Day > days {
			break
		}
		if ev.Name == name {
			return true
		}
	}
	return false
}

// tagFactor is the geometric mean of per-tag weights; tags missing from the
// table weigh 1.0, and an empty tag set means factor 1.0.
func tagFactor(tags []string, weights map[string]float64) float64 {
	if len(tags) == 0 {
		return 1.0
	}
	prod := 1.0
	for _, t := range tags {
		w := 1.0
		if v, ok := weights[t]; ok {
			w = v
		}
		prod *= math.Max(w, 1e-9)
	}
	return math.Pow(prod, 1.0/float64(len(tags)))
}

func discretionary(scn *catalog.ScenarioDefinition) bool {
	for _, t := range scn.Tags {
		if catalog.DiscretionaryTags[t] {
			return true
		}
	}
	return false
}
