package engine

import (
	"fmt"

	"github.com/ywen250/finsim-backend/internal/catalog"
)

// TriggerPayload is one enqueued deferred consequence, keyed by due day in
// the sparse trigger queue.
type TriggerPayload struct {
	Spawn         string              `json:"spawn"`
	Data          catalog.TriggerData `json:"data"`
	SourceEventID string              `json:"source_event_id,omitempty"`
}

// Lottery outcome tiers for materialized lottery_result payloads. The
// cumulative thresholds sum to exactly 1.0, so a uniform draw in [0,1)
// never reaches the big-win branch; kept compatible with the reference
// behavior rather than rebalanced.
const (
	lotteryNoWinBand    = 0.921
	lotterySmallWinBand = 0.079
)

// scheduleTrigger enqueues a payload at today+delay when an independent
// draw against the template's fire probability succeeds; otherwise the
// trigger is silently dropped, never retried.
func (s *Session) scheduleTrigger(today int, trig catalog.TriggerTemplate, source *CommittedEvent) {
	if s.rng.Float64() > trig.Prob {
		return
	}
	delay := trig.AfterDays
	if delay < 1 {
		delay = 1
	}
	due := today + delay
	payload := TriggerPayload{Spawn: trig.Spawn, Data: trig.Data}
	if source != nil {
		payload.SourceEventID = source.ID
	}
	s.delayed[due] = append(s.delayed[due], payload)
}

// materializeDue pops the queue entry for today and turns each payload into
// a forced event: lottery results resolve their tiered payoff, everything
// else re-instantiates the referenced catalog scenario with any overrides.
func (s *Session) materializeDue(today int) ([]*CommittedEvent, error) {
	payloads, ok := s.delayed[today]
	if !ok {
		return nil, nil
	}
	delete(s.delayed, today)

	var events []*CommittedEvent
	for _, p := range payloads {
		if p.Spawn == catalog.IDLotteryResult {
			events = append(events, s.resolveLottery(today))
			continue
		}
		scn, ok := s.catalog.ByID(p.Spawn)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, p.Spawn)
		}
		events = append(events, s.instantiateEvent(scn, today, p.Data.OverrideAmount, p.Data.ExtraDesc))
	}
	return events, nil
}

// resolveLottery draws the tiered payoff and instantiates it as a forced
// income event.
func (s *Session) resolveLottery(today int) *CommittedEvent {
	r := s.rng.Float64()
	var amount float64
	var desc string
	switch {
	case r < lotteryNoWinBand:
		amount = 0
		desc = "Lottery result: no win."
	case r < lotteryNoWinBand+lotterySmallWinBand:
		amount = 5 + s.rng.Float64()*45
		desc = "Lottery result: small win."
	default:
		amount = 1000 + s.rng.Float64()*9000
		desc = "Lottery result: big win!"
	}
	scn, _ := s.catalog.ByID(catalog.IDLotteryResult)
	return s.instantiateEvent(scn, today, &amount, desc)
}

// instantiateEvent builds a committed-event record for a scenario on the
// given day, sampling the amount unless overridden.
func (s *Session) instantiateEvent(scn *catalog.ScenarioDefinition, day int, overrideAmount *float64, extraDesc string) *CommittedEvent {
	var amount float64
	if overrideAmount != nil {
		amount = *overrideAmount
	} else {
		amount = s.sampleSigned(scn)
	}
	desc := scn.Description
	if extraDesc != "" {
		if desc != "" {
			desc += " "
		}
		desc += extraDesc
	}
	return &CommittedEvent{
		ID:             newID("ev"),
		Day:            day,
		ScenarioID:     scn.ID,
		Name:           scn.Name,
		Category:       scn.Category,
		Tags:           scn.Tags,
		Deterministic:  scn.Deterministic,
		Amount:         round2(amount),
		ProposedAmount: round2(amount),
		Description:    desc,
	}
}

// sampleSigned draws a scenario amount and applies the sign convention:
// income positive, everything else negative.
func (s *Session) sampleSigned(scn *catalog.ScenarioDefinition) float64 {
	ctx := AmountContext{
		LastPayAmount:    s.lastPay,
		DefaultPayAmount: s.profile.PayCycle.Amount,
	}
	amt := SampleAmount(scn.Amount, ctx, s.rng)
	if scn.Category == catalog.CategoryIncome {
		return amt
	}
	return -amt
}
