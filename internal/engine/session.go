package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ywen250/finsim-backend/internal/catalog"
)

var (
	// ErrNoPendingOffers means commit was called for a day that was never
	// proposed (or was already committed).
	ErrNoPendingOffers = errors.New("no pending offers for day")

	// ErrUnknownScenario means a trigger payload references a scenario id
	// absent from the loaded catalog.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// At most this many probabilistic offers surface per day; deterministic
// and forced offers are exempt from the cap.
const maxProbabilisticPerDay = 6

const (
	savingPlanHorizonDays = 90
	minPlanContribution   = 5.0
)

// Session is one player's running simulation: catalog view, profile,
// day-by-day offer lifecycle, trigger queue, saving plans, and ledger.
// Sessions are not safe for concurrent use; callers serialize access.
type Session struct {
	catalog *catalog.Catalog
	profile UserProfile
	rng     RandomSource

	day     int
	lastPay float64
	history []*CommittedEvent
	pending map[int][]*Offer
	delayed map[int][]TriggerPayload
	plans   []*SavingPlan
	ledger  Ledger
}

// NewSession starts a fresh session. A nil rng falls back to the default
// crypto-backed source; pass a seeded source for reproducible runs.
func NewSession(cat *catalog.Catalog, profile UserProfile, rng RandomSource) *Session {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Session{
		catalog: cat,
		profile: profile,
		rng:     rng,
		day:     1,
		lastPay: profile.PayCycle.Amount,
		pending: make(map[int][]*Offer),
		delayed: make(map[int][]TriggerPayload),
		ledger: Ledger{
			Checking: round2(profile.BaseBalance),
			Health:   startingHealth,
		},
	}
}

// Day is the next day awaiting proposal or commit.
func (s *Session) Day() int { return s.day }

// Balance is the current checking-account balance.
func (s *Session) Balance() float64 { return s.ledger.Checking }

// Profile returns the session's user profile.
func (s *Session) Profile() UserProfile { return s.profile }

// Ledger returns a copy of the current ledger state.
func (s *Session) Ledger() Ledger {
	l := s.ledger
	l.Achievements = append([]string(nil), s.ledger.Achievements...)
	return l
}

// HUD projects current state onto the display model.
func (s *Session) HUD() HUD { return buildHUD(s.day, &s.ledger) }

// History returns the committed-event log, oldest first.
func (s *Session) History() []*CommittedEvent { return s.history }

// Plans returns the active and completed saving plans.
func (s *Session) Plans() []*SavingPlan { return s.plans }

// PendingOffers returns the proposed-but-uncommitted offers for a day.
func (s *Session) PendingOffers(day int) []*Offer { return s.pending[day] }

// ProposeDay generates the day's offers: forced events materialized from
// the trigger queue first, then deterministic scheduled scenarios, then
// probabilistic scenarios (highest probability first, independently drawn,
// capped), then saving-plan auto-contributions. Re-proposing a day
// replaces any previous pending set for it.
func (s *Session) ProposeDay(day int) ([]*Offer, error) {
	var offers []*Offer

	forced, err := s.materializeDue(day)
	if err != nil {
		return nil, err
	}
	for _, ev := range forced {
		offers = append(offers, s.forcedOffer(ev))
	}

	for _, scn := range s.catalog.All() {
		if !scn.Deterministic || !IsDueToday(scn, &s.profile, day) {
			continue
		}
		amt := s.sampleSigned(scn)
		if scn.ID == "scn_paycheck" {
			amt = round2(s.profile.PayCycle.Amount)
			s.lastPay = amt
		}
		offers = append(offers, &Offer{
			OfferID:        newID("off"),
			Day:            day,
			ScenarioID:     scn.ID,
			Name:           scn.Name,
			Category:       scn.Category,
			Tags:           scn.Tags,
			Deterministic:  true,
			ProposedAmount: round2(amt),
			Probability:    1,
			Breakdown:      ProbBreakdown{Base: 1, Segment: 1, Mood: 1, Predisposition: 1, Balance: 1, Cooldown: 1},
			Options:        BuildOptions(scn, round2(amt), s.rng),
		})
	}

	offers = append(offers, s.drawProbabilistic(day)...)

	for _, ev := range s.contributionsToday(day) {
		offers = append(offers, s.forcedOffer(ev))
	}

	s.pending[day] = offers
	return offers, nil
}

// drawProbabilistic evaluates every probabilistic scenario for the day and
// runs an independent occurrence draw per candidate, walking candidates in
// descending probability so the per-day cap keeps the likeliest ones.
func (s *Session) drawProbabilistic(day int) []*Offer {
	type candidate struct {
		scn       *catalog.ScenarioDefinition
		p         float64
		breakdown ProbBreakdown
	}
	var candidates []candidate
	for _, scn := range s.catalog.All() {
		if scn.Deterministic {
			continue
		}
		p, bd := s.computeProbability(scn, day)
		if p <= 0 {
			continue
		}
		candidates = append(candidates, candidate{scn: scn, p: p, breakdown: bd})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].p != candidates[j].p {
			return candidates[i].p > candidates[j].p
		}
		return candidates[i].scn.ID < candidates[j].scn.ID
	})

	var offers []*Offer
	for _, c := range candidates {
		if len(offers) >= maxProbabilisticPerDay {
			break
		}
		hit, err := Draw(c.p, s.rng)
		if err != nil || !hit {
			continue
		}
		amt := round2(s.sampleSigned(c.scn))
		offers = append(offers, &Offer{
			OfferID:        newID("off"),
			Day:            day,
			ScenarioID:     c.scn.ID,
			Name:           c.scn.Name,
			Category:       c.scn.Category,
			Tags:           c.scn.Tags,
			ProposedAmount: amt,
			Probability:    c.p,
			Breakdown:      c.breakdown,
			Options:        BuildOptions(c.scn, amt, s.rng),
		})
	}
	return offers
}

// contributionsToday produces the forced auto-contribution events for
// saving plans due on this day. Contributions are booked against the plan
// immediately so re-proposing cannot double-fund it.
func (s *Session) contributionsToday(day int) []*CommittedEvent {
	scn, ok := s.catalog.ByID(catalog.IDSavingContribution)
	if !ok {
		return nil
	}
	var events []*CommittedEvent
	for _, plan := range s.plans {
		remaining := plan.Remaining()
		if remaining <= 0 || day < plan.StartDay || day > plan.DueDay {
			continue
		}
		due := plan.Frequency == "daily" || (day-plan.StartDay)%7 == 0
		if !due {
			continue
		}
		remainingDays := plan.DueDay - day
		weeksLeft := math.Max(1, float64(remainingDays)/7)
		contrib := math.Max(remaining/weeksLeft, minPlanContribution)
		contrib = math.Min(contrib, remaining)
		contrib = round2(contrib)
		if contrib <= 0 {
			continue
		}
		plan.Contributed = round2(plan.Contributed + contrib)

		amt := -contrib
		ev := s.instantiateEvent(scn, day, &amt, fmt.Sprintf("Contribution toward %q.", plan.Name))
		events = append(events, ev)
	}
	return events
}

// forcedOffer wraps a predetermined event as a no-choice offer.
func (s *Session) forcedOffer(ev *CommittedEvent) *Offer {
	return &Offer{
		OfferID:        newID("off"),
		Day:            ev.Day,
		ScenarioID:     ev.ScenarioID,
		Name:           ev.Name,
		Category:       ev.Category,
		Tags:           ev.Tags,
		Deterministic:  true,
		ProposedAmount: ev.Amount,
		Probability:    1,
		Breakdown:      ProbBreakdown{Base: 1, Segment: 1, Mood: 1, Predisposition: 1, Balance: 1, Cooldown: 1},
		Forced:         ev,
	}
}

// CommitDay resolves the day's pending offers against the player's
// choices, applies every resulting event to the ledger, schedules option
// triggers, starts pledged saving plans, and closes out the day. Missing
// or unknown choice codes fall back to the offer's first option.
func (s *Session) CommitDay(day int, choices map[string]string) ([]*CommittedEvent, error) {
	offers, ok := s.pending[day]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrNoPendingOffers, day)
	}

	var committed []*CommittedEvent
	for _, offer := range offers {
		if offer.Forced != nil {
			ev := offer.Forced
			s.ledger.applyAccounts(ev)
			s.history = append(s.history, ev)
			committed = append(committed, ev)
			continue
		}

		opt := pickOption(offer, choices[offer.OfferID])
		ev := &CommittedEvent{
			ID:             newID("ev"),
			Day:            day,
			ScenarioID:     offer.ScenarioID,
			Name:           offer.Name,
			Category:       offer.Category,
			Tags:           offer.Tags,
			Deterministic:  offer.Deterministic,
			ProposedAmount: offer.ProposedAmount,
			Amount:         round2(opt.AmountNow),
			ChosenOption:   opt.Code,
			ChosenLabel:    opt.Label,
			Probability:    offer.Probability,
			Breakdown:      offer.Breakdown,
		}

		if offer.ScenarioID == "scn_paycheck" && ev.Amount > 0 {
			s.lastPay = ev.Amount
		}
		for _, trig := range opt.Triggers {
			s.scheduleTrigger(day, trig, ev)
		}
		if opt.Effects != nil && opt.Effects.SavingPledge != nil {
			s.startPlan(offer.Name, opt.Effects.SavingPledge.Total, day)
		}

		s.ledger.applyAccounts(ev)
		s.history = append(s.history, ev)
		committed = append(committed, ev)
	}

	s.ledger.closeDay(committed)
	delete(s.pending, day)
	if day >= s.day {
		s.day = day + 1
	}
	return committed, nil
}

// pickOption resolves a choice code against an offer's options, falling
// back to the first option when the code is missing or unknown.
func pickOption(offer *Offer, code string) Option {
	for _, opt := range offer.Options {
		if opt.Code == code {
			return opt
		}
	}
	return offer.Options[0]
}

func (s *Session) startPlan(name string, total float64, day int) {
	s.plans = append(s.plans, &SavingPlan{
		PlanID:    newID("plan"),
		Name:      name,
		Total:     round2(total),
		StartDay:  day,
		DueDay:    day + savingPlanHorizonDays,
		Frequency: "weekly",
	})
}
