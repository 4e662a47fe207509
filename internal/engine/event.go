package engine

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ywen250/finsim-backend/internal/catalog"
)

// newID mints a short prefixed identifier for offers, events, and plans.
func newID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:10]
}

// ProbBreakdown retains every factor that shaped an offer's occurrence
// probability, for transparency and debugging.
type ProbBreakdown struct {
	Base           float64 `json:"base"`
	Segment        float64 `json:"segment"`
	Mood           float64 `json:"mood"`
	Predisposition float64 `json:"predisposition"`
	Balance        float64 `json:"balance"`
	Cooldown       float64 `json:"cooldown"`
}

// OptionEffects carries non-monetary consequences of choosing an option.
type OptionEffects struct {
	SavingPledge *SavingPledgeEffect `json:"saving_pledge,omitempty"`
}

// SavingPledgeEffect starts a saving plan at the given target total.
type SavingPledgeEffect struct {
	Total float64 `json:"total"`
}

// Option is one player-facing choice on an offer. AmountNow is the signed,
// immediately-applied ledger impact; Triggers and Effects fire on selection.
type Option struct {
	Code      string                    `json:"code"`
	Label     string                    `json:"label"`
	AmountNow float64                   `json:"amount_now"`
	Triggers  []catalog.TriggerTemplate `json:"triggers,omitempty"`
	Effects   *OptionEffects            `json:"effects,omitempty"`
}

// Offer is a day-specific instantiation of a scenario with concrete
// choices. It lives in the pending registry between proposal and commit.
type Offer struct {
	OfferID        string           `json:"offer_id"`
	Day            int              `json:"day"`
	ScenarioID     string           `json:"scenario_id"`
	Name           string           `json:"name"`
	Category       catalog.Category `json:"type"`
	Tags           []string         `json:"tags"`
	Deterministic  bool             `json:"deterministic"`
	ProposedAmount float64          `json:"proposed_amount"`
	Probability    float64          `json:"probability"`
	Breakdown      ProbBreakdown    `json:"prob_details"`
	Options        []Option         `json:"options"`

	// Forced holds the predetermined event for trigger-materialized and
	// auto-contribution offers; the resolver commits it without choice logic.
	Forced *CommittedEvent `json:"internal_forced_event,omitempty"`
}

// CommittedEvent is the permanent record of one resolved offer.
// Append-only: once in history it is never mutated.
type CommittedEvent struct {
	ID             string           `json:"id"`
	Day            int              `json:"day"`
	ScenarioID     string           `json:"scenario_id"`
	Name           string           `json:"name"`
	Category       catalog.Category `json:"type"`
	Tags           []string         `json:"tags"`
	Deterministic  bool             `json:"deterministic"`
	ProposedAmount float64          `json:"proposed_amount"`
	Amount         float64          `json:"amount"`
	ChosenOption   string           `json:"chosen_option"`
	ChosenLabel    string           `json:"chosen_label,omitempty"`
	Probability    float64          `json:"probability"`
	Breakdown      ProbBreakdown    `json:"prob_details"`
	Description    string           `json:"description,omitempty"`
}

// HasTag reports whether the event carries the given tag.
func (e *CommittedEvent) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SavingPlan tracks a recurring pledge started by a saving_pledge option.
type SavingPlan struct {
	PlanID      string  `json:"plan_id"`
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	StartDay    int     `json:"start_day"`
	DueDay      int     `json:"due_day"`
	Frequency   string  `json:"frequency"`
	Contributed float64 `json:"contributed"`
}

// Remaining reports how much of the pledge target is still unfunded.
func (p *SavingPlan) Remaining() float64 {
	r := p.Total - p.Contributed
	if r < 0 {
		return 0
	}
	return r
}
