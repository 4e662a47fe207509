package engine

// PayCycle describes how often and how much the player is paid.
// Type is weekly, biweekly, semimonthly, or monthly (the default).
type PayCycle struct {
	Type     string  `json:"type"`
	StartDay int     `json:"start_day"`
	Amount   float64 `json:"amount"`
}

// UserProfile is the per-session player description. Constructed by the
// caller; the engine mutates nothing here except reading Mood on each
// probability pass (external code may update Mood between days).
type UserProfile struct {
	Name            string             `json:"name"`
	SegmentKey      string             `json:"segment_key"`
	Mood            string             `json:"mood"`
	PayCycle        PayCycle           `json:"pay_cycle"`
	Predispositions map[string]float64 `json:"predispositions,omitempty"`
	BaseBalance     float64            `json:"base_balance"`
}
