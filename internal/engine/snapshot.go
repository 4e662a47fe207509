package engine

import (
	"github.com/ywen250/finsim-backend/internal/catalog"
)

// Snapshot is the serializable form of a session, sufficient to resume it
// against the same (or a compatible) catalog. The random source is not
// part of the snapshot; restores supply their own.
type Snapshot struct {
	Day     int                      `json:"day"`
	LastPay float64                  `json:"last_pay"`
	Profile UserProfile              `json:"profile"`
	Ledger  Ledger                   `json:"ledger"`
	History []*CommittedEvent        `json:"history"`
	Pending map[int][]*Offer         `json:"pending,omitempty"`
	Delayed map[int][]TriggerPayload `json:"delayed,omitempty"`
	Plans   []*SavingPlan            `json:"plans,omitempty"`
}

// Snapshot captures the session's current state.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Day:     s.day,
		LastPay: s.lastPay,
		Profile: s.profile,
		Ledger:  s.Ledger(),
		History: append([]*CommittedEvent(nil), s.history...),
		Pending: copyOfferMap(s.pending),
		Delayed: copyTriggerMap(s.delayed),
		Plans:   copyPlans(s.plans),
	}
}

// RestoreSession rebuilds a session from a snapshot. A nil rng falls back
// to the default source.
func RestoreSession(cat *catalog.Catalog, snap *Snapshot, rng RandomSource) *Session {
	if rng == nil {
		rng = DefaultRNG()
	}
	s := &Session{
		catalog: cat,
		profile: snap.Profile,
		rng:     rng,
		day:     snap.Day,
		lastPay: snap.LastPay,
		history: append([]*CommittedEvent(nil), snap.History...),
		pending: copyOfferMap(snap.Pending),
		delayed: copyTriggerMap(snap.Delayed),
		plans:   copyPlans(snap.Plans),
		ledger:  snap.Ledger,
	}
	if s.pending == nil {
		s.pending = make(map[int][]*Offer)
	}
	if s.delayed == nil {
		s.delayed = make(map[int][]TriggerPayload)
	}
	return s
}

func copyOfferMap(in map[int][]*Offer) map[int][]*Offer {
	if in == nil {
		return nil
	}
	out := make(map[int][]*Offer, len(in))
	for day, offers := range in {
		out[day] = append([]*Offer(nil), offers...)
	}
	return out
}

func copyTriggerMap(in map[int][]TriggerPayload) map[int][]TriggerPayload {
	if in == nil {
		return nil
	}
	out := make(map[int][]TriggerPayload, len(in))
	for day, payloads := range in {
		out[day] = append([]TriggerPayload(nil), payloads...)
	}
	return out
}

func copyPlans(in []*SavingPlan) []*SavingPlan {
	if in == nil {
		return nil
	}
	out := make([]*SavingPlan, len(in))
	for i, p := range in {
		cp := *p
		out[i] = &cp
	}
	return out
}
