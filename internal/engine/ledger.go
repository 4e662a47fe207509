package engine

import (
	"math"
	"strings"

	"github.com/ywen250/finsim-backend/internal/catalog"
)

const startingHealth = 65.0

// Achievement identifiers. The earned set only ever grows.
const (
	AchFirstPaycheck = "first_paycheck"
	AchBuffer500     = "buffer_500"
	AchStreak7       = "streak_7"
	AchDonor100      = "donor_100"
	AchLottoWin      = "lotto_win"
)

// TotalAchievements is the size of the achievement pool.
const TotalAchievements = 5

// Ledger holds the three-account balances plus the derived wellbeing
// state: financial health score, donation total, nonnegative-net-day
// streak, and the monotonic achievement set.
type Ledger struct {
	Checking    float64 `json:"checking"`
	Savings     float64 `json:"savings"`
	Investments float64 `json:"investments"`

	Health         float64  `json:"health"`
	DonationTotal  float64  `json:"donation_total"`
	PositiveStreak int      `json:"positive_streak"`
	LastDayNet     float64  `json:"last_day_net"`
	Achievements   []string `json:"achievements"`
}

// NetWorth is the sum across all three accounts.
func (l *Ledger) NetWorth() float64 {
	return round2(l.Checking + l.Savings + l.Investments)
}

func (l *Ledger) hasAchievement(id string) bool {
	for _, a := range l.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

func (l *Ledger) award(id string) {
	if !l.hasAchievement(id) {
		l.Achievements = append(l.Achievements, id)
	}
}

// applyAccounts routes a committed event's amount into the accounts.
// Income goes to checking, or straight to investments when tagged as
// investment income. Savings- and investment-tagged outflows are internal
// transfers out of checking; everything else hits checking with its sign.
func (l *Ledger) applyAccounts(ev *CommittedEvent) {
	amt := ev.Amount
	if ev.Category == catalog.CategoryIncome {
		in := math.Max(amt, 0)
		if ev.HasTag("investment") || ev.HasTag("investment_income") {
			l.Investments += in
		} else {
			l.Checking += in
		}
		return
	}
	switch {
	case ev.HasTag("savings") || strings.HasPrefix(strings.ToLower(ev.Name), "saving plan contribution"):
		x := math.Abs(amt)
		l.Checking -= x
		l.Savings += x
	case ev.HasTag("investment"):
		x := math.Abs(amt)
		l.Checking -= x
		l.Investments += x
	default:
		l.Checking += amt
	}
}

// healthEventDelta is the per-event health adjustment driven by what kind
// of money event this was, independent of the day's net.
func healthEventDelta(ev *CommittedEvent) float64 {
	var d float64
	if ev.HasTag("emergency") {
		d -= 3
	}
	if ev.HasTag("fees") {
		d -= 2
	}
	if ev.HasTag("savings") {
		d += 1
	}
	if ev.HasTag("donation") {
		d += 0.5
	}
	if ev.HasTag("gambling") && strings.HasPrefix(strings.ToLower(ev.Name), "buy lottery ticket") {
		d -= 0.2
	}
	return d
}

func isDonation(ev *CommittedEvent) bool {
	return ev.Category == catalog.CategoryDonation || ev.HasTag("donation")
}

// closeDay folds a full day's committed events into the wellbeing state:
// net-driven and event-driven health deltas, the buffer bonus for holding
// savings and investments, the nonnegative-day streak, and achievements.
// A zero-net day still extends the streak.
func (l *Ledger) closeDay(events []*CommittedEvent) {
	var net, delta float64
	for _, ev := range events {
		net += ev.Amount
		delta += healthEventDelta(ev)
		if isDonation(ev) {
			l.DonationTotal += math.Abs(ev.Amount)
		}
	}
	l.LastDayNet = net

	if net >= 0 {
		l.PositiveStreak++
		delta += math.Min(3, net/500)
	} else {
		l.PositiveStreak = 0
		delta -= math.Min(6, -net/200)
	}
	delta += math.Min(2, 0.01*(l.Savings+0.5*l.Investments))

	l.Health = clamp(l.Health+delta, 0, 100)

	l.checkAchievements(events)
}

func (l *Ledger) checkAchievements(events []*CommittedEvent) {
	for _, ev := range events {
		if ev.Name == "Paycheck" && ev.Amount > 0 {
			l.award(AchFirstPaycheck)
		}
		if ev.Name == "Lottery Result" && ev.Amount > 0 {
			l.award(AchLottoWin)
		}
	}
	if l.Savings >= 500 {
		l.award(AchBuffer500)
	}
	if l.PositiveStreak >= 7 {
		l.award(AchStreak7)
	}
	if l.DonationTotal >= 100 {
		l.award(AchDonor100)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HUD is the per-day heads-up display derived from ledger state, using
// 30-day calendar months. Health and balances come back rounded for
// display; the ledger keeps full precision internally.
type HUD struct {
	Day        int `json:"day"`
	Month      int `json:"month"`
	DayOfMonth int `json:"day_in_month"`

	Checking    float64 `json:"checking"`
	Savings     float64 `json:"savings"`
	Investments float64 `json:"investments"`
	NetWorth    float64 `json:"net_worth"`

	Health         float64  `json:"health"`
	LastDayNet     float64  `json:"last_day_net"`
	PositiveStreak int      `json:"positive_streak"`
	Achievements   []string `json:"achievements"`
	TrophyTotal    int      `json:"trophy_total"`
}

func buildHUD(day int, l *Ledger) HUD {
	ach := make([]string, len(l.Achievements))
	copy(ach, l.Achievements)
	return HUD{
		Day:            day,
		Month:          (day-1)/30 + 1,
		DayOfMonth:     (day-1)%30 + 1,
		Checking:       round2(l.Checking),
		Savings:        round2(l.Savings),
		Investments:    round2(l.Investments),
		NetWorth:       l.NetWorth(),
		Health:         round1(l.Health),
		LastDayNet:     round2(l.LastDayNet),
		PositiveStreak: l.PositiveStreak,
		Achievements:   ach,
		TrophyTotal:    TotalAchievements,
	}
}
