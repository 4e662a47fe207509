package catalog

// Category classifies a scenario; the option builder branches on it.
type Category string

const (
	CategoryBill         Category = "bill"
	CategoryExpense      Category = "expense"
	CategoryDonation     Category = "donation"
	CategoryIncome       Category = "income"
	CategorySavingPledge Category = "saving_pledge"
	CategoryLottery      Category = "lottery"
	CategoryGeneric      Category = "generic"
)

// Known reports whether c is one of the closed category set.
func (c Category) Known() bool {
	switch c {
	case CategoryBill, CategoryExpense, CategoryDonation, CategoryIncome,
		CategorySavingPledge, CategoryLottery, CategoryGeneric:
		return true
	}
	return false
}

// Fixed ids for synthetic scenarios the engine instantiates from triggers.
// External catalogs may omit them; New appends the built-in definitions.
const (
	IDLotteryResult      = "lottery_result"
	IDSavingContribution = "saving_contribution"
	IDDeferredPayment    = "deferred_payment"
	IDLateFeeGeneric     = "late_fee_generic"
)

// AmountSpec declares how a monetary amount is sampled.
// Dist is one of: fixed, uniform, normal, lognormal, percent_of_pay, choice.
type AmountSpec struct {
	Dist    string    `yaml:"dist" json:"dist"`
	Value   float64   `yaml:"value,omitempty" json:"value,omitempty"`
	Low     float64   `yaml:"low,omitempty" json:"low,omitempty"`
	High    float64   `yaml:"high,omitempty" json:"high,omitempty"`
	Mean    float64   `yaml:"mean,omitempty" json:"mean,omitempty"`
	SD      float64   `yaml:"sd,omitempty" json:"sd,omitempty"`
	Sigma   float64   `yaml:"sigma,omitempty" json:"sigma,omitempty"`
	Min     float64   `yaml:"min,omitempty" json:"min,omitempty"`
	Max     *float64  `yaml:"max,omitempty" json:"max,omitempty"`
	Pct     float64   `yaml:"pct,omitempty" json:"pct,omitempty"`
	Options []float64 `yaml:"options,omitempty" json:"options,omitempty"`
	Weights []float64 `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// ScheduleRule describes a deterministic recurrence.
// Type "every_n_days" uses N and Offset; "pay_cycle" follows the profile.
type ScheduleRule struct {
	Type   string `yaml:"type" json:"type"`
	N      int    `yaml:"n,omitempty" json:"n,omitempty"`
	Offset int    `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// TriggerTemplate schedules a deferred consequence when its option is chosen.
// Spawn is a scenario id or the synthetic "lottery_result".
type TriggerTemplate struct {
	Spawn     string      `yaml:"spawn" json:"spawn"`
	AfterDays int         `yaml:"after_days" json:"after_days"`
	Prob      float64     `yaml:"prob" json:"prob"`
	Data      TriggerData `yaml:"data,omitempty" json:"data,omitempty"`
}

// TriggerData carries optional payload overrides for the spawned event.
type TriggerData struct {
	OverrideAmount *float64 `yaml:"override_amount,omitempty" json:"override_amount,omitempty"`
	ExtraDesc      string   `yaml:"extra_desc,omitempty" json:"extra_desc,omitempty"`
	Frequency      string   `yaml:"frequency,omitempty" json:"frequency,omitempty"`
}

// ScenarioDefinition is one immutable catalog entry. Loaded once per process
// and shared read-only by every session.
type ScenarioDefinition struct {
	ID            string            `yaml:"id" json:"id"`
	Name          string            `yaml:"name" json:"name"`
	Category      Category          `yaml:"type" json:"type"`
	Tags          []string          `yaml:"tags" json:"tags"`
	Description   string            `yaml:"description" json:"description"`
	Amount        AmountSpec        `yaml:"amount" json:"amount"`
	BaseDailyProb float64           `yaml:"base_daily_prob" json:"base_daily_prob"`
	Deterministic bool              `yaml:"deterministic" json:"deterministic"`
	Schedule      *ScheduleRule     `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	CooldownDays  int               `yaml:"cooldown_days" json:"cooldown_days"`
	Triggers      []TriggerTemplate `yaml:"triggers,omitempty" json:"triggers,omitempty"`
}

// HasTag reports whether the scenario carries the given tag.
func (s *ScenarioDefinition) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
