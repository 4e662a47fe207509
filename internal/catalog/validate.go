package catalog

import (
	"fmt"
	"strings"
)

// Validate checks semantic constraints of a scenario list before it becomes
// a catalog. Trigger targets are checked against the list plus the synthetic
// ids the engine always provides.
func Validate(defs []*ScenarioDefinition) error {
	var errs []string

	ids := map[string]bool{
		IDLotteryResult:      true,
		IDSavingContribution: true,
		IDDeferredPayment:    true,
		IDLateFeeGeneric:     true,
	}
	for i, d := range defs {
		if d.ID == "" {
			errs = append(errs, fmt.Sprintf("scenario[%d]: id is required", i))
			continue
		}
		if ids[d.ID] && d.ID != IDLotteryResult && d.ID != IDSavingContribution &&
			d.ID != IDDeferredPayment && d.ID != IDLateFeeGeneric {
			errs = append(errs, fmt.Sprintf("scenario %s: duplicate id", d.ID))
		}
		ids[d.ID] = true
	}

	for _, d := range defs {
		if d.ID == "" {
			continue
		}
		if d.Name == "" {
			errs = append(errs, fmt.Sprintf("scenario %s: name is required", d.ID))
		}
		if !d.Category.Known() {
			errs = append(errs, fmt.Sprintf("scenario %s: unknown category %q", d.ID, d.Category))
		}
		if d.BaseDailyProb < 0 || d.BaseDailyProb > 1 {
			errs = append(errs, fmt.Sprintf("scenario %s: base_daily_prob must be in [0,1]", d.ID))
		}
		if d.CooldownDays < 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: cooldown_days must be >= 0", d.ID))
		}
		if d.Deterministic && d.Schedule == nil {
			errs = append(errs, fmt.Sprintf("scenario %s: deterministic scenario needs a schedule", d.ID))
		}
		errs = append(errs, validateAmount(d)...)
		errs = append(errs, validateSchedule(d)...)
		for i, t := range d.Triggers {
			if t.Spawn == "" {
				errs = append(errs, fmt.Sprintf("scenario %s: triggers[%d].spawn is required", d.ID, i))
			} else if !ids[t.Spawn] {
				errs = append(errs, fmt.Sprintf("scenario %s: triggers[%d] targets unknown scenario %q", d.ID, i, t.Spawn))
			}
			if t.AfterDays < 1 {
				errs = append(errs, fmt.Sprintf("scenario %s: triggers[%d].after_days must be >= 1", d.ID, i))
			}
			if t.Prob < 0 || t.Prob > 1 {
				errs = append(errs, fmt.Sprintf("scenario %s: triggers[%d].prob must be in [0,1]", d.ID, i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateAmount(d *ScenarioDefinition) []string {
	var errs []string
	a := d.Amount
	switch a.Dist {
	case "fixed", "":
		// zero value is legal (synthetic placeholders use it)
	case "uniform":
		if a.High < a.Low {
			errs = append(errs, fmt.Sprintf("scenario %s: amount.high must be >= amount.low", d.ID))
		}
	case "normal":
		if a.SD < 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: amount.sd must be >= 0", d.ID))
		}
	case "lognormal":
		if a.Mean <= 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: amount.mean must be > 0 for lognormal", d.ID))
		}
		if a.Sigma < 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: amount.sigma must be >= 0", d.ID))
		}
	case "percent_of_pay":
		if a.Pct <= 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: amount.pct must be > 0", d.ID))
		}
	case "choice":
		if len(a.Options) == 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: amount.options must not be empty", d.ID))
		}
		if len(a.Weights) > 0 && len(a.Weights) != len(a.Options) {
			errs = append(errs, fmt.Sprintf("scenario %s: amount.weights must match amount.options", d.ID))
		}
	default:
		errs = append(errs, fmt.Sprintf("scenario %s: unknown amount dist %q", d.ID, a.Dist))
	}
	return errs
}

func validateSchedule(d *ScenarioDefinition) []string {
	if d.Schedule == nil {
		return nil
	}
	var errs []string
	switch d.Schedule.Type {
	case "every_n_days":
		if d.Schedule.N <= 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: schedule.n must be >= 1", d.ID))
		}
		if d.Schedule.Offset < 0 {
			errs = append(errs, fmt.Sprintf("scenario %s: schedule.offset must be >= 0", d.ID))
		}
	case "pay_cycle":
		// cadence comes from the profile
	default:
		// unknown schedule types are tolerated; the evaluator treats them
		// as never due
	}
	return errs
}
