package engine

import (
	"fmt"
	"math"

	"github.com/ywen250/finsim-backend/internal/catalog"
)

var lateFeeTiers = []float64{15, 25, 35, 45}

// BuildOptions produces the 2-4 player-facing choices for a scenario and
// its sampled amount. proposedAmount carries the caller-applied sign
// convention (outflows negative). All amounts come back rounded to cents.
func BuildOptions(scn *catalog.ScenarioDefinition, proposedAmount float64, rng RandomSource) []Option {
	if rng == nil {
		rng = DefaultRNG()
	}
	var opts []Option

	switch scn.Category {
	case catalog.CategoryBill:
		amt := proposedAmount
		deferred := round2(amt * 0.5 * 1.05)
		fee := -lateFeeTiers[int(rng.Float64()*float64(len(lateFeeTiers)))%len(lateFeeTiers)]
		opts = []Option{
			{Code: "pay_now", Label: "Pay now", AmountNow: amt},
			{Code: "pay_partial", Label: "Pay 50% now, rest later (+5%)", AmountNow: amt * 0.5,
				Triggers: []catalog.TriggerTemplate{deferTrigger(catalog.IDDeferredPayment, 3, 1.0, deferred, "Deferred remainder +5%")}},
			{Code: "skip", Label: "Skip (risk late fee)", AmountNow: 0,
				Triggers: []catalog.TriggerTemplate{deferTrigger(catalog.IDLateFeeGeneric, 5, 0.9, fee, "Late fee")}},
		}

	case catalog.CategoryExpense:
		amt := proposedAmount
		opts = []Option{
			{Code: "skip", Label: "Skip", AmountNow: 0},
			{Code: "budget", Label: "Budget option (~50%)", AmountNow: amt * 0.5},
			{Code: "regular", Label: "Regular", AmountNow: amt},
			{Code: "splurge", Label: "Splurge (~150%)", AmountNow: amt * 1.5},
		}

	case catalog.CategoryDonation:
		base := math.Max(math.Abs(proposedAmount), 10)
		opts = []Option{
			{Code: "skip", Label: "Skip", AmountNow: 0},
			{Code: "small", Label: "Small donation", AmountNow: -math.Min(base*0.5, 50)},
			{Code: "regular", Label: "Regular donation", AmountNow: -base},
			{Code: "large", Label: "Large donation", AmountNow: -math.Min(base*2.0, 200)},
		}

	case catalog.CategoryIncome:
		amt := proposedAmount
		opts = []Option{
			{Code: "accept", Label: "Accept now", AmountNow: amt},
			{Code: "delay_1d", Label: "Delay to tomorrow", AmountNow: 0,
				Triggers: []catalog.TriggerTemplate{deferTrigger(scn.ID, 1, 1.0, amt, "Delayed income")}},
			{Code: "decline", Label: "Decline", AmountNow: 0},
		}

	case catalog.CategorySavingPledge:
		total := scn.Amount.Value
		if total <= 0 {
			total = 500
		}
		opts = []Option{
			{Code: "start", Label: fmt.Sprintf("Start pledge ($%d)", int(total)), AmountNow: 0,
				Effects: &OptionEffects{SavingPledge: &SavingPledgeEffect{Total: total}}},
			{Code: "start_smaller", Label: fmt.Sprintf("Start smaller pledge ($%d)", int(total*0.8)), AmountNow: 0,
				Effects: &OptionEffects{SavingPledge: &SavingPledgeEffect{Total: total * 0.8}}},
			{Code: "start_bigger", Label: fmt.Sprintf("Start larger pledge ($%d)", int(total*1.2)), AmountNow: 0,
				Effects: &OptionEffects{SavingPledge: &SavingPledgeEffect{Total: total * 1.2}}},
			{Code: "decline", Label: "Decline pledge", AmountNow: 0},
		}

	case catalog.CategoryLottery:
		ticket := -math.Abs(scn.Amount.Value)
		if ticket == 0 {
			ticket = -2
		}
		reveal := func() catalog.TriggerTemplate {
			return catalog.TriggerTemplate{Spawn: catalog.IDLotteryResult, AfterDays: 1, Prob: 1.0}
		}
		opts = []Option{
			{Code: "skip", Label: "Skip", AmountNow: 0},
			{Code: "buy_1", Label: "Buy 1 ticket", AmountNow: ticket,
				Triggers: []catalog.TriggerTemplate{reveal()}},
			{Code: "buy_5", Label: "Buy 5 tickets", AmountNow: ticket * 5,
				Triggers: []catalog.TriggerTemplate{reveal(), reveal(), reveal(), reveal(), reveal()}},
		}

	default:
		amt := proposedAmount
		if amt >= 0 {
			opts = []Option{
				{Code: "accept", Label: "Accept", AmountNow: amt},
				{Code: "delay", Label: "Delay by 1 day", AmountNow: 0,
					Triggers: []catalog.TriggerTemplate{deferTrigger(scn.ID, 1, 1.0, amt, "Delayed")}},
				{Code: "decline", Label: "Decline", AmountNow: 0},
			}
		} else {
			opts = []Option{
				{Code: "skip", Label: "Skip", AmountNow: 0},
				{Code: "regular", Label: "Proceed", AmountNow: amt},
			}
		}
	}

	for i := range opts {
		opts[i].AmountNow = round2(opts[i].AmountNow)
	}
	return opts
}

func deferTrigger(spawn string, afterDays int, prob, overrideAmount float64, desc string) catalog.TriggerTemplate {
	amt := overrideAmount
	return catalog.TriggerTemplate{
		Spawn:     spawn,
		AfterDays: afterDays,
		Prob:      prob,
		Data:      catalog.TriggerData{OverrideAmount: &amt, ExtraDesc: desc},
	}
}
