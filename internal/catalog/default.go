package catalog

import "strings"

// fixedAmt / uniformAmt / normalAmt / lognormalAmt / pctAmt / choiceAmt are
// shorthand constructors for the default catalog below.
func fixedAmt(v float64) AmountSpec { return AmountSpec{Dist: "fixed", Value: v} }

func uniformAmt(low, high float64) AmountSpec {
	return AmountSpec{Dist: "uniform", Low: low, High: high}
}

func lognormalAmt(mean, sigma, min float64) AmountSpec {
	return AmountSpec{Dist: "lognormal", Mean: mean, Sigma: sigma, Min: min}
}

func pctAmt(pct float64) AmountSpec { return AmountSpec{Dist: "percent_of_pay", Pct: pct} }

func choiceAmt(opts ...float64) AmountSpec { return AmountSpec{Dist: "choice", Options: opts} }

// slugID derives a stable scenario id from a display name, so externally
// authored catalogs and saved sessions can reference default entries.
func slugID(name string) string {
	s := strings.ToLower(name)
	repl := strings.NewReplacer(" ", "_", "/", "_", "'", "", "-", "_", "(", "", ")", "")
	s = repl.Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return "scn_" + strings.Trim(s, "_")
}

type randomEntry struct {
	name     string
	tags     []string
	amount   AmountSpec
	prob     float64
	cooldown int
}

func appendRandom(defs []*ScenarioDefinition, cat Category, descSuffix string, entries []randomEntry) []*ScenarioDefinition {
	for _, e := range entries {
		defs = append(defs, &ScenarioDefinition{
			ID:            slugID(e.name),
			Name:          e.name,
			Category:      cat,
			Tags:          e.tags,
			Description:   e.name + " " + descSuffix,
			Amount:        e.amount,
			BaseDailyProb: e.prob,
			CooldownDays:  e.cooldown,
		})
	}
	return defs
}

// BuildDefault constructs the built-in scenario catalog: one paycheck,
// recurring bills, weekly essentials, discretionary day-to-day spending,
// emergencies, donations and gifts, irregular incomes, saving pledges,
// the lottery pair, and the synthetic trigger targets.
func BuildDefault() []*ScenarioDefinition {
	var defs []*ScenarioDefinition

	defs = append(defs, &ScenarioDefinition{
		ID:            "scn_paycheck",
		Name:          "Paycheck",
		Category:      CategoryIncome,
		Tags:          []string{"salary", "recurring"},
		Description:   "Regular salary paycheck determined by user's pay cycle.",
		Amount:        fixedAmt(2000),
		Deterministic: true,
		Schedule:      &ScheduleRule{Type: "pay_cycle"},
	})

	monthlyBills := []struct {
		name string
		tags []string
		avg  float64
	}{
		{"Rent", []string{"rent", "housing"}, 1200},
		{"Mortgage", []string{"mortgage", "housing"}, 1800},
		{"Electricity Bill", []string{"utilities"}, 80},
		{"Water Bill", []string{"utilities"}, 40},
		{"Gas Utility", []string{"utilities"}, 60},
		{"Internet Plan", []string{"internet", "utilities"}, 60},
		{"Mobile Phone Plan", []string{"mobile", "utilities"}, 70},
		{"Car Insurance", []string{"insurance", "car"}, 120},
		{"Health Insurance Premium", []string{"insurance", "healthcare"}, 350},
		{"Renter's Insurance", []string{"insurance", "housing"}, 18},
		{"Homeowner's Insurance", []string{"insurance", "housing"}, 95},
		{"Public Transit Pass", []string{"public_transit", "transport"}, 90},
		{"Parking Permit", []string{"car", "transport"}, 60},
		{"Gym Membership", []string{"subscriptions", "fitness"}, 35},
		{"Cloud Storage 2TB", []string{"subscriptions"}, 10},
		{"Productivity Software", []string{"subscriptions"}, 12},
		{"VPN Subscription", []string{"subscriptions"}, 8},
		{"News Subscription", []string{"subscriptions"}, 9},
		{"Streaming Video", []string{"subscriptions", "entertainment"}, 12},
		{"Music Streaming", []string{"subscriptions", "entertainment"}, 10},
		{"Coding Platform Pro", []string{"subscriptions", "education"}, 20},
		{"Credit Card Minimum Payment", []string{"debt"}, 45},
		{"Student Loan Payment", []string{"debt", "student_loan"}, 220},
		{"Daycare / Childcare", []string{"childcare"}, 750},
		{"Storage Unit", []string{"housing", "fees"}, 120},
	}
	for i, b := range monthlyBills {
		minClip := b.avg * 0.5
		if minClip < 5 {
			minClip = 5
		}
		defs = append(defs, &ScenarioDefinition{
			ID:            slugID(b.name),
			Name:          b.name,
			Category:      CategoryBill,
			Tags:          append(append([]string{}, b.tags...), "recurring"),
			Description:   "Recurring monthly bill: " + b.name + ".",
			Amount:        lognormalAmt(b.avg, b.avg*0.2, minClip),
			Deterministic: true,
			Schedule:      &ScheduleRule{Type: "every_n_days", N: 30, Offset: (i + 1) % 30},
		})
	}

	weekly := []struct {
		name string
		tags []string
		mean float64
	}{
		{"Groceries", []string{"groceries"}, 95},
		{"Fuel Refill", []string{"fuel", "car", "transport"}, 50},
	}
	for i, w := range weekly {
		defs = append(defs, &ScenarioDefinition{
			ID:            slugID(w.name),
			Name:          w.name,
			Category:      CategoryExpense,
			Tags:          append(append([]string{}, w.tags...), "recurring"),
			Description:   "Regular weekly spend on " + strings.ToLower(w.name) + ".",
			Amount:        lognormalAmt(w.mean, w.mean*0.4, 10),
			Deterministic: true,
			Schedule:      &ScheduleRule{Type: "every_n_days", N: 7, Offset: (i + 1) % 7},
		})
	}

	defs = appendRandom(defs, CategoryExpense, "discretionary spend.", []randomEntry{
		{"Coffee Shop", []string{"dining", "leisure", "convenience"}, choiceAmt(4, 6, 8, 10), 0.22, 0},
		{"Lunch Out", []string{"dining", "leisure"}, uniformAmt(9, 18), 0.18, 0},
		{"Dinner Out", []string{"dining", "leisure"}, uniformAmt(15, 35), 0.12, 1},
		{"Ride-share Trip", []string{"transport", "convenience"}, uniformAmt(8, 35), 0.10, 0},
		{"Movie Night", []string{"entertainment", "leisure"}, uniformAmt(12, 45), 0.05, 3},
		{"Streaming Movie Rental", []string{"entertainment", "leisure"}, choiceAmt(4, 6), 0.06, 1},
		{"Clothes Shopping", []string{"shopping", "clothes"}, lognormalAmt(65, 50, 15), 0.03, 7},
		{"Shoe Shopping", []string{"shopping", "clothes"}, lognormalAmt(85, 60, 25), 0.02, 14},
		{"Electronics Accessory", []string{"shopping", "electronics"}, uniformAmt(15, 90), 0.03, 7},
		{"Concert Ticket", []string{"entertainment", "leisure", "social"}, lognormalAmt(80, 60, 25), 0.01, 20},
		{"Sports Event", []string{"entertainment", "sports", "social"}, lognormalAmt(85, 65, 25), 0.01, 20},
		{"Bar / Night Out", []string{"leisure", "social", "alcohol"}, uniformAmt(20, 80), 0.05, 2},
		{"Home Cleaning Service", []string{"convenience"}, lognormalAmt(120, 60, 60), 0.01, 14},
	})

	defs = appendRandom(defs, CategoryExpense, "unexpected expense.", []randomEntry{
		{"Parking Ticket", []string{"fines", "fees"}, choiceAmt(45, 65, 90), 0.01, 30},
		{"Speeding Ticket", []string{"fines", "fees"}, choiceAmt(120, 180, 240), 0.004, 60},
		{"Car Repair", []string{"car", "emergency"}, lognormalAmt(450, 250, 150), 0.006, 60},
		{"Home Repair", []string{"home_improvement", "emergency"}, lognormalAmt(600, 400, 150), 0.004, 60},
		{"Urgent Care Visit", []string{"healthcare", "emergency"}, lognormalAmt(180, 120, 50), 0.006, 30},
		{"Vet Emergency", []string{"pet", "emergency"}, lognormalAmt(350, 200, 100), 0.003, 90},
		{"Overdraft Fee", []string{"fees"}, fixedAmt(35), 0.005, 10},
		{"Bank Account Fee", []string{"fees"}, choiceAmt(5, 10, 15), 0.01, 10},
		{"Credit Card Late Fee", []string{"fees", "debt"}, choiceAmt(25, 35, 40), 0.004, 30},
	})

	giving := []randomEntry{
		{"Charity Donation", []string{"donation"}, choiceAmt(10, 25, 50, 100), 0.02, 7},
		{"Crowdfunding Support", []string{"donation", "social"}, choiceAmt(10, 20, 50), 0.015, 7},
		{"Birthday Gift for Friend", []string{"gift", "social"}, uniformAmt(20, 80), 0.02, 20},
		{"Wedding Gift", []string{"gift", "social"}, uniformAmt(75, 200), 0.006, 90},
		{"Holiday Gifts Shopping", []string{"gift", "holiday"}, lognormalAmt(300, 150, 50), 0.003, 120},
	}
	for _, g := range giving {
		cat := CategoryExpense
		for _, t := range g.tags {
			if t == "donation" {
				cat = CategoryDonation
				break
			}
		}
		defs = append(defs, &ScenarioDefinition{
			ID:            slugID(g.name),
			Name:          g.name,
			Category:      cat,
			Tags:          g.tags,
			Description:   g.name + " discretionary outflow.",
			Amount:        g.amount,
			BaseDailyProb: g.prob,
			CooldownDays:  g.cooldown,
		})
	}

	defs = appendRandom(defs, CategoryIncome, "received.", []randomEntry{
		{"Side Gig Payout", []string{"gig_income"}, lognormalAmt(120, 80, 40), 0.05, 0},
		{"Freelance Invoice Paid", []string{"freelance_income"}, lognormalAmt(600, 350, 150), 0.02, 7},
		{"Cash Gift from Family", []string{"windfall"}, choiceAmt(20, 50, 100, 200), 0.008, 30},
		{"Money from Friend", []string{"windfall", "social"}, choiceAmt(10, 20, 50), 0.02, 7},
		{"Tax Refund", []string{"tax", "windfall"}, lognormalAmt(900, 400, 200), 0.001, 365},
		{"Performance Bonus", []string{"bonus", "windfall"}, lognormalAmt(1500, 700, 400), 0.002, 180},
		{"Dividend Income", []string{"investment_income", "investment"}, choiceAmt(10, 25, 40), 0.02, 20},
		{"Marketplace Sale", []string{"windfall"}, lognormalAmt(85, 50, 20), 0.02, 5},
	})

	defs = appendRandom(defs, CategoryExpense, "discretionary outflow.", []randomEntry{
		{"Stock Purchase", []string{"investment"}, lognormalAmt(250, 150, 50), 0.02, 3},
		{"Crypto Purchase", []string{"investment"}, lognormalAmt(150, 120, 20), 0.015, 3},
		{"Savings Transfer", []string{"savings"}, pctAmt(0.1), 0.03, 2},
		{"Extra Credit Card Payment", []string{"debt"}, lognormalAmt(120, 70, 25), 0.02, 5},
		{"Student Loan Extra Payment", []string{"debt", "student_loan"}, lognormalAmt(200, 120, 50), 0.008, 10},
	})

	defs = append(defs, &ScenarioDefinition{
		ID:            "scn_buy_lottery_ticket",
		Name:          "Buy Lottery Ticket",
		Category:      CategoryLottery,
		Tags:          []string{"gambling"},
		Description:   "Purchase a lottery ticket.",
		Amount:        fixedAmt(2),
		BaseDailyProb: 0.03,
		Triggers:      []TriggerTemplate{{Spawn: IDLotteryResult, AfterDays: 1, Prob: 1.0}},
	})
	defs = append(defs, &ScenarioDefinition{
		ID:          IDLotteryResult,
		Name:        "Lottery Result",
		Category:    CategoryIncome,
		Tags:        []string{"gambling", "windfall"},
		Description: "Lottery outcome (usually $0; small chance of win).",
		Amount:      choiceAmt(0),
	})

	savingGoals := []struct {
		name  string
		desc  string
		total float64
		prob  float64
		tags  []string
	}{
		{"Start Emergency Fund Pledge", "Build a $500 emergency fund in 60 days.", 500, 0.01, []string{"savings"}},
		{"Save for Vacation", "Save $1,200 for a trip in 120 days.", 1200, 0.008, []string{"savings", "travel"}},
		{"Save for New Laptop", "Save $1,000 for a laptop in 90 days.", 1000, 0.009, []string{"savings", "electronics"}},
		{"Holiday Gifts Pledge", "Save $800 for holiday gifts in 90 days.", 800, 0.006, []string{"savings", "holiday", "gift"}},
	}
	for _, g := range savingGoals {
		defs = append(defs, &ScenarioDefinition{
			ID:            slugID(g.name),
			Name:          g.name,
			Category:      CategorySavingPledge,
			Tags:          g.tags,
			Description:   g.desc,
			Amount:        fixedAmt(g.total),
			BaseDailyProb: g.prob,
			CooldownDays:  45,
			Triggers: []TriggerTemplate{{
				Spawn: IDSavingContribution, AfterDays: 1, Prob: 1.0,
				Data: TriggerData{Frequency: "weekly"},
			}},
		})
	}
	defs = append(defs, &ScenarioDefinition{
		ID:          IDSavingContribution,
		Name:        "Saving Plan Contribution",
		Category:    CategoryExpense,
		Tags:        []string{"savings"},
		Description: "Contribution toward an active saving pledge.",
		Amount:      choiceAmt(0),
	})

	defs = appendRandom(defs, CategoryExpense, "planned spend.", []randomEntry{
		{"Weekend Getaway Booking", []string{"travel", "leisure"}, lognormalAmt(350, 200, 120), 0.006, 45},
		{"Flight Ticket Purchase", []string{"travel"}, lognormalAmt(420, 250, 150), 0.004, 60},
		{"Hotel Booking", []string{"travel"}, lognormalAmt(300, 180, 120), 0.004, 45},
	})

	defs = appendRandom(defs, CategoryExpense, "large purchase.", []randomEntry{
		{"Appliance Replacement", []string{"home_improvement"}, lognormalAmt(700, 450, 200), 0.003, 180},
		{"Furniture Purchase", []string{"home_improvement"}, lognormalAmt(550, 300, 200), 0.004, 120},
		{"Phone Upgrade", []string{"electronics"}, lognormalAmt(900, 300, 400), 0.003, 365},
		{"Laptop Upgrade", []string{"electronics"}, lognormalAmt(1200, 400, 500), 0.002, 365},
		{"Television Upgrade", []string{"electronics"}, lognormalAmt(800, 300, 300), 0.002, 270},
	})

	defs = appendRandom(defs, CategoryExpense, "academic cost.", []randomEntry{
		{"Course Enrollment Fee", []string{"education"}, lognormalAmt(250, 120, 80), 0.01, 60},
		{"Exam Fee", []string{"education"}, choiceAmt(60, 100, 200), 0.008, 90},
		{"Textbook Purchase", []string{"education"}, lognormalAmt(120, 60, 40), 0.015, 30},
	})

	defs = appendRandom(defs, CategoryExpense, "health/wellness expense.", []randomEntry{
		{"Dental Cleaning Copay", []string{"healthcare"}, choiceAmt(20, 40, 60), 0.01, 180},
		{"Medication Refill", []string{"healthcare"}, lognormalAmt(35, 20, 10), 0.03, 25},
		{"New Glasses / Contacts", []string{"healthcare"}, lognormalAmt(180, 120, 60), 0.006, 365},
		{"Therapy Session Copay", []string{"healthcare"}, uniformAmt(20, 60), 0.01, 14},
		{"Gym Day Pass", []string{"fitness", "leisure"}, choiceAmt(10, 15, 20), 0.03, 3},
	})

	defs = appendRandom(defs, CategoryExpense, "housing cost.", []randomEntry{
		{"Security Deposit", []string{"housing"}, lognormalAmt(1200, 500, 500), 0.001, 365},
		{"Moving Truck Rental", []string{"housing", "fees"}, lognormalAmt(200, 120, 80), 0.002, 365},
	})
	defs = appendRandom(defs, CategoryIncome, "received.", []randomEntry{
		{"Deposit Returned", []string{"windfall", "housing"}, lognormalAmt(900, 350, 200), 0.001, 365},
	})

	defs = appendRandom(defs, CategoryExpense, "administrative fee.", []randomEntry{
		{"Driver License Renewal", []string{"fees"}, choiceAmt(20, 35, 50), 0.001, 365},
		{"Passport Fee", []string{"fees"}, choiceAmt(110, 140, 180), 0.0007, 365},
		{"Tax Filing Service", []string{"fees", "tax"}, choiceAmt(50, 100, 200), 0.002, 365},
		{"Library Late Fee", []string{"fees"}, choiceAmt(5, 10, 15), 0.01, 14},
	})

	defs = appendRandom(defs, CategoryIncome, "received.", []randomEntry{
		{"Return Item for Refund", []string{"refund"}, lognormalAmt(60, 40, 10), 0.01, 30},
		{"Mail-in Rebate", []string{"rebate"}, choiceAmt(10, 20, 50), 0.004, 120},
		{"Credit Card Cashback", []string{"cashback"}, choiceAmt(5, 10, 25), 0.05, 14},
	})

	defs = appendRandom(defs, CategoryExpense, "social spend.", []randomEntry{
		{"Host Dinner at Home", []string{"leisure", "social"}, lognormalAmt(85, 50, 25), 0.01, 20},
		{"Weekend Road Trip", []string{"travel", "social"}, lognormalAmt(200, 120, 80), 0.006, 30},
		{"Join a Club / Association", []string{"subscriptions", "social"}, choiceAmt(10, 20, 50), 0.005, 180},
	})

	defs = append(defs,
		&ScenarioDefinition{
			ID:          IDDeferredPayment,
			Name:        "Deferred Payment Due",
			Category:    CategoryBill,
			Tags:        []string{"fees", "debt"},
			Description: "Deferred payment scheduled by player choice.",
			Amount:      fixedAmt(0),
		},
		&ScenarioDefinition{
			ID:          IDLateFeeGeneric,
			Name:        "Late Fee",
			Category:    CategoryExpense,
			Tags:        []string{"fees"},
			Description: "Generic late fee incurred by skipping or deferring obligations.",
			Amount:      choiceAmt(15, 25, 35, 45),
		},
	)

	return defs
}
