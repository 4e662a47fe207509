package catalog

// Segment is a life-stage archetype with per-tag probability weights.
type Segment struct {
	Name        string
	Description string
	TagWeights  map[string]float64
}

// Segments maps segment key to archetype. Tags absent from a segment's
// weight table default to 1.0 in the probability engine.
var Segments = map[string]Segment{
	"student_dependent": {
		Name:        "Student (Dependent)",
		Description: "Studying full time, supported by family.",
		TagWeights: map[string]float64{
			"tuition": 1.6, "education": 1.4, "subscriptions": 1.2, "groceries": 0.9,
			"rent": 1.0, "leisure": 1.1, "donation": 0.7, "gambling": 0.8,
			"investment": 0.6, "salary": 0.6, "gig_income": 1.4, "transport": 1.0,
			"car": 0.7, "public_transit": 1.3, "electronics": 1.2,
		},
	},
	"student_independent": {
		Name:        "Student (Self-supporting)",
		Description: "Studying while covering own costs.",
		TagWeights: map[string]float64{
			"tuition": 1.6, "education": 1.3, "subscriptions": 1.0, "groceries": 1.1,
			"rent": 1.1, "leisure": 0.9, "donation": 0.6, "gambling": 0.7,
			"investment": 0.7, "salary": 0.9, "gig_income": 1.3, "transport": 1.1,
			"car": 0.9, "public_transit": 1.2, "fees": 1.1,
		},
	},
	"unemployed_benefits": {
		Name:        "Unemployed (With Benefits)",
		Description: "Between jobs, receiving benefits.",
		TagWeights: map[string]float64{
			"salary": 0.1, "benefits_income": 2.0, "gig_income": 1.1, "leisure": 0.8,
			"groceries": 1.0, "emergency": 1.2, "fees": 1.2, "donation": 0.5,
			"investment": 0.4, "subscriptions": 0.9,
		},
	},
	"unemployed_no_benefits": {
		Name:        "Unemployed (No Benefits)",
		Description: "Between jobs, no safety net.",
		TagWeights: map[string]float64{
			"salary": 0.1, "benefits_income": 0.5, "gig_income": 1.3, "leisure": 0.5,
			"groceries": 1.0, "emergency": 1.3, "fees": 1.3, "donation": 0.3,
			"investment": 0.3, "subscriptions": 0.8, "debt": 1.3,
		},
	},
	"early_career": {
		Name:        "Early Career",
		Description: "First years of full-time work.",
		TagWeights: map[string]float64{
			"salary": 1.2, "gig_income": 1.0, "leisure": 1.2, "groceries": 1.0,
			"subscriptions": 1.3, "donation": 0.9, "gambling": 0.9, "investment": 0.9,
			"rent": 1.2, "transport": 1.1, "electronics": 1.1,
		},
	},
	"mid_career": {
		Name:        "Mid-career Professional",
		Description: "Established career, growing family costs.",
		TagWeights: map[string]float64{
			"salary": 1.2, "investment": 1.2, "childcare": 1.4, "mortgage": 1.3,
			"insurance": 1.2, "subscriptions": 1.1, "leisure": 1.0, "donation": 1.1,
			"groceries": 1.2, "car": 1.2,
		},
	},
	"senior_professional": {
		Name:        "Senior Professional",
		Description: "Late career, high income and lifestyle.",
		TagWeights: map[string]float64{
			"salary": 1.3, "investment": 1.5, "leisure": 1.3, "luxury": 1.3,
			"donation": 1.2, "subscriptions": 1.2, "travel": 1.3, "electronics": 1.2,
			"fees": 1.0,
		},
	},
	"executive_high_income": {
		Name:        "Executive / High Income",
		Description: "Executive-level earnings and spending.",
		TagWeights: map[string]float64{
			"salary": 1.4, "investment": 1.6, "leisure": 1.4, "luxury": 1.6,
			"donation": 1.5, "travel": 1.5, "subscriptions": 1.2, "fees": 1.0,
			"mortgage": 1.2,
		},
	},
	"gig_worker": {
		Name:        "Gig Worker / Freelancer",
		Description: "Irregular income from gigs and contracts.",
		TagWeights: map[string]float64{
			"salary": 0.6, "gig_income": 2.0, "freelance_income": 1.8, "transport": 1.4,
			"car": 1.2, "public_transit": 1.1, "subscriptions": 1.0, "investment": 0.8,
			"fees": 1.1,
		},
	},
	"part_time_worker": {
		Name:        "Part-time Worker",
		Description: "Reduced hours, steady but modest pay.",
		TagWeights: map[string]float64{
			"salary": 0.8, "leisure": 0.9, "subscriptions": 1.0, "donation": 0.8,
			"groceries": 1.0, "transport": 1.0, "fees": 1.0, "investment": 0.8,
		},
	},
	"parent_young_children": {
		Name:        "Parent (Young Children)",
		Description: "Childcare-heavy household budget.",
		TagWeights: map[string]float64{
			"childcare": 1.8, "groceries": 1.3, "healthcare": 1.2, "leisure": 0.9,
			"subscriptions": 1.1, "donation": 1.0, "education": 1.2, "transport": 1.2,
			"gift": 1.3,
		},
	},
	"single_no_kids": {
		Name:        "Single (No Kids)",
		Description: "Discretionary-heavy single household.",
		TagWeights: map[string]float64{
			"leisure": 1.3, "social": 1.3, "rent": 1.2, "mortgage": 0.7,
			"travel": 1.2, "subscriptions": 1.2, "donation": 1.0, "investment": 1.0,
		},
	},
	"retired_modest": {
		Name:        "Retired (Modest)",
		Description: "Fixed pension, healthcare-weighted costs.",
		TagWeights: map[string]float64{
			"salary": 0.2, "pension_income": 1.6, "investment": 1.1, "healthcare": 1.5,
			"leisure": 0.9, "donation": 0.9, "subscriptions": 1.0, "fees": 1.1,
			"utilities": 1.1,
		},
	},
	"retired_well_off": {
		Name:        "Retired (Well-off)",
		Description: "Comfortable retirement with travel.",
		TagWeights: map[string]float64{
			"salary": 0.2, "pension_income": 1.4, "investment": 1.4, "healthcare": 1.3,
			"leisure": 1.2, "donation": 1.2, "travel": 1.4, "luxury": 1.2,
		},
	},
	"entrepreneur": {
		Name:        "Entrepreneur / Small Business Owner",
		Description: "Owner draws and irregular business costs.",
		TagWeights: map[string]float64{
			"salary": 0.6, "owner_draw": 1.6, "freelance_income": 1.4, "investment": 1.2,
			"subscriptions": 1.2, "travel": 1.2, "fees": 1.1, "electronics": 1.2,
		},
	},
	"public_sector": {
		Name:        "Public Sector / Teacher",
		Description: "Stable salary, education-minded.",
		TagWeights: map[string]float64{
			"salary": 1.2, "donation": 1.1, "education": 1.2, "subscriptions": 1.0,
			"leisure": 1.0, "fees": 1.0, "insurance": 1.1,
		},
	},
	"healthcare_worker": {
		Name:        "Healthcare Worker",
		Description: "Shift work, convenience-weighted spending.",
		TagWeights: map[string]float64{
			"salary": 1.2, "leisure": 1.0, "transport": 1.1, "dining": 1.2,
			"groceries": 1.1, "subscriptions": 1.1, "fees": 1.0, "healthcare": 1.1,
		},
	},
	"remote_worker": {
		Name:        "Remote Worker",
		Description: "Works from home, low transport costs.",
		TagWeights: map[string]float64{
			"internet": 1.2, "utilities": 1.1, "transport": 0.8, "electronics": 1.2,
			"subscriptions": 1.1,
		},
	},
	"urban_high_cost": {
		Name:        "Urban (High-Cost Area)",
		Description: "Expensive city living.",
		TagWeights: map[string]float64{
			"rent": 1.5, "mortgage": 0.8, "public_transit": 1.5, "car": 0.6,
			"dining": 1.2,
		},
	},
	"rural": {
		Name:        "Rural",
		Description: "Car-dependent, lower housing costs.",
		TagWeights: map[string]float64{
			"car": 1.5, "fuel": 1.3, "public_transit": 0.6, "rent": 0.9,
			"utilities": 1.1,
		},
	},
}

// Moods maps mood key to per-tag probability weights.
var Moods = map[string]map[string]float64{
	"optimistic":  {"investment": 1.2, "leisure": 1.1, "donation": 1.1, "savings": 1.05},
	"pessimistic": {"investment": 0.8, "leisure": 0.9, "savings": 1.1},
	"stressed":    {"convenience": 1.2, "dining": 1.15, "leisure": 0.95, "savings": 0.95},
	"bored":       {"leisure": 1.3, "entertainment": 1.2, "gambling": 1.2, "shopping": 1.15},
	"generous":    {"donation": 1.5, "gift": 1.2},
	"frugal":      {"leisure": 0.8, "shopping": 0.85, "savings": 1.2},
	"reckless":    {"gambling": 1.6, "luxury": 1.2, "investment": 1.1},
	"disciplined": {"savings": 1.4, "debt": 1.1, "donation": 0.9},
	"social":      {"social": 1.4, "leisure": 1.1, "dining": 1.2, "travel": 1.1},
	"lonely":      {"leisure": 0.9, "shopping": 1.1, "subscriptions": 1.05},
}

// DiscretionaryTags marks spending the probability engine throttles when
// the checking balance runs low.
var DiscretionaryTags = map[string]bool{
	"leisure": true, "entertainment": true, "shopping": true, "luxury": true,
	"travel": true, "donation": true, "gambling": true, "electronics": true,
	"clothes": true, "sports": true, "gift": true,
}

// SegmentWeights returns the tag weight table for a segment key, or an
// empty table for unknown keys (fail soft).
func SegmentWeights(key string) map[string]float64 {
	if s, ok := Segments[key]; ok {
		return s.TagWeights
	}
	return nil
}

// MoodWeights returns the tag weight table for a mood key, or an empty
// table for unknown keys (fail soft).
func MoodWeights(key string) map[string]float64 {
	return Moods[key]
}
