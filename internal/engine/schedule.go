package engine

import "github.com/ywen250/finsim-backend/internal/catalog"

// IsDueToday decides whether a deterministic scenario recurs on the given
// day. Unknown or missing schedule types are never due (fail closed).
func IsDueToday(scn *catalog.ScenarioDefinition, profile *UserProfile, day int) bool {
	sched := scn.Schedule
	if sched == nil {
		return false
	}
	switch sched.Type {
	case "every_n_days":
		n := sched.N
		if n <= 0 {
			n = 30
		}
		return day >= sched.Offset && (day-sched.Offset)%n == 0
	case "pay_cycle":
		start := profile.PayCycle.StartDay
		if start <= 0 {
			start = 1
		}
		var n int
		switch profile.PayCycle.Type {
		case "weekly":
			n = 7
		case "biweekly":
			n = 14
		case "semimonthly":
			return day == start || (day-start)%15 == 0
		default:
			n = 30
		}
		return day >= start && (day-start)%n == 0
	}
	return false
}
