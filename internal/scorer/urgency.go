package scorer

import (
	"fmt"
	"time"
)

// Urgency ranks how time-sensitive outreach to a contractor is relative
// to the federal tax-credit deadlines.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// Federal ITC deadlines. Residential credit ends Dec 31 2025; commercial
// projects must start by the June 30 2026 safe-harbor date.
var (
	ResidentialDeadline = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	CommercialDeadline  = time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
)

const (
	// commercialWindowDays is the run-up to the commercial safe-harbor
	// deadline that makes commercial contractors critical.
	commercialWindowDays = 365
	// residentialWindowDays is the run-up to the residential cutoff that
	// makes residential contractors high urgency.
	residentialWindowDays = 180
)

// UrgencyFor computes deadline urgency for a contractor as of a reference
// date. Commercial contractors inside the safe-harbor window are critical;
// residential contractors inside the residential window are high;
// incentive-state contractors stay medium regardless of deadline
// proximity (their market survives the credit); everyone else is low.
func UrgencyFor(state string, commercial bool, asOf time.Time) Urgency {
	daysToCommercial := daysUntil(asOf, CommercialDeadline)
	daysToResidential := daysUntil(asOf, ResidentialDeadline)

	if commercial && daysToCommercial > 0 && daysToCommercial <= commercialWindowDays {
		return UrgencyCritical
	}
	if !commercial && daysToResidential > 0 && daysToResidential <= residentialWindowDays {
		return UrgencyHigh
	}
	if IsIncentiveState(state) {
		return UrgencyMedium
	}
	return UrgencyLow
}

// UrgencyMessage renders outreach messaging for an urgency band, for
// sales reps rather than machines.
func UrgencyMessage(urgency Urgency, state string) string {
	program := "state incentives"
	stateName := state
	if p, ok := LookupStateProgram(state); ok {
		program = p.Program
		stateName = p.Name
	}

	switch urgency {
	case UrgencyCritical:
		return fmt.Sprintf(
			"CRITICAL: commercial safe-harbor deadline %s - projects must start in time to claim the 30%% federal credit; %s adds value beyond it",
			CommercialDeadline.Format("Jan 2 2006"), program)
	case UrgencyHigh:
		return fmt.Sprintf(
			"URGENT: residential credit expires %s - customers have months to claim 30%%; %s continues after",
			ResidentialDeadline.Format("Jan 2 2006"), program)
	case UrgencyMedium:
		return fmt.Sprintf("SUSTAINABLE: %s's %s continues after the federal credit expires", stateName, program)
	default:
		return "Federal credit is expiring; market priority is low outside incentive states"
	}
}

func daysUntil(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
