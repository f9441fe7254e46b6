package scorer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coperniq/prospector/internal/config"
	"github.com/coperniq/prospector/internal/model"
)

// LeadScorer computes weighted lead scores for resolved contractors. It is
// a pure function of its inputs and the reference date, so scoring the
// same batch twice yields identical results.
type LeadScorer struct {
	cfg  config.ScorerConfig
	asOf func() time.Time
}

// NewLeadScorer creates a LeadScorer using the wall clock for deadline
// urgency.
func NewLeadScorer(cfg config.ScorerConfig) *LeadScorer {
	return &LeadScorer{cfg: cfg, asOf: time.Now}
}

// SetReferenceDate pins the date used for deadline urgency. Zero restores
// the wall clock.
func (s *LeadScorer) SetReferenceDate(t time.Time) {
	if t.IsZero() {
		s.asOf = time.Now
		return
	}
	s.asOf = func() time.Time { return t }
}

// Score scores every input and returns the results sorted by total score
// descending (name ascending on ties).
func (s *LeadScorer) Score(inputs []model.ScoreInput) []model.LeadScore {
	scores := make([]model.LeadScore, 0, len(inputs))
	for _, in := range inputs {
		scores = append(scores, s.ScoreOne(in))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return scores[i].ContractorName < scores[j].ContractorName
	})

	byTier := map[model.PriorityTier]int{}
	for _, sc := range scores {
		byTier[sc.Tier]++
	}
	zap.L().Info("scorer: scoring complete",
		zap.Int("contractors", len(scores)),
		zap.Int("hot", byTier[model.TierHot]),
		zap.Int("high", byTier[model.TierHigh]),
		zap.Int("medium", byTier[model.TierMedium]),
		zap.Int("low", byTier[model.TierLow]),
	)

	return scores
}

// ScoreOne scores a single contractor across every dimension, including
// the O&M and multi-trade bonuses.
func (s *LeadScorer) ScoreOne(in model.ScoreInput) model.LeadScore {
	primary := in.Primary()
	caps := in.Capabilities()
	contact := in.Contact()

	components := map[string]int{}
	breakdown := map[string]string{}

	dims := []struct {
		name  string
		score func() (int, string)
	}{
		{model.DimMultiOEM, func() (int, string) { return s.scoreMultiOEM(in) }},
		{model.DimIncentive, func() (int, string) { return s.scoreIncentiveState(primary.State) }},
		{model.DimCommercial, func() (int, string) { return s.scoreCommercial(primary) }},
		{model.DimGeographic, func() (int, string) { return s.scoreGeographic(primary.State, primary.Zip) }},
		{model.DimUrgency, func() (int, string) { return s.scoreUrgency(primary.State, caps.Commercial) }},
		{model.DimOMBonus, func() (int, string) { return s.scoreOMBonus(in, caps.Commercial) }},
		{model.DimTradeBonus, func() (int, string) { return s.scoreTradeBonus(in) }},
	}
	for _, d := range dims {
		points, explanation := d.score()
		components[d.name] = points
		breakdown[d.name] = explanation
	}

	total := 0
	for _, points := range components {
		total += points
	}

	return model.LeadScore{
		ContractorName:   primary.Name,
		ContractorPhone:  contact.Phone,
		ContractorDomain: contact.Domain,
		ContractorState:  primary.State,
		OEMSources:       in.OEMSources(),
		Components:       components,
		Breakdown:        breakdown,
		TotalScore:       total,
		Tier:             s.tierFor(total),
	}
}

// tierFor buckets a total score. Thresholds are inclusive lower bounds,
// so 79 and 80 land in different tiers on an 80 cutoff.
func (s *LeadScorer) tierFor(total int) model.PriorityTier {
	switch {
	case total >= s.cfg.HotThreshold:
		return model.TierHot
	case total >= s.cfg.HighThreshold:
		return model.TierHigh
	case total >= s.cfg.MediumThreshold:
		return model.TierMedium
	default:
		return model.TierLow
	}
}

func (s *LeadScorer) scoreMultiOEM(in model.ScoreInput) (int, string) {
	count := in.OEMCount()
	sources := append([]string{}, in.OEMSources()...)
	sort.Strings(sources)
	list := strings.Join(sources, ", ")

	switch {
	case count >= 3:
		return s.cfg.MultiOEM3Plus, fmt.Sprintf("3+ OEM brands (%s) - managing them all is the pitch", list)
	case count == 2:
		return s.cfg.MultiOEM2, fmt.Sprintf("2 OEM brands (%s) - dual-platform prospect", list)
	case count == 1:
		return s.cfg.MultiOEM1, fmt.Sprintf("1 OEM brand (%s) - single-platform baseline", list)
	default:
		return 0, "no OEM certifications"
	}
}

func (s *LeadScorer) scoreIncentiveState(state string) (int, string) {
	program, ok := LookupStateProgram(state)
	if !ok {
		if state == "" {
			return 0, "no state data"
		}
		return 0, fmt.Sprintf("%s - no long-term incentive program", state)
	}
	switch program.Priority {
	case PriorityHigh:
		return s.cfg.IncentiveHigh, fmt.Sprintf("%s - HIGH priority incentive state (%s)", program.Name, program.Program)
	case PriorityMedium:
		return s.cfg.IncentiveMedium, fmt.Sprintf("%s - MEDIUM priority incentive state (%s)", program.Name, program.Program)
	default:
		return 0, fmt.Sprintf("%s - LOW priority incentive program", program.Name)
	}
}

// scoreCommercial prefers an enriched employee count and silently falls
// back to the OEM tier label when enrichment is absent.
func (s *LeadScorer) scoreCommercial(primary model.DealerRecord) (int, string) {
	if primary.EmployeeCount != nil {
		n := *primary.EmployeeCount
		switch {
		case n >= largeEmployeeMin:
			return s.cfg.CommercialLarge, fmt.Sprintf("%d employees - large commercial contractor", n)
		case n >= midEmployeeMin:
			return s.cfg.CommercialMid, fmt.Sprintf("%d employees - mid-size commercial", n)
		case n >= smallEmployeeMin:
			return s.cfg.CommercialSmall, fmt.Sprintf("%d employees - small commercial", n)
		default:
			return s.cfg.CommercialResi, fmt.Sprintf("%d employees - residential focus", n)
		}
	}

	switch primary.Tier {
	case "Premier", "Platinum":
		return s.cfg.TierEstimateMid, fmt.Sprintf("%s tier (est. mid-size commercial)", primary.Tier)
	case "Elite Plus", "Gold":
		return s.cfg.TierEstimateSmall, fmt.Sprintf("%s tier (est. small commercial)", primary.Tier)
	default:
		tier := primary.Tier
		if tier == "" {
			tier = "unknown"
		}
		return s.cfg.TierEstimateBaseline, fmt.Sprintf("%s tier (est. residential focus)", tier)
	}
}

func (s *LeadScorer) scoreGeographic(state, zip string) (int, string) {
	switch lookupGeoBand(state, zip) {
	case geoTopDecile:
		return s.cfg.GeoTopDecile, fmt.Sprintf("ZIP %s in top-decile income ZIPs for %s", zip, state)
	case geoTopList:
		return s.cfg.GeoTopList, fmt.Sprintf("ZIP %s on the high-income ZIP list for %s", zip, state)
	case geoStandard:
		return s.cfg.GeoBaseline, fmt.Sprintf("ZIP %s in %s (standard territory)", zip, state)
	default:
		if state == "" {
			return 0, "no state data"
		}
		return 0, fmt.Sprintf("state %s not in the territory database", state)
	}
}

func (s *LeadScorer) scoreUrgency(state string, commercial bool) (int, string) {
	urgency := UrgencyFor(state, commercial, s.asOf())
	message := UrgencyMessage(urgency, state)
	switch urgency {
	case UrgencyCritical:
		return s.cfg.UrgencyCritical, message
	case UrgencyHigh:
		return s.cfg.UrgencyHigh, message
	case UrgencyMedium:
		return s.cfg.UrgencyMedium, message
	default:
		return s.cfg.UrgencyLow, message
	}
}

func (s *LeadScorer) scoreOMBonus(in model.ScoreInput, commercial bool) (int, string) {
	if !detectOMInput(in) {
		return 0, "no O&M indicators"
	}
	if commercial {
		return s.cfg.OMCommercialBonus, "O&M capability + commercial work - recurring-revenue portfolio manager"
	}
	return s.cfg.OMBonus, "O&M capability detected"
}

func (s *LeadScorer) scoreTradeBonus(in model.ScoreInput) (int, string) {
	if !detectMultiTradeInput(in) {
		return 0, "no multi-trade indicators"
	}
	trades := in.Capabilities().Trades()
	if len(trades) > 0 {
		return s.cfg.MultiTradeBonus, fmt.Sprintf("self-performs %s - installs end-to-end without subs", strings.Join(trades, "/"))
	}
	return s.cfg.MultiTradeBonus, "multi-trade self-performer (keyword match)"
}
