package scorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coperniq/prospector/internal/model"
)

func intPtr(n int) *int { return &n }

func newTestScorer(asOf time.Time) *LeadScorer {
	s := NewLeadScorer(DefaultScorerConfig())
	s.SetReferenceDate(asOf)
	return s
}

func TestLeadScorer_ScoreOne_MaxedOutLead(t *testing.T) {
	t.Parallel()

	group := model.ResolvedContractor{
		Primary: model.DealerRecord{
			Name:          "Golden State Power Systems",
			Phone:         "5551234567",
			Domain:        "gspower.com",
			State:         "CA",
			Zip:           "94027",
			EmployeeCount: intPtr(75),
			Capabilities: model.Capabilities{
				Commercial: true, Electrical: true, HVAC: true, OM: true,
			},
		},
		OEMSources: []string{"Generac", "Kohler", "Tesla"},
		Records: []model.DealerRecord{
			{
				Name:  "Golden State Power Systems",
				Phone: "5551234567",
				Capabilities: model.Capabilities{
					Commercial: true, Electrical: true, HVAC: true, OM: true,
				},
			},
		},
	}

	s := newTestScorer(date(2025, time.October, 1))
	sc := s.ScoreOne(model.ScoreInputFromGroup(group))

	assert.Equal(t, 40, sc.Component(model.DimMultiOEM))
	assert.Equal(t, 20, sc.Component(model.DimIncentive))
	assert.Equal(t, 20, sc.Component(model.DimCommercial))
	assert.Equal(t, 10, sc.Component(model.DimGeographic))
	assert.Equal(t, 10, sc.Component(model.DimUrgency), "commercial inside the safe-harbor window")
	assert.Equal(t, 20, sc.Component(model.DimOMBonus), "commercial O&M bonus")
	assert.Equal(t, 25, sc.Component(model.DimTradeBonus))
	assert.Equal(t, 145, sc.TotalScore)
	assert.Equal(t, model.TierHot, sc.Tier)

	// Every dimension carries an explanation.
	for _, dim := range []string{
		model.DimMultiOEM, model.DimIncentive, model.DimCommercial,
		model.DimGeographic, model.DimUrgency, model.DimOMBonus, model.DimTradeBonus,
	} {
		assert.NotEmpty(t, sc.Breakdown[dim], "breakdown for %s", dim)
	}
}

func TestLeadScorer_ScoreOne_SingleOEMResidential(t *testing.T) {
	t.Parallel()

	rec := model.NewDealerRecord("Solo Solar", "5550001111", "solosolar.com")
	rec.OEMSource = "Enphase"
	rec.State = "WY"

	s := newTestScorer(date(2024, time.June, 1))
	sc := s.ScoreOne(model.ScoreInputFromRecord(rec))

	assert.Equal(t, 8, sc.Component(model.DimMultiOEM))
	assert.Equal(t, 0, sc.Component(model.DimIncentive))
	assert.Equal(t, 5, sc.Component(model.DimCommercial), "Standard tier falls back to baseline")
	assert.Equal(t, 0, sc.Component(model.DimGeographic), "state not in territory table")
	assert.Equal(t, 2, sc.Component(model.DimUrgency))
	assert.Equal(t, 0, sc.Component(model.DimOMBonus))
	assert.Equal(t, 0, sc.Component(model.DimTradeBonus))
	assert.Equal(t, 15, sc.TotalScore)
	assert.Equal(t, model.TierLow, sc.Tier)
}

func TestLeadScorer_ScoreOne_MissingStateAndZip(t *testing.T) {
	t.Parallel()

	rec := model.NewDealerRecord("Nowhere Generators", "5559998888", "")
	rec.OEMSource = "Generac"

	s := newTestScorer(date(2024, time.June, 1))
	sc := s.ScoreOne(model.ScoreInputFromRecord(rec))

	assert.Equal(t, 0, sc.Component(model.DimIncentive))
	assert.Equal(t, 0, sc.Component(model.DimGeographic))
	assert.Equal(t, "no state data", sc.Breakdown[model.DimIncentive])
}

func TestLeadScorer_CommercialDimension(t *testing.T) {
	t.Parallel()

	s := newTestScorer(date(2024, time.June, 1))

	tests := []struct {
		name      string
		employees *int
		tier      string
		want      int
	}{
		{"50+ employees", intPtr(50), "", 20},
		{"mid-size", intPtr(10), "", 15},
		{"small", intPtr(5), "", 10},
		{"under five employees", intPtr(4), "", 5},
		{"premier tier fallback", nil, "Premier", 15},
		{"platinum tier fallback", nil, "Platinum", 15},
		{"elite plus tier fallback", nil, "Elite Plus", 10},
		{"gold tier fallback", nil, "Gold", 10},
		{"standard tier fallback", nil, "Standard", 5},
		{"missing tier fallback", nil, "", 5},
		{"employee count beats tier", intPtr(60), "Standard", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := model.DealerRecord{
				Name:          "Test Co",
				EmployeeCount: tt.employees,
				Tier:          tt.tier,
			}
			points, explanation := s.scoreCommercial(rec)
			assert.Equal(t, tt.want, points)
			assert.NotEmpty(t, explanation)
		})
	}
}

func TestLeadScorer_TierBoundaries(t *testing.T) {
	t.Parallel()

	s := newTestScorer(date(2024, time.June, 1))

	tests := []struct {
		total int
		want  model.PriorityTier
	}{
		{100, model.TierHot},
		{90, model.TierHot},
		{89, model.TierHigh},
		{70, model.TierHigh},
		{69, model.TierMedium},
		{50, model.TierMedium},
		{49, model.TierLow},
		{0, model.TierLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.tierFor(tt.total), "total=%d", tt.total)
	}
}

func TestLeadScorer_Score_SortsDescending(t *testing.T) {
	t.Parallel()

	strong := model.NewDealerRecord("Strong Lead", "5551112222", "strong.com")
	strong.OEMSource = "Generac"
	strong.State = "CA"
	weak := model.NewDealerRecord("Weak Lead", "5553334444", "weak.com")
	weak.OEMSource = "Generac"

	s := newTestScorer(date(2024, time.June, 1))
	scores := s.Score([]model.ScoreInput{
		model.ScoreInputFromRecord(weak),
		model.ScoreInputFromRecord(strong),
	})

	require.Len(t, scores, 2)
	assert.Equal(t, "Strong Lead", scores[0].ContractorName)
	assert.GreaterOrEqual(t, scores[0].TotalScore, scores[1].TotalScore)
}

func TestLeadScorer_Score_TieBreaksByName(t *testing.T) {
	t.Parallel()

	a := model.NewDealerRecord("Alpha", "5551112222", "alpha.com")
	a.OEMSource = "Generac"
	b := model.NewDealerRecord("Beta", "5553334444", "beta.com")
	b.OEMSource = "Generac"

	s := newTestScorer(date(2024, time.June, 1))
	scores := s.Score([]model.ScoreInput{
		model.ScoreInputFromRecord(b),
		model.ScoreInputFromRecord(a),
	})

	require.Len(t, scores, 2)
	require.Equal(t, scores[0].TotalScore, scores[1].TotalScore)
	assert.Equal(t, "Alpha", scores[0].ContractorName)
}

func TestLeadScorer_Score_Empty(t *testing.T) {
	t.Parallel()

	s := newTestScorer(date(2024, time.June, 1))
	scores := s.Score(nil)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestLeadScorer_Deterministic(t *testing.T) {
	t.Parallel()

	rec := model.NewDealerRecord("ABC Electric", "5551234567", "abcelectric.com")
	rec.OEMSource = "Generac"
	rec.State = "CA"
	rec.Zip = "94027"

	s := newTestScorer(date(2025, time.March, 1))
	first := s.ScoreOne(model.ScoreInputFromRecord(rec))
	second := s.ScoreOne(model.ScoreInputFromRecord(rec))

	assert.Equal(t, first, second)
}

func TestLeadScorer_SetReferenceDate_ZeroRestoresClock(t *testing.T) {
	t.Parallel()

	s := NewLeadScorer(DefaultScorerConfig())
	s.SetReferenceDate(date(2025, time.October, 1))
	s.SetReferenceDate(time.Time{})

	// Wall clock restored: asOf should track now, not the pinned date.
	got := s.asOf()
	assert.WithinDuration(t, time.Now(), got, time.Minute)
}
