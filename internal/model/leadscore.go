package model

// PriorityTier buckets a total lead score for call-list ordering.
type PriorityTier string

const (
	TierHot    PriorityTier = "HOT"
	TierHigh   PriorityTier = "HIGH"
	TierMedium PriorityTier = "MEDIUM"
	TierLow    PriorityTier = "LOW"
)

// Dimension names used as keys in component score and breakdown maps.
const (
	DimMultiOEM   = "multi_oem"
	DimIncentive  = "incentive_state"
	DimCommercial = "commercial_capability"
	DimGeographic = "geographic"
	DimUrgency    = "deadline_urgency"
	DimOMBonus    = "om_bonus"
	DimTradeBonus = "multi_trade_bonus"
)

// LeadScore is the scoring result for one resolved contractor. It is
// created once per scoring pass and never mutated; re-scoring produces a
// fresh value.
type LeadScore struct {
	ContractorName   string `json:"contractor_name"`
	ContractorPhone  string `json:"contractor_phone"`
	ContractorDomain string `json:"contractor_domain"`
	ContractorState  string `json:"contractor_state"`

	OEMSources []string `json:"oem_sources"`

	// Per-dimension point values keyed by the Dim* constants.
	Components map[string]int `json:"component_scores"`

	// Breakdown holds a human-readable explanation per dimension for
	// sales-rep transparency. Same keys as Components.
	Breakdown map[string]string `json:"score_breakdown"`

	TotalScore int          `json:"total_score"`
	Tier       PriorityTier `json:"priority_tier"`
}

// Component returns the points for a dimension, zero when absent.
func (s LeadScore) Component(dim string) int {
	return s.Components[dim]
}
