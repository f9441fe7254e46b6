// Package scorer converts resolved contractors into ranked, tiered lead
// scores for outreach prioritization.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/config"
)

// DefaultScorerConfig returns the authoritative point tables. Max base
// score is 100 (40 multi-OEM + 20 incentive + 20 commercial + 10 geo +
// 10 urgency); bonuses can lift a lead to 145.
func DefaultScorerConfig() config.ScorerConfig {
	return config.ScorerConfig{
		// Multi-OEM presence. The 2->3 gap is deliberately wide: three
		// platforms of monitoring pain makes the pitch itself.
		MultiOEM3Plus: 40,
		MultiOEM2:     30,
		MultiOEM1:     8,

		IncentiveHigh:   20,
		IncentiveMedium: 10,

		CommercialLarge: 20,
		CommercialMid:   15,
		CommercialSmall: 10,
		CommercialResi:  5,

		TierEstimateMid:      15,
		TierEstimateSmall:    10,
		TierEstimateBaseline: 5,

		GeoTopDecile: 10,
		GeoTopList:   7,
		GeoBaseline:  3,

		UrgencyCritical: 10,
		UrgencyHigh:     7,
		UrgencyMedium:   5,
		UrgencyLow:      2,

		OMCommercialBonus: 20,
		OMBonus:           10,
		MultiTradeBonus:   25,

		HotThreshold:    90,
		HighThreshold:   70,
		MediumThreshold: 50,
	}
}

// Employee-count buckets for the commercial capability dimension.
const (
	largeEmployeeMin = 50
	midEmployeeMin   = 10
	smallEmployeeMin = 5
)

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(c config.ScorerConfig) error {
	var errs []string

	points := map[string]int{
		"multi_oem_3plus":        c.MultiOEM3Plus,
		"multi_oem_2":            c.MultiOEM2,
		"multi_oem_1":            c.MultiOEM1,
		"incentive_high":         c.IncentiveHigh,
		"incentive_medium":       c.IncentiveMedium,
		"commercial_large":       c.CommercialLarge,
		"commercial_mid":         c.CommercialMid,
		"commercial_small":       c.CommercialSmall,
		"commercial_resi":        c.CommercialResi,
		"tier_estimate_mid":      c.TierEstimateMid,
		"tier_estimate_small":    c.TierEstimateSmall,
		"tier_estimate_baseline": c.TierEstimateBaseline,
		"geo_top_decile":         c.GeoTopDecile,
		"geo_top_list":           c.GeoTopList,
		"geo_baseline":           c.GeoBaseline,
		"urgency_critical":       c.UrgencyCritical,
		"urgency_high":           c.UrgencyHigh,
		"urgency_medium":         c.UrgencyMedium,
		"urgency_low":            c.UrgencyLow,
		"om_commercial_bonus":    c.OMCommercialBonus,
		"om_bonus":               c.OMBonus,
		"multi_trade_bonus":      c.MultiTradeBonus,
	}
	for name, p := range points {
		if p < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	// Bands within a dimension must not invert.
	if c.MultiOEM3Plus < c.MultiOEM2 || c.MultiOEM2 < c.MultiOEM1 {
		errs = append(errs, "multi-OEM points must be non-decreasing in OEM count")
	}
	if c.GeoTopDecile < c.GeoTopList || c.GeoTopList < c.GeoBaseline {
		errs = append(errs, "geographic points must be non-decreasing toward the top decile")
	}
	if c.UrgencyCritical < c.UrgencyHigh || c.UrgencyHigh < c.UrgencyMedium || c.UrgencyMedium < c.UrgencyLow {
		errs = append(errs, "urgency points must be non-decreasing in urgency")
	}

	// Tier thresholds must be strictly descending and sane.
	if c.HotThreshold <= c.HighThreshold || c.HighThreshold <= c.MediumThreshold {
		errs = append(errs, "tier thresholds must be strictly descending (hot > high > medium)")
	}
	if c.MediumThreshold < 0 {
		errs = append(errs, "medium_threshold must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
