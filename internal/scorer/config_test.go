package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coperniq/prospector/internal/config"
)

func TestValidateConfig_Defaults(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateConfig(DefaultScorerConfig()))
}

func TestValidateConfig_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.ScorerConfig)
		wantErr string
	}{
		{
			name:    "negative points",
			mutate:  func(c *config.ScorerConfig) { c.OMBonus = -1 },
			wantErr: "om_bonus must be >= 0",
		},
		{
			name:    "inverted multi-OEM bands",
			mutate:  func(c *config.ScorerConfig) { c.MultiOEM2 = 50 },
			wantErr: "multi-OEM points must be non-decreasing",
		},
		{
			name:    "inverted geo bands",
			mutate:  func(c *config.ScorerConfig) { c.GeoBaseline = 20 },
			wantErr: "geographic points must be non-decreasing",
		},
		{
			name:    "inverted urgency bands",
			mutate:  func(c *config.ScorerConfig) { c.UrgencyLow = 50 },
			wantErr: "urgency points must be non-decreasing",
		},
		{
			name:    "tier thresholds not descending",
			mutate:  func(c *config.ScorerConfig) { c.HighThreshold = 95 },
			wantErr: "tier thresholds must be strictly descending",
		},
		{
			name:    "equal tier thresholds rejected",
			mutate:  func(c *config.ScorerConfig) { c.HotThreshold = 70 },
			wantErr: "tier thresholds must be strictly descending",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultScorerConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
