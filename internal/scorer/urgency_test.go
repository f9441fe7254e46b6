package scorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUrgencyFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		state      string
		commercial bool
		asOf       time.Time
		want       Urgency
	}{
		{
			name:       "commercial inside safe-harbor window",
			state:      "TX",
			commercial: true,
			asOf:       date(2025, time.October, 1),
			want:       UrgencyCritical,
		},
		{
			name:       "commercial long before window",
			state:      "WY",
			commercial: true,
			asOf:       date(2024, time.January, 1),
			want:       UrgencyLow,
		},
		{
			name:       "commercial after safe-harbor deadline",
			state:      "WY",
			commercial: true,
			asOf:       date(2026, time.August, 1),
			want:       UrgencyLow,
		},
		{
			name:       "residential inside residential window",
			state:      "WY",
			commercial: false,
			asOf:       date(2025, time.October, 1),
			want:       UrgencyHigh,
		},
		{
			name:       "residential outside window",
			state:      "WY",
			commercial: false,
			asOf:       date(2024, time.June, 1),
			want:       UrgencyLow,
		},
		{
			name:       "residential after deadline in incentive state",
			state:      "CA",
			commercial: false,
			asOf:       date(2026, time.March, 1),
			want:       UrgencyMedium,
		},
		{
			name:       "commercial before window in incentive state",
			state:      "MA",
			commercial: true,
			asOf:       date(2024, time.January, 1),
			want:       UrgencyMedium,
		},
		{
			name:       "everything expired outside incentive states",
			state:      "WY",
			commercial: false,
			asOf:       date(2027, time.January, 1),
			want:       UrgencyLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, UrgencyFor(tt.state, tt.commercial, tt.asOf))
		})
	}
}

func TestUrgencyMessage(t *testing.T) {
	t.Parallel()

	assert.Contains(t, UrgencyMessage(UrgencyCritical, "TX"), "CRITICAL")
	assert.Contains(t, UrgencyMessage(UrgencyCritical, "TX"), "Jun 30 2026")
	assert.Contains(t, UrgencyMessage(UrgencyHigh, "CA"), "Dec 31 2025")
	assert.Contains(t, UrgencyMessage(UrgencyMedium, "NJ"), "New Jersey")
	assert.NotEmpty(t, UrgencyMessage(UrgencyLow, "WY"))
}
