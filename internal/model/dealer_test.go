package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities_Products(t *testing.T) {
	t.Parallel()

	caps := Capabilities{Generator: true, Battery: true}
	assert.Equal(t, []string{"Generator", "Battery"}, caps.Products())

	assert.Empty(t, Capabilities{}.Products())
	assert.NotNil(t, Capabilities{}.Products())
}

func TestCapabilities_Trades(t *testing.T) {
	t.Parallel()

	caps := Capabilities{Electrical: true, HVAC: true, Roofing: true}
	assert.Equal(t, []string{"Electrical", "HVAC", "Roofing"}, caps.Trades())
}

func TestCapabilities_TradeCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		caps Capabilities
		want int
	}{
		{"none", Capabilities{}, 0},
		{"electrical only", Capabilities{Electrical: true}, 1},
		{"electrical and hvac", Capabilities{Electrical: true, HVAC: true}, 2},
		{"all three core trades", Capabilities{Electrical: true, HVAC: true, Plumbing: true}, 3},
		{"roofing does not count", Capabilities{Roofing: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.caps.TradeCount())
		})
	}
}

func TestNewDealerRecord(t *testing.T) {
	t.Parallel()

	rec := NewDealerRecord("ABC Electric", "555-123-4567", "abcelectric.com")

	assert.Equal(t, "ABC Electric", rec.Name)
	assert.Equal(t, "555-123-4567", rec.Phone)
	assert.Equal(t, "abcelectric.com", rec.Domain)
	assert.Equal(t, "Standard", rec.Tier)
	assert.NotNil(t, rec.Certifications)
	assert.Empty(t, rec.Certifications)
	assert.Nil(t, rec.EmployeeCount)
}

func TestDealerRecord_HasJoinKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		phone  string
		domain string
		want   bool
	}{
		{"phone only", "5551234567", "", true},
		{"domain only", "", "example.com", true},
		{"both", "5551234567", "example.com", true},
		{"neither", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := DealerRecord{Phone: tt.phone, Domain: tt.domain}
			assert.Equal(t, tt.want, rec.HasJoinKey())
		})
	}
}
