package scorer

import (
	"strings"

	"github.com/coperniq/prospector/internal/model"
)

// omKeywords mark operations & maintenance offerings in names,
// certifications, and tier labels.
var omKeywords = []string{
	"operations", "maintenance", "service", "monitoring", "o&m", "o & m",
}

// multiTradeKeywords mark self-performing multi-trade shops.
var multiTradeKeywords = []string{
	"mep", "mechanical contractor", "full-service", "multi-trade",
}

// DetectOM reports whether a record looks like an O&M provider, from its
// capability flag or keyword hits across name, certifications, and tier.
func DetectOM(rec model.DealerRecord) bool {
	if rec.Capabilities.OM {
		return true
	}
	return anyKeyword(searchText(rec), omKeywords)
}

// DetectMultiTrade reports whether a record looks like a multi-trade
// self-performing contractor: two or more of the electrical/HVAC/plumbing
// trades, or explicit keywords.
func DetectMultiTrade(rec model.DealerRecord) bool {
	if rec.Capabilities.MultiTrade {
		return true
	}
	if rec.Capabilities.TradeCount() >= 2 {
		return true
	}
	return anyKeyword(searchText(rec), multiTradeKeywords)
}

// detectOMInput applies DetectOM across all records of a score input.
func detectOMInput(in model.ScoreInput) bool {
	for _, rec := range in.Records() {
		if DetectOM(rec) {
			return true
		}
	}
	return false
}

// detectMultiTradeInput applies DetectMultiTrade across all records,
// also counting trades merged across OEM listings.
func detectMultiTradeInput(in model.ScoreInput) bool {
	if in.Capabilities().TradeCount() >= 2 {
		return true
	}
	for _, rec := range in.Records() {
		if DetectMultiTrade(rec) {
			return true
		}
	}
	return false
}

func searchText(rec model.DealerRecord) string {
	parts := append([]string{rec.Name}, rec.Certifications...)
	parts = append(parts, rec.Tier)
	return strings.ToLower(strings.Join(parts, " "))
}

func anyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
