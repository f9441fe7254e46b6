package model

import "sort"

// ResolvedContractor groups DealerRecords judged to reference the same
// real-world business across independently scraped OEM sources. Groups are
// read-only downstream of the resolver.
type ResolvedContractor struct {
	// Primary is the contributing record with the highest
	// (rating, review count) pair; its identity fields label the group.
	Primary DealerRecord `json:"primary_dealer"`

	// OEMSources holds the distinct OEM names contributing records.
	OEMSources []string `json:"oem_sources"`

	// Records holds every contributing observation, kept addressable for
	// audit and export.
	Records []DealerRecord `json:"all_records"`

	// Confidence is the 0-100 match confidence for the group.
	Confidence int `json:"match_confidence"`

	// Signals lists what triggered the match: "phone", "domain", "name".
	Signals []string `json:"match_signals"`

	// MultiOEMScore is the non-linear presence score derived from the
	// OEM count (1 -> 20, 2 -> 60, 3+ -> 100).
	MultiOEMScore int `json:"multi_oem_score"`
}

// OEMCount returns the number of distinct contributing OEMs.
func (r ResolvedContractor) OEMCount() int {
	return len(r.OEMSources)
}

// ContactInfo holds the best contact fields selected across a group.
type ContactInfo struct {
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Domain      string `json:"domain"`
	AddressFull string `json:"address_full"`
}

// BestContact selects the strongest contact details across all records:
// the longest formatted phone, the shortest domain (a short apex domain is
// more likely the company site than a lead-gen subdomain), and the most
// complete address.
func (r ResolvedContractor) BestContact() ContactInfo {
	var best ContactInfo
	for _, rec := range r.Records {
		if len(rec.Phone) > len(best.Phone) {
			best.Phone = rec.Phone
		}
		if rec.Domain != "" && (best.Domain == "" || len(rec.Domain) < len(best.Domain)) {
			best.Domain = rec.Domain
			best.Website = rec.Website
		}
		if len(rec.AddressFull) > len(best.AddressFull) {
			best.AddressFull = rec.AddressFull
		}
	}
	return best
}

// AllCapabilities unions product and trade capabilities across every
// contributing record, sorted for stable output.
func (r ResolvedContractor) AllCapabilities() []string {
	seen := map[string]bool{}
	for _, rec := range r.Records {
		for _, cap := range rec.Capabilities.Products() {
			seen[cap] = true
		}
		for _, cap := range rec.Capabilities.Trades() {
			seen[cap] = true
		}
	}
	out := make([]string, 0, len(seen))
	for cap := range seen {
		out = append(out, cap)
	}
	sort.Strings(out)
	return out
}

// MergedCapabilities ORs capability flags across every contributing
// record, so a trade seen by any OEM listing counts for the group.
func (r ResolvedContractor) MergedCapabilities() Capabilities {
	var merged Capabilities
	for _, rec := range r.Records {
		c := rec.Capabilities
		merged.Generator = merged.Generator || c.Generator
		merged.Solar = merged.Solar || c.Solar
		merged.Battery = merged.Battery || c.Battery
		merged.Microinverters = merged.Microinverters || c.Microinverters
		merged.Inverters = merged.Inverters || c.Inverters
		merged.Electrical = merged.Electrical || c.Electrical
		merged.HVAC = merged.HVAC || c.HVAC
		merged.Roofing = merged.Roofing || c.Roofing
		merged.Plumbing = merged.Plumbing || c.Plumbing
		merged.Commercial = merged.Commercial || c.Commercial
		merged.Residential = merged.Residential || c.Residential
		merged.OM = merged.OM || c.OM
		merged.MultiTrade = merged.MultiTrade || c.MultiTrade
	}
	return merged
}

// MultiOEMScoreFor maps an OEM count to the presence score. The gap
// between 2 and 3 is intentionally wide: contractors juggling three or
// more monitoring platforms feel disproportionately more operational pain.
func MultiOEMScoreFor(oemCount int) int {
	switch {
	case oemCount >= 3:
		return 100
	case oemCount == 2:
		return 60
	case oemCount == 1:
		return 20
	default:
		return 0
	}
}
