// Package model defines the shared data structures for the contractor
// prospecting pipeline: raw per-OEM dealer records, resolved contractor
// groups, and lead scores.
package model

// Capabilities tracks what a dealer can install and what trades it
// self-performs, as detected from OEM listing data.
type Capabilities struct {
	// Product lines.
	Generator      bool `json:"has_generator"`
	Solar          bool `json:"has_solar"`
	Battery        bool `json:"has_battery"`
	Microinverters bool `json:"has_microinverters"`
	Inverters      bool `json:"has_inverters"`

	// Trades.
	Electrical bool `json:"has_electrical"`
	HVAC       bool `json:"has_hvac"`
	Roofing    bool `json:"has_roofing"`
	Plumbing   bool `json:"has_plumbing"`

	// Business characteristics.
	Commercial  bool `json:"is_commercial"`
	Residential bool `json:"is_residential"`

	// High-value contractor types. OM covers operations & maintenance
	// offerings; MultiTrade marks self-performing multi-trade shops.
	OM         bool `json:"has_om_capability"`
	MultiTrade bool `json:"is_multi_trade"`
}

// Products returns the product-line capabilities as display labels.
func (c Capabilities) Products() []string {
	out := []string{}
	if c.Generator {
		out = append(out, "Generator")
	}
	if c.Solar {
		out = append(out, "Solar")
	}
	if c.Battery {
		out = append(out, "Battery")
	}
	if c.Microinverters {
		out = append(out, "Microinverters")
	}
	if c.Inverters {
		out = append(out, "Inverters")
	}
	return out
}

// Trades returns the trade capabilities as display labels.
func (c Capabilities) Trades() []string {
	out := []string{}
	if c.Electrical {
		out = append(out, "Electrical")
	}
	if c.HVAC {
		out = append(out, "HVAC")
	}
	if c.Roofing {
		out = append(out, "Roofing")
	}
	if c.Plumbing {
		out = append(out, "Plumbing")
	}
	return out
}

// TradeCount returns how many of the electrical/HVAC/plumbing trades the
// dealer self-performs. Roofing is tracked but not counted here; the
// multi-trade bonus keys off the three core trades.
func (c Capabilities) TradeCount() int {
	n := 0
	if c.Electrical {
		n++
	}
	if c.HVAC {
		n++
	}
	if c.Plumbing {
		n++
	}
	return n
}

// DealerRecord is one OEM x contractor observation as produced by an
// upstream dealer-locator scraper. Records are immutable once ingested;
// enrichment attaches to the optional pointer fields only.
type DealerRecord struct {
	// Identity.
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Domain  string `json:"domain"`
	Website string `json:"website"`

	// Location.
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	AddressFull string `json:"address_full"`

	// Quality signals.
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	// OEM-specific tier and certifications.
	Tier           string   `json:"tier"`
	Certifications []string `json:"certifications"`

	// Distance from the search point.
	Distance      string  `json:"distance"`
	DistanceMiles float64 `json:"distance_miles"`

	Capabilities Capabilities `json:"capabilities"`

	// Provenance.
	OEMSource      string `json:"oem_source"`
	ScrapedFromZip string `json:"scraped_from_zip"`

	// Enrichment (optional, attached after ingestion).
	EmployeeCount    *int   `json:"employee_count,omitempty"`
	EstimatedRevenue string `json:"estimated_revenue,omitempty"`
	LinkedInURL      string `json:"linkedin_url,omitempty"`
}

// NewDealerRecord returns a DealerRecord with non-nil collection fields.
// Callers fill identity and location fields directly.
func NewDealerRecord(name, phone, domain string) DealerRecord {
	return DealerRecord{
		Name:           name,
		Phone:          phone,
		Domain:         domain,
		Tier:           "Standard",
		Certifications: []string{},
	}
}

// HasJoinKey reports whether the record carries at least one usable
// cross-reference key. Records without phone and domain can never be
// clustered with records from other OEMs.
func (d DealerRecord) HasJoinKey() bool {
	return d.Phone != "" || d.Domain != ""
}
