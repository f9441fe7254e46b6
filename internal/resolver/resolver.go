// Package resolver cross-references dealer records from independently
// scraped OEM sources into resolved contractor groups. No shared unique ID
// exists across sources, so grouping relies on normalized phone and domain
// keys validated by fuzzy name matching.
package resolver

import (
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/coperniq/prospector/internal/model"
)

// Options controls a resolution pass.
type Options struct {
	// MinOEMCount is the minimum number of distinct OEM sources a group
	// needs to be emitted. 1 passes every indexed record through as its
	// own single-source group.
	MinOEMCount int

	// NameThreshold is the token-set similarity required for the name
	// signal. Zero means DefaultNameThreshold.
	NameThreshold float64
}

// Validate checks Options for caller programming errors.
func (o Options) Validate() error {
	if o.MinOEMCount < 1 {
		return eris.Errorf("resolver: min OEM count must be >= 1 (got %d)", o.MinOEMCount)
	}
	if o.NameThreshold != 0 && (o.NameThreshold <= 0 || o.NameThreshold > 1) {
		return eris.Errorf("resolver: name threshold must be in (0, 1] (got %g)", o.NameThreshold)
	}
	return nil
}

// Resolver accumulates per-OEM dealer batches and resolves them into
// contractor groups. It holds no state across Resolve calls other than the
// registered records, so repeated resolution of the same input is
// deterministic.
type Resolver struct {
	recordsByOEM map[string][]model.DealerRecord
	oemOrder     []string
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{recordsByOEM: map[string][]model.DealerRecord{}}
}

// AddRecords registers a batch of dealer records under an OEM source
// label. It may be called once per OEM for any number of OEMs; no
// uniqueness is enforced at this stage.
func (r *Resolver) AddRecords(records []model.DealerRecord, oemName string) {
	if _, seen := r.recordsByOEM[oemName]; !seen {
		r.oemOrder = append(r.oemOrder, oemName)
	}
	r.recordsByOEM[oemName] = append(r.recordsByOEM[oemName], records...)

	zap.L().Debug("resolver: registered batch",
		zap.String("oem", oemName),
		zap.Int("records", len(records)),
	)
}

// entry pairs a record with the OEM label it was registered under.
type entry struct {
	oem    string
	record model.DealerRecord
}

// Resolve runs the two-pass clustering: phone keys first (higher trust),
// then domain keys for groups a phone match did not already claim. The
// result is sorted by multi-OEM score, then confidence, descending.
func (r *Resolver) Resolve(opts Options) ([]model.ResolvedContractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	threshold := opts.NameThreshold
	if threshold == 0 {
		threshold = DefaultNameThreshold
	}

	phoneIndex := map[string][]entry{}
	domainIndex := map[string][]entry{}

	for _, oem := range r.oemOrder {
		for _, rec := range r.recordsByOEM[oem] {
			if phone := NormalizePhone(rec.Phone); phone != "" {
				phoneIndex[phone] = append(phoneIndex[phone], entry{oem: oem, record: rec})
			}
			if domain := NormalizeDomain(rec.Domain); domain != "" {
				domainIndex[domain] = append(domainIndex[domain], entry{oem: oem, record: rec})
			}
		}
	}

	zap.L().Info("resolver: indexes built",
		zap.Int("phone_keys", len(phoneIndex)),
		zap.Int("domain_keys", len(domainIndex)),
	)

	var groups []model.ResolvedContractor
	claimed := map[[2]string]bool{} // (phone, domain) pairs captured by the phone pass

	// Phone pass. Sorted key iteration keeps Resolve idempotent.
	for _, phone := range sortedKeys(phoneIndex) {
		entries := phoneIndex[phone]
		if countOEMs(entries) < opts.MinOEMCount {
			continue
		}

		primary := pickPrimary(entries)
		signals := []string{"phone"}

		if domain := NormalizeDomain(primary.Domain); domain != "" && allDomainsMatch(entries, domain) {
			signals = append(signals, "domain")
		}
		if allNamesMatch(entries, primary.Name, threshold) {
			signals = append(signals, "name")
		}

		confidence := 30*len(signals) + 10
		if confidence > 100 {
			confidence = 100
		}

		groups = append(groups, buildGroup(primary, entries, confidence, signals))
		claimed[[2]string{phone, NormalizeDomain(primary.Domain)}] = true
	}

	// Domain pass. Domain alone is weaker evidence (franchise and shared
	// vendor domains), so confidence is fixed at 60.
	for _, domain := range sortedKeys(domainIndex) {
		entries := domainIndex[domain]
		if countOEMs(entries) < opts.MinOEMCount {
			continue
		}
		if claimed[[2]string{NormalizePhone(entries[0].record.Phone), domain}] {
			continue
		}

		primary := pickPrimary(entries)
		groups = append(groups, buildGroup(primary, entries, 60, []string{"domain"}))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].MultiOEMScore != groups[j].MultiOEMScore {
			return groups[i].MultiOEMScore > groups[j].MultiOEMScore
		}
		if groups[i].Confidence != groups[j].Confidence {
			return groups[i].Confidence > groups[j].Confidence
		}
		return groups[i].Primary.Name < groups[j].Primary.Name
	})

	zap.L().Info("resolver: resolution complete",
		zap.Int("groups", len(groups)),
		zap.Int("min_oem_count", opts.MinOEMCount),
	)

	return groups, nil
}

func buildGroup(primary model.DealerRecord, entries []entry, confidence int, signals []string) model.ResolvedContractor {
	oems := map[string]bool{}
	records := make([]model.DealerRecord, 0, len(entries))
	for _, e := range entries {
		oems[e.oem] = true
		records = append(records, e.record)
	}
	sources := make([]string, 0, len(oems))
	for oem := range oems {
		sources = append(sources, oem)
	}
	sort.Strings(sources)

	return model.ResolvedContractor{
		Primary:       primary,
		OEMSources:    sources,
		Records:       records,
		Confidence:    confidence,
		Signals:       signals,
		MultiOEMScore: model.MultiOEMScoreFor(len(sources)),
	}
}

// pickPrimary selects the contributing record with the highest
// (rating, review count) pair.
func pickPrimary(entries []entry) model.DealerRecord {
	primary := entries[0].record
	for _, e := range entries[1:] {
		if e.record.Rating > primary.Rating ||
			(e.record.Rating == primary.Rating && e.record.ReviewCount > primary.ReviewCount) {
			primary = e.record
		}
	}
	return primary
}

func countOEMs(entries []entry) int {
	oems := map[string]bool{}
	for _, e := range entries {
		oems[e.oem] = true
	}
	return len(oems)
}

// allDomainsMatch reports whether every record that carries a domain
// normalizes to the given root domain.
func allDomainsMatch(entries []entry, domain string) bool {
	for _, e := range entries {
		if e.record.Domain == "" {
			continue
		}
		if NormalizeDomain(e.record.Domain) != domain {
			return false
		}
	}
	return true
}

// allNamesMatch reports whether every record's name fuzzy-matches the
// primary name.
func allNamesMatch(entries []entry, primaryName string, threshold float64) bool {
	for _, e := range entries {
		if ok, _ := MatchNames(primaryName, e.record.Name, threshold); !ok {
			return false
		}
	}
	return true
}

func sortedKeys(index map[string][]entry) []string {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
