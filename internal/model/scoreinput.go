package model

// ScoreInputKind tags which variant a ScoreInput carries.
type ScoreInputKind string

const (
	ScoreInputRecord ScoreInputKind = "record"
	ScoreInputGroup  ScoreInputKind = "group"
)

// ScoreInput is a tagged variant accepted by the lead scorer: either a
// single dealer record (treated as a one-OEM group) or a resolved group.
// Downstream code switches on Kind instead of probing for fields.
type ScoreInput struct {
	Kind   ScoreInputKind
	record DealerRecord
	group  ResolvedContractor
}

// ScoreInputFromRecord wraps a single DealerRecord as scorer input.
func ScoreInputFromRecord(rec DealerRecord) ScoreInput {
	return ScoreInput{Kind: ScoreInputRecord, record: rec}
}

// ScoreInputFromGroup wraps a ResolvedContractor as scorer input.
func ScoreInputFromGroup(group ResolvedContractor) ScoreInput {
	return ScoreInput{Kind: ScoreInputGroup, group: group}
}

// Primary returns the record whose identity fields label the input.
func (in ScoreInput) Primary() DealerRecord {
	if in.Kind == ScoreInputGroup {
		return in.group.Primary
	}
	return in.record
}

// OEMSources returns the contributing OEM names.
func (in ScoreInput) OEMSources() []string {
	if in.Kind == ScoreInputGroup {
		return in.group.OEMSources
	}
	if in.record.OEMSource == "" {
		return nil
	}
	return []string{in.record.OEMSource}
}

// OEMCount returns the number of distinct contributing OEMs.
func (in ScoreInput) OEMCount() int {
	return len(in.OEMSources())
}

// Capabilities returns the merged capability flags for the input.
func (in ScoreInput) Capabilities() Capabilities {
	if in.Kind == ScoreInputGroup {
		return in.group.MergedCapabilities()
	}
	return in.record.Capabilities
}

// Contact returns the best contact info for the input.
func (in ScoreInput) Contact() ContactInfo {
	if in.Kind == ScoreInputGroup {
		return in.group.BestContact()
	}
	return ContactInfo{
		Phone:       in.record.Phone,
		Website:     in.record.Website,
		Domain:      in.record.Domain,
		AddressFull: in.record.AddressFull,
	}
}

// Records returns every contributing observation, primarily for audit.
func (in ScoreInput) Records() []DealerRecord {
	if in.Kind == ScoreInputGroup {
		return in.group.Records
	}
	return []DealerRecord{in.record}
}
