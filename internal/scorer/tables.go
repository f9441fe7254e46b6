package scorer

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables/incentive_states.yaml
var incentiveStatesYAML []byte

//go:embed tables/wealthy_zips.yaml
var wealthyZipsYAML []byte

// StatePriority ranks incentive-state markets.
type StatePriority string

const (
	PriorityHigh   StatePriority = "HIGH"
	PriorityMedium StatePriority = "MEDIUM"
	PriorityLow    StatePriority = "LOW"
)

// StateProgram describes one state's long-term incentive program.
type StateProgram struct {
	Name     string        `yaml:"name"`
	Program  string        `yaml:"program"`
	Priority StatePriority `yaml:"priority"`
}

// geoBand classifies a ZIP within its state's high-income territory.
type geoBand int

const (
	geoNone      geoBand = iota // state not in the table
	geoStandard                 // in-state but not a listed ZIP
	geoTopList                  // on the high-income list
	geoTopDecile                // in the first ten entries
)

// topDecileSize is how many leading entries of a state's ZIP list count as
// the top decile band.
const topDecileSize = 10

var (
	incentiveStates map[string]StateProgram
	wealthyZips     map[string][]string
)

func init() {
	if err := yaml.Unmarshal(incentiveStatesYAML, &incentiveStates); err != nil {
		panic(fmt.Sprintf("scorer: parse incentive_states.yaml: %v", err))
	}
	if err := yaml.Unmarshal(wealthyZipsYAML, &wealthyZips); err != nil {
		panic(fmt.Sprintf("scorer: parse wealthy_zips.yaml: %v", err))
	}
}

// LookupStateProgram returns the incentive program for a two-letter state
// code. A miss is not an error; callers degrade to the LOW band.
func LookupStateProgram(state string) (StateProgram, bool) {
	p, ok := incentiveStates[strings.ToUpper(strings.TrimSpace(state))]
	return p, ok
}

// IsIncentiveState reports whether the state has a recognized long-term
// incentive program.
func IsIncentiveState(state string) bool {
	_, ok := LookupStateProgram(state)
	return ok
}

// lookupGeoBand classifies a contractor's ZIP within its state's
// high-income territory list.
func lookupGeoBand(state, zip string) geoBand {
	zips, ok := wealthyZips[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return geoNone
	}
	for i, z := range zips {
		if z == zip {
			if i < topDecileSize {
				return geoTopDecile
			}
			return geoTopList
		}
	}
	return geoStandard
}
