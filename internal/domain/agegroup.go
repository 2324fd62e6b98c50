package domain

import (
	"fmt"
	"slices"
	"strings"
)

// AgeGroupDenylist holds PERP_AGE_GROUP values known to be garbage: null
// markers and numeric tokens that are not age brackets.
var AgeGroupDenylist = []string{"UNKNOWN", "(null)", "1020", "224", "940", "1028"}

// KnownAgeGroups is the finite set of valid PERP_AGE_GROUP labels.
var KnownAgeGroups = []string{"<18", "18-24", "25-44", "45-64", "65+"}

// FilterMode selects how the second age-group pass rejects values.
type FilterMode string

const (
	// FilterDenylist removes values listed in AgeGroupDenylist.
	FilterDenylist FilterMode = "denylist"
	// FilterAllowlist keeps only values listed in KnownAgeGroups.
	FilterAllowlist FilterMode = "allowlist"
)

// ParseFilterMode validates a filter mode name.
func ParseFilterMode(s string) (FilterMode, error) {
	switch m := FilterMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FilterDenylist, FilterAllowlist:
		return m, nil
	default:
		return "", fmt.Errorf("unknown age group filter %q", s)
	}
}

// AgeGroupFilter decides which age-group values survive the second pass.
type AgeGroupFilter struct {
	Mode FilterMode
}

// Keep reports whether v is retained by the filter.
func (f AgeGroupFilter) Keep(v string) bool {
	if f.Mode == FilterAllowlist {
		return slices.Contains(KnownAgeGroups, v)
	}
	return !slices.Contains(AgeGroupDenylist, v)
}

// AgeGroups extracts the raw PERP_AGE_GROUP value of every incident.
func AgeGroups(incidents []Incident) []string {
	out := make([]string, len(incidents))
	for i, inc := range incidents {
		out[i] = inc.PerpAgeGroup
	}
	return out
}

// UnrecognizedAgeGroups returns the categories in rows that are not valid age
// brackets. With the denylist filter these are garbage values the list misses.
func UnrecognizedAgeGroups(rows []CountRow) []string {
	var out []string
	for _, r := range rows {
		if !slices.Contains(KnownAgeGroups, r.Category) {
			out = append(out, r.Category)
		}
	}
	return out
}
