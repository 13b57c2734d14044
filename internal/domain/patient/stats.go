package patient

import (
	"sort"
	"time"
)

// DefaultTopConditions is the number of conditions kept in the ranked list.
const DefaultTopConditions = 8

// UnknownProvider is the label substituted for a missing insurance
// provider so charts never show an empty category name.
const UnknownProvider = "Unknown"

// ConditionCount is one entry of the ranked condition list.
type ConditionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats holds the grouped counts feeding the analytics charts. Gender,
// status, and age-bucket tables always contain every known label, even at
// zero, so empty categories render rather than vanish.
type Stats struct {
	Total               int              `json:"total"`
	ByGender            map[string]int   `json:"byGender"`
	ByAgeBucket         map[string]int   `json:"byAgeBucket"`
	ByStatus            map[string]int   `json:"byStatus"`
	TopConditions       []ConditionCount `json:"topConditions"`
	ByInsuranceProvider map[string]int   `json:"byInsuranceProvider"`
}

// Aggregate scans the full collection once and derives every chart table.
// It reads the snapshot only; absent nested collections count as empty.
func Aggregate(collection []*Patient, asOf time.Time, topLimit int) *Stats {
	if topLimit <= 0 {
		topLimit = DefaultTopConditions
	}

	s := &Stats{
		Total:               len(collection),
		ByGender:            make(map[string]int, len(Genders)),
		ByAgeBucket:         make(map[string]int, len(AgeBuckets)),
		ByStatus:            make(map[string]int, len(Statuses)),
		ByInsuranceProvider: make(map[string]int),
	}
	for _, g := range Genders {
		s.ByGender[string(g)] = 0
	}
	for _, b := range AgeBuckets {
		s.ByAgeBucket[b] = 0
	}
	for _, st := range Statuses {
		s.ByStatus[string(st)] = 0
	}

	condCounts := make(map[string]int)
	var condNames []string // first-seen order, for tie-breaking

	for _, p := range collection {
		s.ByGender[string(p.Gender)]++
		s.ByAgeBucket[AgeBucket(Age(p.DateOfBirth, asOf))]++
		s.ByStatus[string(p.MedicalInfo.Status)]++

		for _, c := range p.MedicalInfo.Conditions {
			if _, seen := condCounts[c]; !seen {
				condNames = append(condNames, c)
			}
			condCounts[c]++
		}

		provider := p.Insurance.Provider
		if provider == "" {
			provider = UnknownProvider
		}
		s.ByInsuranceProvider[provider]++
	}

	ranked := make([]ConditionCount, 0, len(condNames))
	for _, name := range condNames {
		ranked = append(ranked, ConditionCount{Name: name, Count: condCounts[name]})
	}
	// condNames is in first-seen order, so a stable sort keeps that order
	// for equal counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topLimit {
		ranked = ranked[:topLimit]
	}
	s.TopConditions = ranked

	return s
}
