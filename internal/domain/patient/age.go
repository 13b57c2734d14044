package patient

import "time"

// Age returns whole calendar years elapsed between dob and asOf, with the
// calendar-correct decrement: the year count drops by one when asOf's
// month/day precedes the birthday within the current year.
func Age(dob Date, asOf time.Time) int {
	b := dob.Time()
	years := asOf.Year() - b.Year()
	if asOf.Month() < b.Month() || (asOf.Month() == b.Month() && asOf.Day() < b.Day()) {
		years--
	}
	return years
}

// AgeBuckets lists every bucket label in ascending order. Aggregates emit
// all of them, including empty ones, so charts show zero-count categories.
//
// The dashboard historically rendered two divergent bucket schemes; this
// one is the canonical scheme and is applied uniformly (see DESIGN.md).
var AgeBuckets = []string{"<18", "18-29", "30-44", "45-64", "65+"}

// AgeBucket classifies an age in years into one of AgeBuckets.
func AgeBucket(age int) string {
	switch {
	case age < 18:
		return "<18"
	case age <= 29:
		return "18-29"
	case age <= 44:
		return "30-44"
	case age <= 64:
		return "45-64"
	default:
		return "65+"
	}
}
