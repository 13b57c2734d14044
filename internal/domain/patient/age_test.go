package patient

import (
	"testing"
	"time"
)

func TestAge_BirthdayBoundary(t *testing.T) {
	dob := NewDate(1990, time.June, 15)

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{"day before birthday", time.Date(2020, time.June, 14, 0, 0, 0, 0, time.UTC), 29},
		{"on birthday", time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC), 30},
		{"day after birthday", time.Date(2020, time.June, 16, 0, 0, 0, 0, time.UTC), 30},
		{"earlier month", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), 29},
		{"later month", time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC), 30},
		{"same year", time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(dob, tt.asOf); got != tt.want {
				t.Errorf("Age(%s, %s) = %d, want %d", dob, tt.asOf.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestAge_DropsExactlyOncePerYear(t *testing.T) {
	dob := NewDate(1980, time.March, 10)

	// Walk a full calendar year day by day and count the increments.
	start := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	prev := Age(dob, start)
	increments := 0
	for d := 1; d <= 365; d++ {
		cur := Age(dob, start.AddDate(0, 0, d))
		switch cur - prev {
		case 0:
		case 1:
			increments++
		default:
			t.Fatalf("age jumped from %d to %d on day %d", prev, cur, d)
		}
		prev = cur
	}
	if increments != 1 {
		t.Errorf("expected exactly 1 increment across the year, got %d", increments)
	}
}

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{0, "<18"},
		{17, "<18"},
		{18, "18-29"},
		{29, "18-29"},
		{30, "30-44"},
		{44, "30-44"},
		{45, "45-64"},
		{64, "45-64"},
		{65, "65+"},
		{100, "65+"},
	}
	for _, tt := range tests {
		if got := AgeBucket(tt.age); got != tt.want {
			t.Errorf("AgeBucket(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestAgeBucket_CoversAllLabels(t *testing.T) {
	seen := make(map[string]bool)
	for age := 0; age <= 120; age++ {
		seen[AgeBucket(age)] = true
	}
	for _, label := range AgeBuckets {
		if !seen[label] {
			t.Errorf("bucket %q never produced", label)
		}
	}
	if len(seen) != len(AgeBuckets) {
		t.Errorf("expected %d distinct buckets, got %d", len(AgeBuckets), len(seen))
	}
}
