package patient

import (
	"strings"
	"testing"
	"time"

	"github.com/careboard/careboard/pkg/pagination"
)

var queryAsOf = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

// testPatient builds a minimal record for engine tests. Age is exact as
// of queryAsOf because the birthday is January 1st.
func testPatient(first, last string, age int, status Status, lastVisit Date) *Patient {
	return &Patient{
		ID:          first + "-" + last,
		FirstName:   first,
		LastName:    last,
		DateOfBirth: NewDate(queryAsOf.Year()-age, time.January, 1),
		Gender:      GenderOther,
		MedicalInfo: MedicalInfo{
			Status:    status,
			LastVisit: lastVisit,
		},
	}
}

func testCollection() []*Patient {
	return []*Patient{
		testPatient("Alice", "Smith", 40, StatusActive, NewDate(2024, 3, 1)),
		testPatient("Bob", "Jones", 20, StatusCritical, NewDate(2024, 5, 1)),
		testPatient("Cara", "Lee", 70, StatusInactive, NewDate(2024, 1, 1)),
	}
}

func names(ps []*Patient) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.FullName()
	}
	return out
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	c := testCollection()

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"Alice Smith", "Bob Jones", "Cara Lee"}},
		{"li", []string{"Alice Smith"}},
		{"a", []string{"Alice Smith", "Cara Lee"}},
		{"SMITH", []string{"Alice Smith"}},
		{"e s", []string{"Alice Smith"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		got := names(Filter(c, tt.search))
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("Filter(%q) = %v, want %v", tt.search, got, tt.want)
		}
	}
}

func TestFilter_SoundAndComplete(t *testing.T) {
	c := testCollection()
	search := "o"

	matched := Filter(c, search)
	for _, p := range matched {
		if !strings.Contains(strings.ToLower(p.FullName()), search) {
			t.Errorf("unsound: %s does not contain %q", p.FullName(), search)
		}
	}
	for _, p := range c {
		if strings.Contains(strings.ToLower(p.FullName()), search) {
			found := false
			for _, m := range matched {
				if m == p {
					found = true
				}
			}
			if !found {
				t.Errorf("incomplete: %s missing from result", p.FullName())
			}
		}
	}
}

func TestSort_ByAge(t *testing.T) {
	c := testCollection()
	Sort(c, SortByAge, SortAsc, queryAsOf)

	want := []string{"Bob Jones", "Alice Smith", "Cara Lee"}
	got := names(c)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("age asc = %v, want %v", got, want)
	}
}

func TestSort_DescReverses(t *testing.T) {
	keys := []SortKey{SortByName, SortByAge, SortByLastVisit, SortByStatus}
	for _, key := range keys {
		asc := testCollection()
		Sort(asc, key, SortAsc, queryAsOf)
		desc := testCollection()
		Sort(desc, key, SortDesc, queryAsOf)

		// No duplicate sort values in the fixture, so desc must be the
		// exact reverse of asc.
		for i := range asc {
			if asc[i].ID != desc[len(desc)-1-i].ID {
				t.Errorf("key %s: desc is not the reverse of asc (%v vs %v)",
					key, names(asc), names(desc))
				break
			}
		}
	}
}

func TestSort_Stable(t *testing.T) {
	// All same age: order must be preserved exactly.
	c := []*Patient{
		testPatient("A", "One", 30, StatusActive, NewDate(2024, 1, 1)),
		testPatient("B", "Two", 30, StatusActive, NewDate(2024, 1, 1)),
		testPatient("C", "Three", 30, StatusActive, NewDate(2024, 1, 1)),
	}
	Sort(c, SortByAge, SortAsc, queryAsOf)

	want := []string{"A One", "B Two", "C Three"}
	if strings.Join(names(c), ",") != strings.Join(want, ",") {
		t.Errorf("stable sort violated: %v", names(c))
	}
}

func TestSort_UnknownKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown sort key")
		}
	}()
	Sort(testCollection(), SortKey("bogus"), SortAsc, queryAsOf)
}

func TestRun_OffsetPagination(t *testing.T) {
	var c []*Patient
	for i := 0; i < 25; i++ {
		c = append(c, testPatient("P", string(rune('a'+i)), 20+i, StatusActive, NewDate(2024, 1, 1)))
	}

	r := Run(c, Query{
		SortBy: SortByAge,
		Page:   pagination.Params{Page: 2, PageSize: 10},
		AsOf:   queryAsOf,
	})
	if len(r.Visible) != 5 {
		t.Errorf("expected last page of 5, got %d", len(r.Visible))
	}
	if r.TotalMatched != 25 {
		t.Errorf("expected totalMatched 25, got %d", r.TotalMatched)
	}
	if r.HasMore {
		t.Error("expected hasMore false on last page")
	}

	// hasMore false implies page*pageSize + len(visible) == totalMatched.
	if 2*10+len(r.Visible) != r.TotalMatched {
		t.Error("hasMore=false invariant violated")
	}

	r = Run(c, Query{
		SortBy: SortByAge,
		Page:   pagination.Params{Page: 0, PageSize: 10},
		AsOf:   queryAsOf,
	})
	if len(r.Visible) != 10 || !r.HasMore {
		t.Errorf("expected full first page with more, got %d hasMore=%v", len(r.Visible), r.HasMore)
	}
}

func TestRun_PastEndPageIsEmpty(t *testing.T) {
	r := Run(testCollection(), Query{
		Page: pagination.Params{Page: 5, PageSize: 10},
		AsOf: queryAsOf,
	})
	if len(r.Visible) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(r.Visible))
	}
	if r.TotalMatched != 3 {
		t.Errorf("expected totalMatched 3, got %d", r.TotalMatched)
	}
	if r.HasMore {
		t.Error("expected hasMore false past the end")
	}
}

func TestRun_WindowMode(t *testing.T) {
	var c []*Patient
	for i := 0; i < 120; i++ {
		c = append(c, testPatient("P", string(rune('a'+i%26))+string(rune('a'+i/26)), 20, StatusActive, NewDate(2024, 1, 1)))
	}

	w := pagination.NewWindow(50)
	r := Run(c, Query{Window: w, AsOf: queryAsOf})
	if len(r.Visible) != 50 || !r.HasMore {
		t.Fatalf("initial window: got %d hasMore=%v", len(r.Visible), r.HasMore)
	}

	w.Grow(50)
	r = Run(c, Query{Window: w, AsOf: queryAsOf})
	if len(r.Visible) != 100 || !r.HasMore {
		t.Fatalf("grown window: got %d hasMore=%v", len(r.Visible), r.HasMore)
	}

	w.Grow(50)
	r = Run(c, Query{Window: w, AsOf: queryAsOf})
	if len(r.Visible) != 120 {
		t.Errorf("clamped window: got %d, want 120", len(r.Visible))
	}
	if r.HasMore {
		t.Error("expected hasMore false once the window covers everything")
	}
}

func TestRun_EmptyCollection(t *testing.T) {
	r := Run(nil, Query{AsOf: queryAsOf})
	if len(r.Visible) != 0 || r.TotalMatched != 0 || r.HasMore {
		t.Errorf("empty collection: got %+v", r)
	}
}

func TestListState_FilterChangeResetsPage(t *testing.T) {
	s := NewListState(2)
	s.SetPage(4)
	s.SetSearch("li")

	r := s.Apply(testCollection(), queryAsOf)
	if len(r.Visible) != 1 || r.Visible[0].FullName() != "Alice Smith" {
		t.Errorf("expected page reset to surface Alice Smith, got %v", names(r.Visible))
	}
}

func TestListState_FilterChangeResetsWindow(t *testing.T) {
	var c []*Patient
	for i := 0; i < 200; i++ {
		c = append(c, testPatient("Pat", string(rune('a'+i%26))+string(rune('a'+i/26)), 30, StatusActive, NewDate(2024, 1, 1)))
	}

	s := NewScrollState(50)
	s.LoadMore(0)
	s.LoadMore(0)
	r := s.Apply(c, queryAsOf)
	if len(r.Visible) != 150 {
		t.Fatalf("expected grown window of 150, got %d", len(r.Visible))
	}

	s.SetSearch("pat a")
	r = s.Apply(c, queryAsOf)
	if got := r.TotalMatched; len(r.Visible) > 50 {
		t.Errorf("window not reset on filter change: visible %d of %d", len(r.Visible), got)
	}

	// Same search again must not reset paging.
	s.LoadMore(0)
	before := s.Apply(c, queryAsOf)
	s.SetSearch("pat a")
	after := s.Apply(c, queryAsOf)
	if len(after.Visible) != len(before.Visible) {
		t.Error("unchanged search must not reset the window")
	}
}

func TestListState_SortToggle(t *testing.T) {
	s := NewListState(10)
	s.SetSort(SortByAge)
	r := s.Apply(testCollection(), queryAsOf)
	if r.Visible[0].FullName() != "Bob Jones" {
		t.Errorf("age asc should lead with Bob Jones, got %s", r.Visible[0].FullName())
	}

	s.SetSort(SortByAge) // same column toggles direction
	r = s.Apply(testCollection(), queryAsOf)
	if r.Visible[0].FullName() != "Cara Lee" {
		t.Errorf("age desc should lead with Cara Lee, got %s", r.Visible[0].FullName())
	}
}
