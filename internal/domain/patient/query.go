package patient

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/careboard/careboard/pkg/pagination"
)

// SortKey selects the comparison used to order a patient list.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByAge       SortKey = "age"
	SortByLastVisit SortKey = "lastVisit"
	SortByStatus    SortKey = "status"
)

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// nameCollator orders full names the way a locale-aware UI table does,
// ignoring case differences.
var nameCollator = collate.New(language.English, collate.Loose)

// Query describes one evaluation of the list view over a collection
// snapshot. Exactly one pagination mode applies: Window when non-nil,
// offset Page otherwise.
type Query struct {
	Search  string
	SortBy  SortKey
	SortDir SortDir
	Page    pagination.Params
	Window  *pagination.Window

	// AsOf anchors age computation; the zero value means wall clock.
	// Tests and deterministic callers should set it explicitly.
	AsOf time.Time
}

// Result is the visible slice plus result-count metadata.
type Result struct {
	Visible      []*Patient `json:"visible"`
	TotalMatched int        `json:"totalMatched"`
	HasMore      bool       `json:"hasMore"`
}

// Run filters, sorts, and paginates a collection snapshot. The input slice
// is never mutated; the result holds the same record pointers in a fresh
// slice.
func Run(collection []*Patient, q Query) Result {
	asOf := q.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	matched := Filter(collection, q.Search)
	Sort(matched, q.SortBy, q.SortDir, asOf)

	total := len(matched)
	var lo, hi int
	var hasMore bool
	if q.Window != nil {
		lo, hi = q.Window.Bounds(total)
		hasMore = q.Window.HasMore(total)
	} else {
		lo, hi = q.Page.Bounds(total)
		hasMore = q.Page.HasNext(total)
	}

	return Result{
		Visible:      matched[lo:hi],
		TotalMatched: total,
		HasMore:      hasMore,
	}
}

// Filter returns the patients whose full name contains search, compared
// case-insensitively. An empty search matches everything. No other field
// participates in matching. The returned slice is always freshly
// allocated.
func Filter(collection []*Patient, search string) []*Patient {
	out := make([]*Patient, 0, len(collection))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, p := range collection {
		if needle == "" || strings.Contains(strings.ToLower(p.FullName()), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders patients in place by the given key and direction. The sort
// is stable: records with equal keys keep their relative input order so
// re-renders do not jitter. An unknown key or direction is a programming
// error and panics.
func Sort(patients []*Patient, key SortKey, dir SortDir, asOf time.Time) {
	if key == "" {
		key = SortByName
	}
	if dir == "" {
		dir = SortAsc
	}
	cmp := comparator(key, asOf)

	sort.SliceStable(patients, func(i, j int) bool {
		c := cmp(patients[i], patients[j])
		if dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func comparator(key SortKey, asOf time.Time) func(a, b *Patient) int {
	switch key {
	case SortByName:
		return func(a, b *Patient) int {
			return nameCollator.CompareString(a.FullName(), b.FullName())
		}
	case SortByAge:
		return func(a, b *Patient) int {
			return Age(a.DateOfBirth, asOf) - Age(b.DateOfBirth, asOf)
		}
	case SortByLastVisit:
		return func(a, b *Patient) int {
			av, bv := a.MedicalInfo.LastVisit, b.MedicalInfo.LastVisit
			switch {
			case av.Before(bv):
				return -1
			case bv.Before(av):
				return 1
			default:
				return 0
			}
		}
	case SortByStatus:
		return func(a, b *Patient) int {
			return strings.Compare(string(a.MedicalInfo.Status), string(b.MedicalInfo.Status))
		}
	default:
		panic(fmt.Sprintf("patient: unknown sort key %q", key))
	}
}

// ValidSortKey reports whether key names a supported sort column. Handlers
// use it to reject caller input before it reaches Sort, which treats an
// unknown key as a programming error.
func ValidSortKey(key SortKey) bool {
	switch key {
	case "", SortByName, SortByAge, SortByLastVisit, SortByStatus:
		return true
	}
	return false
}

// ValidSortDir reports whether dir is a supported direction.
func ValidSortDir(dir SortDir) bool {
	return dir == "" || dir == SortAsc || dir == SortDesc
}

// ListState is the stateful companion of Run for callers that keep a live
// list view: it owns the current search text and pagination position and
// enforces the reset rule — changing the filter rewinds offset paging to
// page zero and shrinks the scroll window to its initial size, so a
// shrinking result set can never leave the view pointing past the end.
type ListState struct {
	search string
	page   pagination.Params
	window *pagination.Window
	sortBy SortKey
	dir    SortDir
}

// NewListState creates a list view state in offset mode with the given
// page size.
func NewListState(pageSize int) *ListState {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &ListState{
		page:   pagination.Params{PageSize: pageSize},
		sortBy: SortByName,
		dir:    SortAsc,
	}
}

// NewScrollState creates a list view state in window mode with the given
// initial window size.
func NewScrollState(initial int) *ListState {
	return &ListState{
		window: pagination.NewWindow(initial),
		sortBy: SortByName,
		dir:    SortAsc,
	}
}

// SetSearch updates the filter text. Any change resets the pagination
// position.
func (s *ListState) SetSearch(search string) {
	if s.search == search {
		return
	}
	s.search = search
	s.page.Page = 0
	if s.window != nil {
		s.window.Reset()
	}
}

// SetSort changes the sort column. Selecting the current column toggles
// the direction, matching the table header behavior.
func (s *ListState) SetSort(key SortKey) {
	if !ValidSortKey(key) || key == "" {
		return
	}
	if s.sortBy == key {
		if s.dir == SortAsc {
			s.dir = SortDesc
		} else {
			s.dir = SortAsc
		}
		return
	}
	s.sortBy = key
	s.dir = SortAsc
}

// SetPage moves offset paging to the given zero-based page.
func (s *ListState) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	s.page.Page = page
}

// LoadMore grows the scroll window by step items. It is a no-op in offset
// mode.
func (s *ListState) LoadMore(step int) {
	if s.window != nil {
		s.window.Grow(step)
	}
}

// Apply evaluates the current state against a collection snapshot.
func (s *ListState) Apply(collection []*Patient, asOf time.Time) Result {
	return Run(collection, Query{
		Search:  s.search,
		SortBy:  s.sortBy,
		SortDir: s.dir,
		Page:    s.page,
		Window:  s.window,
		AsOf:    asOf,
	})
}
