// Package pagination provides the two paging models used by patient list
// views: classic page/pageSize offset paging for tables, and a grow-only
// display window for infinite-scroll lists.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// DefaultWindow is the initial and increment size of a scroll window.
	DefaultWindow = 50
)

// Params holds offset-mode paging parameters. Page is zero-based.
type Params struct {
	Page     int
	PageSize int
}

// FromContext extracts offset-mode paging parameters from the request
// query string, applying defaults and the size cap.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}

	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

// Bounds returns the half-open slice interval [lo, hi) for a collection of
// the given total length.
func (p Params) Bounds(total int) (lo, hi int) {
	lo = p.Page * p.PageSize
	if lo > total {
		lo = total
	}
	hi = lo + p.PageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}

// HasNext reports whether another page exists after the current one.
func (p Params) HasNext(total int) bool {
	return (p.Page+1)*p.PageSize < total
}

// Window is a grow-only display window for incremental loading. Count
// never shrinks except through Reset, which is required whenever the
// filter driving the list changes.
type Window struct {
	initial int
	count   int
}

// NewWindow creates a window starting at (and growing by) initial.
// Non-positive values fall back to DefaultWindow.
func NewWindow(initial int) *Window {
	if initial <= 0 {
		initial = DefaultWindow
	}
	return &Window{initial: initial, count: initial}
}

// Count returns the current window size.
func (w *Window) Count() int { return w.count }

// Grow extends the window by step items (the initial size when step <= 0).
func (w *Window) Grow(step int) {
	if step <= 0 {
		step = w.initial
	}
	w.count += step
}

// Reset shrinks the window back to its initial size.
func (w *Window) Reset() { w.count = w.initial }

// Bounds returns the slice interval [0, hi) clamped to total.
func (w *Window) Bounds(total int) (lo, hi int) {
	hi = w.count
	if hi > total {
		hi = total
	}
	return 0, hi
}

// HasMore reports whether items beyond the window remain.
func (w *Window) HasMore(total int) bool {
	return w.count < total
}

// Response is the paged list envelope returned by list endpoints.
type Response struct {
	Data         interface{} `json:"data"`
	TotalMatched int         `json:"totalMatched"`
	HasMore      bool        `json:"hasMore"`
}
