package domain

import "time"

type EventSort string

const (
	SortEventDate EventSort = "EVENT_DATE"
	SortViews     EventSort = "VIEWS"
	SortRating    EventSort = "RATING"
)

func ParseEventSort(s string) (EventSort, error) {
	switch EventSort(s) {
	case "", SortEventDate:
		return SortEventDate, nil
	case SortViews:
		return SortViews, nil
	case SortRating:
		return SortRating, nil
	}
	return "", ErrInvalidSort
}

// NativelySortable reports whether storage can order by this key.
func (s EventSort) NativelySortable() bool {
	return s == "" || s == SortEventDate
}

// EventFilter holds the public discovery filters; zero values mean "not set".
type EventFilter struct {
	Text          string
	CategoryIDs   []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	// After restricts to events strictly later than it; the public search sets
	// it when no range bound is given.
	After *time.Time
	// PublishedOnly is always set by the public search.
	PublishedOnly bool
}

// IsEmpty reports whether no user-facing filter was supplied.
func (f EventFilter) IsEmpty() bool {
	return f.Text == "" && len(f.CategoryIDs) == 0 && f.Paid == nil &&
		f.RangeStart == nil && f.RangeEnd == nil && !f.OnlyAvailable
}

// Page is a storage-level window; Size 0 means unpaged.
type Page struct {
	From int
	Size int
}

func (p Page) Unpaged() bool {
	return p.Size == 0
}

// Window returns the [lo, hi) bounds of a from/size window over total items.
// ok is false when from lies beyond the data; from == total yields the empty
// slice [total, total) with ok true.
func Window(total, from, size int) (lo, hi int, ok bool) {
	if from > total {
		return 0, 0, false
	}
	hi = total
	if size < total-from {
		hi = from + size
	}
	return from, hi, true
}

// Hit is one access record for the external view counter.
type Hit struct {
	App       string    `json:"app"`
	URI       string    `json:"uri"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
}
