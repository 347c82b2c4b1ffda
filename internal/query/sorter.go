// internal/query/sorter.go
package query

import (
	"sort"
	"strings"
)

// SortKey names a sortable column of the pipeline view.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortBySector      SortKey = "sector"
	SortByStage       SortKey = "stage"
	SortByLookingFor  SortKey = "lookingFor"
	SortByFundingAsk  SortKey = "fundingAsk"
	SortByRevenue     SortKey = "revenue"
	SortBySubmittedAt SortKey = "submittedAt"
	SortByStatus      SortKey = "status"
)

// Direction is the sort order for the active key.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sorter tracks the active sort column and direction across calls. Sorting by
// the key already active flips the direction; switching to a new key resets
// to ascending.
type Sorter struct {
	key       SortKey
	direction Direction
}

func NewSorter() *Sorter {
	return &Sorter{}
}

// Key returns the active sort key, empty before the first Sort call.
func (s *Sorter) Key() SortKey {
	return s.key
}

// Direction returns the active direction.
func (s *Sorter) Direction() Direction {
	return s.direction
}

// Toggle advances the state for key: same key flips direction, a new key
// becomes active ascending.
func (s *Sorter) Toggle(key SortKey) {
	if key == s.key {
		if s.direction == Ascending {
			s.direction = Descending
		} else {
			s.direction = Ascending
		}
		return
	}
	s.key = key
	s.direction = Ascending
}

// Sort orders rows by key, updating the toggle state, and returns a new
// slice. The sort is stable: rows comparing equal keep their prior relative
// order.
func (s *Sorter) Sort(rows []Row, key SortKey) []Row {
	s.Toggle(key)
	return SortBy(rows, s.key, s.direction)
}

// SortBy is the stateless form: it orders rows by key and direction without
// touching any toggle state.
func SortBy(rows []Row, key SortKey, direction Direction) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == Descending {
			// Equal rows must not swap under stability, so the strict
			// comparison is reversed rather than negated.
			return compare(sorted[j], sorted[i], key)
		}
		return compare(sorted[i], sorted[j], key)
	})
	return sorted
}

// compare reports whether a orders strictly before b under key, ascending.
// String columns compare lexicographically, numeric columns numerically.
func compare(a, b Row, key SortKey) bool {
	switch key {
	case SortByName:
		return strings.ToLower(a.Application.Name) < strings.ToLower(b.Application.Name)
	case SortBySector:
		return strings.ToLower(a.Application.Sector) < strings.ToLower(b.Application.Sector)
	case SortByStage:
		return strings.ToLower(a.Application.Stage) < strings.ToLower(b.Application.Stage)
	case SortByLookingFor:
		return strings.ToLower(a.Application.LookingFor) < strings.ToLower(b.Application.LookingFor)
	case SortByFundingAsk:
		return a.Application.FundingAsk < b.Application.FundingAsk
	case SortByRevenue:
		return a.Application.Revenue < b.Application.Revenue
	case SortBySubmittedAt:
		return a.Application.SubmittedAt < b.Application.SubmittedAt
	case SortByStatus:
		return string(a.Status()) < string(b.Status())
	default:
		return false
	}
}
