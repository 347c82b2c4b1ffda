// internal/query/filter.go
package query

import (
	"strings"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

// Criteria is the structured filter panel's state. Every field is optional:
// an empty set means no restriction on that dimension, and a nil bound leaves
// that side of the funding range open. Active criteria combine with AND.
type Criteria struct {
	Sectors    []string
	Stages     []string
	LookingFor []string
	Statuses   []models.Status
	FundingMin *int64
	FundingMax *int64
}

// Empty reports whether no criterion is active.
func (c Criteria) Empty() bool {
	return len(c.Sectors) == 0 && len(c.Stages) == 0 && len(c.LookingFor) == 0 &&
		len(c.Statuses) == 0 && c.FundingMin == nil && c.FundingMax == nil
}

// Filter returns the rows matching every active criterion. The funding range
// is inclusive on both ends.
func Filter(rows []Row, criteria Criteria) []Row {
	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if criteria.matches(row) {
			matched = append(matched, row)
		}
	}
	return matched
}

func (c Criteria) matches(row Row) bool {
	app := row.Application
	if !inSet(c.Sectors, app.Sector) {
		return false
	}
	if !inSet(c.Stages, app.Stage) {
		return false
	}
	if !inSet(c.LookingFor, app.LookingFor) {
		return false
	}
	if len(c.Statuses) > 0 {
		found := false
		for _, status := range c.Statuses {
			if row.Status() == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.FundingMin != nil && app.FundingAsk < *c.FundingMin {
		return false
	}
	if c.FundingMax != nil && app.FundingAsk > *c.FundingMax {
		return false
	}
	return true
}

// inSet treats an empty set as "no restriction". Values compare
// case-insensitively to tolerate inconsistent casing in submissions.
func inSet(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, member := range set {
		if strings.EqualFold(member, value) {
			return true
		}
	}
	return false
}

// Search returns the rows whose name or sector contains term as a
// case-insensitive substring. A blank term matches everything. Search is a
// separate view mode from Filter; callers apply one or the other, never both.
func Search(rows []Row, term string) []Row {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}

	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Application.Name), term) ||
			strings.Contains(strings.ToLower(row.Application.Sector), term) {
			matched = append(matched, row)
		}
	}
	return matched
}
