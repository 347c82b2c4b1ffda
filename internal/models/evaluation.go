// internal/models/evaluation.go
package models

import "time"

// Status is the review outcome for one project. Exactly one value holds at a
// time; the last committed write wins.
type Status string

const (
	StatusNew           Status = "NEW"
	StatusOnHold        Status = "ON-HOLD"
	StatusRound1Cleared Status = "ROUND-1"
	StatusRound2Cleared Status = "ROUND-2"
	StatusSelected      Status = "SELECTED"
	StatusRejected      Status = "REJECTED"
)

// DefaultStatus is rendered for an Application that has no Evaluation record
// yet; evaluations are created lazily on first commit.
const DefaultStatus = StatusNew

// ValidStatuses is the closed status vocabulary in display order.
var ValidStatuses = []Status{
	StatusNew,
	StatusOnHold,
	StatusRound1Cleared,
	StatusRound2Cleared,
	StatusSelected,
	StatusRejected,
}

// IsValid reports whether s is one of the fixed status codes.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the human-readable form used by the console.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusOnHold:
		return "On Hold"
	case StatusRound1Cleared:
		return "Round 1 Cleared"
	case StatusRound2Cleared:
		return "Round 2 Cleared"
	case StatusSelected:
		return "Selected"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// Round names the fixed note categories of an evaluation.
type Round string

const (
	RoundFirst   Round = "firstRound"
	RoundSecond  Round = "secondRound"
	RoundThird   Round = "thirdRound"
	RoundGeneral Round = "generalNotes"
)

// Rounds is the fixed round set in wire order.
var Rounds = []Round{RoundFirst, RoundSecond, RoundThird, RoundGeneral}

// IsValid reports whether r is one of the fixed round names.
func (r Round) IsValid() bool {
	for _, v := range Rounds {
		if r == v {
			return true
		}
	}
	return false
}

// NoteEntry is one append-only note. Entries are never edited or deleted.
type NoteEntry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// RoundNotes maps every round name to its ordered note log. A canonical value
// carries all four keys, each with a non-nil (possibly empty) slice.
type RoundNotes map[Round][]NoteEntry

// ChecklistItem is one seeded evaluation criterion. Identity and count are
// fixed externally; only Checked and Notes mutate.
type ChecklistItem struct {
	ID      string `json:"_id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
	Notes   string `json:"notes,omitempty"`
}

// Document is one supporting document link, unique by ID. IDs are assigned by
// the remote store when an addition is committed.
type Document struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Evaluation is the mutable review record for one project.
type Evaluation struct {
	ProjectID   string          `json:"projectId"`
	Status      Status          `json:"projectStatus"`
	RoundNotes  RoundNotes      `json:"roundNotes"`
	Checklist   []ChecklistItem `json:"evaluationChecklist"`
	Documents   []Document      `json:"additionalDocuments"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// Clone returns a deep copy so optimistic edits never alias store state.
func (e Evaluation) Clone() Evaluation {
	out := e
	out.RoundNotes = make(RoundNotes, len(e.RoundNotes))
	for round, entries := range e.RoundNotes {
		cp := make([]NoteEntry, len(entries))
		copy(cp, entries)
		out.RoundNotes[round] = cp
	}
	out.Checklist = make([]ChecklistItem, len(e.Checklist))
	copy(out.Checklist, e.Checklist)
	out.Documents = make([]Document, len(e.Documents))
	copy(out.Documents, e.Documents)
	return out
}

// SeedChecklist returns the externally seeded criterion set used when an
// evaluation record is created lazily.
func SeedChecklist() []ChecklistItem {
	return []ChecklistItem{
		{ID: "check-1", Label: "Founder is full-time"},
		{ID: "check-2", Label: "Problem clearly defined"},
		{ID: "check-3", Label: "Solution is validated"},
		{ID: "check-4", Label: "Clear differentiation"},
		{ID: "check-5", Label: "Large enough TAM/SAM"},
		{ID: "check-6", Label: "Strong team composition"},
	}
}

// NewEvaluation builds the default record shown for a project that has not
// been reviewed yet.
func NewEvaluation(projectID string) Evaluation {
	notes := make(RoundNotes, len(Rounds))
	for _, round := range Rounds {
		notes[round] = []NoteEntry{}
	}
	return Evaluation{
		ProjectID:  projectID,
		Status:     DefaultStatus,
		RoundNotes: notes,
		Checklist:  SeedChecklist(),
		Documents:  []Document{},
	}
}
