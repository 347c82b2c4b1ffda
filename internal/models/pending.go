// internal/models/pending.go
package models

// ChecklistUpdate stages a change to one checklist item. Updates are applied
// in staging order at merge time, so a later update wins per field.
type ChecklistUpdate struct {
	ID      string  `json:"_id"`
	Checked bool    `json:"checked"`
	Notes   *string `json:"notes,omitempty"`
}

// DocumentOp stages either an addition (Name/URL/Type set, Remove false) or a
// removal tombstone (ID set, Remove true). Staged additions carry a temporary
// client-side ID until the store assigns a real one.
type DocumentOp struct {
	ID     string `json:"_id,omitempty"`
	Name   string `json:"name,omitempty"`
	URL    string `json:"url,omitempty"`
	Type   string `json:"type,omitempty"`
	Remove bool   `json:"remove,omitempty"`
}

// PendingChange is the uncommitted diff for exactly one open project. It is
// discarded after a successful commit or when another project is opened.
type PendingChange struct {
	ProjectID string
	Status    *Status
	// Notes holds new entries only, never the full history.
	Notes       map[Round][]NoteEntry
	Checklist   []ChecklistUpdate
	DocumentOps []DocumentOp
}

// NewPendingChange returns an empty diff scoped to projectID.
func NewPendingChange(projectID string) *PendingChange {
	return &PendingChange{
		ProjectID: projectID,
		Notes:     make(map[Round][]NoteEntry),
	}
}

// Empty reports whether the diff stages nothing.
func (p *PendingChange) Empty() bool {
	if p == nil {
		return true
	}
	if p.Status != nil || len(p.Checklist) > 0 || len(p.DocumentOps) > 0 {
		return false
	}
	for _, entries := range p.Notes {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy used for retry bookkeeping.
func (p *PendingChange) Clone() *PendingChange {
	out := NewPendingChange(p.ProjectID)
	if p.Status != nil {
		s := *p.Status
		out.Status = &s
	}
	for round, entries := range p.Notes {
		cp := make([]NoteEntry, len(entries))
		copy(cp, entries)
		out.Notes[round] = cp
	}
	out.Checklist = make([]ChecklistUpdate, len(p.Checklist))
	copy(out.Checklist, p.Checklist)
	out.DocumentOps = make([]DocumentOp, len(p.DocumentOps))
	copy(out.DocumentOps, p.DocumentOps)
	return out
}
