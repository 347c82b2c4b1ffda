// internal/models/patch.go
package models

// EvaluationPatch is the partial-update request body sent to the remote
// store. Field names mirror the store's REST contract; every field is
// optional and omitted when the diff stages nothing for it.
type EvaluationPatch struct {
	Status     *Status               `json:"projectStatus,omitempty"`
	RoundNotes map[Round][]NoteEntry `json:"roundNotes,omitempty"`
	Checklist  []ChecklistUpdate     `json:"evaluationChecklist,omitempty"`
	Documents  []DocumentOp          `json:"additionalDocuments,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (p EvaluationPatch) Empty() bool {
	return p.Status == nil && len(p.RoundNotes) == 0 &&
		len(p.Checklist) == 0 && len(p.Documents) == 0
}

// BuildPatch serializes a pending diff into the single request the store
// expects. Staged document additions lose their temporary client ID here; the
// store assigns the real one. Rounds with no new entries are omitted.
func BuildPatch(pending *PendingChange) EvaluationPatch {
	patch := EvaluationPatch{Status: pending.Status}

	for round, entries := range pending.Notes {
		if len(entries) == 0 {
			continue
		}
		if patch.RoundNotes == nil {
			patch.RoundNotes = make(map[Round][]NoteEntry)
		}
		cp := make([]NoteEntry, len(entries))
		copy(cp, entries)
		patch.RoundNotes[round] = cp
	}

	if len(pending.Checklist) > 0 {
		patch.Checklist = make([]ChecklistUpdate, len(pending.Checklist))
		copy(patch.Checklist, pending.Checklist)
	}

	for _, op := range pending.DocumentOps {
		if op.Remove {
			patch.Documents = append(patch.Documents, DocumentOp{ID: op.ID, Remove: true})
			continue
		}
		patch.Documents = append(patch.Documents, DocumentOp{
			Name: op.Name,
			URL:  op.URL,
			Type: op.Type,
		})
	}

	return patch
}
