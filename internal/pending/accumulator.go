// Package pending records uncommitted reviewer edits for the currently open
// project as a structured diff. It never talks to the network; the
// reconciliation engine serializes and submits the diff.
package pending

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

// Accumulator stages edits for exactly one project. Every successful staging
// operation also applies the change optimistically to the in-memory
// evaluation copy, so the view reflects edits before the network round-trip.
type Accumulator struct {
	projectID string
	base      models.Evaluation
	view      models.Evaluation
	diff      *models.PendingChange

	// stagedDocs tracks temporary IDs of additions not yet committed, so a
	// removal of a staged document cancels the addition instead of emitting
	// a tombstone.
	stagedDocs map[string]bool

	log   logger.Logger
	now   func() time.Time
	newID func() string
}

// New scopes an accumulator to projectID with eval as the committed baseline.
func New(projectID string, eval models.Evaluation, log logger.Logger) *Accumulator {
	return &Accumulator{
		projectID:  projectID,
		base:       eval.Clone(),
		view:       eval.Clone(),
		diff:       models.NewPendingChange(projectID),
		stagedDocs: make(map[string]bool),
		log:        log.WithFields(map[string]interface{}{"projectId": projectID}),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// NewWithClock is used by tests that need deterministic timestamps and IDs.
func NewWithClock(projectID string, eval models.Evaluation, log logger.Logger, now func() time.Time, newID func() string) *Accumulator {
	a := New(projectID, eval, log)
	a.now = now
	a.newID = newID
	return a
}

// ProjectID returns the project this accumulator is scoped to.
func (a *Accumulator) ProjectID() string {
	return a.projectID
}

// Empty reports whether nothing is staged.
func (a *Accumulator) Empty() bool {
	return a.diff.Empty()
}

// Evaluation returns a copy of the optimistic view, the committed record plus
// every staged edit.
func (a *Accumulator) Evaluation() models.Evaluation {
	return a.view.Clone()
}

// Snapshot returns a deep copy of the staged diff for patch building.
func (a *Accumulator) Snapshot() *models.PendingChange {
	return a.diff.Clone()
}

// SetStatus stages a status change. Repeated calls overwrite the staged
// value; the last call wins.
func (a *Accumulator) SetStatus(status models.Status) error {
	if !status.IsValid() {
		return apperrors.NewInvalidStatusError(string(status))
	}
	s := status
	a.diff.Status = &s
	a.view.Status = status
	return nil
}

// AppendNote stages a new note entry for the given round. Empty or
// whitespace-only text is rejected without mutating state.
func (a *Accumulator) AppendNote(round models.Round, text string) error {
	if !round.IsValid() {
		return apperrors.NewInvalidRoundError(string(round))
	}
	if strings.TrimSpace(text) == "" {
		return apperrors.NewEmptyNoteError(string(round))
	}
	entry := models.NoteEntry{Text: text, Timestamp: a.now().UTC()}
	a.diff.Notes[round] = append(a.diff.Notes[round], entry)
	a.view.RoundNotes[round] = append(a.view.RoundNotes[round], entry)
	return nil
}

// UpdateChecklistItem stages an update for one seeded checklist item. Updates
// for the same item accumulate in call order; the merge applies them in order
// so later ones win per field.
func (a *Accumulator) UpdateChecklistItem(id string, checked bool, notes *string) error {
	idx := a.checklistIndex(id)
	if idx < 0 {
		return apperrors.NewUnknownChecklistIDError(id)
	}
	update := models.ChecklistUpdate{ID: id, Checked: checked}
	if notes != nil {
		n := *notes
		update.Notes = &n
	}
	a.diff.Checklist = append(a.diff.Checklist, update)

	a.view.Checklist[idx].Checked = checked
	if notes != nil {
		a.view.Checklist[idx].Notes = *notes
	}
	return nil
}

// AddDocument stages a document addition under a temporary client-side ID.
// The remote store assigns the real ID at commit time.
func (a *Accumulator) AddDocument(name, url, docType string) (models.Document, error) {
	if strings.TrimSpace(name) == "" {
		return models.Document{}, apperrors.NewEmptyDocumentFieldError("name")
	}
	if strings.TrimSpace(url) == "" {
		return models.Document{}, apperrors.NewEmptyDocumentFieldError("url")
	}

	tempID := a.newID()
	a.stagedDocs[tempID] = true
	a.diff.DocumentOps = append(a.diff.DocumentOps, models.DocumentOp{
		ID:   tempID,
		Name: name,
		URL:  url,
		Type: docType,
	})
	doc := models.Document{ID: tempID, Name: name, URL: url, Type: docType}
	a.view.Documents = append(a.view.Documents, doc)
	return doc, nil
}

// RemoveDocument stages a tombstone for id. If id names a staged addition
// that was never committed, the addition is cancelled instead, leaving no
// trace in the diff.
func (a *Accumulator) RemoveDocument(id string) error {
	if a.stagedDocs[id] {
		delete(a.stagedDocs, id)
		ops := a.diff.DocumentOps[:0]
		for _, op := range a.diff.DocumentOps {
			if op.ID != id {
				ops = append(ops, op)
			}
		}
		a.diff.DocumentOps = ops
	} else {
		a.diff.DocumentOps = append(a.diff.DocumentOps, models.DocumentOp{ID: id, Remove: true})
	}

	docs := a.view.Documents[:0]
	for _, doc := range a.view.Documents {
		if doc.ID != id {
			docs = append(docs, doc)
		}
	}
	a.view.Documents = docs
	return nil
}

// Reset clears all staged changes and reverts the optimistic view to the
// committed baseline. Called on project switch or after a successful commit.
func (a *Accumulator) Reset() {
	a.diff = models.NewPendingChange(a.projectID)
	a.view = a.base.Clone()
	a.stagedDocs = make(map[string]bool)
}

// Rebase replaces the committed baseline (and the optimistic view) with the
// merged authoritative record after a successful commit.
func (a *Accumulator) Rebase(eval models.Evaluation) {
	a.base = eval.Clone()
	a.view = eval.Clone()
	a.diff = models.NewPendingChange(a.projectID)
	a.stagedDocs = make(map[string]bool)
}

func (a *Accumulator) checklistIndex(id string) int {
	for i, item := range a.view.Checklist {
		if item.ID == id {
			return i
		}
	}
	return -1
}
