// Package reconcile owns the commit cycle: it serializes staged edits into a
// patch, submits it to the store, and merges the authoritative response back
// into the local record.
package reconcile

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/metrics"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/observability"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/pending"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/store"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/validation"
)

// Engine commits pending changes. At most one commit per project is in flight
// at a time; a second attempt while the first is on the wire is rejected
// immediately instead of queued.
type Engine struct {
	client    store.Client
	projects  *store.ProjectStore
	validator *validation.PatchValidator
	obs       *observability.Observability
	log       logger.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewEngine(client store.Client, projects *store.ProjectStore, validator *validation.PatchValidator, obs *observability.Observability, log logger.Logger) *Engine {
	return &Engine{
		client:    client,
		projects:  projects,
		validator: validator,
		obs:       obs,
		log:       log.WithFields(map[string]interface{}{"component": "reconcile"}),
		inFlight:  make(map[string]bool),
	}
}

// Commit serializes acc's staged diff, submits it, and on success rebases the
// accumulator onto the merged authoritative record. On failure the staged
// diff is left intact so the reviewer can retry; the optimistic view is not
// rolled back. A commit with nothing staged is a no-op.
func (e *Engine) Commit(ctx context.Context, acc *pending.Accumulator) (models.Evaluation, error) {
	projectID := acc.ProjectID()
	log := e.log.WithFields(map[string]interface{}{"projectId": projectID})

	if acc.Empty() {
		log.Debug("Nothing staged, skipping commit", nil)
		return acc.Evaluation(), nil
	}

	if err := e.begin(projectID); err != nil {
		metrics.CommitsFailed.WithLabelValues(string(apperrors.ErrCodeCommitInProgress)).Inc()
		return models.Evaluation{}, err
	}
	defer e.finish(projectID)

	diff := acc.Snapshot()
	if diff.ProjectID != projectID {
		return models.Evaluation{}, apperrors.NewProjectMismatchError(projectID, diff.ProjectID)
	}
	patch := models.BuildPatch(diff)
	if err := e.validator.Validate(patch); err != nil {
		metrics.CommitsFailed.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		return models.Evaluation{}, err
	}

	start := time.Now()
	response, err := e.client.CommitEvaluationPatch(ctx, projectID, patch)
	if err != nil {
		e.obs.RecordCommit(ctx, "failed")
		e.obs.RecordCommitDuration(ctx, time.Since(start), "failed")
		commitErr := apperrors.NewCommitFailedError(projectID, err)
		metrics.CommitsFailed.WithLabelValues(string(apperrors.CodeOf(commitErr))).Inc()
		log.WithError(err).Error("Commit failed, staged changes preserved", nil)
		return models.Evaluation{}, commitErr
	}
	e.obs.RecordCommit(ctx, "completed")
	e.obs.RecordCommitDuration(ctx, time.Since(start), "completed")
	metrics.CommitsCompleted.Inc()

	merged := e.merge(acc, response)
	acc.Rebase(merged)
	e.projects.UpsertEvaluation(merged)

	log.Info("Commit completed", map[string]interface{}{
		"status":      string(merged.Status),
		"lastUpdated": merged.LastUpdated,
	})
	return merged, nil
}

// begin marks projectID as having a commit on the wire. The check and the
// mark happen under one lock so two concurrent callers cannot both pass.
func (e *Engine) begin(projectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[projectID] {
		return apperrors.NewCommitInProgressError(projectID)
	}
	e.inFlight[projectID] = true
	return nil
}

func (e *Engine) finish(projectID string) {
	e.mu.Lock()
	delete(e.inFlight, projectID)
	e.mu.Unlock()
}

// merge folds the authoritative response into the local committed record.
// Status and notes come from the response outright. Checklist items keep the
// local seeded ordering but take the response's values per item ID. Documents
// come from the response wholesale: staged additions carried temporary client
// IDs, and the response holds the same documents under store-assigned IDs.
func (e *Engine) merge(acc *pending.Accumulator, response models.Evaluation) models.Evaluation {
	local := acc.Evaluation()

	merged := response.Clone()
	merged.ProjectID = acc.ProjectID()

	if len(local.Checklist) > 0 {
		byID := make(map[string]models.ChecklistItem, len(response.Checklist))
		for _, item := range response.Checklist {
			byID[item.ID] = item
		}
		checklist := make([]models.ChecklistItem, 0, len(local.Checklist))
		seen := make(map[string]bool, len(local.Checklist))
		for _, item := range local.Checklist {
			seen[item.ID] = true
			if remote, ok := byID[item.ID]; ok {
				checklist = append(checklist, remote)
			} else {
				checklist = append(checklist, item)
			}
		}
		for _, item := range response.Checklist {
			if !seen[item.ID] {
				checklist = append(checklist, item)
			}
		}
		merged.Checklist = checklist
	}

	return merged
}
