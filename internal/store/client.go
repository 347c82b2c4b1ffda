// Package store holds the remote store clients, the snapshot cache, and the
// projectId-keyed local store the console renders from.
package store

import (
	"context"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

// Client is the only component that performs network I/O. Implementations
// must return normalized records.
type Client interface {
	// FetchApplications returns the full submission collection.
	FetchApplications(ctx context.Context) ([]models.Application, error)
	// FetchEvaluations returns every evaluation record that exists; an
	// application without one is rendered with defaults by the caller.
	FetchEvaluations(ctx context.Context) ([]models.Evaluation, error)
	// CommitEvaluationPatch submits a partial update for one evaluation and
	// returns the full updated record (authoritative).
	CommitEvaluationPatch(ctx context.Context, projectID string, patch models.EvaluationPatch) (models.Evaluation, error)
}
