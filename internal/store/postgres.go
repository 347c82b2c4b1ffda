// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/database"
	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/metrics"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/normalize"
)

const (
	selectApplicationsQuery = `SELECT data FROM applications ORDER BY submitted_at`
	selectEvaluationsQuery  = `SELECT data FROM evaluations`
	selectEvaluationQuery   = `SELECT data FROM evaluations WHERE project_id = $1 FOR UPDATE`
	upsertEvaluationQuery   = `INSERT INTO evaluations (project_id, data) VALUES ($1, $2)
		ON CONFLICT (project_id) DO UPDATE SET data = EXCLUDED.data`
)

// PostgresClient implements the store contract against a colocated database.
// Rows carry the record as a JSON document; patch application happens here,
// mirroring the remote store's server-side semantics.
type PostgresClient struct {
	pg    *database.PostgresClient
	norm  *normalize.Normalizer
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

func NewPostgresClient(pg *database.PostgresClient, norm *normalize.Normalizer, log logger.Logger) *PostgresClient {
	return &PostgresClient{
		pg:    pg,
		norm:  norm,
		log:   log.WithFields(map[string]interface{}{"component": "store-postgres"}),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (c *PostgresClient) FetchApplications(ctx context.Context) ([]models.Application, error) {
	start := time.Now()
	rows, err := c.pg.Query(ctx, selectApplicationsQuery)
	metrics.StoreRequestDuration.WithLabelValues("fetch_applications", "postgres").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, apperrors.NewStoreUnavailableError(err)
		}
		var app models.Application
		if err := json.Unmarshal(data, &app); err != nil {
			return nil, apperrors.NewStoreDecodeFailedError(err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	return apps, nil
}

func (c *PostgresClient) FetchEvaluations(ctx context.Context) ([]models.Evaluation, error) {
	start := time.Now()
	rows, err := c.pg.Query(ctx, selectEvaluationsQuery)
	metrics.StoreRequestDuration.WithLabelValues("fetch_evaluations", "postgres").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	var evals []models.Evaluation
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, apperrors.NewStoreUnavailableError(err)
		}
		var raw normalize.RawEvaluation
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, apperrors.NewStoreDecodeFailedError(err)
		}
		evals = append(evals, c.norm.Evaluation(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	return evals, nil
}

func (c *PostgresClient) CommitEvaluationPatch(ctx context.Context, projectID string, patch models.EvaluationPatch) (models.Evaluation, error) {
	start := time.Now()
	defer func() {
		metrics.StoreRequestDuration.WithLabelValues("commit_patch", "postgres").Observe(time.Since(start).Seconds())
	}()

	tx, err := c.pg.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(err)
	}
	defer tx.Rollback()

	current := models.NewEvaluation(projectID)
	var data []byte
	err = tx.QueryRowContext(ctx, selectEvaluationQuery, projectID).Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		// Evaluation records are created lazily on first commit.
	case err != nil:
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(err)
	default:
		var raw normalize.RawEvaluation
		if err := json.Unmarshal(data, &raw); err != nil {
			return models.Evaluation{}, apperrors.NewStoreDecodeFailedError(err)
		}
		current = c.norm.Evaluation(raw)
	}

	updated := c.applyPatch(current, patch)

	payload, err := json.Marshal(updated)
	if err != nil {
		return models.Evaluation{}, apperrors.NewStoreDecodeFailedError(err)
	}
	if _, err := tx.ExecContext(ctx, upsertEvaluationQuery, projectID, payload); err != nil {
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(err)
	}
	if err := tx.Commit(); err != nil {
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(err)
	}
	return updated, nil
}

// applyPatch is the authoritative server-side semantics: status replaced,
// note entries appended in order, checklist unioned per item ID, tombstoned
// documents removed, additions stored under freshly assigned IDs.
func (c *PostgresClient) applyPatch(current models.Evaluation, patch models.EvaluationPatch) models.Evaluation {
	updated := current.Clone()
	updated.ProjectID = current.ProjectID

	if patch.Status != nil {
		updated.Status = *patch.Status
	}

	for round, entries := range patch.RoundNotes {
		updated.RoundNotes[round] = append(updated.RoundNotes[round], entries...)
	}

	for _, change := range patch.Checklist {
		for i := range updated.Checklist {
			if updated.Checklist[i].ID != change.ID {
				continue
			}
			updated.Checklist[i].Checked = change.Checked
			if change.Notes != nil {
				updated.Checklist[i].Notes = *change.Notes
			}
			break
		}
	}

	removed := make(map[string]bool)
	for _, op := range patch.Documents {
		if op.Remove {
			removed[op.ID] = true
		}
	}
	docs := make([]models.Document, 0, len(updated.Documents))
	for _, doc := range updated.Documents {
		if !removed[doc.ID] {
			docs = append(docs, doc)
		}
	}
	for _, op := range patch.Documents {
		if op.Remove {
			continue
		}
		docs = append(docs, models.Document{
			ID:   c.newID(),
			Name: op.Name,
			URL:  op.URL,
			Type: op.Type,
		})
	}
	updated.Documents = docs

	updated.LastUpdated = c.now().UTC()
	return updated
}
