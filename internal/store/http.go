// internal/store/http.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/httpx"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/metrics"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/normalize"
)

// HTTPClient talks to the remote store over its REST contract:
// GET /form, GET /evaluation, POST /evaluation/{projectId}.
type HTTPClient struct {
	baseURL    string
	httpClient *httpx.Client
	norm       *normalize.Normalizer
	log        logger.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, norm *normalize.Normalizer, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpx.NewClient(timeout),
		norm:       norm,
		log:        log.WithFields(map[string]interface{}{"component": "store-http"}),
	}
}

func (c *HTTPClient) FetchApplications(ctx context.Context) ([]models.Application, error) {
	body, err := c.get(ctx, "/form", "fetch_applications")
	if err != nil {
		return nil, err
	}

	var apps []models.Application
	if err := json.Unmarshal(body, &apps); err != nil {
		return nil, apperrors.NewStoreDecodeFailedError(err)
	}
	c.log.Info("applications fetched", map[string]interface{}{"count": len(apps)})
	return apps, nil
}

func (c *HTTPClient) FetchEvaluations(ctx context.Context) ([]models.Evaluation, error) {
	body, err := c.get(ctx, "/evaluation", "fetch_evaluations")
	if err != nil {
		return nil, err
	}

	var raw []normalize.RawEvaluation
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.NewStoreDecodeFailedError(err)
	}

	evals := make([]models.Evaluation, 0, len(raw))
	for _, r := range raw {
		evals = append(evals, c.norm.Evaluation(r))
	}
	c.log.Info("evaluations fetched", map[string]interface{}{"count": len(evals)})
	return evals, nil
}

func (c *HTTPClient) CommitEvaluationPatch(ctx context.Context, projectID string, patch models.EvaluationPatch) (models.Evaluation, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return models.Evaluation{}, apperrors.NewStoreDecodeFailedError(err)
	}

	start := time.Now()
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/evaluation/"+projectID, bytes.NewReader(payload))
	if err != nil {
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.DoWithContext(ctx, req)
	metrics.StoreRequestDuration.WithLabelValues("commit_patch", "http").Observe(time.Since(start).Seconds())
	if err != nil {
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.Evaluation{}, apperrors.NewProjectNotFoundError(projectID)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return models.Evaluation{}, apperrors.NewStoreUnavailableError(
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body))
	}

	var raw normalize.RawEvaluation
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Evaluation{}, apperrors.NewStoreDecodeFailedError(err)
	}

	ev := c.norm.Evaluation(raw)
	if ev.ProjectID == "" {
		ev.ProjectID = projectID
	}
	return ev, nil
}

func (c *HTTPClient) get(ctx context.Context, path, operation string) ([]byte, error) {
	start := time.Now()
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	resp, err := c.httpClient.DoWithContext(ctx, req)
	metrics.StoreRequestDuration.WithLabelValues(operation, "http").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewStoreUnavailableError(
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body))
	}
	return body, nil
}
