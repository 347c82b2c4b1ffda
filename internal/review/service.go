// Package review is the console's session facade. It owns the loaded
// collections, the list view mode (structured filters or free-text search),
// and the accumulator for the currently open project, and it delegates
// commits to the reconciliation engine.
package review

import (
	"context"
	"sync"

	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/pending"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/query"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/reconcile"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/store"
)

// viewMode selects which pass shapes the list. The two passes do not
// compose: activating one discards the other's effect and rebuilds the view
// from the full collection.
type viewMode int

const (
	modeAll viewMode = iota
	modeFilter
	modeSearch
)

// Service coordinates one reviewer session over the loaded pipeline.
type Service struct {
	client   store.Client
	projects *store.ProjectStore
	engine   *reconcile.Engine
	cache    *store.SnapshotCache
	log      logger.Logger

	mu       sync.Mutex
	sorter   *query.Sorter
	mode     viewMode
	criteria query.Criteria
	search   string
	current  *pending.Accumulator
}

// NewService builds a session facade. cache may be nil when the snapshot
// cache is disabled.
func NewService(client store.Client, projects *store.ProjectStore, engine *reconcile.Engine, cache *store.SnapshotCache, log logger.Logger) *Service {
	return &Service{
		client:   client,
		projects: projects,
		engine:   engine,
		cache:    cache,
		log:      log.WithFields(map[string]interface{}{"component": "review"}),
		sorter:   query.NewSorter(),
	}
}

// Refresh loads both collections from the store into the local snapshot.
// When the store is unreachable and a snapshot cache is configured, the last
// cached snapshot is served instead; a successful fetch refreshes the cache.
func (s *Service) Refresh(ctx context.Context) error {
	apps, appsErr := s.client.FetchApplications(ctx)
	evals, evalsErr := s.client.FetchEvaluations(ctx)

	if appsErr != nil || evalsErr != nil {
		err := appsErr
		if err == nil {
			err = evalsErr
		}
		if s.cache == nil {
			return err
		}
		s.log.WithError(err).Warn("Store fetch failed, falling back to cached snapshot", nil)
		return s.refreshFromCache(ctx, err)
	}

	s.projects.LoadApplications(apps)
	s.projects.LoadEvaluations(evals)

	if s.cache != nil {
		if err := s.cache.SaveApplications(ctx, apps); err != nil {
			s.log.WithError(err).Warn("Failed to cache applications snapshot", nil)
		}
		if err := s.cache.SaveEvaluations(ctx, evals); err != nil {
			s.log.WithError(err).Warn("Failed to cache evaluations snapshot", nil)
		}
	}

	s.log.Info("Pipeline refreshed", map[string]interface{}{
		"applications": len(apps),
		"evaluations":  len(evals),
	})
	return nil
}

func (s *Service) refreshFromCache(ctx context.Context, fetchErr error) error {
	apps, appsOK, err := s.cache.Applications(ctx)
	if err != nil {
		return fetchErr
	}
	evals, evalsOK, err := s.cache.Evaluations(ctx)
	if err != nil {
		return fetchErr
	}
	if !appsOK || !evalsOK {
		return fetchErr
	}

	s.projects.LoadApplications(apps)
	s.projects.LoadEvaluations(evals)
	s.log.Info("Pipeline restored from cached snapshot", map[string]interface{}{
		"applications": len(apps),
		"evaluations":  len(evals),
	})
	return nil
}

// Rows returns the current list view: the joined collections shaped by the
// active view mode, in the active sort order when one is set.
func (s *Service) Rows() []query.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := query.Join(s.projects.Applications(), s.projects.Evaluations())
	switch s.mode {
	case modeFilter:
		rows = query.Filter(rows, s.criteria)
	case modeSearch:
		rows = query.Search(rows, s.search)
	}
	if key := s.sorter.Key(); key != "" {
		rows = query.SortBy(rows, key, s.sorter.Direction())
	}
	return rows
}

// SortRows re-sorts the view by key, toggling direction when key is already
// active, and returns the reshaped view.
func (s *Service) SortRows(key query.SortKey) []query.Row {
	s.mu.Lock()
	s.sorter.Toggle(key)
	s.mu.Unlock()
	return s.Rows()
}

// SetCriteria switches the view to structured-filter mode, discarding any
// active search.
func (s *Service) SetCriteria(criteria query.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = criteria
	s.search = ""
	if criteria.Empty() {
		s.mode = modeAll
	} else {
		s.mode = modeFilter
	}
}

// SetSearch switches the view to free-text search mode, discarding any
// active structured filters.
func (s *Service) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
	s.criteria = query.Criteria{}
	if term == "" {
		s.mode = modeAll
	} else {
		s.mode = modeSearch
	}
}

// Open selects a project for review. Any edits staged for a previously open
// project are discarded. A project with no evaluation record yet starts from
// a fresh default evaluation.
func (s *Service) Open(projectID string) (models.Application, models.Evaluation, error) {
	app, ok := s.projects.Application(projectID)
	if !ok {
		return models.Application{}, models.Evaluation{}, apperrors.NewProjectNotFoundError(projectID)
	}

	eval, ok := s.projects.Evaluation(projectID)
	if !ok {
		eval = models.NewEvaluation(projectID)
	}

	s.mu.Lock()
	s.current = pending.New(projectID, eval, s.log)
	s.mu.Unlock()
	return app, eval, nil
}

// Current returns the optimistic evaluation view for the open project,
// committed state plus staged edits.
func (s *Service) Current() (models.Evaluation, error) {
	acc, err := s.accumulator()
	if err != nil {
		return models.Evaluation{}, err
	}
	return acc.Evaluation(), nil
}

// HasPending reports whether the open project has uncommitted edits.
func (s *Service) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && !s.current.Empty()
}

func (s *Service) SetStatus(status models.Status) error {
	acc, err := s.accumulator()
	if err != nil {
		return err
	}
	return acc.SetStatus(status)
}

func (s *Service) AppendNote(round models.Round, text string) error {
	acc, err := s.accumulator()
	if err != nil {
		return err
	}
	return acc.AppendNote(round, text)
}

func (s *Service) UpdateChecklistItem(id string, checked bool, notes *string) error {
	acc, err := s.accumulator()
	if err != nil {
		return err
	}
	return acc.UpdateChecklistItem(id, checked, notes)
}

func (s *Service) AddDocument(name, url, docType string) (models.Document, error) {
	acc, err := s.accumulator()
	if err != nil {
		return models.Document{}, err
	}
	return acc.AddDocument(name, url, docType)
}

func (s *Service) RemoveDocument(id string) error {
	acc, err := s.accumulator()
	if err != nil {
		return err
	}
	return acc.RemoveDocument(id)
}

// Discard drops all staged edits for the open project.
func (s *Service) Discard() error {
	acc, err := s.accumulator()
	if err != nil {
		return err
	}
	acc.Reset()
	return nil
}

// Commit submits the open project's staged edits. On success the returned
// evaluation is the merged authoritative record; on failure staged edits
// remain intact for retry.
func (s *Service) Commit(ctx context.Context) (models.Evaluation, error) {
	acc, err := s.accumulator()
	if err != nil {
		return models.Evaluation{}, err
	}
	return s.engine.Commit(ctx, acc)
}

func (s *Service) accumulator() (*pending.Accumulator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, apperrors.NewProjectNotFoundError("")
	}
	return s.current, nil
}
