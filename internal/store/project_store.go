// internal/store/project_store.go
package store

import (
	"sync"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

// EvaluationEvent notifies a subscriber that a project's evaluation changed.
type EvaluationEvent struct {
	ProjectID  string
	Evaluation models.Evaluation
}

// ProjectStore is the projectId-keyed local store behind the console view.
// It replaces position-indexed global collections: lookups are by key,
// mutation goes through Upsert, and views can subscribe to changes.
type ProjectStore struct {
	mu    sync.RWMutex
	order []string
	apps  map[string]models.Application
	evals map[string]models.Evaluation
	subs  map[chan EvaluationEvent]struct{}
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		apps:  make(map[string]models.Application),
		evals: make(map[string]models.Evaluation),
		subs:  make(map[chan EvaluationEvent]struct{}),
	}
}

// LoadApplications replaces the application collection, preserving the
// order the store returned it in.
func (s *ProjectStore) LoadApplications(apps []models.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = make([]string, 0, len(apps))
	s.apps = make(map[string]models.Application, len(apps))
	for _, app := range apps {
		if _, dup := s.apps[app.ProjectID]; dup {
			continue
		}
		s.order = append(s.order, app.ProjectID)
		s.apps[app.ProjectID] = app
	}
}

// LoadEvaluations replaces the evaluation collection.
func (s *ProjectStore) LoadEvaluations(evals []models.Evaluation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evals = make(map[string]models.Evaluation, len(evals))
	for _, ev := range evals {
		s.evals[ev.ProjectID] = ev.Clone()
	}
}

// Application looks up one submission by project key.
func (s *ProjectStore) Application(projectID string) (models.Application, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[projectID]
	return app, ok
}

// Evaluation looks up one review record by project key. A missing record is
// not an error; the caller renders defaults.
func (s *ProjectStore) Evaluation(projectID string) (models.Evaluation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.evals[projectID]
	if !ok {
		return models.Evaluation{}, false
	}
	return ev.Clone(), true
}

// UpsertEvaluation stores the record and notifies subscribers. Fanout never
// blocks; a subscriber with a full buffer misses the event.
func (s *ProjectStore) UpsertEvaluation(ev models.Evaluation) {
	s.mu.Lock()
	s.evals[ev.ProjectID] = ev.Clone()
	subs := make([]chan EvaluationEvent, 0, len(s.subs))
	for ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	event := EvaluationEvent{ProjectID: ev.ProjectID, Evaluation: ev.Clone()}
	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Applications returns a snapshot of the submission collection in load order.
func (s *ProjectStore) Applications() []models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Application, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.apps[id])
	}
	return out
}

// Evaluations returns a snapshot of the evaluation collection keyed by
// project.
func (s *ProjectStore) Evaluations() map[string]models.Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Evaluation, len(s.evals))
	for id, ev := range s.evals {
		out[id] = ev.Clone()
	}
	return out
}

// Subscribe registers for evaluation change events. The returned cancel
// function must be called to release the subscription.
func (s *ProjectStore) Subscribe() (<-chan EvaluationEvent, func()) {
	ch := make(chan EvaluationEvent, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}
