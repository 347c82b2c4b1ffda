// Package normalize converts heterogeneous remote payloads into the
// canonical in-memory shape used by the rest of the console.
package normalize

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/metrics"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

// RawEvaluation mirrors an evaluation payload as the store returns it, before
// normalization. RoundNotes values are kept raw because legacy records carry
// a bare string where current ones carry an entry sequence.
type RawEvaluation struct {
	ProjectID   string                     `json:"projectId"`
	Status      string                     `json:"projectStatus"`
	RoundNotes  map[string]json.RawMessage `json:"roundNotes"`
	Checklist   []models.ChecklistItem     `json:"evaluationChecklist"`
	Documents   []models.Document          `json:"additionalDocuments"`
	LastUpdated time.Time                  `json:"lastUpdated"`
}

// Normalizer converts raw store payloads into canonical records.
type Normalizer struct {
	log logger.Logger
	now func() time.Time
}

func New(log logger.Logger) *Normalizer {
	return &Normalizer{log: log, now: time.Now}
}

// NewWithClock is used by tests that need deterministic fallback timestamps.
func NewWithClock(log logger.Logger, now func() time.Time) *Normalizer {
	return &Normalizer{log: log, now: now}
}

// RoundNotes returns the four-key mapping with ordered sequences, defaulting
// missing rounds to empty sequences. A bare string is wrapped as a single
// entry timestamped at normalization time; the original submission time is
// unrecoverable from the legacy shape, so this is a logged, lossy fallback.
// Normalizing an already-canonical value returns it unchanged.
func (n *Normalizer) RoundNotes(raw map[string]json.RawMessage) models.RoundNotes {
	out := make(models.RoundNotes, len(models.Rounds))
	for _, round := range models.Rounds {
		out[round] = n.roundEntries(round, raw[string(round)])
	}
	return out
}

func (n *Normalizer) roundEntries(round models.Round, raw json.RawMessage) []models.NoteEntry {
	if len(raw) == 0 || string(raw) == "null" {
		return []models.NoteEntry{}
	}

	var entries []models.NoteEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		if entries == nil {
			entries = []models.NoteEntry{}
		}
		return entries
	}

	// Legacy single-note format: the whole round value is one string.
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if strings.TrimSpace(legacy) == "" {
			return []models.NoteEntry{}
		}
		metrics.NormalizationFallbacks.Inc()
		n.log.Warn("legacy string-shaped round notes normalized", map[string]interface{}{
			"round":  string(round),
			"reason": "NORMALIZATION_FALLBACK",
		})
		return []models.NoteEntry{{Text: legacy, Timestamp: n.now().UTC()}}
	}

	n.log.Warn("unrecognized round notes shape dropped", map[string]interface{}{
		"round": string(round),
	})
	return []models.NoteEntry{}
}

// Evaluation converts a raw payload into a canonical record: valid status or
// the default, four-key round notes, seeded checklist when absent, non-nil
// document set.
func (n *Normalizer) Evaluation(raw RawEvaluation) models.Evaluation {
	ev := models.Evaluation{
		ProjectID:   raw.ProjectID,
		Status:      models.Status(raw.Status),
		RoundNotes:  n.RoundNotes(raw.RoundNotes),
		Checklist:   raw.Checklist,
		Documents:   raw.Documents,
		LastUpdated: raw.LastUpdated,
	}
	if !ev.Status.IsValid() {
		ev.Status = models.DefaultStatus
	}
	if len(ev.Checklist) == 0 {
		ev.Checklist = models.SeedChecklist()
	}
	if ev.Documents == nil {
		ev.Documents = []models.Document{}
	}
	return ev
}
