package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestRoundNotes_MissingRoundsDefaultEmpty(t *testing.T) {
	n := New(logger.NewNoOpLogger())

	out := n.RoundNotes(nil)

	require.Len(t, out, len(models.Rounds))
	for _, round := range models.Rounds {
		entries, ok := out[round]
		require.True(t, ok, "round %s must be present", round)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	}
}

func TestRoundNotes_LegacyStringWrapped(t *testing.T) {
	n := NewWithClock(logger.NewTestLogger(t), fixedClock)

	raw := map[string]json.RawMessage{
		"firstRound": json.RawMessage(`"Strong founding team"`),
	}
	out := n.RoundNotes(raw)

	require.Len(t, out[models.RoundFirst], 1)
	assert.Equal(t, "Strong founding team", out[models.RoundFirst][0].Text)
	assert.Equal(t, fixedClock(), out[models.RoundFirst][0].Timestamp)
	assert.Empty(t, out[models.RoundSecond])
}

func TestRoundNotes_Idempotent(t *testing.T) {
	n := NewWithClock(logger.NewNoOpLogger(), fixedClock)

	raw := map[string]json.RawMessage{
		"firstRound": json.RawMessage(`"legacy note"`),
	}
	first := n.RoundNotes(raw)

	// Re-encode the canonical output and normalize again; a second pass must
	// not re-wrap or re-timestamp anything.
	reencoded := make(map[string]json.RawMessage, len(first))
	for round, entries := range first {
		data, err := json.Marshal(entries)
		require.NoError(t, err)
		reencoded[string(round)] = data
	}
	second := n.RoundNotes(reencoded)

	assert.Equal(t, first, second)
}

func TestRoundNotes_UnrecognizedShapeDropped(t *testing.T) {
	n := New(logger.NewTestLogger(t))

	raw := map[string]json.RawMessage{
		"generalNotes": json.RawMessage(`42`),
	}
	out := n.RoundNotes(raw)

	assert.Empty(t, out[models.RoundGeneral])
}

func TestEvaluation_DefaultsApplied(t *testing.T) {
	n := New(logger.NewNoOpLogger())

	tests := []struct {
		name       string
		raw        RawEvaluation
		wantStatus models.Status
	}{
		{
			name:       "unknown status falls back to default",
			raw:        RawEvaluation{ProjectID: "p-1", Status: "ARCHIVED"},
			wantStatus: models.DefaultStatus,
		},
		{
			name:       "empty status falls back to default",
			raw:        RawEvaluation{ProjectID: "p-2"},
			wantStatus: models.DefaultStatus,
		},
		{
			name:       "valid status preserved",
			raw:        RawEvaluation{ProjectID: "p-3", Status: "SELECTED"},
			wantStatus: models.StatusSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := n.Evaluation(tt.raw)
			assert.Equal(t, tt.wantStatus, ev.Status)
			assert.Equal(t, models.SeedChecklist(), ev.Checklist)
			assert.NotNil(t, ev.Documents)
			assert.Len(t, ev.RoundNotes, len(models.Rounds))
		})
	}
}

func TestEvaluation_ExistingChecklistKept(t *testing.T) {
	n := New(logger.NewNoOpLogger())

	raw := RawEvaluation{
		ProjectID: "p-9",
		Status:    "ROUND-1",
		Checklist: []models.ChecklistItem{
			{ID: "check-1", Label: "Founder is full-time", Checked: true},
		},
	}
	ev := n.Evaluation(raw)

	require.Len(t, ev.Checklist, 1)
	assert.True(t, ev.Checklist[0].Checked)
}
