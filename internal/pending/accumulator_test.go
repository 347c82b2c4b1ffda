package pending

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

func newTestAccumulator(t *testing.T) *Accumulator {
	t.Helper()
	var seq int
	return NewWithClock(
		"p-1",
		models.NewEvaluation("p-1"),
		logger.NewTestLogger(t),
		func() time.Time { return time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC) },
		func() string { seq++; return fmt.Sprintf("temp-%d", seq) },
	)
}

func TestAppendNote_RejectsBlankText(t *testing.T) {
	acc := newTestAccumulator(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		err := acc.AppendNote(models.RoundFirst, text)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeEmptyNote, apperrors.CodeOf(err))
	}

	assert.True(t, acc.Empty(), "rejected notes must not stage anything")
	assert.Empty(t, acc.Evaluation().RoundNotes[models.RoundFirst])
}

func TestAppendNote_OrderPreserved(t *testing.T) {
	acc := newTestAccumulator(t)

	require.NoError(t, acc.AppendNote(models.RoundFirst, "Good team"))
	require.NoError(t, acc.AppendNote(models.RoundFirst, "Revenue is early"))

	view := acc.Evaluation()
	require.Len(t, view.RoundNotes[models.RoundFirst], 2)
	assert.Equal(t, "Good team", view.RoundNotes[models.RoundFirst][0].Text)
	assert.Equal(t, "Revenue is early", view.RoundNotes[models.RoundFirst][1].Text)

	diff := acc.Snapshot()
	require.Len(t, diff.Notes[models.RoundFirst], 2)
}

func TestAppendNote_UnknownRoundRejected(t *testing.T) {
	acc := newTestAccumulator(t)

	err := acc.AppendNote(models.Round("fourthRound"), "nope")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRound, apperrors.CodeOf(err))
}

func TestSetStatus_LastWriteWins(t *testing.T) {
	acc := newTestAccumulator(t)

	require.NoError(t, acc.SetStatus(models.StatusOnHold))
	require.NoError(t, acc.SetStatus(models.StatusRound1Cleared))

	diff := acc.Snapshot()
	require.NotNil(t, diff.Status)
	assert.Equal(t, models.StatusRound1Cleared, *diff.Status)
	assert.Equal(t, models.StatusRound1Cleared, acc.Evaluation().Status)
}

func TestSetStatus_InvalidRejected(t *testing.T) {
	acc := newTestAccumulator(t)

	err := acc.SetStatus(models.Status("SHORTLISTED"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidStatus, apperrors.CodeOf(err))
	assert.True(t, acc.Empty())
}

func TestUpdateChecklistItem_UnknownIDRejected(t *testing.T) {
	acc := newTestAccumulator(t)

	err := acc.UpdateChecklistItem("check-99", true, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnknownChecklistID, apperrors.CodeOf(err))
}

func TestUpdateChecklistItem_AppliedToView(t *testing.T) {
	acc := newTestAccumulator(t)

	notes := "validated with two pilots"
	require.NoError(t, acc.UpdateChecklistItem("check-3", true, &notes))

	view := acc.Evaluation()
	assert.True(t, view.Checklist[2].Checked)
	assert.Equal(t, notes, view.Checklist[2].Notes)

	// Untouched items keep their state.
	assert.False(t, view.Checklist[0].Checked)
}

func TestAddDocument_RejectsEmptyFields(t *testing.T) {
	acc := newTestAccumulator(t)

	_, err := acc.AddDocument("", "http://x", "deck")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeEmptyDocumentField, apperrors.CodeOf(err))

	_, err = acc.AddDocument("Deck", "  ", "deck")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeEmptyDocumentField, apperrors.CodeOf(err))

	assert.True(t, acc.Empty())
}

func TestRemoveDocument_TombstoneCancelsStagedAdd(t *testing.T) {
	acc := newTestAccumulator(t)

	doc, err := acc.AddDocument("Deck", "http://x", "deck")
	require.NoError(t, err)
	require.NoError(t, acc.RemoveDocument(doc.ID))

	diff := acc.Snapshot()
	assert.Empty(t, diff.DocumentOps, "add then remove before commit must be a net no-op")
	assert.True(t, acc.Empty())
	assert.Empty(t, acc.Evaluation().Documents)
}

func TestRemoveDocument_CommittedDocGetsTombstone(t *testing.T) {
	eval := models.NewEvaluation("p-1")
	eval.Documents = []models.Document{{ID: "doc-1", Name: "Deck", URL: "http://x"}}
	acc := New("p-1", eval, logger.NewNoOpLogger())

	require.NoError(t, acc.RemoveDocument("doc-1"))

	diff := acc.Snapshot()
	require.Len(t, diff.DocumentOps, 1)
	assert.Equal(t, "doc-1", diff.DocumentOps[0].ID)
	assert.True(t, diff.DocumentOps[0].Remove)
	assert.Empty(t, acc.Evaluation().Documents)
}

func TestReset_RevertsViewToBaseline(t *testing.T) {
	acc := newTestAccumulator(t)

	require.NoError(t, acc.SetStatus(models.StatusRejected))
	require.NoError(t, acc.AppendNote(models.RoundGeneral, "pass"))
	_, err := acc.AddDocument("Deck", "http://x", "deck")
	require.NoError(t, err)

	acc.Reset()

	assert.True(t, acc.Empty())
	view := acc.Evaluation()
	assert.Equal(t, models.DefaultStatus, view.Status)
	assert.Empty(t, view.RoundNotes[models.RoundGeneral])
	assert.Empty(t, view.Documents)
}

func TestRebase_StartsCleanFromNewBaseline(t *testing.T) {
	acc := newTestAccumulator(t)
	require.NoError(t, acc.SetStatus(models.StatusSelected))

	merged := models.NewEvaluation("p-1")
	merged.Status = models.StatusSelected
	acc.Rebase(merged)

	assert.True(t, acc.Empty())
	assert.Equal(t, models.StatusSelected, acc.Evaluation().Status)

	// Further edits diff against the new baseline only.
	require.NoError(t, acc.AppendNote(models.RoundSecond, "next round"))
	diff := acc.Snapshot()
	assert.Nil(t, diff.Status)
	assert.Len(t, diff.Notes[models.RoundSecond], 1)
}
