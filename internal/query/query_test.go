package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

func rowsFixture() []Row {
	return []Row{
		{Application: models.Application{ID: "1", ProjectID: "p-1", Name: "B"}},
		{Application: models.Application{ID: "2", ProjectID: "p-2", Name: "A"}},
		{Application: models.Application{ID: "3", ProjectID: "p-3", Name: "A"}},
	}
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Application.ID
	}
	return out
}

func TestSorter_StableAscending(t *testing.T) {
	s := NewSorter()

	sorted := s.Sort(rowsFixture(), SortByName)

	assert.Equal(t, []string{"2", "3", "1"}, ids(sorted), "ties keep prior relative order")
	assert.Equal(t, Ascending, s.Direction())
}

func TestSorter_ToggleRoundTrip(t *testing.T) {
	s := NewSorter()
	rows := rowsFixture()

	asc := s.Sort(rows, SortByName)
	desc := s.Sort(rows, SortByName)
	assert.Equal(t, Descending, s.Direction())
	assert.Equal(t, []string{"1", "2", "3"}, ids(desc), "descending must not reorder equal names")

	again := s.Sort(rows, SortByName)
	assert.Equal(t, ids(asc), ids(again), "third click returns to ascending with original tie order")
}

func TestSorter_NewKeyResetsToAscending(t *testing.T) {
	s := NewSorter()
	rows := []Row{
		{Application: models.Application{ID: "1", Name: "A", FundingAsk: 900}},
		{Application: models.Application{ID: "2", Name: "B", FundingAsk: 100}},
	}

	s.Sort(rows, SortByName)
	s.Sort(rows, SortByName) // now descending on name

	byFunding := s.Sort(rows, SortByFundingAsk)
	assert.Equal(t, Ascending, s.Direction())
	assert.Equal(t, []string{"2", "1"}, ids(byFunding))
}

func TestSortBy_NumericNotLexicographic(t *testing.T) {
	rows := []Row{
		{Application: models.Application{ID: "1", FundingAsk: 1000000}},
		{Application: models.Application{ID: "2", FundingAsk: 200000}},
		{Application: models.Application{ID: "3", FundingAsk: 30000}},
	}

	sorted := SortBy(rows, SortByFundingAsk, Ascending)
	assert.Equal(t, []string{"3", "2", "1"}, ids(sorted))
}

func TestFilter_Conjunction(t *testing.T) {
	rows := []Row{
		{Application: models.Application{ID: "1", Sector: "SaaS", FundingAsk: 100000}},
		{Application: models.Application{ID: "2", Sector: "SaaS", FundingAsk: 600000}},
		{Application: models.Application{ID: "3", Sector: "Health", FundingAsk: 100000}},
	}
	min, max := int64(0), int64(500000)

	out := Filter(rows, Criteria{
		Sectors:    []string{"SaaS"},
		FundingMin: &min,
		FundingMax: &max,
	})

	require.Len(t, out, 1, "both criteria must hold simultaneously")
	assert.Equal(t, "1", out[0].Application.ID)
}

func TestFilter_EmptySetMeansNoRestriction(t *testing.T) {
	rows := rowsFixture()

	out := Filter(rows, Criteria{Sectors: []string{}})
	assert.Len(t, out, len(rows))

	out = Filter(rows, Criteria{})
	assert.Len(t, out, len(rows))
}

func TestFilter_FundingRangeInclusive(t *testing.T) {
	rows := []Row{
		{Application: models.Application{ID: "1", FundingAsk: 100000}},
		{Application: models.Application{ID: "2", FundingAsk: 500000}},
		{Application: models.Application{ID: "3", FundingAsk: 500001}},
	}
	min, max := int64(100000), int64(500000)

	out := Filter(rows, Criteria{FundingMin: &min, FundingMax: &max})
	assert.Equal(t, []string{"1", "2"}, ids(out))
}

func TestFilter_StatusResolvedViaJoin(t *testing.T) {
	selected := models.NewEvaluation("p-1")
	selected.Status = models.StatusSelected
	rows := []Row{
		{Application: models.Application{ID: "1", ProjectID: "p-1"}, Evaluation: &selected},
		{Application: models.Application{ID: "2", ProjectID: "p-2"}}, // no evaluation yet
	}

	out := Filter(rows, Criteria{Statuses: []models.Status{models.StatusNew}})
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].Application.ID, "missing evaluation defaults to NEW")
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	rows := []Row{
		{Application: models.Application{ID: "1", Name: "Acme Robotics", Sector: "Hardware"}},
		{Application: models.Application{ID: "2", Name: "Healthly", Sector: "HealthTech"}},
		{Application: models.Application{ID: "3", Name: "DataCo", Sector: "SaaS"}},
	}

	assert.Equal(t, []string{"1"}, ids(Search(rows, "ROBOT")))
	assert.Equal(t, []string{"2"}, ids(Search(rows, "healthtech")), "sector matches too")
	assert.Len(t, Search(rows, "  "), 3, "blank term matches everything")
	assert.Empty(t, Search(rows, "fintech"))
}

func TestJoin_KeepsOrderAndDefaults(t *testing.T) {
	apps := []models.Application{
		{ID: "1", ProjectID: "p-1"},
		{ID: "2", ProjectID: "p-2"},
	}
	ev := models.NewEvaluation("p-2")
	ev.Status = models.StatusRejected

	rows := Join(apps, map[string]models.Evaluation{"p-2": ev})

	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].Evaluation)
	assert.Equal(t, models.DefaultStatus, rows[0].Status())
	require.NotNil(t, rows[1].Evaluation)
	assert.Equal(t, models.StatusRejected, rows[1].Status())
}
