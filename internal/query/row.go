// Package query provides the read side of the console: the joined
// Application+Evaluation view and the sort/filter/search operations over it.
// Every operation works on a snapshot passed in and returns a new slice; the
// package never mutates live store state.
package query

import (
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

// Row is one line of the pipeline view: an application joined to its
// evaluation by projectId. Evaluation is nil when no evaluation record exists
// yet; Status resolves that case to the default.
type Row struct {
	Application models.Application
	Evaluation  *models.Evaluation
}

// Status returns the review status for the row, defaulting when no
// evaluation record exists for the project.
func (r Row) Status() models.Status {
	if r.Evaluation == nil {
		return models.DefaultStatus
	}
	return r.Evaluation.Status
}

// Join pairs each application with its evaluation record. Applications keep
// their input order; an application without an evaluation still produces a
// row.
func Join(apps []models.Application, evals map[string]models.Evaluation) []Row {
	rows := make([]Row, 0, len(apps))
	for _, app := range apps {
		row := Row{Application: app}
		if ev, ok := evals[app.ProjectID]; ok {
			cp := ev.Clone()
			row.Evaluation = &cp
		}
		rows = append(rows, row)
	}
	return rows
}
