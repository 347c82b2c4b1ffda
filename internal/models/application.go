// internal/models/application.go
package models

// Application is one startup funding submission. Records are created by the
// public submission flow and are read-only inside the console; ProjectID is
// the stable join key to the Evaluation record.
type Application struct {
	ID              string `json:"id"`
	ProjectID       string `json:"projectId"`
	Name            string `json:"name"`
	Sector          string `json:"sector"`
	Stage           string `json:"stage"`
	LookingFor      string `json:"lookingFor"`
	FundingAsk      int64  `json:"fundingAsk"`
	FundingCurrency string `json:"fundingCurrency"`
	Revenue         int64  `json:"revenue"`
	RevenueCurrency string `json:"revenueCurrency"`
	SubmittedAt     string `json:"submittedAt"`
	Description     string `json:"description,omitempty"`
	Pitch           string `json:"pitch,omitempty"`
}
