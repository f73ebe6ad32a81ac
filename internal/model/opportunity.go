package model

import (
	"math"
	"strings"
	"time"

	"crmapi/internal/errs"
)

// MaxOpportunityValue is the largest value the SMALLINT column can hold.
const MaxOpportunityValue int64 = math.MaxInt16

// Opportunity (a lead) has no tenant column; it belongs to the tenant owning its client.
type Opportunity struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StageID         int64     `json:"stage_id"`
	Value           int64     `json:"value"`
	OwnerEmployeeID *int64    `json:"owner_employee_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined from the parent client and the stage.
	ClientCompanyName string `json:"client_company_name,omitempty"`
	StageName         string `json:"stage_name,omitempty"`
}

type OpportunityInput struct {
	ClientID        int64  `json:"client_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	StageID         int64  `json:"stage_id"`
	Value           int64  `json:"value"`
	OwnerEmployeeID *int64 `json:"owner_employee_id"`
}

// Validate checks the fields of a lead created for an existing client.
func (in OpportunityInput) Validate() error {
	if in.ClientID <= 0 {
		return errs.Invalid("client_id")
	}
	return in.validateFields()
}

// validateFields checks everything but the parent reference, which is
// assigned by the store when the client is created in the same transaction.
func (in OpportunityInput) validateFields() error {
	if strings.TrimSpace(in.Title) == "" {
		return errs.Invalid("title")
	}
	if in.StageID <= 0 {
		return errs.Invalid("stage_id")
	}
	return validateOpportunityValue(in.Value)
}

// ValidateForNewClient is Validate without the client reference.
func (in OpportunityInput) ValidateForNewClient() error {
	return in.validateFields()
}

type OpportunityPatch struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	StageID         *int64  `json:"stage_id"`
	Value           *int64  `json:"value"`
	OwnerEmployeeID *int64  `json:"owner_employee_id"`
}

func (p OpportunityPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errs.Invalid("title")
	}
	if p.StageID != nil && *p.StageID <= 0 {
		return errs.Invalid("stage_id")
	}
	if p.Value != nil {
		return validateOpportunityValue(*p.Value)
	}
	return nil
}

func (p OpportunityPatch) Columns() map[string]any {
	cols := map[string]any{}
	setIf(cols, "title", p.Title)
	setIf(cols, "description", p.Description)
	setIf(cols, "stage_id", p.StageID)
	setIf(cols, "value", p.Value)
	setIf(cols, "owner_employee_id", p.OwnerEmployeeID)
	return cols
}

// LeadFilter narrows a lead listing. Zero fields do not filter.
type LeadFilter struct {
	StageID         int64
	ClientID        int64
	OwnerEmployeeID int64
}

// StageCount is the number and total value of leads in one stage.
type StageCount struct {
	StageID   int64  `json:"stage_id"`
	StageName string `json:"stage_name"`
	Count     int    `json:"count"`
	Value     int64  `json:"value"`
}

// ClientWithLead is the result of creating a client together with its first lead.
type ClientWithLead struct {
	Client      Client      `json:"client"`
	Opportunity Opportunity `json:"opportunity"`
}

func validateOpportunityValue(v int64) error {
	if v < 0 || v > MaxOpportunityValue {
		return errs.OutOfRange("value", 0, MaxOpportunityValue)
	}
	return nil
}
