package model

import "time"

// Interaction is a logged contact with a client, optionally about one of its leads.
type Interaction struct {
	ID              int64     `json:"id"`
	TenantID        TenantID  `json:"tenant_id"`
	ClientID        int64     `json:"client_id"`
	OpportunityID   *int64    `json:"opportunity_id,omitempty"`
	Type            string    `json:"interaction_type"`
	Notes           string    `json:"notes"`
	NextSteps       string    `json:"next_steps"`
	InteractionDate Date      `json:"interaction_date"`
	ReminderDate    *Date     `json:"reminder_date,omitempty"`
	CreatedBy       *int64    `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined from the author's user row.
	CreatedByName string `json:"created_by_name,omitempty"`
}

// InteractionFilter narrows a client's interaction history. Zero fields are ignored.
type InteractionFilter struct {
	Type      string
	CreatedBy int64
}
