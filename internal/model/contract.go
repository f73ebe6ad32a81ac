package model

import (
	"strings"
	"time"

	"crmapi/internal/errs"
)

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

const (
	ContractActive  ContractStatus = "Active"
	ContractPending ContractStatus = "Pending"
	ContractExpired ContractStatus = "Expired"
)

// MaxContractValue bounds the value column.
const MaxContractValue int64 = 1_000_000_000

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractPending, ContractExpired:
		return true
	}
	return false
}

// Contract is an agreement with one of the tenant's clients.
type Contract struct {
	ID          int64          `json:"id"`
	TenantID    TenantID       `json:"tenant_id"`
	ClientID    int64          `json:"client_id"`
	Title       string         `json:"title"`
	Status      ContractStatus `json:"status"`
	Value       int64          `json:"value"`
	StartDate   *Date          `json:"start_date,omitempty"`
	EndDate     *Date          `json:"end_date,omitempty"`
	DocumentKey string         `json:"document_key,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ContractInput struct {
	ClientID  int64          `json:"client_id"`
	Title     string         `json:"title"`
	Status    ContractStatus `json:"status"`
	Value     int64          `json:"value"`
	StartDate *Date          `json:"start_date"`
	EndDate   *Date          `json:"end_date"`
}

func (in ContractInput) Validate() error {
	if in.ClientID <= 0 {
		return errs.Invalid("client_id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return errs.Invalid("title")
	}
	if !in.Status.Valid() {
		return errs.Invalid("status")
	}
	return validateContractValue(in.Value)
}

type ContractPatch struct {
	ClientID    *int64          `json:"client_id"`
	Title       *string         `json:"title"`
	Status      *ContractStatus `json:"status"`
	Value       *int64          `json:"value"`
	StartDate   *Date           `json:"start_date"`
	EndDate     *Date           `json:"end_date"`
	DocumentKey *string         `json:"-"`
}

func (p ContractPatch) Validate() error {
	if p.ClientID != nil && *p.ClientID <= 0 {
		return errs.Invalid("client_id")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errs.Invalid("title")
	}
	if p.Status != nil && !p.Status.Valid() {
		return errs.Invalid("status")
	}
	if p.Value != nil {
		return validateContractValue(*p.Value)
	}
	return nil
}

func (p ContractPatch) Columns() map[string]any {
	cols := map[string]any{}
	setIf(cols, "client_id", p.ClientID)
	setIf(cols, "title", p.Title)
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	setIf(cols, "value", p.Value)
	setIf(cols, "start_date", p.StartDate)
	setIf(cols, "end_date", p.EndDate)
	setIf(cols, "document_key", p.DocumentKey)
	return cols
}

// ContractStatusCount is one row of the per-status contract breakdown.
type ContractStatusCount struct {
	Status ContractStatus
	Count  int
	Value  int64
}

func validateContractValue(v int64) error {
	if v < 0 || v > MaxContractValue {
		return errs.OutOfRange("value", 0, MaxContractValue)
	}
	return nil
}
