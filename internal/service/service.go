// Package service holds the use cases behind the HTTP handlers. Every method
// takes the tenancy.RequestContext of the request and forwards its tenant id;
// none of them accepts a tenant id from any other source.
package service

import (
	"fmt"

	"crmapi/internal/errs"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Page is the service-level DTO for paginated results.
type Page[T any] struct {
	Items  []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func toPage[T any](res *repository.PageResult[T], pq repository.PageQuery) *Page[T] {
	return &Page[T]{Items: res.Items, Total: res.Total, Limit: pq.Limit, Offset: pq.Offset}
}

// requireTenant rejects a zero RequestContext before any repository call.
func requireTenant(rc tenancy.RequestContext) error {
	if !rc.Valid() {
		return fmt.Errorf("%w: request has no validated tenant", errs.ErrMissingIdentifier)
	}
	return nil
}

func requireID(id int64) error {
	if id <= 0 {
		return errs.Invalid("id")
	}
	return nil
}
