package entity

import "errors"

var (
	// ErrDuplicateLead signals the (company_id, phone) uniqueness
	// invariant; the store raises it, callers map it to a conflict.
	ErrDuplicateLead = errors.New("duplicate lead: phone already exists for company")

	ErrLeadNotFound        = errors.New("lead not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrSalespersonNotFound = errors.New("salesperson not found")
)
