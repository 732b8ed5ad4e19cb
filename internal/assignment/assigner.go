// Package assignment picks the next salesperson for an incoming lead.
package assignment

import (
	"context"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
)

// SoftCap is the per-salesperson active-lead threshold. It biases selection
// toward under-loaded staff; it is not a hard limit, once everyone is at or
// above it leads keep flowing to the least loaded.
const SoftCap = 10

type Assigner struct {
	Salespersons entity.SalespersonRepositoryInterface
	Leads        entity.LeadRepositoryInterface
	Logger       *zap.Logger
}

func NewAssigner(
	salespersons entity.SalespersonRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	logger *zap.Logger,
) *Assigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assigner{
		Salespersons: salespersons,
		Leads:        leads,
		Logger:       logger,
	}
}

// Assign returns the salesperson who should take the next lead for the
// company, or "" when the company has no active salespersons (the lead then
// stays unassigned, which is not an error).
//
// The count read and the caller's subsequent insert are not atomic: two
// concurrent ingestions can both pick the same least-loaded person and push
// them past the soft cap. That imbalance is accepted and self-corrects on
// the next assignment, which re-reads fresh counts.
func (a *Assigner) Assign(ctx context.Context, companyID string) (string, error) {
	roster, err := a.Salespersons.ListActive(ctx, companyID)
	if err != nil {
		return "", err
	}
	if len(roster) == 0 {
		a.Logger.Debug("no active salespersons", zap.String("company_id", companyID))
		return "", nil
	}

	counts, err := a.Leads.CountActiveByAssignee(ctx, companyID)
	if err != nil {
		return "", err
	}

	// Roster arrives ordered by creation asc; a stable minimum scan below
	// keeps the earliest-created salesperson on ties.
	var underCap, overCap []candidate
	for _, sp := range roster {
		c := candidate{id: sp.ID, count: counts[sp.ID]}
		if c.count < SoftCap {
			underCap = append(underCap, c)
		} else {
			overCap = append(overCap, c)
		}
	}

	pool := underCap
	if len(pool) == 0 {
		pool = overCap
	}
	return pickLeastLoaded(pool), nil
}

type candidate struct {
	id    string
	count int
}

func pickLeastLoaded(pool []candidate) string {
	if len(pool) == 0 {
		return ""
	}
	best := pool[0]
	for _, c := range pool[1:] {
		if c.count < best.count {
			best = c
		}
	}
	return best.id
}
