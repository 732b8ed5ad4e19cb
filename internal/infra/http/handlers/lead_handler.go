package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/http/middleware"
	"github.com/raviminds/estate-crm/internal/usecase"
)

type LeadHandler struct {
	CreateUC *usecase.CreateLeadUseCase
	Leads    entity.LeadRepositoryInterface
	Audit    entity.AuditRepositoryInterface
	Logger   *zap.Logger
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	leads entity.LeadRepositoryInterface,
	audit entity.AuditRepositoryInterface,
	logger *zap.Logger,
) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{CreateUC: createUC, Leads: leads, Audit: audit, Logger: logger}
}

// Create handles POST /leads, the manual entry channel.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		var verrs usecase.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			middleware.RecordLeadIngested("manual", "rejected")
			writeError(w, http.StatusBadRequest, verrs.Error())
		case errors.Is(err, entity.ErrDuplicateLead):
			middleware.RecordLeadIngested("manual", "duplicate")
			writeError(w, http.StatusConflict, "duplicate lead (phone already exists for company)")
		default:
			middleware.RecordLeadIngested("manual", "error")
			h.Logger.Error("create lead failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	middleware.RecordLeadIngested("manual", "created")
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "lead": lead})
}

// List handles GET /leads with company/status/source/assignee/search filters.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.LeadFilter{
		CompanyID:  q.Get("companyId"),
		Status:     q.Get("status"),
		Source:     q.Get("source"),
		AssignedTo: q.Get("assignedTo"),
		Search:     q.Get("search"),
		Page:       queryInt(q.Get("page"), 1),
		Limit:      queryInt(q.Get("limit"), 20),
	}

	leads, total, err := h.Leads.Find(r.Context(), filter)
	if err != nil {
		h.Logger.Error("list leads failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if leads == nil {
		// Clients get an empty array, not null.
		leads = []entity.Lead{}
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	writeJSON(w, http.StatusOK, map[string]any{
		"items": leads,
		"total": total,
		"page":  filter.Page,
		"pages": pages,
	})
}

// UpdateStatus handles PATCH /leads/{id}/status. Any vocabulary value is
// accepted from any current status; there is no transition graph.
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	if !entity.LeadStatuses[body.Status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	lead, err := h.Leads.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		h.Logger.Error("update lead status failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if h.Audit != nil {
		err := h.Audit.Record(r.Context(), entity.AuditRecord{
			CompanyID: lead.CompanyID,
			Action:    entity.AuditStatusChange,
			Details:   map[string]any{"leadId": lead.ID, "status": body.Status},
		})
		if err != nil {
			h.Logger.Warn("status change audit not written", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "lead": lead})
}

// AssignProjectProperty handles PATCH /leads/{id}/project-property, the sale
// path: link the lead to a project and property and move its status. Dropping
// needs no linkage; accepting (explicitly or by omitting status) requires
// both IDs; any other vocabulary value is a plain status move.
func (h *LeadHandler) AssignProjectProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		ProjectID  string `json:"projectId"`
		PropertyID string `json:"propertyId"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Status != "" && !entity.LeadStatuses[body.Status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	projectID, propertyID := body.ProjectID, body.PropertyID
	status := body.Status
	switch {
	case status == entity.StatusDropped:
		projectID, propertyID = "", ""
	case status == entity.StatusAccepted || status == "":
		if projectID == "" || propertyID == "" {
			writeError(w, http.StatusBadRequest, "projectId and propertyId are required to accept a lead")
			return
		}
		status = entity.StatusAccepted
	default:
		// Plain status move; linkage stays as stored.
		projectID, propertyID = "", ""
	}

	lead, err := h.Leads.AssignProjectProperty(r.Context(), id, projectID, propertyID, status)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		h.Logger.Error("assign project/property failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if h.Audit != nil {
		err := h.Audit.Record(r.Context(), entity.AuditRecord{
			CompanyID: lead.CompanyID,
			Action:    entity.AuditStatusChange,
			Details: map[string]any{
				"leadId":     lead.ID,
				"status":     status,
				"projectId":  lead.ProjectID,
				"propertyId": lead.PropertyID,
			},
		})
		if err != nil {
			h.Logger.Warn("status change audit not written", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "lead": lead})
}

// Stats handles GET /leads/stats, the per-status board counters.
func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("companyId")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "companyId is required")
		return
	}

	counts, err := h.Leads.CountByStatus(r.Context(), companyID)
	if err != nil {
		h.Logger.Error("lead stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	// Board columns are always present, even at zero.
	stats := map[string]int{
		entity.StatusNew:         0,
		entity.StatusContacted:   0,
		entity.StatusSiteVisit:   0,
		entity.StatusBookingDone: 0,
		entity.StatusDropped:     0,
	}
	for status, n := range counts {
		stats[status] = n
	}
	writeJSON(w, http.StatusOK, stats)
}

func queryInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
