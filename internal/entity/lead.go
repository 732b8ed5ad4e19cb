package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead sources. The normalizer may emit walk_in and agent on top of the
// values ad platforms and the UI send directly.
const (
	SourceFacebook = "facebook"
	SourceGoogle   = "google"
	SourceWebsite  = "website"
	SourceManual   = "manual"
	SourceCSV      = "csv"
	SourceReferral = "referral"
	SourceOther    = "other"
	SourceWalkIn   = "walk_in"
	SourceAgent    = "agent"
)

// Lead statuses. Free-form vocabulary: any caller may move a lead to any of
// these values, there is no transition graph (product decision).
const (
	StatusNew                 = "new"
	StatusContacted           = "contacted"
	StatusSiteVisit           = "site_visit"
	StatusAccepted            = "accepted"
	StatusNotAccepted         = "not_accepted"
	StatusPaid                = "paid"
	StatusUnpaid              = "unpaid"
	StatusBookingDone         = "booking_done"
	StatusDocumentUploaded    = "document_uploaded"
	StatusDocumentNotUploaded = "document_not_uploaded"
	StatusDropped             = "dropped"
)

const DefaultCurrency = "INR"

// TerminalStatuses stop counting toward a salesperson's active load.
var TerminalStatuses = []string{StatusBookingDone, StatusDropped}

// LeadStatuses is the accepted status vocabulary.
var LeadStatuses = map[string]bool{
	StatusNew:                 true,
	StatusContacted:           true,
	StatusSiteVisit:           true,
	StatusAccepted:            true,
	StatusNotAccepted:         true,
	StatusPaid:                true,
	StatusUnpaid:              true,
	StatusBookingDone:         true,
	StatusDocumentUploaded:    true,
	StatusDocumentNotUploaded: true,
	StatusDropped:             true,
}

type Lead struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	AssignedTo string `json:"assigned_to,omitempty"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Location  string `json:"location,omitempty"`

	PropertyInterest string   `json:"property_interest,omitempty"`
	BudgetMin        *float64 `json:"budget_min,omitempty"`
	BudgetMax        *float64 `json:"budget_max,omitempty"`
	Currency         string   `json:"currency"`

	Source      string `json:"source"`
	Campaign    string `json:"campaign,omitempty"`
	Adset       string `json:"adset,omitempty"`
	AdID        string `json:"ad_id,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`

	IsBroker     bool     `json:"is_broker"`
	BrokerName   string   `json:"broker_name,omitempty"`
	BrokerCutPct *float64 `json:"broker_cut_pct,omitempty"`

	Status     string `json:"status"`
	ProjectID  string `json:"project_id,omitempty"`
	PropertyID string `json:"property_id,omitempty"`

	CreatedBy string    `json:"created_by,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead builds a lead with ID, default status and timestamps set.
func NewLead(companyID, firstName, phone string) *Lead {
	now := time.Now()
	return &Lead{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		FirstName: firstName,
		Phone:     phone,
		Currency:  DefaultCurrency,
		Source:    SourceManual,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LeadFilter narrows list queries. Zero values mean "no filter".
type LeadFilter struct {
	CompanyID  string
	Status     string
	Source     string
	AssignedTo string
	Search     string
	Page       int
	Limit      int
}

type LeadRepositoryInterface interface {
	// Create inserts exactly one row. A (company_id, phone) uniqueness
	// violation is returned as ErrDuplicateLead; the index is the only
	// place the invariant is enforced.
	Create(ctx context.Context, lead *Lead) error

	// Find returns a page of leads plus the unpaged total.
	Find(ctx context.Context, filter LeadFilter) ([]Lead, int, error)

	FindByID(ctx context.Context, id string) (*Lead, error)

	UpdateStatus(ctx context.Context, id, status string) (*Lead, error)

	// AssignProjectProperty records the sale linkage and the resulting
	// status together. Empty project/property IDs keep the stored values.
	AssignProjectProperty(ctx context.Context, id, projectID, propertyID, status string) (*Lead, error)

	// CountActiveByAssignee counts leads per salesperson whose status is
	// outside the terminal set. The snapshot is eventually consistent.
	CountActiveByAssignee(ctx context.Context, companyID string) (map[string]int, error)

	CountByStatus(ctx context.Context, companyID string) (map[string]int, error)

	// ExistsByExternalRef is the advisory webhook de-dup check. There is
	// deliberately no uniqueness constraint behind it.
	ExistsByExternalRef(ctx context.Context, companyID, externalRef string) (bool, error)
}
