package domain

import "time"

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusSubmitted ReportStatus = "SUBMITTED"
	ReportStatusApproved  ReportStatus = "APPROVED"
	ReportStatusRejected  ReportStatus = "REJECTED"
	ReportStatusBilled    ReportStatus = "BILLED"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ValidSeverity reports whether s is a known severity level
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type DamageCategory string

const (
	CategoryStructural DamageCategory = "STRUCTURAL"
	CategoryFunctional DamageCategory = "FUNCTIONAL"
	CategoryAesthetic  DamageCategory = "AESTHETIC"
	CategoryMissing    DamageCategory = "MISSING"
)

// ValidDamageCategory reports whether c is a known damage category
func ValidDamageCategory(c DamageCategory) bool {
	switch c {
	case CategoryStructural, CategoryFunctional, CategoryAesthetic, CategoryMissing:
		return true
	}
	return false
}

type RejectionCategory string

const (
	RejectionInsufficientEvidence RejectionCategory = "INSUFFICIENT_EVIDENCE"
	RejectionInvalidCost          RejectionCategory = "INVALID_COST"
	RejectionWrongRental          RejectionCategory = "WRONG_RENTAL"
	RejectionDuplicateReport      RejectionCategory = "DUPLICATE_REPORT"
	RejectionNormalWear           RejectionCategory = "NORMAL_WEAR"
	RejectionPreExistingDamage    RejectionCategory = "PRE_EXISTING_DAMAGE"
	RejectionIncompleteDocs       RejectionCategory = "INCOMPLETE_DOCUMENTATION"
	RejectionOther                RejectionCategory = "OTHER"
)

// ValidRejectionCategory reports whether c is a known rejection category
func ValidRejectionCategory(c RejectionCategory) bool {
	switch c {
	case RejectionInsufficientEvidence, RejectionInvalidCost, RejectionWrongRental,
		RejectionDuplicateReport, RejectionNormalWear, RejectionPreExistingDamage,
		RejectionIncompleteDocs, RejectionOther:
		return true
	}
	return false
}

// DamageItem is a single damaged or missing piece of equipment inside a report.
// ReportedBy and ReportedAt are set at creation and never change afterwards.
type DamageItem struct {
	ID          string         `json:"id"`
	ItemName    string         `json:"item_name"`
	Description string         `json:"description"`
	Severity    Severity       `json:"severity"`
	Category    DamageCategory `json:"category"`
	RepairCost  float64        `json:"repair_cost"`
	Photos      []string       `json:"photos"`
	ReportedBy  string         `json:"reported_by"`
	ReportedAt  time.Time      `json:"reported_at"`

	// Set only during partial-approval processing
	Approved *bool `json:"approved,omitempty"`
	// Populated when an approver overrides RepairCost
	AdjustmentReason string   `json:"adjustment_reason,omitempty"`
	OriginalCost     *float64 `json:"original_cost,omitempty"`
}

// Adjustment is an approver override of an individual item's repair cost
type Adjustment struct {
	DamageID string  `json:"damage_id"`
	NewCost  float64 `json:"new_cost"`
	Reason   string  `json:"reason"`
}

// DamageReport groups a rental's damage items into one reviewable unit.
// Items are owned by the report and have no independent lifecycle.
// Version increments by exactly 1 on every successful mutation and is the
// compare-and-swap token for concurrent writers.
type DamageReport struct {
	ID        string       `json:"id"`
	RentalID  string       `json:"rental_id"`
	Damages   []DamageItem `json:"damages"`
	TotalCost float64      `json:"total_cost"`
	Status    ReportStatus `json:"status"`
	CreatedBy string       `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`

	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	SubmissionNotes string     `json:"submission_notes,omitempty"`

	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ApprovedBy    string     `json:"approved_by,omitempty"`
	ApprovalNotes string     `json:"approval_notes,omitempty"`

	RejectedAt        *time.Time        `json:"rejected_at,omitempty"`
	RejectedBy        string            `json:"rejected_by,omitempty"`
	RejectionReason   string            `json:"rejection_reason,omitempty"`
	RejectionCategory RejectionCategory `json:"rejection_category,omitempty"`
	RejectionFeedback string            `json:"rejection_feedback,omitempty"`
	SuggestedActions  []string          `json:"suggested_actions,omitempty"`
	AllowResubmission bool              `json:"allow_resubmission"`

	BilledAt         *time.Time `json:"billed_at,omitempty"`
	BillingReference string     `json:"billing_reference,omitempty"`

	Version   int32     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InFlight reports whether the report occupies its rental's active slot.
// At most one in-flight report may exist per rental.
func (r *DamageReport) InFlight() bool {
	return r.Status == ReportStatusDraft || r.Status == ReportStatusSubmitted
}

// IncludedCost returns the sum of repair costs over items that count toward
// the report total. Items excluded by a partial approval carry Approved=false
// and do not count.
func (r *DamageReport) IncludedCost() float64 {
	var total float64
	for _, d := range r.Damages {
		if d.Approved != nil && !*d.Approved {
			continue
		}
		total += d.RepairCost
	}
	return total
}

// RecomputeTotal refreshes TotalCost from the current items
func (r *DamageReport) RecomputeTotal() {
	r.TotalCost = r.IncludedCost()
}

// FindDamage returns the item with the given id, or nil
func (r *DamageReport) FindDamage(damageID string) *DamageItem {
	for i := range r.Damages {
		if r.Damages[i].ID == damageID {
			return &r.Damages[i]
		}
	}
	return nil
}

// ReportFilter narrows a report listing
type ReportFilter struct {
	RentalID  string
	Status    ReportStatus
	CreatedBy string
	Page      int32
	PageSize  int32
}
