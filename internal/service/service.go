package service

import (
	"context"
	"io"
	"time"

	"prorentals-backend/internal/domain"
)

// Actor identifies the authenticated agent performing a request
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  domain.AgentRole
}

// Elevated reports whether the actor may edit restricted fields on
// approved damage records
func (a Actor) Elevated() bool {
	return a.Role == domain.AgentRoleManager || a.Role == domain.AgentRoleAdmin
}

// NewDamageInput describes a damage item supplied by the rental agent
type NewDamageInput struct {
	ItemName    string                `json:"item_name"`
	Description string                `json:"description"`
	Severity    domain.Severity       `json:"severity"`
	Category    domain.DamageCategory `json:"category"`
	RepairCost  float64               `json:"repair_cost"`
	Photos      []string              `json:"photos"`
}

// ApproveInput carries the approver's decision details
type ApproveInput struct {
	Notes           string              `json:"notes"`
	PartialApproval bool                `json:"partial_approval"`
	ApprovedDamages []string            `json:"approved_damages"`
	Adjustments     []domain.Adjustment `json:"adjustments"`
}

// RejectInput carries the rejection details. AllowResubmission defaults to
// true when omitted.
type RejectInput struct {
	Reason             string                   `json:"reason"`
	Category           domain.RejectionCategory `json:"category"`
	Feedback           string                   `json:"feedback"`
	SuggestedActions   []string                 `json:"suggested_actions"`
	AllowResubmission  *bool                    `json:"allow_resubmission"`
	RequiresInspection bool                     `json:"requires_inspection"`
}

type DamageReportService interface {
	CreateReport(ctx context.Context, rentalID string, createdBy Actor, damages []NewDamageInput) (*domain.DamageReport, error)
	GetReport(ctx context.Context, id string) (*domain.DamageReport, error)
	ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.DamageReport, int32, error)
	UpdateDraft(ctx context.Context, id string, damages []NewDamageInput, actor Actor) (*domain.DamageReport, error)
	DeleteDraft(ctx context.Context, id string) error
	Submit(ctx context.Context, id string, submittedBy Actor, notes string) (*domain.DamageReport, error)
	Approve(ctx context.Context, id string, approvedBy Actor, input ApproveInput) (*domain.DamageReport, error)
	Reject(ctx context.Context, id string, rejectedBy Actor, input RejectInput) (*domain.DamageReport, error)
	// Bill transitions an approved report to billed. customerID may be empty,
	// in which case the gateway customer is resolved from the rental.
	Bill(ctx context.Context, id, customerID string) (*domain.DamageReport, error)
	// CompleteInspection closes an inspection task scheduled by a rejection
	CompleteInspection(ctx context.Context, taskID string) error
}

// BillingService decides auto-billing eligibility and performs the billing
// transition against the payment gateway
type BillingService interface {
	// EligibleForAutoBilling is a pure policy function over an approved report
	EligibleForAutoBilling(report *domain.DamageReport) bool
	BillReport(ctx context.Context, reportID, customerID string) (*domain.DamageReport, error)
}

// NewDamageRecordInput describes a standalone damage record
type NewDamageRecordInput struct {
	RentalID    string                `json:"rental_id"`
	ItemName    string                `json:"item_name"`
	Description string                `json:"description"`
	Severity    domain.Severity       `json:"severity"`
	Category    domain.DamageCategory `json:"category"`
	RepairCost  float64               `json:"repair_cost"`
	Photos      []string              `json:"photos"`
}

// UpdateDamageRecordInput carries a partial update; nil fields are untouched
type UpdateDamageRecordInput struct {
	ItemName    *string                `json:"item_name"`
	Description *string                `json:"description"`
	Severity    *domain.Severity       `json:"severity"`
	Category    *domain.DamageCategory `json:"category"`
	RepairCost  *float64               `json:"repair_cost"`
	Photos      []string               `json:"photos"`
	Status      *domain.RecordStatus   `json:"status"`
}

// DamageRecordDetail is a record plus its rental context
type DamageRecordDetail struct {
	Record  *domain.DamageRecord        `json:"record"`
	Related []domain.DamageRecord       `json:"related"`
	Summary *domain.RentalDamageSummary `json:"summary"`
}

type DamageRecordService interface {
	CreateRecord(ctx context.Context, reportedBy Actor, input NewDamageRecordInput) (*domain.DamageRecord, error)
	GetRecord(ctx context.Context, id string) (*DamageRecordDetail, error)
	ListRecords(ctx context.Context, rentalID string, status domain.RecordStatus, page, pageSize int32) ([]domain.DamageRecord, int32, error)
	UpdateRecord(ctx context.Context, actor Actor, id string, input UpdateDamageRecordInput) (*domain.DamageRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}

// PhotoUpload is one file of a batch upload
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// PhotoResult reports the outcome for one file of a batch; the batch is not
// atomic
type PhotoResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
	OK       bool   `json:"ok"`
}

type PhotoService interface {
	UploadPhotos(ctx context.Context, rentalID string, files []PhotoUpload) ([]PhotoResult, error)
	ListPhotos(ctx context.Context, rentalID string) ([]string, error)
	DeletePhoto(ctx context.Context, rentalID, filename string) error
	// DeleteByURL removes a stored photo given its public URL; unknown URLs
	// are ignored
	DeleteByURL(ctx context.Context, url string) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, recipient string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, recipient, notificationID string) error
}

type EmailService interface {
	SendReportSubmittedNotification(ctx context.Context, email, reportID, rentalID string, totalCost float64) error
	SendReportApprovedNotification(ctx context.Context, email, reportID string, totalCost float64, notes string) error
	SendReportRejectedNotification(ctx context.Context, email, reportID, reason string, category domain.RejectionCategory) error
	SendReportBilledNotification(ctx context.Context, email, reportID, billingReference string, amount float64) error
	SendInspectionReminder(ctx context.Context, email, reportID, rentalID string, dueAt time.Time) error
	SendStaleReportReminder(ctx context.Context, email, reportID string, submittedAt time.Time) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Agent, error)
	CreateAgent(ctx context.Context, actor Actor, name, email, password string, role domain.AgentRole) (*domain.Agent, error)
}
