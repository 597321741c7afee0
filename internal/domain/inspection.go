package domain

import "time"

type InspectionStatus string

const (
	InspectionStatusPending   InspectionStatus = "PENDING"
	InspectionStatusCompleted InspectionStatus = "COMPLETED"
)

// InspectionTask is scheduled when a rejection requires a physical
// re-inspection of the rental equipment
type InspectionTask struct {
	ID          string           `json:"id"`
	ReportID    string           `json:"report_id"`
	RentalID    string           `json:"rental_id"`
	RequestedBy string           `json:"requested_by"`
	Status      InspectionStatus `json:"status"`
	DueAt       time.Time        `json:"due_at"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}
