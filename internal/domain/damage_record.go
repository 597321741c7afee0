package domain

import "time"

type RecordStatus string

const (
	RecordStatusPending  RecordStatus = "PENDING"
	RecordStatusApproved RecordStatus = "APPROVED"
	RecordStatusRepaired RecordStatus = "REPAIRED"
)

// DamageRecord is a standalone damage entry tracked per rental before any
// report is assembled. Unlike report items it carries its own repair status.
type DamageRecord struct {
	ID          string         `json:"id"`
	RentalID    string         `json:"rental_id"`
	ItemName    string         `json:"item_name"`
	Description string         `json:"description"`
	Severity    Severity       `json:"severity"`
	Category    DamageCategory `json:"category"`
	RepairCost  float64        `json:"repair_cost"`
	Photos      []string       `json:"photos"`
	Status      RecordStatus   `json:"status"`
	ReportedBy  string         `json:"reported_by"`
	ReportedAt  time.Time      `json:"reported_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// RentalDamageSummary aggregates repair costs across a rental's records
type RentalDamageSummary struct {
	RentalID    string  `json:"rental_id"`
	RecordCount int32   `json:"record_count"`
	TotalCost   float64 `json:"total_cost"`
	PendingCost float64 `json:"pending_cost"`
}
