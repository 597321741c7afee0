package domain

import "time"

type WebhookProvider string

const (
	ProviderAsaas    WebhookProvider = "ASAAS"
	ProviderLalamove WebhookProvider = "LALAMOVE"
)

// WebhookEvent records a gateway event after its sender was authenticated.
// The receiver itself gives no dedup guarantee; downstream handlers may use
// Exists(provider, eventID) to skip replays.
type WebhookEvent struct {
	ID         string          `json:"id"`
	Provider   WebhookProvider `json:"provider"`
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	Payload    string          `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}

// PaymentStatus is the internal payment status vocabulary that
// provider-specific statuses are translated into
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusReceived  PaymentStatus = "RECEIVED"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusUnknown   PaymentStatus = "UNKNOWN"
)

// DeliveryStatus is the internal delivery status vocabulary
type DeliveryStatus string

const (
	DeliveryStatusAssigning DeliveryStatus = "ASSIGNING"
	DeliveryStatusOngoing   DeliveryStatus = "ONGOING"
	DeliveryStatusPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryStatusCompleted DeliveryStatus = "COMPLETED"
	DeliveryStatusCancelled DeliveryStatus = "CANCELLED"
	DeliveryStatusRejected  DeliveryStatus = "REJECTED"
	DeliveryStatusExpired   DeliveryStatus = "EXPIRED"
	DeliveryStatusUnknown   DeliveryStatus = "UNKNOWN"
)
