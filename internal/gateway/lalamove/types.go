package lalamove

import "prorentals-backend/internal/domain"

// Coordinates is a lat/lng pair in string form as the provider expects
type Coordinates struct {
	Lat string `json:"lat" validate:"required"`
	Lng string `json:"lng" validate:"required"`
}

// Stop is one waypoint of a delivery
type Stop struct {
	Coordinates Coordinates `json:"coordinates" validate:"required"`
	Address     string      `json:"address" validate:"required"`
}

// QuotationRequest asks the provider to price a delivery
type QuotationRequest struct {
	ServiceType string `json:"serviceType" validate:"required"`
	Language    string `json:"language,omitempty"`
	Stops       []Stop `json:"stops" validate:"required,min=2,dive"`
}

// Quotation is the provider's priced offer
type Quotation struct {
	ID             string `json:"quotationId"`
	ScheduleAt     string `json:"scheduleAt"`
	ExpiresAt      string `json:"expiresAt"`
	PriceBreakdown struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"priceBreakdown"`
}

// Contact identifies a sender or recipient at a stop
type Contact struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// OrderRequest places a delivery order against a quotation
type OrderRequest struct {
	QuotationID string  `json:"quotationId" validate:"required"`
	Sender      Contact `json:"sender" validate:"required"`
	Recipient   Contact `json:"recipient" validate:"required"`
	Remarks     string  `json:"remarks,omitempty"`
}

// Order is the provider's delivery order representation
type Order struct {
	ID         string `json:"orderId"`
	Status     string `json:"status"`
	ShareLink  string `json:"shareLink"`
	PriceTotal string `json:"priceTotal"`
	DriverID   string `json:"driverId"`
}

// WebhookPayload is the envelope the provider posts on delivery updates
type WebhookPayload struct {
	EventID   string `json:"eventId"`
	EventType string `json:"eventType"`
	Timestamp int64  `json:"timestamp"`
	Data      struct {
		Order Order `json:"order"`
	} `json:"data"`
}

// statusMap translates the provider's delivery-status vocabulary into the
// internal one
var statusMap = map[string]domain.DeliveryStatus{
	"ASSIGNING_DRIVER": domain.DeliveryStatusAssigning,
	"ON_GOING":         domain.DeliveryStatusOngoing,
	"PICKED_UP":        domain.DeliveryStatusPickedUp,
	"COMPLETED":        domain.DeliveryStatusCompleted,
	"CANCELED":         domain.DeliveryStatusCancelled,
	"REJECTED":         domain.DeliveryStatusRejected,
	"EXPIRED":          domain.DeliveryStatusExpired,
}

// MapDeliveryStatus translates a provider delivery status
func MapDeliveryStatus(providerStatus string) domain.DeliveryStatus {
	if s, ok := statusMap[providerStatus]; ok {
		return s
	}
	return domain.DeliveryStatusUnknown
}
