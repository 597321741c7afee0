package asaas

import "prorentals-backend/internal/domain"

// CustomerRequest is the payload for creating or updating a gateway customer
type CustomerRequest struct {
	Name              string `json:"name" validate:"required"`
	CpfCnpj           string `json:"cpfCnpj" validate:"required,min=11,max=14"`
	Email             string `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string `json:"phone,omitempty"`
	MobilePhone       string `json:"mobilePhone,omitempty"`
	Address           string `json:"address,omitempty"`
	AddressNumber     string `json:"addressNumber,omitempty"`
	Province          string `json:"province,omitempty"`
	PostalCode        string `json:"postalCode,omitempty"`
	ExternalReference string `json:"externalReference,omitempty"`
}

// Customer is the gateway's customer representation
type Customer struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	CpfCnpj           string `json:"cpfCnpj"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	MobilePhone       string `json:"mobilePhone"`
	ExternalReference string `json:"externalReference"`
	Deleted           bool   `json:"deleted"`
}

// CustomerList is a paged customer listing
type CustomerList struct {
	Data       []Customer `json:"data"`
	TotalCount int        `json:"totalCount"`
	HasMore    bool       `json:"hasMore"`
}

// PaymentRequest is the payload for creating a charge
type PaymentRequest struct {
	Customer          string  `json:"customer" validate:"required"`
	BillingType       string  `json:"billingType" validate:"required,oneof=BOLETO CREDIT_CARD PIX UNDEFINED"`
	Value             float64 `json:"value" validate:"required,gt=0"`
	DueDate           string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

// Payment is the gateway's charge representation
type Payment struct {
	ID                string  `json:"id"`
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	NetValue          float64 `json:"netValue"`
	Status            string  `json:"status"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description"`
	ExternalReference string  `json:"externalReference"`
	InvoiceURL        string  `json:"invoiceUrl"`
	Deleted           bool    `json:"deleted"`
}

// PaymentList is a paged payment listing
type PaymentList struct {
	Data       []Payment `json:"data"`
	TotalCount int       `json:"totalCount"`
	HasMore    bool      `json:"hasMore"`
}

// RefundRequest is the payload for refunding a charge
type RefundRequest struct {
	Value       float64 `json:"value,omitempty" validate:"omitempty,gt=0"`
	Description string  `json:"description,omitempty"`
}

// WebhookEvent is the envelope Asaas posts to the webhook receiver
type WebhookEvent struct {
	ID      string  `json:"id"`
	Event   string  `json:"event"`
	Payment Payment `json:"payment"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type apiErrorResponse struct {
	Errors []apiError `json:"errors"`
}

// statusMap translates the provider's payment-status vocabulary into the
// internal one. Anything absent maps to PaymentStatusUnknown.
var statusMap = map[string]domain.PaymentStatus{
	"PENDING":                      domain.PaymentStatusPending,
	"AWAITING_RISK_ANALYSIS":       domain.PaymentStatusPending,
	"CONFIRMED":                    domain.PaymentStatusConfirmed,
	"RECEIVED":                     domain.PaymentStatusReceived,
	"RECEIVED_IN_CASH":             domain.PaymentStatusReceived,
	"OVERDUE":                      domain.PaymentStatusOverdue,
	"REFUNDED":                     domain.PaymentStatusRefunded,
	"REFUND_REQUESTED":             domain.PaymentStatusRefunded,
	"CHARGEBACK_REQUESTED":         domain.PaymentStatusFailed,
	"CHARGEBACK_DISPUTE":           domain.PaymentStatusFailed,
	"AWAITING_CHARGEBACK_REVERSAL": domain.PaymentStatusFailed,
}

// MapPaymentStatus translates a provider payment status
func MapPaymentStatus(providerStatus string) domain.PaymentStatus {
	if s, ok := statusMap[providerStatus]; ok {
		return s
	}
	return domain.PaymentStatusUnknown
}
