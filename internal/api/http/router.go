package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"prorentals-backend/internal/security"
)

// RouterDeps bundles everything the HTTP surface needs
type RouterDeps struct {
	Tokens        security.TokenManager
	Reports       *DamageReportHandler
	Damages       *DamageHandler
	Photos        *PhotoHandler
	Notifications *NotificationHandler
	Asaas         *AsaasHandler
	Lalamove      *LalamoveHandler
	Webhooks      *WebhookHandler
	Auth          *AuthHandler
	UploadDir     string
}

// NewRouter builds the full route table. Webhook receivers and login are
// open; everything else under /api/v1 requires a bearer token.
func NewRouter(deps RouterDeps) *mux.Router {
	root := mux.NewRouter()
	root.Use(RecoveryMiddleware, LoggingMiddleware)

	// Unauthenticated surface: login plus gateway callbacks, which carry
	// their own sender authentication
	root.HandleFunc("/api/v1/auth/login", deps.Auth.Login).Methods(http.MethodPost)
	root.HandleFunc("/api/v1/asaas/webhooks", deps.Webhooks.HandleAsaas).Methods(http.MethodPost)
	root.HandleFunc("/webhooks/lalamove", deps.Webhooks.HandleLalamove).Methods(http.MethodPost)

	// Stored photos are served statically
	root.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(deps.Tokens))

	api.HandleFunc("/auth/agents", deps.Auth.CreateAgent).Methods(http.MethodPost)

	api.HandleFunc("/damage-reports", deps.Reports.Create).Methods(http.MethodPost)
	api.HandleFunc("/damage-reports", deps.Reports.List).Methods(http.MethodGet)
	api.HandleFunc("/damage-reports/{id}", deps.Reports.Get).Methods(http.MethodGet)
	api.HandleFunc("/damage-reports/{id}", deps.Reports.UpdateDraft).Methods(http.MethodPatch)
	api.HandleFunc("/damage-reports/{id}", deps.Reports.DeleteDraft).Methods(http.MethodDelete)
	api.HandleFunc("/damage-reports/{id}/submit", deps.Reports.Submit).Methods(http.MethodPost)
	api.HandleFunc("/damage-reports/{id}/approve", deps.Reports.Approve).Methods(http.MethodPost)
	api.HandleFunc("/damage-reports/{id}/reject", deps.Reports.Reject).Methods(http.MethodPost)
	api.HandleFunc("/damage-reports/{id}/bill", deps.Reports.Bill).Methods(http.MethodPost)

	api.HandleFunc("/damages", deps.Damages.Create).Methods(http.MethodPost)
	api.HandleFunc("/damages", deps.Damages.List).Methods(http.MethodGet)
	api.HandleFunc("/damages/upload-photos", deps.Photos.Upload).Methods(http.MethodPost)
	api.HandleFunc("/damages/upload-photos", deps.Photos.List).Methods(http.MethodGet)
	api.HandleFunc("/damages/upload-photos", deps.Photos.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/damages/{id}", deps.Damages.Get).Methods(http.MethodGet)
	api.HandleFunc("/damages/{id}", deps.Damages.Update).Methods(http.MethodPatch)
	api.HandleFunc("/damages/{id}", deps.Damages.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/asaas/customers", deps.Asaas.CreateCustomer).Methods(http.MethodPost)
	api.HandleFunc("/asaas/customers", deps.Asaas.ListCustomers).Methods(http.MethodGet)
	api.HandleFunc("/asaas/customers/{id}", deps.Asaas.GetCustomer).Methods(http.MethodGet)
	api.HandleFunc("/asaas/customers/{id}", deps.Asaas.UpdateCustomer).Methods(http.MethodPut)
	api.HandleFunc("/asaas/customers/{id}", deps.Asaas.DeleteCustomer).Methods(http.MethodDelete)

	api.HandleFunc("/asaas/payments", deps.Asaas.CreatePayment).Methods(http.MethodPost)
	api.HandleFunc("/asaas/payments", deps.Asaas.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/asaas/payments/{id}", deps.Asaas.GetPayment).Methods(http.MethodGet)
	api.HandleFunc("/asaas/payments/{id}", deps.Asaas.DeletePayment).Methods(http.MethodDelete)
	api.HandleFunc("/asaas/payments/{id}/refund", deps.Asaas.RefundPayment).Methods(http.MethodPost)

	api.HandleFunc("/lalamove/quotations", deps.Lalamove.CreateQuotation).Methods(http.MethodPost)
	api.HandleFunc("/lalamove/orders", deps.Lalamove.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/lalamove/orders/{id}", deps.Lalamove.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/lalamove/orders/{id}", deps.Lalamove.CancelOrder).Methods(http.MethodDelete)

	api.HandleFunc("/inspections/{id}/complete", deps.Reports.CompleteInspection).Methods(http.MethodPost)

	api.HandleFunc("/notifications", deps.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", deps.Notifications.MarkAsRead).Methods(http.MethodPost)

	return root
}
