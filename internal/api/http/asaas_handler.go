package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prorentals-backend/internal/gateway/asaas"
)

// AsaasHandler proxies the back office's customer and payment operations to
// the payment gateway. Responses keep the gateway's JSON shape; gateway
// errors arrive as UpstreamError and map to their reported status.
type AsaasHandler struct {
	client *asaas.Client
}

func NewAsaasHandler(client *asaas.Client) *AsaasHandler {
	return &AsaasHandler{client: client}
}

func (h *AsaasHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req asaas.CustomerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.client.CreateCustomer(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *AsaasHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.client.ListCustomers(r.Context(),
		q.Get("email"), q.Get("external_reference"),
		parseInt(q.Get("offset"), 0), parseInt(q.Get("limit"), 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AsaasHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.client.GetCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *AsaasHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req asaas.CustomerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.client.UpdateCustomer(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *AsaasHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteCustomer(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *AsaasHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req asaas.PaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	// Ad-hoc payments get no idempotency key; billing-originated payments do
	payment, err := h.client.CreatePayment(r.Context(), &req, "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *AsaasHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.client.ListPayments(r.Context(), q.Get("customer"),
		parseInt(q.Get("offset"), 0), parseInt(q.Get("limit"), 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AsaasHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.client.GetPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *AsaasHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeletePayment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *AsaasHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	var req asaas.RefundRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	payment, err := h.client.RefundPayment(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
