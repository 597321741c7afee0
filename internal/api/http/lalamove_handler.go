package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"prorentals-backend/internal/gateway/lalamove"
)

// LalamoveHandler proxies the back office's delivery dispatch operations to
// the Lalamove API: price a pickup, place the order against the quotation,
// track it, cancel it. Responses keep the provider's JSON shape.
type LalamoveHandler struct {
	client *lalamove.Client
}

func NewLalamoveHandler(client *lalamove.Client) *LalamoveHandler {
	return &LalamoveHandler{client: client}
}

func (h *LalamoveHandler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var req lalamove.QuotationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	quotation, err := h.client.GetQuotation(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quotation)
}

func (h *LalamoveHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req lalamove.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	order, err := h.client.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *LalamoveHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.client.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *LalamoveHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.client.CancelOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
}
