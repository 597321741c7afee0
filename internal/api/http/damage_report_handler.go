package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/service"
)

type DamageReportHandler struct {
	reports service.DamageReportService
}

func NewDamageReportHandler(reports service.DamageReportService) *DamageReportHandler {
	return &DamageReportHandler{reports: reports}
}

type createReportRequest struct {
	RentalID string                   `json:"rental_id"`
	Damages  []service.NewDamageInput `json:"damages"`
}

func (h *DamageReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)

	var req createReportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.reports.CreateReport(r.Context(), req.RentalID, actor, req.Damages)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *DamageReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ReportFilter{
		RentalID:  q.Get("rental_id"),
		Status:    domain.ReportStatus(q.Get("status")),
		CreatedBy: q.Get("created_by"),
		Page:      parseInt32(q.Get("page"), 1),
		PageSize:  parseInt32(q.Get("page_size"), 20),
	}

	reports, total, err := h.reports.ListReports(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":   reports,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

func (h *DamageReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.GetReport(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type updateDraftRequest struct {
	Damages []service.NewDamageInput `json:"damages"`
}

func (h *DamageReportHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)

	var req updateDraftRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.reports.UpdateDraft(r.Context(), mux.Vars(r)["id"], req.Damages, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *DamageReportHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.reports.DeleteDraft(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type submitRequest struct {
	Notes string `json:"notes"`
}

func (h *DamageReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)

	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.reports.Submit(r.Context(), mux.Vars(r)["id"], actor, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *DamageReportHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)

	var input service.ApproveInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.reports.Approve(r.Context(), mux.Vars(r)["id"], actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *DamageReportHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)

	var input service.RejectInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.reports.Reject(r.Context(), mux.Vars(r)["id"], actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type billRequest struct {
	CustomerID string `json:"customer_id"`
}

// Bill triggers manual billing of an approved report. The body is optional;
// without a customer id the gateway customer is resolved from the rental.
func (h *DamageReportHandler) Bill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	report, err := h.reports.Bill(r.Context(), mux.Vars(r)["id"], req.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CompleteInspection closes an inspection task scheduled by a rejection
func (h *DamageReportHandler) CompleteInspection(w http.ResponseWriter, r *http.Request) {
	if err := h.reports.CompleteInspection(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
