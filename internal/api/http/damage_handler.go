package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/service"
)

type DamageHandler struct {
	records service.DamageRecordService
}

func NewDamageHandler(records service.DamageRecordService) *DamageHandler {
	return &DamageHandler{records: records}
}

func (h *DamageHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)

	var input service.NewDamageRecordInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.records.CreateRecord(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *DamageHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, total, err := h.records.ListRecords(r.Context(),
		q.Get("rental_id"),
		domain.RecordStatus(q.Get("status")),
		parseInt32(q.Get("page"), 1),
		parseInt32(q.Get("page_size"), 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"damages": records,
		"total":   total,
	})
}

func (h *DamageHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.records.GetRecord(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *DamageHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)

	var input service.UpdateDamageRecordInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.records.UpdateRecord(r.Context(), actor, mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *DamageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteRecord(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
