package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

func (h *Handler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	var e domain.Equipment
	if err := decodeJSON(r, &e); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := h.equipment.Add(r.Context(), &e)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	e, err := h.equipment.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pageParams(r)
	items, total, err := h.equipment.List(r.Context(), q.Get("business_id"), q.Get("category"), q.Get("status"), page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, paged{Items: items, Total: total})
}

func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	var patch service.EquipmentPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}
	e, err := h.equipment.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.equipment.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// EquipmentAvailability answers whether a date range is bookable.
func (h *Handler) EquipmentAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	availability, err := h.rentals.Availability(r.Context(), mux.Vars(r)["id"], q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, availability)
}

func (h *Handler) OpenMaintenance(w http.ResponseWriter, r *http.Request) {
	var m domain.MaintenanceRecord
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, r, err)
		return
	}
	m.EquipmentID = mux.Vars(r)["id"]
	created, err := h.equipment.OpenMaintenance(r.Context(), &m)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) CloseMaintenance(w http.ResponseWriter, r *http.Request) {
	m, err := h.equipment.CloseMaintenance(r.Context(), mux.Vars(r)["recordId"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	records, err := h.equipment.ListMaintenance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}
