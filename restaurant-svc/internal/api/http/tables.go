package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

type tableRequest struct {
	TableNumber     int              `json:"tableNumber" validate:"required,min=1"`
	Seats           int              `json:"seats" validate:"required,min=1,max=10"`
	IsAvailable     *bool            `json:"isAvailable"`
	Location        domain.Location  `json:"location" validate:"required,oneof=indoor outdoor bar terrace main-room"`
	SpecialFeatures []domain.Feature `json:"specialFeatures" validate:"omitempty,dive,oneof=window-view near-fireplace private wheelchair-accessible"`
}

type tableUpdateRequest struct {
	TableNumber     *int             `json:"tableNumber" validate:"omitempty,min=1"`
	Seats           *int             `json:"seats" validate:"omitempty,min=1,max=10"`
	IsAvailable     *bool            `json:"isAvailable"`
	Location        *domain.Location `json:"location" validate:"omitempty,oneof=indoor outdoor bar terrace main-room"`
	SpecialFeatures []domain.Feature `json:"specialFeatures" validate:"omitempty,dive,oneof=window-view near-fireplace private wheelchair-accessible"`
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	table := &domain.Table{
		TableNumber:     req.TableNumber,
		Seats:           req.Seats,
		IsAvailable:     req.IsAvailable == nil || *req.IsAvailable,
		Location:        req.Location,
		SpecialFeatures: req.SpecialFeatures,
	}
	if err := h.Tables.Create(r.Context(), table); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Table created successfully!",
		"table":   table,
	})
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.Tables.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) updateTable(w http.ResponseWriter, r *http.Request) {
	var req tableUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	table, err := h.Tables.Update(r.Context(), mux.Vars(r)["id"], service.TableUpdate{
		TableNumber:     req.TableNumber,
		Seats:           req.Seats,
		IsAvailable:     req.IsAvailable,
		Location:        req.Location,
		SpecialFeatures: req.SpecialFeatures,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Table updated successfully!",
		"table":   table,
	})
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	if err := h.Tables.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Table deleted successfully!")
}

// findAvailableTables answers ?seats=N&time=RFC3339.
func (h *Handler) findAvailableTables(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	seats := 1
	if raw := query.Get("seats"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeMessage(w, http.StatusBadRequest, "seats must be a positive integer")
			return
		}
		seats = n
	}

	raw := query.Get("time")
	if raw == "" {
		writeMessage(w, http.StatusBadRequest, "time is required")
		return
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "time must be an RFC3339 timestamp")
		return
	}

	tables, err := h.Tables.FindAvailable(r.Context(), seats, at)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}
