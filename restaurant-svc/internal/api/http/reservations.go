package httpapi

import (
	"net/http"
	"strings"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

type reservationRequest struct {
	User           string                   `json:"user"`
	Table          string                   `json:"table" validate:"required"`
	Name           string                   `json:"name" validate:"required,max=100"`
	Surname        string                   `json:"surname" validate:"required,max=100"`
	Email          string                   `json:"email" validate:"required,email"`
	Time           time.Time                `json:"time"`
	GuestNumber    int                      `json:"guestNumber" validate:"required,min=1,max=10"`
	Status         domain.ReservationStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	SpecialMessage string                   `json:"specialMessage" validate:"max=500"`
}

type reservationUpdateRequest struct {
	User           string                   `json:"user"`
	Name           string                   `json:"name" validate:"required,max=100"`
	Surname        string                   `json:"surname" validate:"required,max=100"`
	Email          string                   `json:"email" validate:"required,email"`
	Time           time.Time                `json:"time"`
	GuestNumber    int                      `json:"guestNumber" validate:"required,min=1,max=10"`
	TableNumber    int                      `json:"tableNumber" validate:"required,min=1"`
	Status         domain.ReservationStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	SpecialMessage string                   `json:"specialMessage" validate:"max=500"`
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reservation := &domain.Reservation{
		UserID:         req.User,
		TableID:        req.Table,
		Name:           strings.TrimSpace(req.Name),
		Surname:        strings.TrimSpace(req.Surname),
		Email:          strings.TrimSpace(req.Email),
		Time:           req.Time,
		GuestNumber:    req.GuestNumber,
		Status:         req.Status,
		SpecialMessage: req.SpecialMessage,
	}
	if reservation.UserID == "" {
		reservation.UserID = callerID(r)
	}
	if reservation.Time.IsZero() {
		reservation.Time = time.Now()
	}

	if err := h.Reservations.Create(r.Context(), reservation); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Reservation created successfully!",
		"reservation": reservation,
	})
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Reservations.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.Reservations.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reservation, err := h.Reservations.Update(r.Context(), mux.Vars(r)["id"], service.ReservationUpdate{
		UserID:         req.User,
		Name:           strings.TrimSpace(req.Name),
		Surname:        strings.TrimSpace(req.Surname),
		Email:          strings.TrimSpace(req.Email),
		Time:           req.Time,
		GuestNumber:    req.GuestNumber,
		TableNumber:    req.TableNumber,
		Status:         req.Status,
		SpecialMessage: req.SpecialMessage,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Reservation updated successfully!",
		"reservation": reservation,
	})
}

func (h *Handler) deleteReservation(w http.ResponseWriter, r *http.Request) {
	if err := h.Reservations.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reservation deleted and table is now available")
}
