package httpapi

import (
	"net/http"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type takeawayItemRequest struct {
	MenuItem            string   `json:"menuItem" validate:"required"`
	Quantity            int      `json:"quantity" validate:"required,min=1"`
	Price               *float64 `json:"price" validate:"required,min=0"`
	SpecialInstructions string   `json:"specialInstructions" validate:"max=200"`
}

type addressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type contactRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type takeawayRequest struct {
	Items           []takeawayItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress addressRequest        `json:"deliveryAddress"`
	ContactInfo     contactRequest        `json:"contactInfo"`
	PaymentMethod   domain.PaymentMethod  `json:"paymentMethod" validate:"required,oneof=Cash Card Online"`
}

type statusRequest struct {
	Status domain.TakeawayStatus `json:"status" validate:"required"`
}

func (req takeawayRequest) toTakeaway(userID string) *domain.Takeaway {
	items := make([]domain.TakeawayItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.TakeawayItem{
			MenuItemID:          item.MenuItem,
			Quantity:            item.Quantity,
			Price:               *item.Price,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return &domain.Takeaway{
		UserID: userID,
		Items:  items,
		DeliveryAddress: domain.Address{
			Street:     req.DeliveryAddress.Street,
			City:       req.DeliveryAddress.City,
			PostalCode: req.DeliveryAddress.PostalCode,
			Country:    req.DeliveryAddress.Country,
		},
		ContactInfo:   domain.ContactInfo{Phone: req.ContactInfo.Phone},
		PaymentMethod: req.PaymentMethod,
	}
}

func (h *Handler) createTakeaway(w http.ResponseWriter, r *http.Request) {
	var req takeawayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	takeaway := req.toTakeaway(callerID(r))
	if err := h.Takeaways.Create(r.Context(), takeaway); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Takeaway created successfully!",
		"takeaway": takeaway,
	})
}

func (h *Handler) listTakeaways(w http.ResponseWriter, r *http.Request) {
	takeaways, err := h.Takeaways.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"takeaways": takeaways})
}

func (h *Handler) getTakeaway(w http.ResponseWriter, r *http.Request) {
	takeaway, err := h.Takeaways.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"takeaway": takeaway})
}

func (h *Handler) updateTakeawayStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	takeaway, err := h.Takeaways.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Takeaway status updated successfully!",
		"takeaway": takeaway,
	})
}

func (h *Handler) cancelTakeaway(w http.ResponseWriter, r *http.Request) {
	takeaway, err := h.Takeaways.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Takeaway cancelled successfully!",
		"takeaway": takeaway,
	})
}

func (h *Handler) takeawayQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Takeaways.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.WithField("takeawayId", mux.Vars(r)["id"]).WithError(err).Warn("failed to write qr code")
	}
}
