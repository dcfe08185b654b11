package httpapi

import (
	"net/http"
	"time"

	"restaurant-backend/restaurant-svc/internal/auth"
	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

var (
	everyone = []domain.Role{domain.RoleAdmin, domain.RoleStaff, domain.RoleCustomer}
	admin    = []domain.Role{domain.RoleAdmin}
	staff    = []domain.Role{domain.RoleStaff}
)

type Handler struct {
	Tables       service.TableServiceInterface
	Reservations service.ReservationServiceInterface
	Menu         service.MenuServiceInterface
	Takeaways    service.TakeawayServiceInterface
	Users        service.UserServiceInterface
	Auth         auth.Verifier
}

func NewHandler(
	tables service.TableServiceInterface,
	reservations service.ReservationServiceInterface,
	menu service.MenuServiceInterface,
	takeaways service.TakeawayServiceInterface,
	users service.UserServiceInterface,
	verifier auth.Verifier,
) *Handler {
	return &Handler{
		Tables:       tables,
		Reservations: reservations,
		Menu:         menu,
		Takeaways:    takeaways,
		Users:        users,
		Auth:         verifier,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/signup", h.signup).Methods("POST")
	r.HandleFunc("/login", h.login).Methods("POST")
	r.Handle("/users/{id}", h.gate(h.getUser, everyone...)).Methods("GET")
	r.Handle("/users/{id}", h.gate(h.updateUser, admin...)).Methods("PUT")
	r.Handle("/users/{id}", h.gate(h.deleteUser, admin...)).Methods("DELETE")

	r.Handle("/tables", h.gate(h.createTable, admin...)).Methods("POST")
	r.Handle("/tables", h.gate(h.listTables, everyone...)).Methods("GET")
	r.Handle("/tables/available", h.gate(h.findAvailableTables, everyone...)).Methods("GET")
	r.Handle("/tables/{id}", h.gate(h.getTable, everyone...)).Methods("GET")
	r.Handle("/tables/{id}", h.gate(h.updateTable, admin...)).Methods("PUT")
	r.Handle("/tables/{id}", h.gate(h.deleteTable, admin...)).Methods("DELETE")

	r.Handle("/reservations", h.gate(h.createReservation, domain.RoleCustomer, domain.RoleStaff)).Methods("POST")
	r.Handle("/reservations", h.gate(h.listReservations, domain.RoleAdmin, domain.RoleStaff)).Methods("GET")
	r.Handle("/reservations/{id}", h.gate(h.getReservation, everyone...)).Methods("GET")
	r.Handle("/reservations/{id}", h.gate(h.updateReservation, staff...)).Methods("PUT")
	r.Handle("/reservations/{id}", h.gate(h.deleteReservation, staff...)).Methods("DELETE")

	r.Handle("/category", h.gate(h.createCategory, admin...)).Methods("POST")
	r.Handle("/category", h.gate(h.listCategories, everyone...)).Methods("GET")
	r.Handle("/category/{id}", h.gate(h.getCategory, everyone...)).Methods("GET")
	r.Handle("/category/{id}", h.gate(h.updateCategory, admin...)).Methods("PUT")
	r.Handle("/category/{id}", h.gate(h.deleteCategory, admin...)).Methods("DELETE")

	r.Handle("/menu-item", h.gate(h.createMenuItem, admin...)).Methods("POST")
	r.Handle("/menu-item", h.gate(h.listMenuItems, everyone...)).Methods("GET")
	r.Handle("/menu-item/{id}", h.gate(h.getMenuItem, everyone...)).Methods("GET")
	r.Handle("/menu-item/{id}", h.gate(h.updateMenuItem, admin...)).Methods("PUT")
	r.Handle("/menu-item/{id}", h.gate(h.deleteMenuItem, admin...)).Methods("DELETE")

	r.Handle("/takeaway", h.gate(h.createTakeaway, domain.RoleCustomer)).Methods("POST")
	r.Handle("/takeaway", h.gate(h.listTakeaways, domain.RoleAdmin, domain.RoleStaff)).Methods("GET")
	r.Handle("/takeaway/{id}", h.gate(h.getTakeaway, everyone...)).Methods("GET")
	r.Handle("/takeaway/{id}/qrcode", h.gate(h.takeawayQRCode, everyone...)).Methods("GET")
	r.Handle("/takeaway/{id}/status", h.gate(h.updateTakeawayStatus, staff...)).Methods("PUT")
	r.Handle("/takeaway/{id}/cancel", h.gate(h.cancelTakeaway, domain.RoleCustomer, domain.RoleStaff)).Methods("DELETE")
}

func (h *Handler) gate(fn http.HandlerFunc, roles ...domain.Role) http.Handler {
	return auth.Require(h.Auth, roles...)(fn)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "restaurant-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// callerID is the user id of the authenticated caller, or "" on public routes.
func callerID(r *http.Request) string {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.UserID
}
