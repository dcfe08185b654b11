package httpapi

import (
	"net/http"
	"strings"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/gorilla/mux"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type menuItemRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Image       string   `json:"image" validate:"required"`
	Price       *float64 `json:"price" validate:"required,min=0"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"max=500"`
	IsAvailable *bool    `json:"isAvailable"`
}

func (req menuItemRequest) toMenuItem(id string) *domain.MenuItem {
	return &domain.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Image:       req.Image,
		Price:       *req.Price,
		CategoryID:  req.Category,
		Description: req.Description,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}
}

func decodeCategory(w http.ResponseWriter, r *http.Request) (*categoryRequest, bool) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return nil, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCategory(w, r)
	if !ok {
		return
	}

	category := &domain.Category{Name: req.Name}
	if err := h.Menu.CreateCategory(r.Context(), category); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Category created successfully!",
		"category": category,
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.Menu.GetCategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCategory(w, r)
	if !ok {
		return
	}

	category := &domain.Category{ID: mux.Vars(r)["id"], Name: req.Name}
	if err := h.Menu.UpdateCategory(r.Context(), category); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Category updated successfully!",
		"category": category,
	})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Category deleted successfully!")
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item := req.toMenuItem("")
	if err := h.Menu.CreateMenuItem(r.Context(), item); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Menu item created successfully!",
		"menuItem": item,
	})
}

func (h *Handler) listMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListMenuItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"menuItems": items})
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.GetMenuItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"menuItem": item})
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item := req.toMenuItem(mux.Vars(r)["id"])
	if err := h.Menu.UpdateMenuItem(r.Context(), item); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Menu item updated successfully!",
		"menuItem": item,
	})
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.DeleteMenuItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Menu item deleted successfully!")
}
