package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mercadinho/internal/api/middleware"
	"mercadinho/internal/api/view"
	"mercadinho/internal/app/service"
	"mercadinho/internal/common"
	"mercadinho/internal/session"
)

type ItemHandler struct {
	itemService *service.ItemService
	views       *view.Renderer
}

func NewItemHandler(itemService *service.ItemService, views *view.Renderer) *ItemHandler {
	return &ItemHandler{itemService: itemService, views: views}
}

// RegisterRoutes is mounted behind middleware.RequireAuth; every route
// here assumes an authenticated session.
func (h *ItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/items", h.addForm)
	r.Post("/items", h.add)
	r.Get("/list_items", h.list)
}

func (h *ItemHandler) addForm(w http.ResponseWriter, r *http.Request) {
	renderPage(h.views, w, r, "add_item", view.Data{})
}

func (h *ItemHandler) add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	name := r.PostFormValue("nome")
	description := r.PostFormValue("descricao")
	rawPrice := r.PostFormValue("preco")

	err := h.itemService.Add(r.Context(), sess.UserID, name, description, rawPrice)
	switch {
	case errors.Is(err, common.ErrValidation):
		flash(r, session.SeverityWarning, "Enter a valid non-negative price.")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
	case err != nil:
		flash(r, session.SeverityError, "Could not add item: "+err.Error())
		http.Redirect(w, r, "/items", http.StatusSeeOther)
	default:
		flash(r, session.SeveritySuccess, "Item added successfully!")
		http.Redirect(w, r, "/list_items", http.StatusSeeOther)
	}
}

func (h *ItemHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.ListNewestFirst(r.Context())
	if err != nil {
		// Still end in a rendered page: show the failure, list nothing.
		flash(r, session.SeverityError, "Could not load items: "+err.Error())
	}
	renderPage(h.views, w, r, "list_items", view.Data{Items: items})
}
