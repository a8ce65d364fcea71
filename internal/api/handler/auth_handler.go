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

type AuthHandler struct {
	authService *service.AuthService
	views       *view.Renderer
}

func NewAuthHandler(authService *service.AuthService, views *view.Renderer) *AuthHandler {
	return &AuthHandler{authService: authService, views: views}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/register", h.registerForm)
	r.Post("/register", h.register)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
}

func (h *AuthHandler) home(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFrom(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/list_items", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) registerForm(w http.ResponseWriter, r *http.Request) {
	renderPage(h.views, w, r, "register", view.Data{})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	err := h.authService.Register(r.Context(), username, password)
	switch {
	case errors.Is(err, common.ErrValidation):
		flash(r, session.SeverityWarning, "Please fill in all fields.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, common.ErrConflict):
		flash(r, session.SeverityError, "Username already taken.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		flash(r, session.SeverityError, "Could not register: "+err.Error())
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		flash(r, session.SeveritySuccess, "Registration successful. Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (h *AuthHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	renderPage(h.views, w, r, "login", view.Data{})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.authService.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, common.ErrValidation):
		flash(r, session.SeverityWarning, "Please fill in all fields.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, common.ErrUnauthorized):
		// Same response for unknown username and wrong password.
		flash(r, session.SeverityError, "Invalid username or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case err != nil:
		flash(r, session.SeverityError, "Could not log in: "+err.Error())
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		sess := middleware.SessionFrom(r.Context())
		if err := sess.Bind(r.Context(), user.ID, user.Username); err != nil {
			flash(r, session.SeverityError, "Could not log in: "+err.Error())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		flash(r, session.SeveritySuccess, "Welcome, "+user.Username+"!")
		http.Redirect(w, r, "/list_items", http.StatusSeeOther)
	}
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	if err := sess.Destroy(r.Context(), w); err != nil {
		http.Error(w, "could not destroy session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
