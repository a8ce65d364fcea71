package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"mercadinho/internal/api/handler"
	appMiddleware "mercadinho/internal/api/middleware"
	"mercadinho/internal/api/view"
	"mercadinho/internal/app/service"
	"mercadinho/internal/session"
)

// NewRouter wires the HTTP surface. Item routes sit behind RequireAuth;
// everything else is reachable anonymously, including /register and
// /login for already-authenticated sessions.
func NewRouter(
	sessions *session.Manager,
	authService *service.AuthService,
	itemService *service.ItemService,
	views *view.Renderer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer) // a panicking handler becomes a 500, not a dead process
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(appMiddleware.Session(sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", view.StaticHandler()))

	authHandler := handler.NewAuthHandler(authService, views)
	authHandler.RegisterRoutes(r)

	itemHandler := handler.NewItemHandler(itemService, views)
	r.Group(func(gated chi.Router) {
		gated.Use(appMiddleware.RequireAuth)
		itemHandler.RegisterRoutes(gated)
	})

	return r
}
