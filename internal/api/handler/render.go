package handler

import (
	"log"
	"net/http"

	"mercadinho/internal/api/middleware"
	"mercadinho/internal/api/view"
	"mercadinho/internal/session"
)

// renderPage drains the session's flash messages into the page data and
// renders it. Draining here means every message reaches exactly one page.
func renderPage(views *view.Renderer, w http.ResponseWriter, r *http.Request, page string, data view.Data) {
	sess := middleware.SessionFrom(r.Context())
	data.Username = sess.Username

	flash, err := sess.DrainFlash(r.Context())
	if err != nil {
		log.Printf("draining flash messages: %v", err)
	} else {
		data.Success = flash[session.SeveritySuccess]
		data.Error = flash[session.SeverityError]
		data.Warning = flash[session.SeverityWarning]
	}

	views.Render(w, page, data)
}

// flash queues a one-shot message; a failing session store should not
// break the page flow, so the error is only logged.
func flash(r *http.Request, severity session.Severity, message string) {
	sess := middleware.SessionFrom(r.Context())
	if err := sess.Flash(r.Context(), severity, message); err != nil {
		log.Printf("pushing flash message: %v", err)
	}
}
