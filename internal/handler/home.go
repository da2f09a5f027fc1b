package handler

import (
	"log/slog"
	"net/http"

	"github.com/sitecraft/sitecraft-go/internal/view"
)

// HomeHandler serves the landing page.
type HomeHandler struct {
	views *view.Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(views *view.Renderer) *HomeHandler {
	return &HomeHandler{views: views}
}

// HandleIndex handles GET / requests.
func (h *HomeHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Render(w, view.PageIndex, nil); err != nil {
		slog.ErrorContext(r.Context(), "rendering index failed", "error", err)
		writeText(w, http.StatusInternalServerError, "Error: internal server error")
	}
}

// HandleHealth handles GET /health requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}
