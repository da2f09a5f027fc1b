package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitecraft/sitecraft-go/internal/middleware"
	"github.com/sitecraft/sitecraft-go/internal/model"
	"github.com/sitecraft/sitecraft-go/internal/service"
	"github.com/sitecraft/sitecraft-go/internal/view"
)

// SiteHandler serves stored websites as HTML and handles deletion.
type SiteHandler struct {
	service *service.SiteService
	views   *view.Renderer
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(svc *service.SiteService, views *view.Renderer) *SiteHandler {
	return &SiteHandler{service: svc, views: views}
}

// HandlePreview handles GET /generate/preview/{id}. The page is public.
func (h *SiteHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	site, err := h.service.Preview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.htmlError(w, r, err)
		return
	}

	h.renderHTML(w, r, view.PagePreview, site)
}

// HandleList handles GET /generate/list.
func (h *SiteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeText(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sites, err := h.service.List(r.Context(), identity)
	if err != nil {
		h.htmlError(w, r, err)
		return
	}

	h.renderHTML(w, r, view.PageList, view.ListData{Sites: sites})
}

// HandleDelete handles DELETE /generate/delete/{id}.
func (h *SiteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, identity); err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Website not found or unauthorized"))
			return
		}
		slog.ErrorContext(r.Context(), "delete failed", "site_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: fmt.Sprintf("Website %s deleted successfully", id)})
}

// HandleExport handles GET /generate/export/{id}.html and answers with the
// preview page as a file download.
func (h *SiteHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeText(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	site, err := h.service.Export(r.Context(), chi.URLParam(r, "id"), identity)
	if err != nil {
		h.htmlError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.views.Render(&buf, view.PagePreview, site); err != nil {
		h.htmlError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", ExportDisposition(site.ID))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// ExportDisposition returns the Content-Disposition header naming the
// download after the site id.
func ExportDisposition(id string) string {
	return fmt.Sprintf("attachment; filename=website_%s.html", id)
}

// renderHTML relies on Render writing nothing when it fails.
func (h *SiteHandler) renderHTML(w http.ResponseWriter, r *http.Request, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Render(w, page, data); err != nil {
		h.htmlError(w, r, err)
	}
}

func (h *SiteHandler) htmlError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrSiteNotFound) {
		writeText(w, http.StatusNotFound, "Website not found")
		return
	}
	slog.ErrorContext(r.Context(), "rendering site failed", "path", r.URL.Path, "error", err)
	writeText(w, http.StatusInternalServerError, "Error: internal server error")
}
