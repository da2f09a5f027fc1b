package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sitecraft/sitecraft-go/internal/middleware"
	"github.com/sitecraft/sitecraft-go/internal/model"
	"github.com/sitecraft/sitecraft-go/internal/service"
)

// GeneratorHandler handles HTTP requests for website content generation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /generate/ requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Generate(r.Context(), identity, req)
	if err != nil {
		var perr *service.ParseError
		switch {
		case errors.Is(err, service.ErrBusinessTypeRequired), errors.Is(err, service.ErrIndustryRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.As(err, &perr):
			slog.WarnContext(r.Context(), "model returned unparseable output", "error", perr.Err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Invalid JSON returned by AI",
				"raw":   perr.Raw,
			})
		case errors.Is(err, service.ErrUpstream):
			slog.ErrorContext(r.Context(), "text generation failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		default:
			slog.ErrorContext(r.Context(), "generate failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
