package enhance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kudoslabs/kudos/internal/feedback"
	"github.com/kudoslabs/kudos/pkg/handlers"
	"github.com/kudoslabs/kudos/pkg/routes"
)

// EnhanceRequest is the enhancement endpoint's request body. Type is
// the feedback category and selects the prompt tone.
type EnhanceRequest struct {
	Text string            `json:"text"`
	Type feedback.Category `json:"type"`
}

// EnhanceResponse is the enhancement endpoint's response body. It is
// returned with status 200 whether or not enhancement succeeded;
// on failure EnhancedText carries the original input.
type EnhanceResponse struct {
	EnhancedText string `json:"enhancedText"`
}

// Handler provides the HTTP endpoint for text enhancement.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "enhance"),
	}
}

// Routes returns the route group definition for the enhancement
// endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/enhance",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Enhance},
		},
	}
}

// Enhance rewrites the submitted text in the tone of its category.
// Only missing input fails the request; every downstream failure still
// produces a 200 response carrying the original text.
func (h *Handler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, feedback.ErrMissingFields)
		return
	}

	if strings.TrimSpace(req.Text) == "" || req.Type == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, feedback.ErrMissingFields)
		return
	}

	result := h.sys.Enhance(r.Context(), req.Text, req.Type)

	handlers.RespondJSON(w, http.StatusOK, EnhanceResponse{
		EnhancedText: result.Text,
	})
}
