package feedback

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/kudoslabs/kudos/internal/identity"
	"github.com/kudoslabs/kudos/pkg/handlers"
	"github.com/kudoslabs/kudos/pkg/pagination"
	"github.com/kudoslabs/kudos/pkg/routes"
)

// Handler provides HTTP endpoints for feedback operations. When the
// identity collaborator is configured, submissions require a signed-in
// user and listings are scoped to the caller; otherwise the flow is
// anonymous.
type Handler struct {
	sys        System
	identity   identity.System
	logger     *slog.Logger
	pagination pagination.Config
}

// SubmitResponse is the submission endpoint's success envelope.
type SubmitResponse struct {
	Success bool        `json:"success"`
	Data    *Submission `json:"data"`
}

// NewHandler creates a Handler with the given systems, logger, and
// pagination config.
func NewHandler(
	sys System,
	identity identity.System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		identity:   identity,
		logger:     logger.With("handler", "feedback"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for feedback endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/feedback",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Submit},
		},
	}
}

// Submit persists one feedback submission. Validation failures return 400
// before any write; storage failures collapse into the stable
// save-failed error so the caller never sees storage internals.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var cmd SubmitCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFields)
		return
	}

	if h.identity.Configured() {
		user, err := h.identity.Current(r)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		cmd.SubmitterEmail = &user.Email
		cmd.SubmitterName = &user.Name
	}

	sub, err := h.sys.Submit(r.Context(), cmd)
	if err != nil {
		h.logger.Error("submit failed", "error", err)
		public := PublicError(err)
		handlers.RespondError(w, h.logger, MapHTTPStatus(public), public)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, SubmitResponse{
		Success: true,
		Data:    sub,
	})
}

// List returns a page of submissions ordered by creation time descending.
// With identity configured, results are scoped to the signed-in caller.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	if h.identity.Configured() {
		user, err := h.identity.Current(r)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		filters.Owner = &user.Email
	}

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		h.logger.Error("list failed", "error", err)
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrFetchFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single submission by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFields)
		return
	}

	sub, err := h.sys.Find(r.Context(), id)
	if err != nil {
		public := PublicError(err)
		handlers.RespondError(w, h.logger, MapHTTPStatus(public), public)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sub)
}
