package identity

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/kudoslabs/kudos/pkg/handlers"
	"github.com/kudoslabs/kudos/pkg/routes"
)

const stateCookie = "kudos_login_state"

// Handler provides the sign-in, sign-out, and current-identity endpoints.
type Handler struct {
	sys    *collaborator
	logger *slog.Logger
}

// NewHandler creates a Handler for the identity endpoints.
func NewHandler(sys *collaborator, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "identity"),
	}
}

// Routes returns the route group definition for identity endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/login", Handler: h.Login},
			{Method: "GET", Pattern: "/callback", Handler: h.Callback},
			{Method: "GET", Pattern: "/logout", Handler: h.Logout},
			{Method: "GET", Pattern: "/me", Handler: h.Me},
		},
	}
}

// Login starts the redirect-based sign-in flow.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	url, err := h.sys.loginURL(r.Context(), state)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, url, http.StatusFound)
}

// Callback completes the sign-in flow: it checks the state cookie,
// exchanges the authorization code, and stores the verified ID token in
// the session cookie.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrStateMismatch), ErrStateMismatch)
		return
	}

	rawIDToken, user, err := h.sys.exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     h.sys.cfg.CookieName,
		Value:    rawIDToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("user signed in", "email", user.Email)
	http.Redirect(w, r, h.sys.cfg.PostLoginURL, http.StatusFound)
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.sys.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, h.sys.cfg.PostLoginURL, http.StatusFound)
}

// Me returns the signed-in user, or 401 when no valid session exists.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.sys.Current(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
