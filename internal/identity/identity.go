// Package identity integrates the external OIDC authentication provider.
// It exposes sign-in, sign-out, and current-identity primitives consumed
// by the feedback handlers and the wizard. The provider is initialized
// lazily on first use so a deployment without identity credentials
// degrades to an anonymous flow instead of failing at startup.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// User is the resolved identity of a signed-in submitter.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// System defines the public contract for the identity collaborator.
type System interface {
	Handler() *Handler

	// Configured reports whether provider credentials were supplied.
	Configured() bool

	// Current resolves the signed-in user from the request's session
	// cookie. Returns ErrUnauthenticated when no valid session exists.
	Current(r *http.Request) (*User, error)
}

type collaborator struct {
	cfg    *Config
	logger *slog.Logger

	mu       sync.Mutex
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    *oauth2.Config
}

// New creates an identity collaborator. No network calls occur until the
// first login or verification.
func New(cfg *Config, logger *slog.Logger) System {
	return &collaborator{
		cfg:    cfg,
		logger: logger.With("system", "identity"),
	}
}

func (c *collaborator) Handler() *Handler {
	return NewHandler(c, c.logger)
}

func (c *collaborator) Configured() bool {
	return c.cfg.Configured()
}

func (c *collaborator) Current(r *http.Request) (*User, error) {
	cookie, err := r.Cookie(c.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrUnauthenticated
	}

	if err := c.ensureProvider(r.Context()); err != nil {
		return nil, err
	}

	idToken, err := c.verifier.Verify(r.Context(), cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	return &User{Email: claims.Email, Name: claims.Name}, nil
}

// loginURL builds the provider redirect for the authorization code flow.
func (c *collaborator) loginURL(ctx context.Context, state string) (string, error) {
	if err := c.ensureProvider(ctx); err != nil {
		return "", err
	}
	return c.oauth.AuthCodeURL(state), nil
}

// exchange trades an authorization code for a verified ID token, returning
// the raw token for session storage alongside the resolved user.
func (c *collaborator) exchange(ctx context.Context, code string) (string, *User, error) {
	if err := c.ensureProvider(ctx); err != nil {
		return "", nil, err
	}

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("code exchange: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return "", nil, fmt.Errorf("token response missing id_token")
	}

	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", nil, fmt.Errorf("verify id_token: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", nil, fmt.Errorf("parse claims: %w", err)
	}

	return rawIDToken, &User{Email: claims.Email, Name: claims.Name}, nil
}

func (c *collaborator) ensureProvider(ctx context.Context) error {
	if !c.cfg.Configured() {
		return ErrNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return nil
	}

	provider, err := oidc.NewProvider(ctx, c.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("discover issuer %s: %w", c.cfg.Issuer, err)
	}

	c.provider = provider
	c.verifier = provider.Verifier(&oidc.Config{ClientID: c.cfg.ClientID})
	c.oauth = &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  c.cfg.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	c.logger.Info("identity provider initialized", "issuer", c.cfg.Issuer)
	return nil
}
