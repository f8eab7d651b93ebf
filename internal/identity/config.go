package identity

import "os"

// Config holds OIDC provider settings. Absent credentials leave the
// collaborator unconfigured: sign-in endpoints report not-configured and
// the rest of the service treats every request as anonymous.
type Config struct {
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
	PostLoginURL string `toml:"post_login_url"`
	CookieName   string `toml:"cookie_name"`
}

// Env maps config fields to environment variable names for override
// injection.
type Env struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	PostLoginURL string
	CookieName   string
}

// Configured reports whether the minimum provider credentials are present.
func (c *Config) Configured() bool {
	return c.Issuer != "" && c.ClientID != ""
}

// Finalize applies defaults and environment variable overrides. Missing
// credentials are not an error; they leave the collaborator unconfigured.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.ClientSecret != "" {
		c.ClientSecret = overlay.ClientSecret
	}
	if overlay.RedirectURL != "" {
		c.RedirectURL = overlay.RedirectURL
	}
	if overlay.PostLoginURL != "" {
		c.PostLoginURL = overlay.PostLoginURL
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
}

func (c *Config) loadDefaults() {
	if c.PostLoginURL == "" {
		c.PostLoginURL = "/"
	}
	if c.CookieName == "" {
		c.CookieName = "kudos_session"
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(envVar string, dst *string) {
		if envVar == "" {
			return
		}
		if v := os.Getenv(envVar); v != "" {
			*dst = v
		}
	}

	setString(env.Issuer, &c.Issuer)
	setString(env.ClientID, &c.ClientID)
	setString(env.ClientSecret, &c.ClientSecret)
	setString(env.RedirectURL, &c.RedirectURL)
	setString(env.PostLoginURL, &c.PostLoginURL)
	setString(env.CookieName, &c.CookieName)
}
