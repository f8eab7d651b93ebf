package config

import (
	"fmt"
	"os"

	"github.com/kudoslabs/kudos/pkg/formatting"
	"github.com/kudoslabs/kudos/pkg/middleware"
	"github.com/kudoslabs/kudos/pkg/pagination"
)

const (
	EnvAPIBasePath    = "KUDOS_API_BASE_PATH"
	EnvAPIMaxBodySize = "KUDOS_API_MAX_BODY_SIZE"
	EnvAPIReviewURL   = "KUDOS_API_REVIEW_URL"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "KUDOS_CORS_ENABLED",
	Origins:          "KUDOS_CORS_ORIGINS",
	AllowedMethods:   "KUDOS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "KUDOS_CORS_ALLOWED_HEADERS",
	AllowCredentials: "KUDOS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "KUDOS_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "KUDOS_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "KUDOS_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request sizing, CORS, and pagination
// settings. ReviewURL is the public review-site target served by the
// redirect endpoint.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	ReviewURL   string                `toml:"review_url"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
}

// MaxBodySizeBytes returns MaxBodySize parsed into bytes, with a 1MB
// fallback for unparseable values.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and
// validation for the API config and its nested CORS and pagination
// configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.ReviewURL != "" {
		c.ReviewURL = overlay.ReviewURL
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.ReviewURL == "" {
		c.ReviewURL = "https://g.page/r/review"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
	if v := os.Getenv(EnvAPIReviewURL); v != "" {
		c.ReviewURL = v
	}
}
