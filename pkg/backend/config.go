package backend

import (
	"fmt"
	"net/url"
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "catalog-admin/1.0"
)

// Config represents the configuration for the catalog backend client
type Config struct {
	// BaseURL is the backend API root, e.g. http://localhost:5000/api
	BaseURL string

	// Timeout bounds a single request including the body read
	Timeout time.Duration

	// UserAgent is sent on every request
	UserAgent string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL %q is not an http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", ErrInvalidConfig)
	}
	return nil
}
