package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ikkim/catalog-admin/pkg/logger"
)

// Client talks to the upstream catalog REST backend
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new backend client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

type tokenKey struct{}

// WithToken returns a copy of ctx carrying the caller's bearer token. Every
// request made with that context forwards it to the backend.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the forwarded bearer token, if any
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// request describes one call to the backend
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// doJSON encodes payload as the JSON request body, or sends no body when payload is nil
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	req := request{method: method, path: path, query: query}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.body = bytes.NewReader(data)
		req.contentType = "application/json"
	}
	return c.do(ctx, req)
}

// doMultipart sends form as multipart/form-data
func (c *Client) doMultipart(ctx context.Context, method, path string, form Multipart) ([]byte, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode multipart body: %w", err)
	}
	return c.do(ctx, request{method: method, path: path, body: body, contentType: contentType})
}

func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	target := c.config.BaseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := logger.FromContext(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("Backend request failed", logger.Fields{
			"method": r.method,
			"path":   r.path,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrNetwork, err)
	}

	log.Debug("Backend request", logger.Fields{
		"method":   r.method,
		"path":     r.path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return normalizeIDs(body), nil
}

// errorBody is the backend's error envelope; some routes send the text under error
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Err: sentinelFor(status)}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Code
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func escape(id string) string {
	return url.PathEscape(id)
}
