package payload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds the single startup fetch
const DefaultTimeout = 30 * time.Second

// maxBodySize caps the payload download
const maxBodySize = 256 << 20

// Loader fetches the dashboard payload once at startup
type Loader interface {
	// Load returns the decoded payload and the raw document it came from
	Load(ctx context.Context) (*Payload, []byte, error)
	// Source describes where the payload is loaded from
	Source() string
}

// StatusError is returned when the payload endpoint answers with a non-2xx status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("payload request failed with status %d", e.Code)
}

// HTTPLoader loads the payload from an HTTP endpoint
type HTTPLoader struct {
	url        string
	httpClient *http.Client
}

// NewHTTPLoader creates a loader for url. A non-empty token is sent as an
// OAuth2 bearer token.
func NewHTTPLoader(url, token string, timeout time.Duration) *HTTPLoader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{Timeout: timeout}
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
		client.Timeout = timeout
	}

	return NewHTTPLoaderWithClient(url, client)
}

// NewHTTPLoaderWithClient creates a loader using a preconfigured client
func NewHTTPLoaderWithClient(url string, client *http.Client) *HTTPLoader {
	return &HTTPLoader{url: url, httpClient: client}
}

// Source returns the endpoint URL
func (l *HTTPLoader) Source() string {
	return l.url
}

// Load performs the fetch. Any failure is final; callers don't retry.
func (l *HTTPLoader) Load(ctx context.Context) (*Payload, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("building payload request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.WithFields(log.Fields{
			"url":    l.url,
			"status": resp.StatusCode,
			"body":   string(body),
		}).Debug("payload request rejected")
		return nil, nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("reading payload: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"url":        l.url,
		"bytes":      len(data),
		"activities": len(p.Activities),
		"took":       time.Since(started),
	}).Info("payload loaded")

	return p, data, nil
}

// FileLoader loads the payload from a local file
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader reading path
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Source returns the file path
func (l *FileLoader) Source() string {
	return l.path
}

// Load reads and decodes the file
func (l *FileLoader) Load(ctx context.Context) (*Payload, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading payload file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"path":       l.path,
		"activities": len(p.Activities),
	}).Info("payload loaded")

	return p, data, nil
}

// Unavailable renders the message shown when the payload can't be loaded
func Unavailable(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Dashboard unavailable. Could not load activity data (%d).", statusErr.Code)
	}
	return "Dashboard unavailable. Could not load activity data."
}
