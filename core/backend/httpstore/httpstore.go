// Package httpstore is a backend client for the endpoints served by feature/store.
package httpstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pathsync/core/backend"
	"pathsync/core/codec"
	"pathsync/core/path"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
)

const (
	getPath  = "/store/get"
	setPath  = "/store/set"
	listPath = "/store/list"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("httpstore: api error %d: %s - %s", e.Status, e.Code, e.Message)
}

type getRequest struct {
	Path []string `json:"path"`
}

type getResponse struct {
	Found bool   `json:"found"`
	Item  string `json:"item"`
}

type setRequest struct {
	Path []string `json:"path"`
	Item *string  `json:"item"`
}

type setResponse struct {
	Found    bool   `json:"found"`
	Previous string `json:"previous"`
}

type listRequest struct {
	Depth  string   `json:"depth"`
	Folder []string `json:"folder"`
}

type listResponse struct {
	Entries []struct {
		Path []string `json:"path"`
		Item string   `json:"item"`
	} `json:"entries"`
}

// Backend implements backend.Backend against a remote store.
// Items cross the wire as text, so the codec must produce valid UTF-8.
type Backend[T any] struct {
	client *req.Client
	codec  codec.Codec[T]
}

var _ backend.Backend[string] = (*Backend[string])(nil)

// Option configures the underlying HTTP client.
type Option func(*req.Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *req.Client) {
		c.SetTimeout(d)
	}
}

// WithRetry retries failed requests count times with a fixed interval.
// Only reads are retried; a retried write could apply twice.
func WithRetry(count int, interval time.Duration) Option {
	return func(c *req.Client) {
		c.SetCommonRetryCount(count).
			SetCommonRetryFixedInterval(interval).
			SetCommonRetryCondition(func(resp *req.Response, err error) bool {
				if resp == nil || resp.Request == nil || resp.Request.RawURL == "" {
					return err != nil
				}
				if strings.HasSuffix(resp.Request.RawURL, setPath) {
					return false
				}
				return err != nil || resp.StatusCode >= 500
			})
	}
}

// New creates a client for the store at baseURL. An empty apiKey sends no credentials.
func New[T any](baseURL, apiKey string, c codec.Codec[T], opts ...Option) *Backend[T] {
	client := req.C().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetUserAgent("pathsync").
		SetTimeout(30 * time.Second).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetCommonErrorResult(&APIError{})
	if apiKey != "" {
		client.SetCommonHeader("X-API-Key", apiKey)
	}
	for _, opt := range opts {
		opt(client)
	}
	return &Backend[T]{client: client, codec: c}
}

func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("httpstore: %s: %w", operation, requestErr)
	}
	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok && apiErr.Code != "" {
			apiErr.Status = resp.StatusCode
			return fmt.Errorf("%s: %w", operation, apiErr)
		}
		return fmt.Errorf("%s: %w", operation, &APIError{Status: resp.StatusCode, Message: resp.String()})
	}
	return nil
}

func (b *Backend[T]) decode(item string, found bool, operation string) (T, bool, error) {
	var zero T
	if !found {
		return zero, false, nil
	}
	v, err := b.codec.Decode([]byte(item))
	if err != nil {
		return zero, false, fmt.Errorf("httpstore: %s: %w", operation, err)
	}
	return v, true, nil
}

// Get implements backend.Backend.
func (b *Backend[T]) Get(ctx context.Context, p path.FilePath) (T, bool, error) {
	var out getResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(getRequest{Path: p.Segments()}).
		SetSuccessResult(&out).
		Post(getPath)
	if err := handleAPIError(resp, err, "get "+p.String()); err != nil {
		var zero T
		return zero, false, err
	}
	return b.decode(out.Item, out.Found, "get "+p.String())
}

// Set implements backend.Backend.
func (b *Backend[T]) Set(ctx context.Context, p path.FilePath, item *T) (T, bool, error) {
	var zero T

	body := setRequest{Path: p.Segments()}
	if item != nil {
		data, err := b.codec.Encode(*item)
		if err != nil {
			return zero, false, fmt.Errorf("httpstore: set %s: %w", p, err)
		}
		s := string(data)
		body.Item = &s
	}

	var out setResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(body).
		SetSuccessResult(&out).
		Post(setPath)
	if err := handleAPIError(resp, err, "set "+p.String()); err != nil {
		return zero, false, err
	}
	return b.decode(out.Previous, out.Found, "set "+p.String())
}

// List implements backend.Backend.
func (b *Backend[T]) List(ctx context.Context, depth path.Depth, scope path.FolderPath) ([]backend.Entry[T], error) {
	var out listResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(listRequest{Depth: depth.String(), Folder: scope.Segments()}).
		SetSuccessResult(&out).
		Post(listPath)
	if err := handleAPIError(resp, err, "list "+scope.String()); err != nil {
		return nil, err
	}

	entries := make([]backend.Entry[T], 0, len(out.Entries))
	for _, e := range out.Entries {
		p, err := path.FilePathFromSegments(e.Path)
		if err != nil {
			return nil, fmt.Errorf("httpstore: list %s: %w", scope, err)
		}
		item, err := b.codec.Decode([]byte(e.Item))
		if err != nil {
			return nil, fmt.Errorf("httpstore: list %s: %w", scope, err)
		}
		entries = append(entries, backend.Entry[T]{Path: p, Item: item})
	}
	return entries, nil
}
