package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quantdeck/quantdeck/internal/model"
)

// errorBodyLimit caps how much of a failed response body is retained for
// display. Error bodies are informational only.
const errorBodyLimit = 4096

// Param is a single query parameter. Params are kept as an ordered slice so
// the encoded query string (and therefore the request identity) is
// deterministic for a given construction order.
type Param struct {
	Key   string
	Value string
}

// Request identifies one resource: an endpoint path plus ordered query
// parameters. Two requests with the same Identity are interchangeable.
type Request struct {
	Endpoint string
	Params   []Param
}

// NewRequest builds a request for the given endpoint.
func NewRequest(endpoint string, params ...Param) Request {
	return Request{Endpoint: endpoint, Params: params}
}

// WithParam returns a copy of the request with one more parameter appended.
func (r Request) WithParam(key, value string) Request {
	params := make([]Param, 0, len(r.Params)+1)
	params = append(params, r.Params...)
	params = append(params, Param{Key: key, Value: value})
	return Request{Endpoint: r.Endpoint, Params: params}
}

// WithRefresh appends the cache-busting refresh counter, giving the request
// a new identity without changing what it asks for.
func (r Request) WithRefresh(nonce int) Request {
	return r.WithParam(model.ParamRefresh, strconv.Itoa(nonce))
}

// Identity returns the endpoint plus encoded query string. A fetch is
// superseded exactly when a request with a different identity starts.
func (r Request) Identity() string {
	q := r.encodeQuery()
	if q == "" {
		return r.Endpoint
	}
	return r.Endpoint + "?" + q
}

func (r Request) encodeQuery() string {
	if len(r.Params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range r.Params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// StatusError is a non-2xx API response. The body is retained (truncated)
// for display; callers branch on Status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// Client is a read-only client for the analytics API. The base URL is
// resolved once at construction and immutable afterwards.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport. Used by tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTimeout sets a per-request timeout. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// GetRows fetches a request whose response body is a JSON array of rows.
func (c *Client) GetRows(ctx context.Context, req Request) ([]model.Row, error) {
	var rows []model.Row
	if err := c.get(ctx, req, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRow fetches a request whose response body is a single JSON object.
func (c *Client) GetRow(ctx context.Context, req Request) (model.Row, error) {
	var row model.Row
	if err := c.get(ctx, req, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func (c *Client) get(ctx context.Context, req Request, dest any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+req.Identity(), nil)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		// Context cancellation flows through here; callers must treat it
		// as a silent supersede, never a user-visible failure.
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("api: decode %s: %w", req.Endpoint, err)
	}
	return nil
}
