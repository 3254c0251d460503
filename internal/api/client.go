package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ionutT77/PourPal/internal/observability"
)

// Client talks to the PourPal REST API. The session credential is a cookie
// set by the login endpoint; the jar carries it on every later call.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	rps        float64
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithRateLimit caps outgoing requests per second. Zero disables the cap.
func WithRateLimit(rps float64) Option {
	return func(o *options) { o.rps = rps }
}

// New builds a Client rooted at baseURL (including the /api prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		var limiter *rate.Limiter
		if o.rps > 0 {
			limiter = rate.NewLimiter(rate.Limit(o.rps), 1)
		}
		hc = &http.Client{
			Jar:       jar,
			Timeout:   15 * time.Second,
			Transport: observability.NewTransport(nil, limiter),
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}, nil
}

// CookieHeader exposes the session cookies as a handshake header for the
// websocket dialer, which carries no jar of its own. target is the ws://
// or wss:// URL about to be dialed.
func (c *Client) CookieHeader(target string) http.Header {
	if c.http.Jar == nil {
		return nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	}

	cookies := c.http.Jar.Cookies(u)
	if len(cookies) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	header := http.Header{}
	header.Set("Cookie", strings.Join(pairs, "; "))
	return header
}

// do issues one API call. endpoint is a stable name for metrics and spans,
// path is relative to the base URL, body is JSON-encoded when non-nil and
// the response body is decoded into out when non-nil.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx = observability.WithEndpoint(ctx, endpoint)
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransient, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// upload issues a multipart request prepared by the caller.
func (c *Client) upload(ctx context.Context, endpoint, path, contentType string, body io.Reader, out any) error {
	ctx = observability.WithEndpoint(ctx, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransient, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError maps a non-2xx response onto the error taxonomy. The backend
// reports resource-state conflicts (full hangout, already joined) as 400s
// with an "error" message, so those are sniffed out of the body.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &Error{StatusCode: resp.StatusCode}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	} else {
		var fields map[string][]string
		if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
			apiErr.Fields = fields
		}
	}
	if apiErr.Message == "" && apiErr.Fields == nil && len(raw) > 0 {
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = KindAuth
	case resp.StatusCode == http.StatusConflict:
		apiErr.Kind = KindConflict
	case resp.StatusCode >= 500:
		apiErr.Kind = KindTransient
	case resp.StatusCode == http.StatusBadRequest:
		if isConflictMessage(apiErr.Message) {
			apiErr.Kind = KindConflict
		} else {
			apiErr.Kind = KindValidation
		}
	default:
		apiErr.Kind = KindRemote
	}
	return apiErr
}

func isConflictMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "full") ||
		strings.Contains(lower, "already")
}
