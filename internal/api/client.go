// Package api is the HTTP client for the colegio backend. It mirrors the
// endpoints under /api/ and speaks the DRF conventions the server uses:
// token-header auth and page envelopes on collection endpoints.
package api

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
)

type Client struct {
	hc      *http.Client
	baseURL string
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetToken sets the session token sent as "Authorization: Token <v>" on every
// subsequent request. An empty value sends no Authorization header.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) BaseURL() string { return c.baseURL }

// StatusError is a non-2xx response. Body keeps the raw response so callers
// can surface the server's message.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	msg := serverMessage(e.Body)
	if msg != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// serverMessage digs the human-readable message out of a DRF error body.
// The backend uses several field names depending on the endpoint.
func serverMessage(body []byte) string {
	var m struct {
		Error          string   `json:"error"`
		Detail         string   `json:"detail"`
		Mensaje        string   `json:"mensaje"`
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	switch {
	case m.Error != "":
		return m.Error
	case m.Detail != "":
		return m.Detail
	case m.Mensaje != "":
		return m.Mensaje
	case len(m.NonFieldErrors) > 0:
		return m.NonFieldErrors[0]
	}
	return ""
}

func IsStatus(err error, status int) bool {
	se, ok := err.(*StatusError)
	return ok && se.Status == status
}

// do performs one request against a path relative to the base URL. body, when
// non-nil, is JSON-encoded. The response body is returned whole; callers
// decide what a given status means.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimPrefix(path, "/"), rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

// doJSON wraps do, turning non-2xx into *StatusError and decoding the body
// into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	status, b, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &StatusError{Status: status, Body: b}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(b, out)
}

// getPage is the GetPageFunc used by collection fetches.
func (c *Client) getPage(ctx context.Context, path string) ([]byte, error) {
	status, b, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{Status: status, Body: b}
	}
	return b, nil
}
