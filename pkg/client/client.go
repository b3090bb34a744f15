// Package client is the Go SDK for the registry REST API. All calls take a
// context and surface failures as typed errors; use apierr.KindOf to branch
// on the failure class.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yigyaps/yigyaps/internal/apierr"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	credential string
	httpClient *http.Client
}

type Option func(*Client)

// WithCredential sets the bearer credential: either a session token from
// Login or an API key.
func WithCredential(credential string) Option {
	return func(c *Client) { c.credential = credential }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    trimSlash(baseURL),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCredential swaps the credential on an existing client, e.g. after Login.
func (c *Client) SetCredential(credential string) {
	c.credential = credential
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// Page is the server's pagination envelope with the data left undecoded so
// each call can unmarshal into its own slice type.
type pageEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, apierr.Wrap(apierr.KindSystem, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, apierr.Wrap(apierr.KindSystem, fmt.Errorf("build request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apierr.Wrap(apierr.KindNetwork, fmt.Errorf("call %s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, apierr.Wrap(apierr.KindNetwork, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if jerr := json.Unmarshal(raw, &envelope); jerr == nil && envelope.Code != "" {
			return resp.StatusCode, apierr.WithDetails(apierr.KindForCode(envelope.Code), envelope.Details, "%s", envelope.Error)
		}
		return resp.StatusCode, apierr.New(apierr.KindSystem, "unexpected response %d from %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if jerr := json.Unmarshal(raw, out); jerr != nil {
			return resp.StatusCode, apierr.Wrap(apierr.KindSystem, fmt.Errorf("decode response: %w", jerr))
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) doPage(ctx context.Context, path string, query url.Values, items any) (int64, error) {
	var envelope pageEnvelope
	if _, err := c.do(ctx, http.MethodGet, path, query, nil, &envelope); err != nil {
		return 0, err
	}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, items); err != nil {
			return 0, apierr.Wrap(apierr.KindSystem, fmt.Errorf("decode page data: %w", err))
		}
	}
	return envelope.Total, nil
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}
