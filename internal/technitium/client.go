package technitium

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/common/version"

	"github.com/technitium-tools/technitium-exporter/internal/config"
)

// redactionMarker replaces the token wherever it surfaces in an error string.
const redactionMarker = "REDACTED"

// envelope is the outer shape of every Technitium API response.
type envelope struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// Client issues read-only queries against the Technitium management API.
// It is built once at startup and reused for every scrape; all fields are
// immutable after construction, so it is safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	node      string
	userAgent string
	httpc     *http.Client
}

// NewClient builds a Client from cfg. The underlying http.Client carries the
// request timeout and the TLS verification setting for its whole lifetime.
func NewClient(cfg *config.Config) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS, //nolint:gosec // user-configured
		},
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		token:     cfg.Token,
		node:      cfg.Node,
		userAgent: "technitium-exporter/" + version.Version,
		httpc: &http.Client{
			Transport: transport,
			Timeout:   config.RequestTimeout,
		},
	}
}

// Call performs one GET against path. The access token and, if configured,
// the cluster node are always added to the query string; caller-supplied
// params win on key collision.
//
// Call never returns an error. Transport failures, non-2xx statuses, bodies
// that fail to decode, and responses whose status is not "ok" are all logged
// (token redacted) and collapse to a nil payload, so one failing endpoint
// degrades to missing metrics instead of a failed scrape.
func (c *Client) Call(ctx context.Context, path string, params url.Values) json.RawMessage {
	q := url.Values{}
	q.Set("token", c.token)
	if c.node != "" {
		q.Set("node", c.node)
	}
	for k, vs := range params {
		q[k] = vs
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		c.logFailure(path, err)
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logFailure(path, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logFailure(path, fmt.Errorf("unexpected status %s", resp.Status))
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logFailure(path, fmt.Errorf("decode body: %w", err))
		return nil
	}

	if env.Status != "ok" {
		slog.Error("technitium API returned non-ok status",
			"endpoint", path, "status", c.Redact(env.Status))
		return nil
	}

	return env.Response
}

// Redact replaces every occurrence of the access token in s with a fixed
// marker. Applied to all log output derived from request errors; the token
// rides in the query string, so transport errors quote it back verbatim
// inside the failing URL.
func (c *Client) Redact(s string) string {
	if c.token == "" {
		return s
	}
	return strings.ReplaceAll(s, c.token, redactionMarker)
}

func (c *Client) logFailure(path string, err error) {
	slog.Error("technitium request failed",
		"endpoint", path, "err", c.Redact(err.Error()))
}
