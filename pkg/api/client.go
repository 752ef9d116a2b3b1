// Package api is the HTTP client for LOGAN's local control API. Every
// failure class at this boundary (dial, timeout, non-2xx status, malformed
// JSON, API-level success:false) collapses into a plain error; callers never
// branch on the subtype.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jg-phare/logan-bridge/pkg/chat"
)

// Client talks to one LOGAN instance. All methods are safe for concurrent use.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a client with the given configuration. Zero-value fields
// fall back to DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Client{config: cfg, http: cfg.HTTPClient}
}

// result is the envelope every LOGAN response carries.
type result struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (r result) ok() (bool, string) { return r.Success, r.Error }

// envelope lets decode check the success flag of any response shape.
type envelope interface {
	ok() (bool, string)
}

// Status describes the document currently open in LOGAN.
type Status struct {
	FilePath   string `json:"filePath"`
	TotalLines int    `json:"totalLines"`
}

type statusResponse struct {
	result
	Status Status `json:"status"`
}

type messagesResponse struct {
	result
	Messages []chat.Message `json:"messages"`
}

// Status queries /api/status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var resp statusResponse
	if err := c.get(ctx, "/api/status", &resp); err != nil {
		return Status{}, err
	}
	return resp.Status, nil
}

// Register announces the agent's display name to LOGAN.
func (c *Client) Register(ctx context.Context, name string) error {
	var resp result
	return c.post(ctx, "/api/agent-register", map[string]string{"name": name}, &resp)
}

// Send posts one outbound agent message. The name is included only when
// non-empty, matching how LOGAN distinguishes registered senders.
func (c *Client) Send(ctx context.Context, text, name string) error {
	body := map[string]string{"message": text}
	if name != "" {
		body["name"] = name
	}
	var resp result
	return c.post(ctx, "/api/agent-message", body, &resp)
}

// Messages fetches messages that arrived after since (milliseconds since
// epoch). The remote's since filter is not guaranteed exclusive; the caller
// owns dedup.
func (c *Client) Messages(ctx context.Context, since int64) ([]chat.Message, error) {
	var resp messagesResponse
	path := "/api/messages?since=" + strconv.FormatInt(since, 10)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// OpenEvents opens the long-lived event stream for the named agent. The
// returned body has no read deadline: a silently stalled stream blocks until
// ctx is cancelled, which also unblocks any in-flight read.
func (c *Client) OpenEvents(ctx context.Context, name string) (io.ReadCloser, error) {
	endpoint := c.config.BaseURL + "/api/events?name=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connect events: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) get(ctx context.Context, path string, out envelope) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out envelope) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

func decode(resp *http.Response, out envelope) error {
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if ok, msg := out.ok(); !ok {
		if msg == "" {
			msg = "request failed"
		}
		return errors.New(msg)
	}
	return nil
}
