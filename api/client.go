// Package api is the HTTP client for the intake/export service. Every call
// is attempted exactly once; retry policy belongs to the caller.
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

// Client talks to one intake/export service instance.
type Client struct {
	base  string
	token string
	hc    *http.Client
}

// NewClient creates a client for the service at base, e.g.
// "http://localhost:8000". token may be empty when the server runs without
// authentication.
func NewClient(base, token string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		hc:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(method, path, resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

// responseError surfaces the server's textual error body.
func responseError(method, path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, msg)
}

// Health checks whether the server is reachable at all.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// GetSchema fetches the field catalog. Idempotent.
func (c *Client) GetSchema(ctx context.Context) (Schema, error) {
	var out Schema
	err := c.do(ctx, http.MethodGet, "/schema", nil, &out)
	return out, err
}

// ListCases returns up to limit recent cases.
func (c *Client) ListCases(ctx context.Context, limit int) ([]Case, error) {
	var out struct {
		Cases []Case `json:"cases"`
	}
	path := "/cases"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(fmt.Sprint(limit))
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Cases, err
}

// CreateCase allocates a new case with the given title.
func (c *Client) CreateCase(ctx context.Context, title string) (Case, error) {
	var out struct {
		Case Case `json:"case"`
	}
	body := map[string]string{"title": title}
	err := c.do(ctx, http.MethodPost, "/cases", body, &out)
	return out.Case, err
}

// GetCase fetches the full server view of a case.
func (c *Client) GetCase(ctx context.Context, caseID string) (CaseDetail, error) {
	var out CaseDetail
	err := c.do(ctx, http.MethodGet, "/cases/"+url.PathEscape(caseID), nil, &out)
	return out, err
}

// SaveAnswers upserts the full answers snapshot for a case.
func (c *Client) SaveAnswers(ctx context.Context, caseID string, answers map[string]string) (SaveResult, error) {
	var out SaveResult
	body := map[string]any{"answers": answers}
	err := c.do(ctx, http.MethodPut, "/cases/"+url.PathEscape(caseID)+"/answers", body, &out)
	return out, err
}

// Validate runs the server-side checks without altering any state.
func (c *Client) Validate(ctx context.Context, caseID string) (ValidationResult, error) {
	var out ValidationResult
	err := c.do(ctx, http.MethodPost, "/cases/"+url.PathEscape(caseID)+"/validate", nil, &out)
	return out, err
}

// Export generates the downloadable package (filled workbook, review
// report, optional debug dump) and returns its bytes.
func (c *Client) Export(ctx context.Context, caseID string, includeDebugJSON bool) ([]byte, error) {
	body, err := json.Marshal(map[string]bool{"include_debug_json": includeDebugJSON})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	path := "/exports/" + url.PathEscape(caseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(http.MethodPost, path, resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("POST %s: reading package: %w", path, err)
	}
	return data, nil
}
