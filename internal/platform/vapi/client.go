package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.vapi.ai"

// Client is a minimal Vapi REST client for managing voice call sessions.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Call is the subset of the Vapi call object this client reads.
type Call struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type startCallRequest struct {
	AssistantID string `json:"assistantId"`
}

// StartCall begins a call session driven by the given assistant.
func (c *Client) StartCall(ctx context.Context, assistantID string) (*Call, error) {
	body, err := json.Marshal(startCallRequest{AssistantID: assistantID})
	if err != nil {
		return nil, err
	}

	var call Call
	if err := c.do(ctx, http.MethodPost, "/call", bytes.NewReader(body), &call); err != nil {
		return nil, err
	}
	return &call, nil
}

// GetCall fetches the current state of a call.
func (c *Client) GetCall(ctx context.Context, id string) (*Call, error) {
	var call Call
	if err := c.do(ctx, http.MethodGet, "/call/"+id, nil, &call); err != nil {
		return nil, err
	}
	return &call, nil
}

// EndCall hangs up an in-progress call.
func (c *Client) EndCall(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/call/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("vapi api returned status: %s, body: %s", resp.Status, string(respBody))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
