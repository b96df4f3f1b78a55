package zendesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// All helpdesk calls share one bounded timeout.
const requestTimeout = 30 * time.Second

// Config holds the credentials for the Zendesk REST API. BaseURL is
// derived from the subdomain when empty; tests point it at a local server.
type Config struct {
	Subdomain string
	Email     string
	APIToken  string
	BaseURL   string
}

// Client is a thin gateway over the Zendesk ticket API. Writes are real
// and irreversible; errors surface to the caller unchanged and no
// retries happen at this layer.
type Client struct {
	cfg     Config
	baseURL string
	client  *http.Client
}

// NewClient creates a Zendesk API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.zendesk.com/api/v2", cfg.Subdomain)
	}
	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Email+"/token", c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("zendesk %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading zendesk response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("zendesk %s %s: status %d: %s", method, path, resp.StatusCode, truncate(string(respBody), 200))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding zendesk response: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// GetTicket fetches ticket metadata.
func (c *Client) GetTicket(ctx context.Context, ticketID int64) (*Ticket, error) {
	var out struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d.json", ticketID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

// GetTicketComments fetches all comments for a ticket in chronological
// order. With publicOnly, internal notes are filtered out.
func (c *Client) GetTicketComments(ctx context.Context, ticketID int64, publicOnly bool) ([]Comment, error) {
	var out struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d/comments.json", ticketID), nil, &out); err != nil {
		return nil, err
	}
	if !publicOnly {
		return out.Comments, nil
	}
	public := make([]Comment, 0, len(out.Comments))
	for _, cm := range out.Comments {
		if cm.Public {
			public = append(public, cm)
		}
	}
	return public, nil
}

// AddPrivateComment appends an internal (non-public) note to the ticket.
func (c *Client) AddPrivateComment(ctx context.Context, ticketID int64, bodyText string) error {
	payload := map[string]any{
		"ticket": map[string]any{
			"comment": map[string]any{
				"body":   bodyText,
				"public": false,
			},
		},
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/tickets/%d.json", ticketID), payload, nil)
}
