// Package rest implements the config store over the hosted REST backend
// (PostgREST-style: one endpoint per table under /rest/v1, API key in a
// header, JSON bodies). This is the production driver; see store/local for
// the SQLite alternative.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/store"
)

// DefaultRoutingTable is the routing table used by current deployments.
// Legacy installations used "discord_channels"; the table is configurable
// so both keep working.
const DefaultRoutingTable = "discord_server"

// logTable is where audit entries are appended.
const logTable = "logs"

// Client talks to the REST config store. Safe for concurrent use.
type Client struct {
	baseURL      string
	apiKey       string
	routingTable string
	httpClient   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithRoutingTable overrides the routing table name (legacy deployments).
func WithRoutingTable(table string) Option {
	return func(c *Client) {
		if table != "" {
			c.routingTable = table
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client (tests, custom timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a Client for the store at baseURL authenticated by apiKey.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		routingTable: DefaultRoutingTable,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireEntry is the backend's row shape. created_at stays a string: the
// backend does not guarantee an RFC 3339 rendering and nothing here needs
// to compute with it.
type wireEntry struct {
	ServerID  string `json:"server_id"`
	ChannelID string `json:"channel_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (w wireEntry) toDomain() domain.RoutingEntry {
	return domain.RoutingEntry{CommunityID: w.ServerID, DestinationID: w.ChannelID}
}

// FetchAll returns every persisted routing record.
func (c *Client) FetchAll(ctx context.Context) ([]domain.RoutingEntry, error) {
	var rows []wireEntry
	if err := c.getJSON(ctx, c.tableURL(c.routingTable, ""), &rows); err != nil {
		return nil, fmt.Errorf("fetch routing entries: %w", err)
	}
	entries := make([]domain.RoutingEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}
	return entries, nil
}

// FetchLatest returns the most recently created routing record.
func (c *Client) FetchLatest(ctx context.Context) (domain.RoutingEntry, error) {
	q := url.Values{}
	q.Set("order", "created_at.desc")
	q.Set("limit", "1")

	var rows []wireEntry
	if err := c.getJSON(ctx, c.tableURL(c.routingTable, q.Encode()), &rows); err != nil {
		return domain.RoutingEntry{}, fmt.Errorf("fetch latest routing entry: %w", err)
	}
	if len(rows) == 0 {
		return domain.RoutingEntry{}, store.ErrNotFound
	}
	return rows[0].toDomain(), nil
}

// Upsert writes a routing record, replacing any record for the same
// community.
func (c *Client) Upsert(ctx context.Context, entry domain.RoutingEntry) error {
	payload := wireEntry{
		ServerID:  entry.CommunityID,
		ChannelID: entry.DestinationID,
	}
	if err := c.post(ctx, c.tableURL(c.routingTable, ""), payload, true); err != nil {
		return fmt.Errorf("upsert routing entry for %s: %w", entry.CommunityID, err)
	}
	return nil
}

// Delete removes the routing record for a community.
func (c *Client) Delete(ctx context.Context, communityID string) error {
	q := url.Values{}
	q.Set("server_id", "eq."+communityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.tableURL(c.routingTable, q.Encode()), nil)
	if err != nil {
		return fmt.Errorf("delete routing entry for %s: %w", communityID, err)
	}
	if err := c.do(req); err != nil {
		return fmt.Errorf("delete routing entry for %s: %w", communityID, err)
	}
	return nil
}

// AppendLog appends an audit log entry.
func (c *Client) AppendLog(ctx context.Context, entry domain.LogEntry) error {
	if err := c.post(ctx, c.tableURL(logTable, ""), entry, false); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

func (c *Client) tableURL(table, rawQuery string) string {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if rawQuery != "" {
		u += "?" + rawQuery
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) post(ctx context.Context, url string, payload any, merge bool) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if merge {
		// PostgREST upsert: replace the row with the same primary key.
		req.Header.Set("Prefer", "resolution=merge-duplicates")
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// statusError captures a non-2xx response, keeping a bounded slice of the
// body for diagnostics.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if len(body) == 0 {
		return fmt.Errorf("store returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("store returned status %d: %s", resp.StatusCode, body)
}
