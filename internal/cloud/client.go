package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// BatchSize caps how many records go into one upsert round trip. The backend
// rejects larger payloads.
const BatchSize = 100

// Client is the remote document store the sync pass talks to. Its
// consistency and availability model is the backend's problem; errors here
// are reported upward as a recoverable sync failure and local data stays
// authoritative.
type Client interface {
	// Upsert writes a batch of records (at most BatchSize)
	Upsert(ctx context.Context, records []Record) error
	// FetchAll returns every record, ordered by lastModified descending
	FetchAll(ctx context.Context) ([]Record, error)
	// Delete removes the record with the given id
	Delete(ctx context.Context, id string) error
}

// Push uploads the whole collection in batches of BatchSize. A failing batch
// aborts only that batch; the remaining batches are still attempted and the
// combined error is returned, leaving retry policy to the caller. No
// per-record resume cursor is kept.
func Push(ctx context.Context, c Client, records []Record) error {
	var errs []error
	for start := 0; start < len(records); start += BatchSize {
		end := min(start+BatchSize, len(records))
		if err := c.Upsert(ctx, records[start:end]); err != nil {
			errs = append(errs, fmt.Errorf("batch %d-%d: %w", start, end, err))
		}
	}
	return errors.Join(errs...)
}

// HTTPClient talks JSON over HTTP to the hosted store:
// POST {base}/records/batch, GET {base}/records?order=lastModified.desc,
// DELETE {base}/records/{id}. Auth is a bearer token.
type HTTPClient struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewHTTPClient creates a client for the given endpoint. httpc may be nil,
// in which case http.DefaultClient is used; timeouts belong to the transport.
func NewHTTPClient(baseURL, token string, httpc *http.Client) *HTTPClient {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, token: token, httpc: httpc}
}

// Upsert implements Client
func (c *HTTPClient) Upsert(ctx context.Context, records []Record) error {
	if len(records) > BatchSize {
		return fmt.Errorf("batch of %d exceeds limit of %d", len(records), BatchSize)
	}

	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/records/batch", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("upsert request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp)
}

// FetchAll implements Client
func (c *HTTPClient) FetchAll(ctx context.Context) ([]Record, error) {
	u := c.baseURL + "/records?order=" + url.QueryEscape("lastModified.desc")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

// Delete implements Client
func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/records/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp)
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *HTTPClient) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("remote store returned %s: %s", resp.Status, snippet)
}
