package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/csvio"
)

// Client sends CSV files to a running liftlog server's import endpoint.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// Compile-time check: Client satisfies Target.
var _ Target = (*Client)(nil)

// NewClient creates a new HTTP client for the liftlog server. apiKey may be
// empty when the server does not require one.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// Name identifies the server in the import ledger.
func (c *Client) Name() string {
	return c.serverURL
}

// Import POSTs data to /api/v1/import/{kind}. Only failures to connect are
// retried (up to 3 attempts with exponential backoff): once the server has
// seen the request the import may have been applied.
func (c *Client) Import(ctx context.Context, kind csvio.Kind, data []byte) (*csvio.Result, error) {
	url := c.serverURL + "/api/v1/import/" + string(kind)

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff << uint(attempt-1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "text/csv")
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			var opErr *net.OpError
			if errors.As(err, &opErr) && opErr.Op == "dial" {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("import request: %w", err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("import failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		var result csvio.Result
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("decoding import result: %w", err)
		}
		return &result, nil
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
