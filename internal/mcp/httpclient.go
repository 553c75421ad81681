package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/stats"
)

var errNotFound = errors.New("not found")

// HTTPClient implements DataSource by calling the liftlog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on a liftlog server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("httpclient: %s: %w", path, errNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]models.Exercise, error) {
	var out []models.Exercise
	if err := c.get(ctx, "/api/v1/exercises", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ExerciseStats(ctx context.Context) ([]stats.ExerciseStats, error) {
	var out []stats.ExerciseStats
	if err := c.get(ctx, "/api/v1/stats/exercises", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) MuscleStats(ctx context.Context) ([]stats.MuscleStats, error) {
	var out []stats.MuscleStats
	if err := c.get(ctx, "/api/v1/stats/muscles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) MuscleStatsInWindow(ctx context.Context, days int) ([]stats.MuscleWindowStats, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))

	var out []stats.MuscleWindowStats
	if err := c.get(ctx, "/api/v1/stats/muscles", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) WeeklyVolume(ctx context.Context) (*stats.WeeklyReport, error) {
	var out stats.WeeklyReport
	if err := c.get(ctx, "/api/v1/stats/weekly", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Summary(ctx context.Context) (*stats.Summary, error) {
	var out stats.Summary
	if err := c.get(ctx, "/api/v1/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CheckPersonalBest(ctx context.Context, exercise string, weight float64) (*stats.PersonalBestCheck, error) {
	params := url.Values{}
	params.Set("exercise", exercise)
	params.Set("weight", strconv.FormatFloat(weight, 'f', -1, 64))

	var out stats.PersonalBestCheck
	err := c.get(ctx, "/api/v1/stats/personal-best", params, &out)
	if errors.Is(err, errNotFound) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
