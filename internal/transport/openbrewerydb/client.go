package openbrewerydb

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

	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/domain"
	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	"github.com/kailas-cloud/brewdex/internal/metrics"
)

// DefaultBaseURL is the public Open Brewery DB v1 endpoint.
const DefaultBaseURL = "https://api.openbrewerydb.org/v1"

const (
	opSearch = "search"
	opFetch  = "fetch"
	opMeta   = "meta"
)

// Client reads brewery records from the Open Brewery DB REST API.
// It never retries and imposes no timeout of its own; cancel ctx to abort a call.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the directory client settings.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates an Open Brewery DB client.
func NewClient(cfg *Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SearchByQuery returns the records matching text. Empty text returns the default listing.
// A non-success status or a body that is not a JSON array yields an empty result
// and no error; only transport failures are returned.
func (c *Client) SearchByQuery(ctx context.Context, text string) ([]brewery.Brewery, error) {
	endpoint := c.baseURL + "/breweries/search?query=" + url.QueryEscape(text)

	start := time.Now()
	resp, body, err := c.get(ctx, endpoint)
	if err != nil {
		c.observe(opSearch, start, "error", "transport")
		return nil, fmt.Errorf("search breweries: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		c.observe(opSearch, start, "error", "status")
		c.logger.Warn("Directory search returned a non-success status",
			zap.String("query", text),
			zap.Int("status", resp.StatusCode),
		)
		return []brewery.Brewery{}, nil
	}

	var dtos []breweryDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		c.observe(opSearch, start, statusLabel(resp.StatusCode), "malformed")
		c.logger.Warn("Directory search returned a non-array body",
			zap.String("query", text),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return []brewery.Brewery{}, nil
	}

	c.observe(opSearch, start, statusLabel(resp.StatusCode), "")
	metrics.DirectoryRecordsReturned.WithLabelValues(opSearch).Observe(float64(len(dtos)))

	records := make([]brewery.Brewery, len(dtos))
	for i := range dtos {
		records[i] = dtos[i].toDomain()
	}
	return records, nil
}

// FetchByID returns one record. Transport failures, non-success statuses and
// undecodable bodies are returned as *domain.Failure carrying domain.MsgDetailFailed.
// A successful response without a record returns domain.ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, id string) (brewery.Brewery, error) {
	if id == "" {
		return brewery.Brewery{}, fmt.Errorf("empty brewery id: %w", domain.ErrNotFound)
	}
	endpoint := c.baseURL + "/breweries/" + url.PathEscape(id)

	start := time.Now()
	resp, body, err := c.get(ctx, endpoint)
	if err != nil {
		c.observe(opFetch, start, "error", "transport")
		return brewery.Brewery{}, domain.NewFailure(domain.MsgDetailFailed, fmt.Errorf("fetch brewery %q: %w", id, err))
	}

	if !isSuccess(resp.StatusCode) {
		cause := fmt.Errorf("directory API status %d: %w", resp.StatusCode, domain.ErrDirectoryUnavailable)
		errType := "status"
		if resp.StatusCode == http.StatusNotFound {
			cause = fmt.Errorf("%w: %w", cause, domain.ErrNotFound)
			errType = "not_found"
		}
		c.observe(opFetch, start, "error", errType)
		return brewery.Brewery{}, domain.NewFailure(domain.MsgDetailFailed, cause)
	}

	var dto *breweryDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.observe(opFetch, start, "error", "malformed")
		return brewery.Brewery{}, domain.NewFailure(domain.MsgDetailFailed,
			fmt.Errorf("decode brewery %q: %w: %w", id, domain.ErrMalformedResponse, err))
	}
	if dto == nil || dto.ID == "" {
		c.observe(opFetch, start, "success", "empty")
		return brewery.Brewery{}, fmt.Errorf("brewery %q: %w", id, domain.ErrNotFound)
	}

	c.observe(opFetch, start, "success", "")
	return dto.toDomain(), nil
}

// HealthCheck verifies directory availability via the metadata endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	start := time.Now()
	resp, _, err := c.get(ctx, c.baseURL+"/breweries/meta")
	if err != nil {
		c.observe(opMeta, start, "error", "transport")
		return fmt.Errorf("directory meta: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		c.observe(opMeta, start, "error", "status")
		return fmt.Errorf("directory meta status %d: %w", resp.StatusCode, domain.ErrDirectoryUnavailable)
	}
	c.observe(opMeta, start, "success", "")
	return nil
}

// get issues a GET and reads the whole body. Any failure to obtain a body wraps
// domain.ErrDirectoryUnavailable.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w: %w", domain.ErrDirectoryUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, nil, fmt.Errorf("request canceled: %w: %w", domain.ErrDirectoryUnavailable, err)
		}
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w: %w", domain.ErrDirectoryUnavailable, err)
	}

	c.logger.Debug("Directory response",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return resp, body, nil
}

func (c *Client) observe(op string, start time.Time, status, errType string) {
	metrics.DirectoryRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.DirectoryRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if errType != "" {
		metrics.DirectoryErrorsTotal.WithLabelValues(op, errType).Inc()
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func statusLabel(code int) string {
	if isSuccess(code) {
		return "success"
	}
	return "status_" + strconv.Itoa(code)
}
