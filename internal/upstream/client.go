// Package upstream talks to the server of record for students, classes,
// weeks and marks. The wire shapes are owned by that external service; this
// client only translates its failures into the local error taxonomy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/pkg/config"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

// CallObserver receives per-call timing for requests to the server of record.
type CallObserver interface {
	ObserveUpstreamCall(op string, duration time.Duration)
}

// Client is the HTTP client for the server of record.
type Client struct {
	baseURL     string
	client      *http.Client
	bulkTimeout time.Duration
	logger      *zap.Logger
	observer    CallObserver
}

// New constructs a Client from configuration.
func New(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	bulkTimeout := cfg.BulkSaveTimeout
	if bulkTimeout <= 0 {
		bulkTimeout = 3 * time.Minute
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		client:      &http.Client{Timeout: timeout},
		bulkTimeout: bulkTimeout,
		logger:      logger,
	}
}

// SetObserver attaches a timing observer for every call.
func (c *Client) SetObserver(observer CallObserver) {
	c.observer = observer
}

func (c *Client) observe(op string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstreamCall(op, time.Since(start))
	}
}

// ListStudents fetches baseline student records, optionally scoped to a week.
// Fields the server omits stay absent, never zero.
func (c *Client) ListStudents(ctx context.Context, weekID string) ([]models.StudentRecord, error) {
	query := url.Values{}
	if weekID != "" {
		query.Set("week_id", weekID)
	}
	var students []models.StudentRecord
	if err := c.getJSON(ctx, "/students", query, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// ListClasses fetches the class roster.
func (c *Client) ListClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := c.getJSON(ctx, "/classes", nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// ListWeeks fetches the teaching weeks for a semester, optionally narrowed to
// a quarter.
func (c *Client) ListWeeks(ctx context.Context, semester int, quarter int) ([]models.Week, error) {
	query := url.Values{}
	query.Set("semester", strconv.Itoa(semester))
	if quarter > 0 {
		query.Set("quarter", strconv.Itoa(quarter))
	}
	var weeks []models.Week
	if err := c.getJSON(ctx, "/weeks", query, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// Settings fetches scoring-external toggles such as promotion.
func (c *Client) Settings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := c.getJSON(ctx, "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

type bulkScoresPayload struct {
	Updates []models.ScoreUpdate `json:"updates"`
	WeekID  string               `json:"week_id,omitempty"`
}

type bulkScoresResult struct {
	Status  string `json:"status"`
	Updated int    `json:"updated"`
}

// BulkUpdateScores submits a bulk diff in one round-trip. Null fields clear
// server-side values; omitted fields are left untouched. This call alone
// carries the long save timeout so a slow or cold backend does not abort a
// large submission.
func (c *Client) BulkUpdateScores(ctx context.Context, updates []models.ScoreUpdate, weekID string) (int, error) {
	defer c.observe("bulk save", time.Now())

	body, err := json.Marshal(bulkScoresPayload{Updates: updates, WeekID: weekID})
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode bulk payload")
	}

	ctx, cancel := context.WithTimeout(ctx, c.bulkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/students/bulk-scores", bytes.NewReader(body))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build bulk request")
	}
	req.Header.Set("Content-Type", "application/json")

	// The per-call context deadline governs; the shared client timeout would
	// cut the long save short.
	bulkClient := &http.Client{Transport: c.client.Transport}
	resp, err := bulkClient.Do(req)
	if err != nil {
		return 0, c.transportError(err, "bulk save")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, c.statusError(resp, "bulk save")
	}

	var result bulkScoresResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected bulk save response")
	}
	return result.Updated, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	defer c.observe(path, time.Now())

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.transportError(err, path)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("unexpected response from %s", path))
	}
	return nil
}

func (c *Client) transportError(err error, op string) error {
	c.logger.Warn("upstream request failed", zap.String("op", op), zap.Error(err))

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return appErrors.Wrap(err, appErrors.ErrUpstreamTimeout.Code, appErrors.ErrUpstreamTimeout.Status, appErrors.ErrUpstreamTimeout.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
}

func (c *Client) statusError(resp *http.Response, op string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := fmt.Sprintf("%s failed with status %d", op, resp.StatusCode)
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
		message = detail.Detail
	}

	c.logger.Warn("upstream rejected request",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", message),
	)
	return appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, message)
}
