package rsiapi

import (
	"context"
	"encoding/json"
	"time"

	"resty.dev/v3"

	"CycleVis/internal/domain/models"
	"CycleVis/internal/domain/repository"
	"CycleVis/pkg/config"
	"CycleVis/pkg/logger"
)

// Client fetches the precomputed RSI dataset. It issues exactly one request
// per call and never retries.
type Client struct {
	http    *resty.Client
	path    string
	logger  *logger.Logger
	metrics repository.Metrics
}

var _ repository.IndicatorSource = (*Client)(nil)

func NewClient(cfg config.DataSourceConfig, log *logger.Logger, m repository.Metrics) *Client {
	c := resty.New().
		SetBaseURL(cfg.APIBase).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	return &Client{
		http:    c,
		path:    cfg.Path,
		logger:  log.With(logger.String("component", "rsiapi")),
		metrics: m,
	}
}

// FetchRSI returns every record in upstream order. A failure is always a
// *FetchError.
func (c *Client) FetchRSI(ctx context.Context) ([]models.IndicatorResult, error) {
	start := time.Now()
	records, err := c.fetch(ctx)
	took := time.Since(start)

	if err != nil {
		c.metrics.RecordFetch(string(KindOf(err)), took.Seconds())
		return nil, err
	}
	c.metrics.RecordFetch("ok", took.Seconds())
	c.metrics.RecordDatasetSize(len(records))
	c.logger.Debug("rsi dataset fetched",
		logger.Int("records", len(records)),
		logger.Duration("took", took),
	)
	return records, nil
}

func (c *Client) fetch(ctx context.Context) ([]models.IndicatorResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.path)
	if err != nil {
		return nil, classifyTransport(err)
	}
	if !resp.IsSuccess() {
		return nil, classifyStatus(resp.StatusCode())
	}

	var records []models.IndicatorResult
	if err := json.Unmarshal(resp.Bytes(), &records); err != nil {
		return nil, &FetchError{Kind: KindDecode, Message: "malformed response body", Cause: err}
	}
	if records == nil {
		records = []models.IndicatorResult{}
	}
	return records, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}
