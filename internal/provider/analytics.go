package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"floorboard/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const defaultAnalyticsBaseURL = "https://seitaco-server-1d85377b001f.herokuapp.com"

// AnalyticsProvider fetches leaderboard, listing, and chart data from
// the marketplace analytics API. Every request carries a cache-busting
// timestamp parameter and a no-store directive so intermediaries never
// serve a response older than our own TTL window.
type AnalyticsProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	now     func() time.Time
}

func NewAnalyticsProvider(tracer trace.Tracer, baseURL string) *AnalyticsProvider {
	if baseURL == "" {
		baseURL = defaultAnalyticsBaseURL
	}
	return &AnalyticsProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
		now:     time.Now,
	}
}

// FetchLeaderboard returns the full collection leaderboard.
func (p *AnalyticsProvider) FetchLeaderboard(ctx context.Context) ([]domain.LeaderboardRecord, error) {
	_, span := p.tracer.Start(ctx, "analytics.fetch-leaderboard")
	defer span.End()

	body, err := p.doRequest(ctx, "/get-leaderboard", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}

	var records []domain.LeaderboardRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}
	return records, nil
}

// FetchListed returns items currently for sale. An empty slug fetches
// listings across all collections; otherwise the API filters
// server-side.
func (p *AnalyticsProvider) FetchListed(ctx context.Context, slug string) ([]domain.ListedNFT, error) {
	_, span := p.tracer.Start(ctx, "analytics.fetch-listed")
	defer span.End()

	params := url.Values{}
	if slug != "" {
		params.Set("collectionSlug", slug)
	}
	body, err := p.doRequest(ctx, "/get-listed", params)
	if err != nil {
		return nil, fmt.Errorf("fetch listed: %w", err)
	}

	var listed []domain.ListedNFT
	if err := json.Unmarshal(body, &listed); err != nil {
		return nil, fmt.Errorf("parse listed: %w", err)
	}
	return listed, nil
}

// FetchChartSeries returns the floor/volume time series for one
// collection. The slug must already be normalized.
func (p *AnalyticsProvider) FetchChartSeries(ctx context.Context, slug string) ([]domain.ChartPoint, error) {
	_, span := p.tracer.Start(ctx, "analytics.fetch-chart-series")
	defer span.End()

	params := url.Values{}
	params.Set("collectionSlug", slug)
	body, err := p.doRequest(ctx, "/get-data", params)
	if err != nil {
		return nil, fmt.Errorf("fetch chart series for %s: %w", slug, err)
	}

	var points []domain.ChartPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("parse chart series for %s: %w", slug, err)
	}
	return points, nil
}

func (p *AnalyticsProvider) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	// Cache buster. The TTL decision belongs to our cache layer alone,
	// so no intermediary may answer from its own copy.
	params.Set("t", strconv.FormatInt(p.now().UnixMilli(), 10))

	reqURL := p.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("analytics API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
